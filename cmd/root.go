package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teachpad/learning-assist/internal/core"
)

var verboseInfo bool
var verboseDebug bool
var verboseTrace bool

var rootCmd = &cobra.Command{
	Use:   "la",
	Short: "Learning Assist structures and renders AI-generated lessons",
	Long: `Learning Assist turns raw AI-generated lesson text into typed sections,
reconstructs edited sections back into canonical text, and renders
sections as safe HTML fragments. The serve command runs the portal API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		CheckConfig()

		// Enable verbose output. The most verbose level wins when multiple flags are passed.
		if verboseInfo {
			core.CurrentConfig().SetVerboseLevel(core.VerboseInfo)
		}
		if verboseDebug {
			core.CurrentConfig().SetVerboseLevel(core.VerboseDebug)
		}
		if verboseTrace {
			core.CurrentConfig().SetVerboseLevel(core.VerboseTrace)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseInfo, "verbose", "v", false, "enable verbose info output")
	rootCmd.PersistentFlags().BoolVar(&verboseDebug, "verbose-debug", false, "enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&verboseTrace, "verbose-trace", false, "enable verbose trace output")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func CheckConfig() {
	core.CurrentConfig()
}

// readInput returns the content of the file argument, or stdin when no
// argument was given.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("unable to read %q: %w", args[0], err)
		}
		return string(content), nil
	}
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("unable to read stdin: %w", err)
	}
	return string(content), nil
}

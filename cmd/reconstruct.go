package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teachpad/learning-assist/internal/lesson"
)

func init() {
	rootCmd.AddCommand(reconstructCmd)
}

var reconstructCmd = &cobra.Command{
	Use:   "reconstruct [file]",
	Short: "Serialize sections back into canonical lesson text",
	Long: `Reconstruct reads a JSON array of sections (as printed by parse)
and prints the canonical text document they form.`,
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := readInput(args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		var sections []*lesson.Section
		if err := json.Unmarshal([]byte(raw), &sections); err != nil {
			fmt.Printf("invalid sections JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(lesson.Reconstruct(sections))
	},
}

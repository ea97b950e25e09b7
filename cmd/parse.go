package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teachpad/learning-assist/internal/lesson"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Split raw lesson text into typed sections",
	Long: `Parse reads raw AI-generated lesson text (a JSON lesson plan or
free-form text with headings) and prints the typed sections as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := readInput(args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		sections := lesson.Parse(raw)
		output, err := json.MarshalIndent(sections, "", "  ")
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(string(output))
	},
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teachpad/learning-assist/internal/lesson"
	"github.com/teachpad/learning-assist/internal/render"
)

func init() {
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render lesson text as HTML fragments",
	Long: `Render parses raw lesson text and prints one HTML fragment per
section, with links replaced by styled widgets.`,
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := readInput(args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		for _, section := range lesson.Parse(raw) {
			fmt.Printf("<!-- %s -->\n", section.ID)
			fmt.Println(render.RenderSection(section.Content))
		}
	},
}

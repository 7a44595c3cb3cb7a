package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "investigate <company>",
		Short: "Research a company's environmental, labor and tax record",
		Long:  "Research a company. The company is remembered before the model is called, so it is left out of later lists even if research fails.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runInvestigate,
	}

	cmd.Flags().Bool("render", false, "Render the markdown output for the terminal")

	RootCmd.AddCommand(cmd)
}

func runInvestigate(cmd *cobra.Command, args []string) {
	render, _ := cmd.Flags().GetBool("render")
	company := strings.Join(args, " ")

	a, err := newApp(cmd)
	if err != nil {
		exitErr("start", err)
	}
	defer a.close()

	details, err := a.pipeline.Investigate(cmd.Context(), company)
	if err != nil {
		exitErr("investigate", err)
	}
	printMarkdown(cmd.OutOrStdout(), details, render)
}

// printMarkdown writes text, styled for a dark terminal when render is set.
// Rendering failures fall back to the raw text.
func printMarkdown(out io.Writer, text string, render bool) {
	if render {
		if styled, err := glamour.Render(text, "dark"); err == nil {
			fmt.Fprint(out, styled)
			return
		}
	}
	fmt.Fprintln(out, text)
}

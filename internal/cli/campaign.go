package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dekleptocracy/campaign-agent/internal/model"
	"github.com/dekleptocracy/campaign-agent/internal/thread"
)

func init() {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Draft a bilingual X thread and video script",
		Long:  "Draft campaign content from earlier findings. Findings are read from --findings-file, or from stdin when it is not set. Reading stdin requires the API key to come from config or the environment.",
		Run:   runCampaign,
	}

	cmd.Flags().String("company", "", "Company name (required)")
	cmd.Flags().String("market", "", "Target market, e.g. Denmark (required)")
	cmd.Flags().String("language", "", "Second output language, e.g. Danish (required)")
	cmd.Flags().String("findings-file", "", "File holding the investigation output (default: stdin)")
	cmd.Flags().Bool("render", false, "Render the markdown output for the terminal")
	cmd.Flags().Bool("split", false, "Print the content as numbered posts of at most 280 characters")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("market")
	_ = cmd.MarkFlagRequired("language")

	RootCmd.AddCommand(cmd)
}

func runCampaign(cmd *cobra.Command, args []string) {
	company, _ := cmd.Flags().GetString("company")
	market, _ := cmd.Flags().GetString("market")
	language, _ := cmd.Flags().GetString("language")
	findingsFile, _ := cmd.Flags().GetString("findings-file")
	render, _ := cmd.Flags().GetBool("render")
	split, _ := cmd.Flags().GetBool("split")

	findings, err := readFindings(cmd.InOrStdin(), findingsFile, cfg.APIKey != "")
	if err != nil {
		exitErr("read findings", err)
	}

	a, err := newApp(cmd)
	if err != nil {
		exitErr("start", err)
	}
	defer a.close()

	content, err := a.pipeline.GenerateCampaign(cmd.Context(), model.CampaignRequest{
		Company:  company,
		Findings: string(findings),
		Market:   market,
		Language: language,
	})
	if err != nil {
		exitErr("generate campaign", err)
	}
	if split {
		printPosts(cmd.OutOrStdout(), thread.Split(content, thread.MaxPostLen))
		return
	}
	printMarkdown(cmd.OutOrStdout(), content, render)
}

// readFindings reads file, or in when file is empty. Reading in leaves nothing
// to answer the API key prompt, so that path requires a configured key.
func readFindings(in io.Reader, file string, haveKey bool) ([]byte, error) {
	if file != "" {
		return os.ReadFile(file)
	}
	if !haveKey {
		return nil, fmt.Errorf("findings on stdin: %w", errNoKeyForStdio)
	}
	return io.ReadAll(in)
}

func printPosts(out io.Writer, posts []thread.Post) {
	for i, p := range posts {
		fmt.Fprintf(out, "--- %d/%d (lines %d-%d)\n%s\n\n", i+1, len(posts), p.StartLine, p.EndLine, p.Text)
	}
}

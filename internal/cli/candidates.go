package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dekleptocracy/campaign-agent/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:     "candidates",
		Aliases: []string{"list"},
		Short:   "List companies not investigated yet",
		Run:     runCandidates,
	}

	cmd.Flags().Bool("json", false, "Print the parsed candidates as JSON")

	RootCmd.AddCommand(cmd)
}

func runCandidates(cmd *cobra.Command, args []string) {
	asJSON, _ := cmd.Flags().GetBool("json")

	a, err := newApp(cmd)
	if err != nil {
		exitErr("start", err)
	}
	defer a.close()

	lines, err := a.pipeline.ListCandidates(cmd.Context())
	if err != nil {
		exitErr("list candidates", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		parsed := make([]model.Candidate, 0, len(lines))
		for _, l := range lines {
			parsed = append(parsed, model.ParseCandidate(l))
		}
		b, _ := json.MarshalIndent(parsed, "", "  ")
		fmt.Fprintln(out, string(b))
		return
	}
	if len(lines) == 0 {
		fmt.Fprintln(out, "No new companies found.")
		return
	}
	for i, l := range lines {
		c := model.ParseCandidate(l)
		fmt.Fprintf(out, "%2d. %s\n", i+1, c.Name)
		if c.Details != "" {
			fmt.Fprintf(out, "    %s\n", c.Details)
		}
	}
}

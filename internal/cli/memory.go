package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dekleptocracy/campaign-agent/internal/store"
)

func init() {
	memCmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect or change the investigated-companies memory",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print investigated companies in order",
		Run:   runMemoryList,
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget every investigated company",
		Run:   runMemoryReset,
	}
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show totals and repeat counts",
		Run:   runMemoryStats,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export memory as JSON or YAML",
		Run:   runMemoryExport,
	}
	exportCmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Append companies from stdin",
		Long:  "Append companies from stdin. Accepts the JSON produced by export, or one name per line.",
		Run:   runMemoryImport,
	}

	copyCmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy memory into another backend",
		Run:   runMemoryCopy,
	}
	copyCmd.Flags().String("to-store", "sqlite", "Destination backend: file, sqlite or postgres")
	copyCmd.Flags().String("to-path", "", "Destination file or database path")
	copyCmd.Flags().String("to-dsn", "", "Destination Postgres connection string")

	memCmd.AddCommand(listCmd, resetCmd, statsCmd, exportCmd, importCmd, copyCmd)
	RootCmd.AddCommand(memCmd)
}

// memoryDump is the export document.
type memoryDump struct {
	Companies []string `json:"companies" yaml:"companies"`
}

func runMemoryList(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	names, err := s.ReadAll(cmd.Context())
	if err != nil {
		exitErr("read memory", err)
	}
	for _, n := range names {
		fmt.Fprintln(cmd.OutOrStdout(), n)
	}
}

func runMemoryReset(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes && !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Forget every investigated company?") {
		fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
		return
	}

	a, err := newMemoryApp()
	if err != nil {
		exitErr("open store", err)
	}
	defer a.close()

	if err := a.pipeline.ResetMemory(cmd.Context()); err != nil {
		exitErr("reset memory", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), `{"status":"success","message":"Memory has been reset."}`)
}

func runMemoryStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := store.Stats(cmd.Context(), s)
	if err != nil {
		exitErr("stats", err)
	}

	b, _ := json.MarshalIndent(stats, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func runMemoryExport(cmd *cobra.Command, args []string) {
	format, _ := cmd.Flags().GetString("format")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	names, err := s.ReadAll(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	b, err := encodeDump(memoryDump{Companies: names}, format)
	if err != nil {
		exitErr("export", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
}

func runMemoryImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		exitErr("read stdin", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, err := store.Import(cmd.Context(), s, decodeNames(data))
	if err != nil {
		exitErr("import", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d}`+"\n", imported)
}

func runMemoryCopy(cmd *cobra.Command, args []string) {
	driver, _ := cmd.Flags().GetString("to-store")
	path, _ := cmd.Flags().GetString("to-path")
	dsn, _ := cmd.Flags().GetString("to-dsn")

	src, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer src.Close()

	dst, err := store.Open(store.Options{Driver: driver, Path: path, DSN: dsn})
	if err != nil {
		exitErr("open destination", err)
	}
	defer dst.Close()

	n, err := store.Copy(cmd.Context(), dst, src)
	if err != nil {
		exitErr("copy", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"copied":%d}`+"\n", n)
}

func encodeDump(d memoryDump, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "json":
		b, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(d)
	default:
		return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

// decodeNames accepts an export document in JSON or YAML, a bare list, or
// plain lines.
func decodeNames(data []byte) []string {
	var d memoryDump
	if err := yaml.Unmarshal(data, &d); err == nil && len(d.Companies) > 0 {
		return d.Companies
	}
	var list []string
	if err := yaml.Unmarshal(data, &list); err == nil && len(list) > 0 {
		return list
	}

	var names []string
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			names = append(names, line)
		}
	}
	return names
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

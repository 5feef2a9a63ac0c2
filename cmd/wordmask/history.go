package wordmask

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/wordmask/wordmask/internal/audit"
	"github.com/wordmask/wordmask/internal/report"
)

var flagHistoryLimit int

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the audit log of scans and redactions",
		RunE:  runHistory,
	}
	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "root whose audit log to read")
	cmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "show at most N records (0 = all)")
	rootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd, flagPath)
	if err != nil {
		return err
	}
	records, err := audit.New(s.root).History()
	if err != nil {
		return err
	}
	if flagHistoryLimit > 0 && len(records) > flagHistoryLimit {
		records = records[:flagHistoryLimit]
	}
	out := cmd.OutOrStdout()
	if flagJSON {
		if records == nil {
			records = []audit.Record{}
		}
		return report.WriteJSON(out, records, !s.noColor)
	}
	if len(records) == 0 {
		_, _ = fmt.Fprintln(out, "No audit records.")
		return nil
	}
	table := tablewriter.NewWriter(out)
	table.Header("WHEN", "KIND", "POLICY", "FINDINGS", "NEW", "WORDS", "FILES")
	for _, r := range records {
		files := strconv.Itoa(r.FilesScanned)
		if r.Kind == audit.KindRedact {
			files = strings.Join(r.FilesChanged, ", ")
		}
		_ = table.Append([]string{
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Kind,
			r.Policy,
			strconv.Itoa(r.TotalFindings),
			strconv.Itoa(r.NewFindings),
			strconv.Itoa(r.DistinctWords),
			files,
		})
	}
	return table.Render()
}

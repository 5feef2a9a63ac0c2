package wordmask

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wordmask/wordmask/internal/report"
)

var flagHighlight bool

func init() {
	cmd := &cobra.Command{
		Use:   "find [text...]",
		Short: "List the dictionary words found in text (args or stdin)",
		RunE:  runFind,
		Example: `
wordmask find "我有花呗和信用卡"
echo "我有花呗" | wordmask find --policy longest --highlight`,
	}
	cmd.Flags().BoolVar(&flagHighlight, "highlight", false, "print the input with matches emphasised instead of the word list")
	rootCmd.AddCommand(cmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	s, err := resolveSettings(cmd, ".")
	if err != nil {
		return err
	}
	f, err := s.filter()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch {
	case flagJSON:
		words := f.Find(text, s.policy)
		if words == nil {
			words = []string{}
		}
		return report.WriteJSON(out, words, !s.noColor)
	case flagHighlight:
		_, err := fmt.Fprintln(out, report.Highlight(text, f.Scan(text, s.policy), s.noColor))
		return err
	default:
		for _, w := range f.Find(text, s.policy) {
			if _, err := fmt.Fprintln(out, w); err != nil {
				return err
			}
		}
		return nil
	}
}

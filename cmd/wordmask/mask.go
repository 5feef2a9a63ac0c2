package wordmask

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var flagCopy bool

func init() {
	cmd := &cobra.Command{
		Use:   "mask [text...]",
		Short: "Print text with every dictionary word masked (args or stdin)",
		RunE:  runMask,
		Example: `
wordmask mask "我有花呗和信用卡"
cat notes.txt | wordmask mask --mask "#" --copy`,
	}
	cmd.Flags().BoolVar(&flagCopy, "copy", false, "also copy the masked text to the clipboard")
	rootCmd.AddCommand(cmd)
}

func runMask(cmd *cobra.Command, args []string) error {
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
	masked := f.Replace(text, s.policy, s.mask)
	if flagCopy {
		if err := clipboard.WriteAll(masked); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard.")
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), masked)
	return err
}

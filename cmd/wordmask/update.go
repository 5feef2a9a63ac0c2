package wordmask

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wordmask/wordmask/internal/update"
)

var flagCheckOnly bool

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check for or install the latest wordmask release",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if flagCheckOnly {
				latest, newer, err := update.Check(version, false)
				if err != nil {
					return fmt.Errorf("check for updates: %w", err)
				}
				switch {
				case newer:
					_, _ = fmt.Fprintf(out, "wordmask %s is available (current %s)\n", latest, version)
				case latest == "":
					_, _ = fmt.Fprintln(out, "no release information available")
				default:
					_, _ = fmt.Fprintf(out, "wordmask %s is up to date\n", version)
				}
				return nil
			}
			installed, err := update.SelfUpdate(version)
			if err != nil {
				return fmt.Errorf("self-update: %w", err)
			}
			if update.Newer(installed, version) {
				_, _ = fmt.Fprintf(out, "updated to %s\n", installed)
			} else {
				_, _ = fmt.Fprintf(out, "wordmask %s is up to date\n", version)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flagCheckOnly, "check", false, "only report whether a newer release exists")
	rootCmd.AddCommand(cmd)
}

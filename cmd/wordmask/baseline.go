package wordmask

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wordmask/wordmask/internal/engine"
	"github.com/wordmask/wordmask/internal/report"
)

func init() {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage baselines",
	}

	update := &cobra.Command{
		Use:   "update",
		Short: "Accept every current finding into the baseline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := resolveSettings(cmd, flagPath)
			if err != nil {
				return err
			}
			cfg, err := engineConfig(cmd, s)
			if err != nil {
				return err
			}
			cfg.NoCache = true
			results, err := engine.Scan(cfg)
			if err != nil {
				return err
			}
			p := baselinePath(cfg.Root)
			if err := report.SaveBaseline(p, results); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Baseline updated: %s (%d findings)\n", p, len(results))
			return nil
		},
	}
	update.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	update.Flags().StringVar(&flagBaseline, "baseline", "", "baseline file (default <path>/"+report.BaselineFile+")")
	update.Flags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list")

	rootCmd.AddCommand(cmd)
	cmd.AddCommand(update)
}

package wordmask

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wordmask/wordmask/internal/audit"
	"github.com/wordmask/wordmask/internal/engine"
	"github.com/wordmask/wordmask/internal/redact"
	"github.com/wordmask/wordmask/internal/report"
	"github.com/wordmask/wordmask/internal/tui"
	"github.com/wordmask/wordmask/internal/types"
	"github.com/wordmask/wordmask/pkg/core"
)

var (
	flagPath            string
	flagInclude         string
	flagExclude         string
	flagMaxBytes        int64
	flagDryRun          bool
	flagNoCache         bool
	flagDefaultExcludes bool
	flagText            bool
	flagFail            bool
	flagBaseline        string
	flagStaged          bool
	flagHistory         int
	flagAudit           bool
	flagTUI             bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a working tree for dictionary words",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (0 = 1 MiB)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "list what would be scanned without matching")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "disable incremental scan cache")
	cmd.Flags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, dist, images, etc.)")
	cmd.Flags().BoolVar(&flagText, "text", false, "output in plain text columnar format")
	cmd.Flags().BoolVar(&flagFail, "fail", false, "exit 1 when findings not in the baseline remain")
	cmd.Flags().BoolVar(&flagStaged, "staged", false, "scan changes staged in the git index")
	cmd.Flags().IntVar(&flagHistory, "history", 0, "scan files changed by the last N commits (0=off)")
	cmd.Flags().BoolVar(&flagTUI, "tui", false, "browse findings interactively after the scan")
	cmd.Flags().BoolVar(&flagAudit, "audit", false, "append a summary record to the audit log")
	cmd.Flags().StringVar(&flagBaseline, "baseline", "", "baseline file (default <path>/"+report.BaselineFile+")")
}

// engineConfig builds the scan configuration shared by scan, redact and
// baseline update.
func engineConfig(cmd *cobra.Command, s *settings) (engine.Config, error) {
	f, err := s.filter()
	if err != nil {
		return engine.Config{}, err
	}
	defaultExcludes := flagDefaultExcludes
	if !cmd.Flags().Changed("default-excludes") {
		if s.local.DefaultExcludes != nil {
			defaultExcludes = *s.local.DefaultExcludes
		} else if s.global.DefaultExcludes != nil {
			defaultExcludes = *s.global.DefaultExcludes
		}
	}
	return engine.Config{
		Root:            s.root,
		Filter:          f,
		Policy:          s.policy,
		DictionaryID:    s.id,
		Encoding:        s.encoding,
		IncludeGlobs:    pickString(flagInclude, s.local.Include, s.global.Include),
		ExcludeGlobs:    pickString(flagExclude, s.local.Exclude, s.global.Exclude),
		MaxBytes:        pickInt64(flagMaxBytes, s.local.MaxBytes, s.global.MaxBytes),
		Threads:         pickInt(flagThreads, s.local.Threads, s.global.Threads),
		DryRun:          flagDryRun,
		DefaultExcludes: defaultExcludes,
		NoCache:         flagNoCache,
		ScanStaged:      flagStaged,
		HistoryCommits:  flagHistory,
	}, nil
}

func baselinePath(root string) string {
	if flagBaseline != "" {
		return flagBaseline
	}
	return filepath.Join(root, report.BaselineFile)
}

func runScan(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd, flagPath)
	if err != nil {
		return err
	}
	cfg, err := engineConfig(cmd, s)
	if err != nil {
		return err
	}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	structured := flagJSON || flagSARIF
	if flagTUI && !isTerminal(cmd) {
		return fmt.Errorf("--tui needs an interactive terminal")
	}

	if !structured {
		_, _ = fmt.Fprintf(errOut, "Scanning %s with %d words (%s match)...\n", cfg.Root, cfg.Filter.Words(), cfg.Policy)
	}

	total := 0
	if !cfg.ScanStaged && cfg.HistoryCommits == 0 {
		total, _ = engine.CountTargets(cfg)
	}
	progressed := 0
	if total > 0 && !structured {
		cfg.Progress = func() {
			progressed++
			if progressed%10 == 0 || progressed == total {
				pct := float64(progressed) / float64(total) * 100
				_, _ = fmt.Fprintf(errOut, "\r[%d/%d] %.0f%%", progressed, total, pct)
			}
		}
	}
	res, err := engine.ScanWithStats(cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	if progressed > 0 {
		_, _ = fmt.Fprintln(errOut)
	}

	baseline, _ := report.LoadBaseline(baselinePath(cfg.Root))
	newFindings := report.FilterNewFindings(res.Findings, baseline)
	if newFindings == nil {
		newFindings = []types.Finding{}
	} // no `null` in JSON

	if flagAudit {
		rec := audit.ScanRecord(cfg.Root, cfg.Policy.String(), cfg.DictionaryID, res.Findings, newFindings, res.FilesScanned, res.Duration)
		if err := audit.New(cfg.Root).Append(rec); err != nil {
			_, _ = fmt.Fprintln(errOut, "audit warning:", err)
		}
	}

	if flagTUI {
		return browse(s, cfg, res.Findings, baseline)
	}

	opts := report.PrintOptions{
		NoColor:      s.noColor,
		Duration:     res.Duration,
		FilesScanned: res.FilesScanned,
		FilesCached:  res.FilesCached,
	}
	switch {
	case flagSARIF:
		if err := report.WriteSARIF(out, newFindings, version); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		if err := core.WriteFindings(out, newFindings, !s.noColor); err != nil {
			return err
		}
	case flagText:
		report.PrintText(out, newFindings, opts)
	default:
		report.PrintTable(out, newFindings, opts)
	}

	if flagFail && len(newFindings) > 0 {
		return exitCode(1)
	}
	return nil
}

// browse opens the interactive browser over all findings; baselined ones are
// marked rather than hidden.
func browse(s *settings, cfg engine.Config, findings []types.Finding, baseline report.Baseline) error {
	cfg.Progress = nil
	opts := tui.Options{
		Root:         cfg.Root,
		Baseline:     baseline,
		BaselinePath: baselinePath(cfg.Root),
		Rescan: func() ([]types.Finding, error) {
			return engine.Scan(cfg)
		},
		Redact: func(path string) (bool, error) {
			return redact.Apply(filepath.Join(cfg.Root, filepath.FromSlash(path)), cfg.Filter, redact.Options{
				Policy:   s.policy,
				Mask:     s.mask,
				Encoding: s.encoding,
			})
		},
	}
	if err := tui.Run(findings, opts); err != nil {
		return err
	}
	if flagFail && len(report.FilterNewFindings(findings, baseline)) > 0 {
		return exitCode(1)
	}
	return nil
}

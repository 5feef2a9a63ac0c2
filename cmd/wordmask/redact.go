package wordmask

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wordmask/wordmask/internal/audit"
	"github.com/wordmask/wordmask/internal/engine"
	"github.com/wordmask/wordmask/internal/redact"
	"github.com/wordmask/wordmask/internal/types"
)

func init() {
	cmd := &cobra.Command{
		Use:   "redact [file...]",
		Short: "Mask dictionary words in files in place",
		Long:  "Without arguments, redact scans --path and rewrites every file with findings. With arguments, only the named files are rewritten.",
		RunE:  runRedact,
		Example: `
wordmask redact --dry-run -p docs
wordmask redact --mask "#" notes.txt`,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan when no files are given")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (0 = 1 MiB)")
	cmd.Flags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, dist, images, etc.)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "report files that would change without writing them")
	cmd.Flags().BoolVar(&flagAudit, "audit", false, "append a record of changed files to the audit log")
}

func runRedact(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd, flagPath)
	if err != nil {
		return err
	}
	f, err := s.filter()
	if err != nil {
		return err
	}

	targets := args
	var findings []types.Finding
	if len(targets) == 0 {
		cfg, err := engineConfig(cmd, s)
		if err != nil {
			return err
		}
		// the scan itself must run even for a dry run; only writing is skipped
		cfg.DryRun = false
		findings, err = engine.Scan(cfg)
		if err != nil {
			return fmt.Errorf("scan error: %w", err)
		}
		seen := map[string]bool{}
		for _, fd := range findings {
			if !seen[fd.Path] {
				seen[fd.Path] = true
				targets = append(targets, filepath.Join(s.root, filepath.FromSlash(fd.Path)))
			}
		}
	}

	opts := redact.Options{Policy: s.policy, Mask: s.mask, Encoding: s.encoding}
	out := cmd.OutOrStdout()
	var changed []string
	for _, p := range targets {
		var ok bool
		if flagDryRun {
			ok, err = redact.WouldChange(p, f, opts)
		} else {
			ok, err = redact.Apply(p, f, opts)
		}
		if err != nil {
			return fmt.Errorf("redact %s: %w", p, err)
		}
		if !ok {
			continue
		}
		changed = append(changed, p)
		if flagDryRun {
			_, _ = fmt.Fprintln(out, "would mask", p)
		} else {
			_, _ = fmt.Fprintln(out, "masked", p)
		}
	}
	verb := "changed"
	if flagDryRun {
		verb = "would change"
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%d file(s) %s\n", len(changed), verb)

	if flagAudit && !flagDryRun {
		rec := audit.RedactRecord(s.root, s.policy.String(), s.id, findings, changed)
		if err := audit.New(s.root).Append(rec); err != nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "audit warning:", err)
		}
	}
	return nil
}

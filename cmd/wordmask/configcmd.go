package wordmask

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/wordmask/wordmask/internal/config"
	"github.com/wordmask/wordmask/internal/ignore"
	"github.com/wordmask/wordmask/internal/types"
	"gopkg.in/yaml.v3"
)

var (
	cfgOutput          string
	cfgDictionary      string
	cfgEncoding        string
	cfgPolicy          string
	cfgMask            string
	cfgThreads         int
	cfgMaxBytes        int64
	cfgNoColor         bool
	cfgDefaultExcludes bool
	cfgForce           bool
	cfgGitignore       bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .wordmask.yml with the selected options",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".wordmask.yml", "output file path")
	initCmd.Flags().StringVar(&cfgDictionary, "dictionary", "sensitive.txt", "dictionary file")
	initCmd.Flags().StringVar(&cfgEncoding, "encoding", "", "dictionary and input charset")
	initCmd.Flags().StringVar(&cfgPolicy, "policy", "shortest", "match policy: shortest|longest")
	initCmd.Flags().StringVar(&cfgMask, "mask", "*", "mask character")
	initCmd.Flags().IntVar(&cfgThreads, "threads", 0, "worker threads (0=GOMAXPROCS)")
	initCmd.Flags().Int64Var(&cfgMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgDefaultExcludes, "default-excludes", true, "enable default ignore patterns")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
	initCmd.Flags().BoolVar(&cfgGitignore, "gitignore", false, "add wordmask's cache and audit files to .gitignore next to the output")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	policy, err := types.ParsePolicy(cfgPolicy)
	if err != nil {
		return err
	}
	fc := config.FileConfig{
		Dictionary:      optStrPtr(cfgDictionary),
		Encoding:        optStrPtr(cfgEncoding),
		Policy:          strPtr(policy.String()),
		Mask:            optStrPtr(cfgMask),
		MaxBytes:        int64Ptr(cfgMaxBytes),
		Threads:         intPtr(cfgThreads),
		NoColor:         boolPtr(cfgNoColor),
		DefaultExcludes: boolPtr(cfgDefaultExcludes),
	}
	if fc.Mask != nil && utf8.RuneCountInString(*fc.Mask) != 1 {
		return fmt.Errorf("mask must be a single character, got %q", cfgMask)
	}

	if _, err := os.Stat(cfgOutput); err == nil && !cfgForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgOutput)
	}
	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	if cfgGitignore {
		added, err := ignore.AppendGitignore(filepath.Dir(cfgOutput), ignore.StateFiles...)
		if err != nil {
			return err
		}
		for _, p := range added {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Ignored", p)
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool     { return &v }

package wordmask

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wordmask/wordmask/internal/logger"
)

var (
	flagJSON       bool
	flagSARIF      bool
	flagThreads    int
	flagNoColor    bool
	flagVerbose    int
	flagDictionary string
	flagEncoding   string
	flagPolicy     string
	flagMask       string

	version = "0.1.0"
)

// exitCode ends the process with a specific status without printing an error.
type exitCode int

func (c exitCode) Error() string { return fmt.Sprintf("exit status %d", int(c)) }

// rootCmd is the base Cobra command for the wordmask CLI.
var rootCmd = &cobra.Command{
	Use:           "wordmask",
	Short:         "Find and mask sensitive words",
	Long:          "wordmask matches text against a dictionary of sensitive words, reports the hits and masks them character by character.",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		setupLogging(cmd)
	},
}

// Execute runs the wordmask CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var code exitCode
		if errors.As(err, &code) {
			os.Exit(int(code))
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func setupLogging(cmd *cobra.Command) {
	logger.Configure(cmd.ErrOrStderr(), flagVerbose)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "log progress to stderr (-vv for debug)")
	rootCmd.PersistentFlags().StringVarP(&flagDictionary, "dictionary", "d", "", "dictionary file (default $WORDMASK_DICTIONARY or sensitive.txt)")
	rootCmd.PersistentFlags().StringVar(&flagEncoding, "encoding", "", "dictionary and input charset: utf-8|gbk|gb18030|big5|utf-16le|utf-16be|auto")
	rootCmd.PersistentFlags().StringVar(&flagPolicy, "policy", "", "match policy: shortest|longest (default shortest)")
	rootCmd.PersistentFlags().StringVar(&flagMask, "mask", "", "mask character (default *)")
}

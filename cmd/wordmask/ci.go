package wordmask

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const githubWorkflow = `name: wordmask
on: [push, pull_request]
jobs:
  scan:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-go@v5
        with:
          go-version: '1.25'
      - run: go install github.com/wordmask/wordmask@latest
      - run: wordmask scan --sarif --fail > wordmask.sarif
      - uses: github/codeql-action/upload-sarif@v3
        if: always()
        with:
          sarif_file: wordmask.sarif
`

const gitlabPipeline = `stages: [scan]
wordmask:
  stage: scan
  image: golang:1.25
  script:
    - go install github.com/wordmask/wordmask@latest
    - wordmask scan --json --fail | tee wordmask-findings.json
  artifacts:
    when: always
    paths:
      - wordmask-findings.json
`

const bitbucketPipeline = `pipelines:
  default:
    - step:
        name: wordmask
        image: golang:1.25
        script:
          - go install github.com/wordmask/wordmask@latest
          - wordmask scan --json --fail | tee wordmask-findings.json
        artifacts:
          - wordmask-findings.json
`

// ciTemplates maps a provider to its pipeline path and content.
var ciTemplates = map[string]struct{ path, content string }{
	"github":    {".github/workflows/wordmask.yml", githubWorkflow},
	"gitlab":    {".gitlab-ci.yml", gitlabPipeline},
	"bitbucket": {"bitbucket-pipelines.yml", bitbucketPipeline},
}

var (
	ciProvider string
	ciForce    bool
)

func init() {
	ci := &cobra.Command{Use: "ci", Short: "CI pipeline helpers"}
	rootCmd.AddCommand(ci)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a pipeline that fails the build on dictionary hits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tpl, ok := ciTemplates[ciProvider]
			if !ok {
				return fmt.Errorf("unknown --provider %q (want github|gitlab|bitbucket)", ciProvider)
			}
			path := filepath.Join(flagPath, tpl.path)
			if _, err := os.Stat(path); err == nil && !ciForce {
				return fmt.Errorf("%s exists (use --force to overwrite)", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(tpl.content), 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&ciProvider, "provider", "github", "CI provider: github|gitlab|bitbucket")
	initCmd.Flags().StringVarP(&flagPath, "path", "p", ".", "repository root to write the pipeline into")
	initCmd.Flags().BoolVar(&ciForce, "force", false, "overwrite an existing pipeline file")
	ci.AddCommand(initCmd)
}

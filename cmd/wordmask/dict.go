package wordmask

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wordmask/wordmask/internal/report"
)

type dictStats struct {
	Path        string `json:"path"`
	Encoding    string `json:"encoding,omitempty"`
	Words       int    `json:"words"`
	Roots       int    `json:"roots"`
	Nodes       int    `json:"nodes"`
	Fingerprint string `json:"fingerprint"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Compile the dictionary and print its statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := resolveSettings(cmd, ".")
			if err != nil {
				return err
			}
			f, err := s.filter()
			if err != nil {
				return err
			}
			st := dictStats{
				Path:        s.dictionary,
				Encoding:    s.encoding,
				Words:       f.Words(),
				Roots:       f.Roots(),
				Nodes:       f.Nodes(),
				Fingerprint: s.id,
			}
			out := cmd.OutOrStdout()
			if flagJSON {
				return report.WriteJSON(out, st, !s.noColor)
			}
			_, _ = fmt.Fprintf(out, "Dictionary:  %s\n", st.Path)
			if st.Encoding != "" {
				_, _ = fmt.Fprintf(out, "Encoding:    %s\n", st.Encoding)
			}
			_, _ = fmt.Fprintf(out, "Words:       %d\n", st.Words)
			_, _ = fmt.Fprintf(out, "Roots:       %d\n", st.Roots)
			_, _ = fmt.Fprintf(out, "Nodes:       %d\n", st.Nodes)
			_, _ = fmt.Fprintf(out, "Fingerprint: %s\n", st.Fingerprint)
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}

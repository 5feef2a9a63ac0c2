package report

import (
	"encoding/json"
	"os"

	"github.com/wordmask/wordmask/internal/types"
)

// BaselineFile is the default baseline location relative to the scan root.
const BaselineFile = "wordmask.baseline.json"

type Baseline struct {
	Items map[string]bool `json:"items"`
}

func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	f, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(f, &b); err != nil {
		return Baseline{Items: map[string]bool{}}, err
	}
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

func SaveBaseline(path string, findings []types.Finding) error {
	b := Baseline{Items: map[string]bool{}}
	for _, f := range findings {
		b.Add(f)
	}
	return b.Save(path)
}

// Has reports whether f is accepted by the baseline.
func (b Baseline) Has(f types.Finding) bool { return b.Items[key(f)] }

// Add accepts f. b must come from LoadBaseline or have a non-nil Items map.
func (b Baseline) Add(f types.Finding) { b.Items[key(f)] = true }

func (b Baseline) Save(path string) error {
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// FilterNewFindings drops findings already accepted in base. Lines are not
// part of the key so edits elsewhere in a file do not resurface them.
func FilterNewFindings(findings []types.Finding, base Baseline) []types.Finding {
	var out []types.Finding
	for _, f := range findings {
		if !base.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func key(f types.Finding) string {
	return f.Path + "|" + f.Match
}

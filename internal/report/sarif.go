package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/wordmask/wordmask/internal/types"
)

// RuleID is the single SARIF rule every finding reports under.
const RuleID = "sensitive-word"

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

// WriteSARIF writes findings as SARIF 2.1.0 to the provided writer.
func WriteSARIF(w io.Writer, findings []types.Finding, version string) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:    "wordmask",
			Version: version,
			Rules:   []sarifRule{{ID: RuleID, ShortDescription: sarifMessage{Text: "Dictionary word found in text"}}},
		}},
		Results: []sarifResult{},
	}
	for _, f := range findings {
		run.Results = append(run.Results, sarifResult{
			RuleID:  RuleID,
			Level:   "warning",
			Message: sarifMessage{Text: fmt.Sprintf("sensitive word %q (%s match)", f.Match, f.Policy)},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: f.Path},
					Region:           sarifRegion{StartLine: f.Line, StartColumn: f.Column},
				},
			}},
		})
	}
	doc := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

package core

import (
	"io"

	"github.com/wordmask/wordmask/internal/report"
)

// WriteFindings writes findings as an indented JSON array, [] when empty.
// color adds ANSI syntax colouring for terminals.
func WriteFindings(w io.Writer, findings []Finding, color bool) error {
	if findings == nil {
		findings = []Finding{}
	}
	return report.WriteJSON(w, findings, color)
}

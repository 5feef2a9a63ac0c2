// Package tui is an interactive browser for scan findings.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wordmask/wordmask/internal/types"
)

// Run blocks until the user quits the browser.
func Run(findings []types.Finding, opts Options) error {
	m := NewModel(findings, opts)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

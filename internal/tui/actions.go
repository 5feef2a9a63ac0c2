package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) rescan() tea.Cmd {
	if m.opts.Rescan == nil {
		m.status = "Rescan not available"
		return nil
	}
	m.scanning = true
	rescan := m.opts.Rescan
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		fs, err := rescan()
		if err != nil {
			return statusMsg(fmt.Sprintf("Scan error: %v", err))
		}
		return findingsMsg(fs)
	})
}

// addToBaseline accepts the selected finding and persists the baseline.
func (m *Model) addToBaseline() tea.Cmd {
	f := m.selected()
	if f == nil {
		return nil
	}
	if m.opts.Baseline.Has(*f) {
		m.status = "Already baselined"
		return nil
	}
	m.opts.Baseline.Add(*f)
	if m.opts.BaselinePath != "" {
		if err := m.opts.Baseline.Save(m.opts.BaselinePath); err != nil {
			m.status = fmt.Sprintf("Baseline not saved: %v", err)
			return nil
		}
	}
	cursor := m.table.Cursor()
	m.applyFilter()
	m.table.SetCursor(cursor)
	m.status = fmt.Sprintf("Baselined %s in %s", f.Match, f.Path)
	return nil
}

// maskFile rewrites the selected finding's file and rescans.
func (m *Model) maskFile() tea.Cmd {
	f := m.selected()
	if f == nil {
		return nil
	}
	if m.opts.Redact == nil {
		m.status = "Masking not available"
		return nil
	}
	if f.Commit != "" {
		m.status = "Historical findings cannot be masked in place"
		return nil
	}
	changed, err := m.opts.Redact(f.Path)
	switch {
	case err != nil:
		m.status = fmt.Sprintf("Mask failed: %v", err)
		return nil
	case !changed:
		m.status = "Nothing to mask in " + f.Path
		return nil
	}
	m.status = "Masked " + f.Path
	return m.rescan()
}

func (m *Model) copyLocation() tea.Cmd {
	f := m.selected()
	if f == nil {
		return nil
	}
	loc := fmt.Sprintf("%s:%d:%d", f.Path, f.Line, f.Column)
	if err := clipboard.WriteAll(loc); err != nil {
		m.status = fmt.Sprintf("Copy failed: %v", err)
		return nil
	}
	m.status = "Copied " + loc
	return nil
}

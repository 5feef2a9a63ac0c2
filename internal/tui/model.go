package tui

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wordmask/wordmask/internal/report"
	"github.com/wordmask/wordmask/internal/types"
)

var (
	paneBorderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(1, 4)
)

const defaultStatus = "q: quit | j/k: navigate | /: search | r: rescan | b: baseline | m: mask file | c: copy | +/-: context"

// Options wire the browser to the rest of the tool. Rescan and Redact may be
// nil, which disables the corresponding keys.
type Options struct {
	Root         string
	Baseline     report.Baseline
	BaselinePath string
	Rescan       func() ([]types.Finding, error)
	// Redact masks the file at the given root-relative path in place.
	Redact func(path string) (bool, error)
}

// Model is the findings browser state.
type Model struct {
	table    table.Model
	viewport viewport.Model
	spinner  spinner.Model
	search   textinput.Model
	opts     Options

	findings []types.Finding
	visible  []int // indices into findings that pass the filter
	query    string

	searching    bool
	scanning     bool
	ready        bool
	quitting     bool
	contextLines int
	width        int
	height       int
	status       string
}

type findingsMsg []types.Finding

type statusMsg string

// NewModel builds the browser over findings.
func NewModel(findings []types.Finding, opts Options) Model {
	if opts.Baseline.Items == nil {
		opts.Baseline = report.Baseline{Items: map[string]bool{}}
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Path", Width: 40},
			{Title: "Line", Width: 6},
			{Title: "Col", Width: 5},
			{Title: "Word", Width: 20},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1)
	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true)
	s.Cell = lipgloss.NewStyle().Padding(0, 1)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	ti := textinput.New()
	ti.Placeholder = "path or word..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "

	m := Model{
		table:        t,
		spinner:      sp,
		search:       ti,
		opts:         opts,
		findings:     findings,
		contextLines: 3,
		status:       defaultStatus,
	}
	m.applyFilter()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// applyFilter recomputes the visible rows from the current query.
func (m *Model) applyFilter() {
	q := strings.ToLower(m.query)
	m.visible = m.visible[:0]
	for i, f := range m.findings {
		if q == "" || strings.Contains(strings.ToLower(f.Path), q) || strings.Contains(f.Match, m.query) {
			m.visible = append(m.visible, i)
		}
	}
	rows := make([]table.Row, len(m.visible))
	for i, idx := range m.visible {
		f := m.findings[idx]
		path := f.Path
		if m.opts.Baseline.Has(f) {
			path = "(b) " + path
		}
		rows[i] = table.Row{path, strconv.Itoa(f.Line), strconv.Itoa(f.Column), f.Match}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
	m.updateDetail()
}

// selected returns the finding under the cursor, or nil.
func (m Model) selected() *types.Finding {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.visible) {
		return nil
	}
	f := m.findings[m.visible[c]]
	return &f
}

func (m *Model) updateDetail() {
	f := m.selected()
	if f == nil {
		m.viewport.SetContent("")
		return
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Finding") + "\n\n")
	if m.opts.Baseline.Has(*f) {
		b.WriteString(dimStyle.Italic(true).Render("BASELINED: accepted in "+filepath.Base(m.opts.BaselinePath)) + "\n\n")
	}
	fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("Path:"), f.Path)
	if f.Commit != "" {
		fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("Commit:"), f.Commit)
	}
	fmt.Fprintf(&b, "%s %d\n", keyStyle.Render("Line:"), f.Line)
	fmt.Fprintf(&b, "%s %d\n", keyStyle.Render("Column:"), f.Column)
	fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("Word:"), matchStyle.Render(f.Match))
	fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("Policy:"), f.Policy)

	if f.Commit != "" {
		b.WriteString("\n" + dimStyle.Render("(historical finding; working tree context not shown)") + "\n")
		m.viewport.SetContent(b.String())
		return
	}
	hint := fmt.Sprintf(" (+/- to expand/contract, showing %d lines)", m.contextLines*2+1)
	b.WriteString("\n" + keyStyle.Render("Context:") + dimStyle.Render(hint) + "\n")
	lines, start, err := readFileContext(filepath.Join(m.opts.Root, filepath.FromSlash(f.Path)), f.Line, m.contextLines)
	if err != nil {
		b.WriteString(dimStyle.Render(err.Error()) + "\n")
	}
	current := lipgloss.NewStyle().Background(lipgloss.Color("236"))
	for i, line := range lines {
		n := start + i
		num := dimStyle.Render(fmt.Sprintf("%4d ", n))
		if n == f.Line {
			// the word is emphasised on the raw line so lexer tokens cannot split it
			b.WriteString(num + current.Render(strings.ReplaceAll(line, f.Match, matchStyle.Render(f.Match))) + "\n")
			continue
		}
		b.WriteString(num + highlightLine(line, f.Path) + "\n")
	}
	m.viewport.SetContent(b.String())
}

func readFileContext(path string, target, context int) ([]string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	start := target - context
	if start < 1 {
		start = 1
	}
	end := target + context
	var lines []string
	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
		if n > end {
			break
		}
		if n >= start {
			lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
		}
	}
	return lines, start, sc.Err()
}

// highlightLine applies syntax colouring for the file type, or returns the
// line unchanged when no lexer matches.
func highlightLine(line, filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		if ext := filepath.Ext(filename); ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer == nil {
		return line
	}
	lexer = chroma.Coalesce(lexer)
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return line
	}
	it, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, it); err != nil {
		return line
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func (m *Model) resize() {
	tableHeight := m.height/2 - 4
	if tableHeight < 3 {
		tableHeight = 3
	}
	m.table.SetHeight(tableHeight)
	pathWidth := m.width - 6 - 5 - 20 - 12
	if pathWidth < 20 {
		pathWidth = 20
	}
	m.table.SetColumns([]table.Column{
		{Title: "Path", Width: pathWidth},
		{Title: "Line", Width: 6},
		{Title: "Col", Width: 5},
		{Title: "Word", Width: 20},
	})
	detailHeight := m.height - tableHeight - 8
	if detailHeight < 3 {
		detailHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(m.width-2, detailHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width - 2
		m.viewport.Height = detailHeight
	}
	m.updateDetail()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case findingsMsg:
		m.scanning = false
		m.findings = msg
		m.applyFilter()
		m.status = fmt.Sprintf("Rescanned: %d findings", len(msg))
		return m, nil

	case statusMsg:
		m.scanning = false
		m.status = string(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "/":
			m.searching = true
			m.search.SetValue(m.query)
			return m, m.search.Focus()
		case "esc":
			m.query = ""
			m.applyFilter()
			m.status = defaultStatus
			return m, nil
		case "r":
			return m, m.rescan()
		case "b":
			return m, m.addToBaseline()
		case "m":
			return m, m.maskFile()
		case "c":
			return m, m.copyLocation()
		case "+", "=":
			if m.contextLines < 20 {
				m.contextLines += 2
				m.updateDetail()
			}
			return m, nil
		case "-":
			if m.contextLines > 1 {
				m.contextLines -= 2
				if m.contextLines < 1 {
					m.contextLines = 1
				}
				m.updateDetail()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	prev := m.table.Cursor()
	m.table, cmd = m.table.Update(msg)
	if m.table.Cursor() != prev {
		m.updateDetail()
	}
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		m.query = strings.TrimSpace(m.search.Value())
		m.applyFilter()
		m.status = fmt.Sprintf("Filter %q: %d of %d", m.query, len(m.visible), len(m.findings))
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	if m.scanning {
		box := popupStyle.Width(40).Align(lipgloss.Center).Render(m.spinner.View() + "  Rescanning...")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}

	distinct := map[string]bool{}
	baselined := 0
	for _, idx := range m.visible {
		f := m.findings[idx]
		distinct[f.Match] = true
		if m.opts.Baseline.Has(f) {
			baselined++
		}
	}
	stats := fmt.Sprintf("Findings: %d/%d  |  Words: %d  |  Baselined: %d", len(m.visible), len(m.findings), len(distinct), baselined)
	if m.query != "" {
		stats += fmt.Sprintf("  [FILTER: %s]", m.query)
	}
	header := lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 2).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("237")).
		Render(stats)

	var detail string
	if len(m.visible) == 0 {
		msg := "No sensitive words found.\n\nPress 'r' to rescan"
		if len(m.findings) > 0 {
			msg = "No findings match the filter.\n\nPress 'Esc' to clear it"
		}
		detail = lipgloss.Place(m.width-2, m.viewport.Height, lipgloss.Center, lipgloss.Center, msg)
	} else {
		detail = m.viewport.View()
	}

	footer := m.status
	if m.searching {
		footer = m.search.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		paneBorderStyle.Width(m.width-2).Render(m.table.View()),
		paneBorderStyle.Width(m.width-2).Render(detail),
		statusStyle.Width(m.width).Render(footer),
	)
}

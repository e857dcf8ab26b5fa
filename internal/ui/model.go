package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vedanttarate/gesture-detection/internal/parser"
	"github.com/vedanttarate/gesture-detection/internal/payload"
	"github.com/vedanttarate/gesture-detection/internal/predict"
	"github.com/vedanttarate/gesture-detection/internal/selection"
	"github.com/vedanttarate/gesture-detection/internal/types"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type state int

const (
	statePicker state = iota
	stateTable
	stateSubmitting
	stateResults
)

// Lines rendered above the first data row in the table view. Mouse clicks
// map terminal rows to table rows through this, so the table view must keep
// its chrome exactly this tall.
const tableChromeLines = 5

const maxCellWidth = 18

type Model struct {
	state      state
	filepicker filepicker.Model
	spinner    spinner.Model
	client     *predict.Client
	endpoint   string

	selectedFile string
	table        *types.Table
	sel          *selection.State
	cursor       int
	offset       int
	loadErr      error

	sentIndices []int
	entries     []resultEntry
	warning     string
	reqErr      error

	width  int
	height int
}

type fileLoadedMsg struct {
	table *types.Table
	err   error
}

type predictionMsg struct {
	resp *predict.Response
	err  error
}

func InitialModel(endpoint string) Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".csv", ".xlsx"}
	fp.CurrentDirectory, _ = os.Getwd()

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#36C2A8"))
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FD9C8"))
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB"))
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(lipgloss.Color("#36C2A8")).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#36C2A8"))

	return Model{
		state:      statePicker,
		filepicker: fp,
		spinner:    sp,
		client:     predict.New(endpoint),
		endpoint:   endpoint,
		sel:        selection.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		height := msg.Height - 10
		if height < 5 {
			height = 5
		}
		m.filepicker.SetHeight(height)

		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case statePicker:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "esc":
				if m.table != nil {
					m.state = stateTable
					return m, nil
				}
			}

		case stateTable:
			return m.updateTable(msg)

		case stateSubmitting:
			// Submit is in flight; only allow bailing out entirely.
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case stateResults:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "enter", "esc", "b":
				m.state = stateTable
				return m, nil
			}
		}

	case tea.MouseMsg:
		if m.state == stateTable && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m.clickAt(msg.Y, msg.Shift), nil
		}

	case fileLoadedMsg:
		if msg.err != nil {
			// Report and leave any previously loaded table alone.
			m.loadErr = msg.err
			return m, nil
		}
		m.table = msg.table
		m.sel = selection.New()
		m.cursor = 0
		m.offset = 0
		m.loadErr = nil
		m.state = stateTable
		return m, nil

	case predictionMsg:
		m.state = stateResults
		m.reqErr = msg.err
		m.entries = nil
		m.warning = ""
		if msg.err == nil {
			m.entries, m.warning = buildResultEntries(m.sentIndices, msg.resp.Results)
		}
		return m, nil

	case spinner.TickMsg:
		if m.state == stateSubmitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.state == statePicker {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			return m, m.loadFile(path)
		}

		return m, cmd
	}

	return m, nil
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.table.Rows)-1 {
			m.cursor++
		}
	case " ":
		if !m.table.Empty() {
			m.sel.Click(m.cursor)
		}
	case "v":
		if !m.table.Empty() {
			m.sel.ShiftClick(m.cursor)
		}
	case "m":
		m.sel.SetAllowMulti(!m.sel.AllowMulti())
	case "c":
		m.sel.Clear()
	case "o":
		m.state = statePicker
		return m, m.filepicker.Init()
	case "enter":
		// Submit enabled only while something is selected.
		if m.sel.Count() > 0 {
			return m.submit()
		}
	}

	m.scrollToCursor()
	return m, nil
}

// clickAt maps a terminal row to a table row and applies click or
// shift-click selection semantics.
func (m Model) clickAt(y int, shift bool) Model {
	row := m.offset + y - tableChromeLines
	if row < 0 || row >= len(m.table.Rows) {
		return m
	}
	if shift {
		m.sel.ShiftClick(row)
	} else {
		m.sel.Click(row)
	}
	m.cursor = row
	return m
}

func (m *Model) scrollToCursor() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m Model) visibleRows() int {
	// Chrome above, plus status and help below.
	v := m.height - tableChromeLines - 3
	if v < 1 {
		v = 1
	}
	return v
}

func (m Model) loadFile(path string) tea.Cmd {
	return func() tea.Msg {
		table, err := parser.ReadFile(path)
		return fileLoadedMsg{table: table, err: err}
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.state = stateSubmitting
	m.sentIndices = m.sel.Indices()

	rows := payload.Build(m.table, m.sentIndices)
	client := m.client

	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			resp, err := client.Predict(rows)
			return predictionMsg{resp: resp, err: err}
		},
	)
}

func (m Model) View() string {
	switch m.state {
	case statePicker:
		return m.viewPicker()
	case stateTable:
		return m.viewTable()
	case stateSubmitting:
		return m.viewSubmitting()
	case stateResults:
		return m.viewResults()
	}
	return ""
}

func (m Model) viewPicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Gesture Detection - CSV Prediction Client"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Select a CSV or XLSX file with feature rows"))
	s.WriteString("\n")
	if m.loadErr != nil {
		s.WriteString(ErrorStyle.Render("Failed to load file: " + m.loadErr.Error()))
		s.WriteString("\n")
	}
	s.WriteString("\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n")
	if m.table != nil {
		s.WriteString(HelpStyle.Render("esc: back to table • q: quit"))
	} else {
		s.WriteString(HelpStyle.Render("Press q to quit"))
	}

	return s.String()
}

func (m Model) viewTable() string {
	var s strings.Builder

	mode := "single-select"
	if m.sel.AllowMulti() {
		mode = "multi-select"
	}

	s.WriteString(TitleStyle.Render("Gesture Detection - Select Rows"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("File: %s  [%s]", filepath.Base(m.selectedFile), mode)))
	s.WriteString("\n\n")

	widths := m.columnWidths()
	idxWidth := len(fmt.Sprint(len(m.table.Rows)))
	if idxWidth < 1 {
		idxWidth = 1
	}

	header := fmt.Sprintf("  %3s %*s", "", idxWidth, "#")
	for c, h := range m.table.Headers {
		header += fmt.Sprintf("  %-*s", widths[c], truncate(h, widths[c]))
	}
	s.WriteString(HeaderRowStyle.Render(header))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(strings.Repeat("-", lipgloss.Width(header))))
	s.WriteString("\n")

	if m.table.Empty() {
		s.WriteString(SubtitleStyle.Render("(no rows)"))
		s.WriteString("\n")
	} else {
		end := m.offset + m.visibleRows()
		if end > len(m.table.Rows) {
			end = len(m.table.Rows)
		}
		for i := m.offset; i < end; i++ {
			cursor := " "
			if m.cursor == i {
				cursor = ">"
			}
			checked := " "
			if m.sel.IsSelected(i) {
				checked = "x"
			}

			line := fmt.Sprintf("%s [%s] %*d", cursor, checked, idxWidth, i+1)
			for c := range m.table.Headers {
				line += fmt.Sprintf("  %-*s", widths[c], truncate(m.table.Cell(i, c), widths[c]))
			}

			switch {
			case m.cursor == i:
				line = CursorStyle.Render(line)
			case m.sel.IsSelected(i):
				line = CheckedStyle.Render(line)
			default:
				line = UnselectedStyle.Render(line)
			}
			s.WriteString(line)
			s.WriteString("\n")
		}
	}

	if !m.table.Empty() {
		s.WriteString(StatusStyle.Render(statusLine(len(m.table.Rows), m.sel.Indices())))
		s.WriteString("\n")
	}
	s.WriteString(HelpStyle.Render("up/down: move • space: toggle • v: range • m: mode • c: clear • enter: send • o: open file • q: quit"))

	return s.String()
}

func (m Model) viewSubmitting() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Sending..."))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s Predicting %d row(s) via %s", m.spinner.View(), len(m.sentIndices), m.endpoint))
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Waiting for the prediction service"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewResults() string {
	var s strings.Builder

	if m.reqErr != nil {
		s.WriteString(ErrorStyle.Render("Prediction failed"))
		s.WriteString("\n\n")
		s.WriteString(ErrorStyle.Render("Error: " + m.reqErr.Error()))
	} else {
		s.WriteString(SuccessStyle.Render("Predictions"))
		s.WriteString("\n\n")
		for _, e := range m.entries {
			s.WriteString(fmt.Sprintf("Row %d: %s\n", e.RowNumber, e.Text))
		}
		if m.warning != "" {
			if len(m.entries) > 0 {
				s.WriteString("\n")
			}
			s.WriteString(WarningStyle.Render(m.warning))
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("enter/esc: back to table • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) columnWidths() []int {
	widths := make([]int, len(m.table.Headers))
	for c, h := range m.table.Headers {
		widths[c] = len(h)
	}
	for _, row := range m.table.Rows {
		for c := range widths {
			if c < len(row) && len(row[c]) > widths[c] {
				widths[c] = len(row[c])
			}
		}
	}
	for c := range widths {
		if widths[c] > maxCellWidth {
			widths[c] = maxCellWidth
		}
	}
	return widths
}

func truncate(s string, w int) string {
	if len(s) <= w {
		return s
	}
	if w <= 3 {
		return s[:w]
	}
	return s[:w-3] + "..."
}

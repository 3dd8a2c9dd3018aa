package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rhythm/internal/catalog"
)

// PickerModel lists the charts of a catalog.
type PickerModel struct {
	items    []catalog.Item
	loadErr  error
	table    table.Model
	help     help.Model
	keys     PickerKeyMap
	width    int
	height   int
	quitting bool
	selected *catalog.Item
}

// NewPickerModel creates a picker over the catalog items.
func NewPickerModel(items []catalog.Item, loadErr error, width, height int) PickerModel {
	m := PickerModel{
		items:   items,
		loadErr: loadErr,
		help:    help.New(),
		keys:    DefaultPickerKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	return m
}

// createTable builds the chart table for the current size.
func (m *PickerModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Chart", Width: 24},
		{Title: "Artist", Width: 16},
		{Title: "Source", Width: 8},
		{Title: "Notes", Width: 6},
		{Title: "Length", Width: 7},
	}

	height := m.height - 8
	if height < 5 {
		height = 10
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	rows := make([]table.Row, len(m.items))
	for i, it := range m.items {
		rows[i] = table.Row{
			it.Title,
			it.Artist,
			string(it.Kind),
			fmt.Sprintf("%d", it.Notes),
			formatDuration(it.DurationMs),
		}
	}
	t.SetRows(rows)
	return t
}

// Init initializes the picker.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			if c := m.table.Cursor(); c >= 0 && c < len(m.items) {
				item := m.items[c]
				m.selected = &item
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("CHARTS"))
	b.WriteString("\n\n")

	switch {
	case m.loadErr != nil:
		b.WriteString(errorStyle.Render(m.loadErr.Error()))
	case len(m.items) == 0:
		b.WriteString(emptyStyle.Render("No charts found.\nImport one with `rhythm import`."))
	default:
		b.WriteString(panelStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Selected returns the chosen item, or nil.
func (m PickerModel) Selected() *catalog.Item {
	return m.selected
}

// IsQuitting returns true if user wants to quit entirely.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

func formatDuration(ms int64) string {
	s := ms / 1000
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

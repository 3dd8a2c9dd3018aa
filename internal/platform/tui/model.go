package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rhythm/internal/chart"
	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/engine"
)

const sidePanelWidth = 26

// GameOptions configures a GameModel.
type GameOptions struct {
	Config config.Session
	Chart  chart.Chart
	Clock  core.Clock  // Defaults to the system clock
	Logger *log.Logger // Defaults to discarding
	Debug  bool        // Start with the debug overlay shown

	// ExitOnBack quits the program on Back instead of only flagging it.
	// Set when the model runs without a picker.
	ExitOnBack bool
}

// GameModel plays one chart in the terminal.
type GameModel struct {
	opts     GameOptions
	bindings core.Bindings
	layout   Layout
	keys     GameKeyMap
	help     help.Model
	screen   *core.Screen

	session   *engine.Session
	presenter *Presenter
	tally     *engine.Tally
	presses   map[string]int // Press sequence per key, kept across restarts

	width, height int
	debug         bool
	finished      bool
	quitting      bool
	backToMenu    bool
}

// NewGameModel creates a model and starts its session clock.
func NewGameModel(opts GameOptions) GameModel {
	if opts.Clock == nil {
		opts.Clock = core.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	layout := NewLayout(opts.Config)
	m := GameModel{
		opts:     opts,
		bindings: opts.Config.KeyBindings(),
		layout:   layout,
		keys:     DefaultGameKeyMap(),
		help:     help.New(),
		screen:   core.NewScreen(layout.Width()+sidePanelWidth, layout.Height()),
		presses:  make(map[string]int),
		debug:    opts.Debug,
	}
	m.start()
	return m
}

// start begins a fresh session of the chart.
func (m *GameModel) start() {
	m.presenter = NewPresenter()
	m.tally = engine.NewTally(m.opts.Config.Tiers)
	m.finished = false
	m.session = engine.NewSession(m.opts.Chart.Notes, engine.Options{
		LookaheadMs: m.opts.Config.LookaheadMs,
		Tiers:       m.opts.Config.Tiers,
		Bindings:    m.bindings,
		Clock:       m.opts.Clock,
		Presenter:   m.presenter,
		Sink:        m.tally,
		Logger:      m.opts.Logger,
	})
	m.opts.Logger.Info("chart started", "chart", m.opts.Chart.ID, "notes", len(m.opts.Chart.Notes))
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.opts.Config.Display.TickInterval())
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case releaseMsg:
		if m.presses[msg.key] == msg.seq {
			m.session.KeyUp(msg.key)
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	id := KeyID(msg)
	if _, bound := m.bindings.Lane(id); bound && !m.finished {
		m.session.KeyDown(id)
		m.presses[id]++
		return m, releaseCmd(id, m.presses[id], m.opts.Config.Display.Highlight())
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		if m.opts.ExitOnBack {
			return m, tea.Quit
		}
	case key.Matches(msg, m.keys.Debug):
		m.debug = !m.debug
	case key.Matches(msg, m.keys.Restart):
		wasFinished := m.finished
		m.start()
		if wasFinished {
			return m, tickCmd(m.opts.Config.Display.TickInterval())
		}
	}
	return m, nil
}

// handleTick advances the session. The loop stops once the chart is done.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.finished {
		return m, nil
	}
	m.session.Tick()
	if m.session.Done() {
		m.finished = true
		m.opts.Logger.Info("chart finished",
			"chart", m.opts.Chart.ID,
			"max_combo", m.tally.MaxCombo(),
			"misses", m.tally.Count(core.MissLabel),
			"mean_ms", fmt.Sprintf("%.1f", m.tally.Mean()),
		)
		return m, nil
	}
	return m, tickCmd(m.opts.Config.Display.TickInterval())
}

// View renders the playfield or the results screen.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := m.opts.Chart.Name
	if m.opts.Chart.Artist != "" {
		title += " - " + m.opts.Chart.Artist
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if m.finished {
		b.WriteString(m.resultsView())
	} else {
		m.drawFrame()
		b.WriteString(RenderScreen(m.screen))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	if m.width == 0 || m.height == 0 {
		return b.String()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// drawFrame draws the current session state into the screen buffer.
func (m GameModel) drawFrame() {
	m.screen.Clear()
	DrawPlayfield(m.screen, m.layout, m.session, m.bindings)
	m.presenter.Draw(m.screen, m.layout)
	panelX := m.layout.Width() + 2
	DrawSidePanel(m.screen, panelX, m.tally, m.session.Tiers())
	if m.debug {
		DrawDebug(m.screen, panelX, len(m.tally.Rows())+7, m.session)
	}
}

// resultsView renders the final tally.
func (m GameModel) resultsView() string {
	var b strings.Builder
	tiers := m.session.Tiers()
	for _, row := range m.tally.Rows() {
		style := colorStyles[labelColor(row.Label, tiers)]
		b.WriteString(style.Render(fmt.Sprintf("%-10s %5d", row.Label, row.Count)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("max combo  %5d\n", m.tally.MaxCombo()))
	b.WriteString(fmt.Sprintf("mean       %+6.1fms\n", m.tally.Mean()))
	b.WriteString(fmt.Sprintf("deviation  %6.1fms\n", m.tally.StdDev()))
	return panelStyle.Render(b.String())
}

// Session returns the running session.
func (m GameModel) Session() *engine.Session {
	return m.session
}

// Tally returns the verdict counts of the running session.
func (m GameModel) Tally() *engine.Tally {
	return m.tally
}

// Finished reports whether the chart has been played to the end.
func (m GameModel) Finished() bool {
	return m.finished
}

// Debug reports whether the debug overlay is shown.
func (m GameModel) Debug() bool {
	return m.debug
}

// BackToMenu returns true if the user asked to return to the picker.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the user quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// Run plays a single chart until the user quits or goes back.
func Run(opts GameOptions) error {
	opts.ExitOnBack = true
	p := tea.NewProgram(NewGameModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

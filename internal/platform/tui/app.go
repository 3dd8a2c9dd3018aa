package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rhythm/internal/catalog"
	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/core"
)

// AppOptions configures an AppModel.
type AppOptions struct {
	Config  config.Session
	Catalog *catalog.Catalog
	Clock   core.Clock
	Logger  *log.Logger
	Debug   bool
}

// AppModel manages the picker -> game -> picker flow. Local play and every
// SSH connection run their own AppModel.
type AppModel struct {
	opts      AppOptions
	picker    PickerModel
	gameModel *GameModel
	width     int
	height    int
	quitting  bool
}

// NewAppModel creates the app starting at the picker.
func NewAppModel(opts AppOptions, width, height int) AppModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	m := AppModel{opts: opts, width: width, height: height}
	m.picker = m.newPicker(nil)
	return m
}

func (m AppModel) newPicker(lastErr error) PickerModel {
	items, err := m.opts.Catalog.Items()
	if err == nil {
		err = lastErr
	}
	return NewPickerModel(items, err, m.width, m.height)
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the app.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	if m.gameModel != nil {
		return m.updateGame(msg)
	}
	return m.updatePicker(msg)
}

// updatePicker handles updates when the picker is shown.
func (m AppModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPicker, cmd := m.picker.Update(msg)
	if pm, ok := newPicker.(PickerModel); ok {
		m.picker = pm
	}

	if m.picker.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.picker.Selected(); selected != nil {
		c, err := m.opts.Catalog.Load(selected.Ref)
		if err != nil {
			m.opts.Logger.Warn("cannot load chart", "ref", selected.Ref, "error", err)
			m.picker = m.newPicker(err)
			return m, nil
		}

		gm := NewGameModel(GameOptions{
			Config: m.opts.Config,
			Chart:  c,
			Clock:  m.opts.Clock,
			Logger: m.opts.Logger,
			Debug:  m.opts.Debug,
		})
		if m.width > 0 {
			next, _ := gm.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
			gm = next.(GameModel)
		}
		m.gameModel = &gm
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates while a chart is played.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gm, ok := newModel.(GameModel); ok {
		m.gameModel = &gm
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.picker = m.newPicker(nil)
		return m, m.picker.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.gameModel != nil {
		return m.gameModel.View()
	}
	return m.picker.View()
}

// InGame reports whether a chart is being played.
func (m AppModel) InGame() bool {
	return m.gameModel != nil
}

// RunApp runs the picker in the local terminal.
func RunApp(opts AppOptions) error {
	width, height := TerminalSize()
	p := tea.NewProgram(NewAppModel(opts, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

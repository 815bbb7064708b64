// Package tui provides the interactive terminal UI for kword.
package tui

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/f3rmion/kword/internal/config"
	"github.com/f3rmion/kword/internal/dictionary"
	"github.com/f3rmion/kword/internal/engine"
	"github.com/f3rmion/kword/internal/kword"
	"github.com/f3rmion/kword/internal/romanize"
	"github.com/f3rmion/kword/internal/settings"
	"github.com/f3rmion/kword/internal/tui/theme"
	"github.com/f3rmion/kword/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewPlay ViewType = iota
	ViewLookup
	ViewStats
	ViewDictionary
	ViewSettings
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// DictionaryLoadedMsg is sent when a dictionary file finished loading.
type DictionaryLoadedMsg struct {
	Dict *dictionary.Dictionary
	Path string
	Err  error
}

// Deps are the collaborators the TUI drives.
type Deps struct {
	Engine    *engine.Engine
	Settings  *settings.Store
	Romanizer *romanize.Romanizer
	Dict      *dictionary.Dictionary // nil when loading failed
	DictErr   error
	Config    *config.Config
	ConfigDir string
	Log       *zap.Logger
}

// AppModel is the main TUI model
type AppModel struct {
	ctx      context.Context
	settings *settings.Store
	log      *zap.Logger
	styles   *theme.Styles
	current  kword.Settings

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	playView       views.PlayModel
	lookupView     views.LookupModel
	statsView      views.StatsModel
	filePickerView views.FilePickerModel
	settingsView   views.SettingsModel

	// Help overlay
	showHelp bool
}

// NewApp creates the TUI. It reads the saved settings and resumes or starts
// the first round.
func NewApp(ctx context.Context, d Deps) (AppModel, error) {
	current, err := d.Settings.Load(ctx)
	if err != nil {
		return AppModel{}, err
	}
	dismissed, err := d.Settings.HelpDismissed(ctx)
	if err != nil {
		return AppModel{}, err
	}

	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	styles := theme.For(current.Theme)

	pickerDir := d.ConfigDir
	if d.Config != nil && d.Config.DictionaryPath != "" {
		pickerDir = filepath.Dir(d.Config.DictionaryPath)
	}

	app := AppModel{
		ctx:          ctx,
		settings:     d.Settings,
		log:          log,
		styles:       styles,
		current:      current,
		sidebarWidth: 20,
		currentView:  ViewPlay,
		menuItems: []MenuItem{
			{Label: "Play", View: ViewPlay, Shortcut: "1"},
			{Label: "Lookup", View: ViewLookup, Shortcut: "2"},
			{Label: "Stats", View: ViewStats, Shortcut: "3"},
			{Label: "Dictionary", View: ViewDictionary, Shortcut: "4"},
			{Label: "Settings", View: ViewSettings, Shortcut: "5"},
		},
		showHelp: !dismissed,

		playView:       views.NewPlayModel(ctx, d.Engine, d.Dict, current.Difficulty, styles, log),
		lookupView:     views.NewLookupModel(d.Romanizer, d.Dict, styles),
		statsView:      views.NewStatsModel(ctx, d.Engine, styles),
		filePickerView: views.NewFilePickerModel(pickerDir, styles),
		settingsView:   views.NewSettingsModel(ctx, d.Settings, current, d.Config, d.ConfigDir, styles),
	}

	app.playView.Start()
	if d.DictErr != nil {
		app.filePickerView.SetStatus("", d.DictErr)
		app.currentView = ViewDictionary
		app.selectedMenu = int(ViewDictionary)
	}

	return app, nil
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.statsView.Refresh())
}

// typing reports whether the active view owns plain keystrokes.
func (m AppModel) typing() bool {
	if m.sidebarActive {
		return false
	}
	switch m.currentView {
	case ViewPlay:
		return m.playView.Typing()
	case ViewLookup:
		return m.lookupView.Typing()
	}
	return false
}

func (m AppModel) switchTo(v ViewType) (AppModel, tea.Cmd) {
	m.currentView = v
	m.selectedMenu = int(v)
	m.sidebarActive = false
	if v == ViewStats {
		return m, m.statsView.Refresh()
	}
	return m, nil
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			if msg.String() == "d" {
				if err := m.settings.DismissHelp(m.ctx); err != nil {
					m.log.Warn("saving help flag", zap.Error(err))
				}
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.sidebarActive {
				return m, tea.Quit
			}
			m.sidebarActive = true
			return m, nil
		case "tab":
			m.sidebarActive = !m.sidebarActive
			return m, nil
		}

		if !m.typing() {
			switch key := msg.String(); key {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case "1", "2", "3", "4", "5":
				return m.switchTo(ViewType(key[0] - '1'))
			}
		}

		if m.sidebarActive {
			switch msg.String() {
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
			case "enter", "l", "right":
				return m.switchTo(m.menuItems[m.selectedMenu].View)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2

		m.playView.SetSize(contentWidth, contentHeight)
		m.lookupView.SetSize(contentWidth, contentHeight)
		m.statsView.SetSize(contentWidth, contentHeight)
		m.filePickerView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)
		return m, nil

	case views.FileSelectedMsg:
		return m, loadDictionary(msg.Path)

	case DictionaryLoadedMsg:
		if msg.Err != nil {
			m.filePickerView.SetStatus("", msg.Err)
			m.log.Warn("loading dictionary", zap.String("path", msg.Path), zap.Error(msg.Err))
			return m, nil
		}
		m.filePickerView.SetStatus(fmt.Sprintf("Loaded %d words from %s", msg.Dict.Size(), filepath.Base(msg.Path)), nil)
		m.playView.SetDictionary(msg.Dict)
		m.lookupView.SetDictionary(msg.Dict)
		m.settingsView.SetDictionaryPath(msg.Path)
		m.log.Info("dictionary loaded", zap.String("path", msg.Path), zap.Int("entries", msg.Dict.Size()))
		return m, nil

	case views.SettingsChangedMsg:
		if msg.Settings.Theme != m.current.Theme {
			m.applyTheme(msg.Settings.Theme)
		}
		if msg.Settings.Difficulty != m.current.Difficulty {
			m.playView.SetDifficulty(msg.Settings.Difficulty)
		}
		m.current = msg.Settings
		return m, nil

	case views.RoundResolvedMsg:
		return m, m.statsView.Refresh()

	case views.StatsLoadedMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd
	}

	if m.sidebarActive {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewPlay:
		m.playView, cmd = m.playView.Update(msg)
	case ViewLookup:
		m.lookupView, cmd = m.lookupView.Update(msg)
	case ViewStats:
		m.statsView, cmd = m.statsView.Update(msg)
	case ViewDictionary:
		m.filePickerView, cmd = m.filePickerView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}
	return m, cmd
}

func (m *AppModel) applyTheme(t kword.Theme) {
	m.styles = theme.For(t)
	m.playView.SetStyles(m.styles)
	m.lookupView.SetStyles(m.styles)
	m.statsView.SetStyles(m.styles)
	m.filePickerView.SetStyles(m.styles)
	m.settingsView.SetStyles(m.styles)
}

// loadDictionary loads a dictionary file asynchronously
func loadDictionary(path string) tea.Cmd {
	return func() tea.Msg {
		d, err := dictionary.LoadFile(path)
		return DictionaryLoadedMsg{Dict: d, Path: path, Err: err}
	}
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var content string
	switch m.currentView {
	case ViewPlay:
		content = m.playView.View()
	case ViewLookup:
		content = m.lookupView.View()
	case ViewStats:
		content = m.statsView.View()
	case ViewDictionary:
		content = m.filePickerView.View()
	case ViewSettings:
		content = m.settingsView.View()
	}

	mainContent := m.styles.ContentStyle.
		Width(m.width - m.sidebarWidth - 4).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	s := m.styles
	items := []string{s.SidebarTitleStyle.Render("  한글 kword  "), ""}

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label

		style := s.SidebarItemStyle
		if i == m.selectedMenu {
			style = s.SidebarItemCurrent
			if m.sidebarActive {
				style = s.SidebarItemActiveStyle
			}
		}
		items = append(items, style.Render(label))
	}

	usedHeight := len(items) + 4
	for i := 0; i < m.height-usedHeight-2; i++ {
		items = append(items, "")
	}

	items = append(items, s.SidebarHelpStyle.Render("? Help  esc Menu"))

	return s.SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	s := m.styles

	line := func(key, desc string) string {
		return s.HelpKey.Render(key) + s.HelpDesc.Render(desc) + "\n"
	}

	help := s.HelpTitle.Render("kword, a Korean word quiz") + "\n"
	help += s.HelpDesc.Render("Romanize the Korean word. You get three tries;\nany supported romanization is accepted.") + "\n"

	help += s.HelpSection.Render("Global Keys") + "\n"
	help += line("1-5", "Switch views")
	help += line("tab/esc", "Focus sidebar")
	help += line("?", "Show this help")
	help += line("q", "Quit (from sidebar or non-typing views)")

	help += s.HelpSection.Render("Play") + "\n"
	help += line("enter", "Submit guess / next word")
	help += line("y", "Copy result after a round")

	help += s.HelpSection.Render("Stats") + "\n"
	help += line("R", "Reset statistics")

	help += s.HelpSection.Render("Dictionary") + "\n"
	help += line("enter", "Open .csv or .apkg")
	help += line("backspace", "Parent directory")

	help += "\n" + s.Help.Italic(true).Render("d: don't show again • any other key: close")

	box := s.HelpBox.Render(help)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

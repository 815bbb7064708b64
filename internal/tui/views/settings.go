package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/kword/internal/config"
	"github.com/f3rmion/kword/internal/kword"
	"github.com/f3rmion/kword/internal/settings"
	"github.com/f3rmion/kword/internal/tui/theme"
)

// SettingsModel is the settings view model.
type SettingsModel struct {
	ctx       context.Context
	store     *settings.Store
	config    *config.Config
	configDir string
	styles    *theme.Styles

	current kword.Settings
	row     int // 0=difficulty, 1=theme
	err     error

	width  int
	height int
}

// NewSettingsModel creates a new settings model.
func NewSettingsModel(ctx context.Context, store *settings.Store, current kword.Settings, cfg *config.Config, configDir string, styles *theme.Styles) SettingsModel {
	return SettingsModel{
		ctx:       ctx,
		store:     store,
		config:    cfg,
		configDir: configDir,
		styles:    styles,
		current:   current,
	}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetStyles switches the theme.
func (m *SettingsModel) SetStyles(s *theme.Styles) {
	m.styles = s
}

// SetDictionaryPath records the dictionary currently in use.
func (m *SettingsModel) SetDictionaryPath(path string) {
	if m.config != nil {
		m.config.DictionaryPath = path
	}
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down":
			m.row = min(m.row+1, 1)
		case "k", "up":
			m.row = max(m.row-1, 0)
		case "enter", " ", "l", "right":
			return m.cycle()
		}
	}
	return m, nil
}

func (m SettingsModel) cycle() (SettingsModel, tea.Cmd) {
	next := m.current
	var err error
	if m.row == 0 {
		next.Difficulty = settings.NextDifficulty(next.Difficulty)
		err = m.store.SetDifficulty(m.ctx, next.Difficulty)
	} else {
		next.Theme = settings.NextTheme(next.Theme)
		err = m.store.SetTheme(m.ctx, next.Theme)
	}
	if err != nil {
		m.err = err
		return m, nil
	}

	m.err = nil
	m.current = next
	return m, func() tea.Msg { return SettingsChangedMsg{Settings: next} }
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder
	s := m.styles

	b.WriteString(s.Title.Render("Settings"))
	b.WriteString("\n")

	rows := []struct {
		label   string
		value   string
		options string
	}{
		{"Difficulty", string(m.current.Difficulty), "easy: 2 syllables • normal: all • hard: 3+"},
		{"Theme", string(m.current.Theme), "light • dark • auto"},
	}
	for i, r := range rows {
		value := s.Value.Render(r.value)
		prefix := "  "
		if i == m.row {
			value = s.Selected.Render(" " + r.value + " ")
			prefix = "> "
		}
		b.WriteString(prefix + s.Label.Render(r.label+":") + " " + value + "  " + s.Help.Render(r.options))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(s.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Divider.Render(strings.Repeat("─", min(max(m.width-4, 10), 60))))
	b.WriteString("\n")
	b.WriteString(s.Path.Render("Config: " + m.configDir))
	b.WriteString("\n")
	if m.config != nil {
		info := []string{
			s.Label.Render("Dictionary:") + " " + s.Value.Render(m.config.DictionaryPath),
			s.Label.Render("Storage:") + " " + s.Value.Render(m.config.Storage.Driver),
			s.Label.Render("Schemes:") + " " + s.Value.Render(strings.Join(m.config.Romanization.Schemes, ", ")),
		}
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, info...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Help.Render("j/k: select • enter/space: change"))

	return b.String()
}

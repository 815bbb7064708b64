package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rmion/kword/internal/engine"
	"github.com/f3rmion/kword/internal/kword"
	"github.com/f3rmion/kword/internal/tui/theme"
)

// StatsLoadedMsg carries freshly read statistics to the stats view.
type StatsLoadedMsg struct {
	Stats kword.Statistics
	Err   error
}

// StatsModel shows the play statistics.
type StatsModel struct {
	ctx    context.Context
	engine *engine.Engine
	styles *theme.Styles

	stats        kword.Statistics
	confirmReset bool
	message      string
	err          error

	width  int
	height int
}

// NewStatsModel creates the statistics view.
func NewStatsModel(ctx context.Context, eng *engine.Engine, styles *theme.Styles) StatsModel {
	return StatsModel{ctx: ctx, engine: eng, styles: styles}
}

// SetSize updates the view dimensions.
func (m *StatsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetStyles switches the theme.
func (m *StatsModel) SetStyles(s *theme.Styles) {
	m.styles = s
}

// Refresh reloads the counters from storage.
func (m StatsModel) Refresh() tea.Cmd {
	ctx, eng := m.ctx, m.engine
	return func() tea.Msg {
		st, err := eng.Statistics(ctx)
		return StatsLoadedMsg{Stats: st, Err: err}
	}
}

// Update handles messages.
func (m StatsModel) Update(msg tea.Msg) (StatsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case StatsLoadedMsg:
		m.stats, m.err = msg.Stats, msg.Err
		return m, nil

	case tea.KeyMsg:
		if m.confirmReset {
			m.confirmReset = false
			if msg.String() != "y" {
				m.message = "Reset cancelled."
				return m, nil
			}
			if err := m.engine.ResetStatistics(m.ctx); err != nil {
				m.err = err
				return m, nil
			}
			m.message = "Statistics reset."
			return m, m.Refresh()
		}

		switch msg.String() {
		case "R":
			m.confirmReset = true
			m.message = ""
			return m, nil
		case "r":
			return m, m.Refresh()
		}
	}
	return m, nil
}

// View renders the statistics.
func (m StatsModel) View() string {
	var b strings.Builder
	s := m.styles
	st := m.stats

	b.WriteString(s.Title.Render("Statistics"))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(s.Label.Render(label+":") + " " + s.Value.Render(value) + "\n")
	}
	row("Played", fmt.Sprint(st.TotalAttempts))
	row("Correct", fmt.Sprint(st.CorrectAnswers))
	row("Wrong", fmt.Sprint(st.WrongAnswers()))
	row("Current streak", fmt.Sprint(st.CurrentStreak))
	row("Best streak", fmt.Sprint(st.MaxStreak))

	b.WriteString("\n")
	rate := st.WinRate()
	b.WriteString(s.Label.Render("Win rate:") + " " +
		s.Success.Render(renderBar(rate, 30)) + " " +
		s.Value.Render(fmt.Sprintf("%.0f%%", rate*100)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(s.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.confirmReset:
		b.WriteString(s.Error.Render("Reset all statistics? y: yes • any other key: cancel"))
	case m.message != "":
		b.WriteString(s.Help.Render(m.message))
		b.WriteString("\n")
		b.WriteString(s.Help.Render("R: reset • r: refresh"))
	default:
		b.WriteString(s.Help.Render("R: reset • r: refresh"))
	}

	return b.String()
}

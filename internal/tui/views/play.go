package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/f3rmion/kword/internal/clipboard"
	"github.com/f3rmion/kword/internal/dictionary"
	"github.com/f3rmion/kword/internal/engine"
	"github.com/f3rmion/kword/internal/kword"
	"github.com/f3rmion/kword/internal/normalize"
	"github.com/f3rmion/kword/internal/share"
	"github.com/f3rmion/kword/internal/tui/bigchar"
	"github.com/f3rmion/kword/internal/tui/theme"
)

// PlayModel is the quiz view.
type PlayModel struct {
	ctx    context.Context
	engine *engine.Engine
	dict   *dictionary.Dictionary
	log    *zap.Logger
	styles *theme.Styles

	difficulty kword.Difficulty

	input textinput.Model
	round *kword.Round

	outcome   *kword.Outcome
	message   string
	rejected  normalize.RepeatGuard
	emptyPool bool
	shareText string
	copied    bool
	err       error

	width  int
	height int
}

// NewPlayModel creates the play view. Call Start to load the first round.
func NewPlayModel(ctx context.Context, eng *engine.Engine, dict *dictionary.Dictionary, difficulty kword.Difficulty, styles *theme.Styles, log *zap.Logger) PlayModel {
	ti := textinput.New()
	ti.Placeholder = "type the romanization..."
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	m := PlayModel{
		ctx:        ctx,
		engine:     eng,
		dict:       dict,
		log:        log,
		styles:     styles,
		difficulty: difficulty,
		input:      ti,
	}
	m.applyStyles()
	return m
}

// SetSize updates the view dimensions.
func (m *PlayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetStyles switches the theme.
func (m *PlayModel) SetStyles(s *theme.Styles) {
	m.styles = s
	m.applyStyles()
}

func (m *PlayModel) applyStyles() {
	m.input.PromptStyle = m.styles.Input
	m.input.TextStyle = m.styles.InputText
}

// SetDifficulty sets the difficulty used for the next new round.
func (m *PlayModel) SetDifficulty(d kword.Difficulty) {
	m.difficulty = d
	if m.emptyPool {
		m.Start()
	}
}

// SetDictionary replaces the dictionary used for the next new round.
func (m *PlayModel) SetDictionary(d *dictionary.Dictionary) {
	m.dict = d
	if m.round == nil || m.emptyPool {
		m.Start()
	}
}

// Typing reports whether keystrokes belong to the guess input.
func (m PlayModel) Typing() bool {
	return m.input.Focused()
}

// Start resumes the stored round or begins a new one.
func (m *PlayModel) Start() {
	m.startWith(m.difficulty)
}

func (m *PlayModel) startWith(d kword.Difficulty) {
	m.outcome = nil
	m.message = ""
	m.rejected.Reset()
	m.shareText = ""
	m.emptyPool = false
	m.err = nil
	m.input.Reset()

	if m.dict == nil {
		m.round = nil
		m.input.Blur()
		m.err = errors.New("no dictionary loaded, press 4 to open one")
		return
	}

	round, err := m.engine.StartRound(m.ctx, m.dict.Entries(), d)
	if errors.Is(err, engine.ErrNoEntriesForDifficulty) {
		m.round = nil
		m.emptyPool = true
		m.input.Blur()
		return
	}
	if err != nil {
		m.round = nil
		m.input.Blur()
		m.err = err
		m.log.Error("starting round", zap.Error(err))
		return
	}

	m.round = round
	m.input.Focus()
}

// Update handles messages.
func (m PlayModel) Update(msg tea.Msg) (PlayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.emptyPool {
			if msg.String() == "n" {
				m.startWith(kword.DifficultyNormal)
				return m, textinput.Blink
			}
			return m, nil
		}

		if m.round == nil || m.round.Resolved {
			switch msg.String() {
			case "enter", "n":
				if m.round == nil && m.dict == nil {
					return m, nil
				}
				m.Start()
				return m, textinput.Blink
			case "y":
				if m.shareText == "" {
					return m, nil
				}
				if err := clipboard.Write(m.shareText); err != nil {
					m.err = err
					return m, nil
				}
				m.copied = true
				return m, clearCopiedAfter(2 * time.Second)
			}
			return m, nil
		}

		if msg.String() == "enter" {
			return m.submit()
		}

	case clearCopiedMsg:
		m.copied = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m PlayModel) submit() (PlayModel, tea.Cmd) {
	raw := m.input.Value()
	if normalize.Normalize(raw) == "" {
		m.message = "Type a romanization first."
		return m, nil
	}
	if m.rejected.Seen(raw) {
		m.message = "You already tried that."
		return m, nil
	}

	outcome, err := m.engine.SubmitGuess(m.ctx, m.round, raw)
	if err != nil {
		m.err = err
		m.log.Error("submitting guess", zap.Error(err))
		return m, nil
	}
	m.err = nil
	m.outcome = &outcome

	if !outcome.Resolved() {
		m.rejected.Reject(raw)
		m.message = fmt.Sprintf("Not quite. %d %s left.", outcome.AttemptsLeft+1, plural(outcome.AttemptsLeft+1, "try", "tries"))
		m.input.Reset()
		return m, nil
	}

	switch outcome.Kind {
	case kword.OutcomeCorrect:
		m.message = "Correct!"
	case kword.OutcomeIncorrectExhausted:
		m.message = "Out of tries. The answer was " + outcome.CorrectAnswer + "."
	}

	m.input.Blur()
	if st, err := m.engine.Statistics(m.ctx); err == nil {
		m.shareText = share.Text(m.round, outcome, st)
	}

	resolved := RoundResolvedMsg{Round: *m.round, Outcome: outcome}
	return m, func() tea.Msg { return resolved }
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// View renders the play view.
func (m PlayModel) View() string {
	var b strings.Builder
	s := m.styles

	b.WriteString(s.Title.Render("Guess the romanization"))
	b.WriteString("  ")
	b.WriteString(s.Help.Render("difficulty: " + string(m.difficulty)))
	b.WriteString("\n")

	if m.emptyPool {
		b.WriteString("\n")
		b.WriteString(s.Error.Render(fmt.Sprintf("No %s words in this dictionary.", m.difficulty)))
		b.WriteString("\n\n")
		b.WriteString(s.Help.Render("n: play a normal round • 5: change difficulty • 4: open another dictionary"))
		return b.String()
	}

	if m.round == nil {
		if m.err != nil {
			b.WriteString("\n")
			b.WriteString(s.Error.Render(m.err.Error()))
		}
		return b.String()
	}

	contentWidth := max(m.width-4, 40)
	center := lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center)

	b.WriteString("\n")
	b.WriteString(center.Render(m.renderWord()))
	b.WriteString("\n")
	if m.round.Definition != "" {
		b.WriteString(center.Render(s.Definition.Render(wrapText(m.round.Definition, contentWidth-8))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(center.Render(m.renderDots()))
	b.WriteString("\n\n")

	if !m.round.Resolved {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString("\n")
		style := s.Value
		if m.outcome != nil {
			switch m.outcome.Kind {
			case kword.OutcomeCorrect:
				style = s.Success
			case kword.OutcomeIncorrectExhausted:
				style = s.Error
			}
		}
		b.WriteString(style.Render(m.message))
		b.WriteString("\n")
	}

	if m.round.Resolved && len(m.round.AcceptedAnswers) > 1 {
		b.WriteString(s.Help.Render("Accepted: " + strings.Join(m.round.AcceptedAnswers, ", ")))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(s.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}

	if m.copied {
		b.WriteString(s.Copied.Render("Copied to clipboard!"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.round.Resolved {
		help := "enter: next word"
		if m.shareText != "" {
			help += " • y: copy result"
		}
		b.WriteString(s.Help.Render(help))
	} else {
		b.WriteString(s.Help.Render("enter: submit • esc: menu"))
	}

	return b.String()
}

func (m PlayModel) renderWord() string {
	cols, rows := 20, 10
	if m.width > 0 && m.width < 80 {
		cols, rows = 12, 6
	}
	if art := bigchar.GetCached(m.round.Word, cols, rows); art != "" {
		return m.styles.Word.Render(art)
	}
	return m.styles.BigWord.Render(m.round.Word)
}

// renderDots shows used attempts as ● and remaining ones as ○.
func (m PlayModel) renderDots() string {
	used := m.round.Attempt
	if !m.round.Resolved {
		used--
	}
	won := m.outcome != nil && m.outcome.Kind == kword.OutcomeCorrect
	var dots []string
	for i := 0; i < kword.MaxAttempts; i++ {
		if won && i == used-1 {
			dots = append(dots, m.styles.Success.Render("●"))
		} else if i < used {
			dots = append(dots, m.styles.DotUsed.Render("●"))
		} else {
			dots = append(dots, m.styles.DotLeft.Render("○"))
		}
	}
	return strings.Join(dots, " ")
}

package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/kword/internal/dictionary"
	"github.com/f3rmion/kword/internal/hangul"
	"github.com/f3rmion/kword/internal/romanize"
	"github.com/f3rmion/kword/internal/tui/theme"
)

// WordResult is the analysis of one looked-up word.
type WordResult struct {
	Word          string
	Syllables     int
	Bucket        string
	Definition    string
	Romanizations []Romanization
}

// Romanization is a word rendered in one scheme.
type Romanization struct {
	Scheme   romanize.Scheme
	Text     string
	Accepted bool // scheme is accepted as an answer
}

// Analyze romanizes word in every scheme and looks up its definition.
func Analyze(word string, r *romanize.Romanizer, dict *dictionary.Dictionary) WordResult {
	res := WordResult{
		Word:      word,
		Syllables: hangul.SyllableCount(word),
		Bucket:    string(hangul.Bucket(word)),
	}

	accepted := make(map[romanize.Scheme]bool)
	for _, s := range r.Schemes() {
		accepted[s] = true
	}
	for _, s := range romanize.AllSchemes {
		res.Romanizations = append(res.Romanizations, Romanization{
			Scheme:   s,
			Text:     romanize.Transliterate(word, s),
			Accepted: accepted[s],
		})
	}

	if dict != nil {
		if e, ok := dict.Lookup(word); ok {
			res.Definition = e.Definition
		}
	}
	return res
}

// LookupModel is the romanization lookup view.
type LookupModel struct {
	input     textinput.Model
	romanizer *romanize.Romanizer
	dict      *dictionary.Dictionary
	styles    *theme.Styles

	results  []WordResult
	selected int
	err      error

	width  int
	height int
}

// NewLookupModel creates a new lookup view model.
func NewLookupModel(r *romanize.Romanizer, dict *dictionary.Dictionary, styles *theme.Styles) LookupModel {
	ti := textinput.New()
	ti.Placeholder = "Enter Korean words..."
	ti.CharLimit = 80
	ti.Width = 40
	ti.Focus()

	m := LookupModel{
		input:     ti,
		romanizer: r,
		dict:      dict,
		styles:    styles,
	}
	m.applyStyles()
	return m
}

// SetSize updates the view dimensions.
func (m *LookupModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetStyles switches the theme.
func (m *LookupModel) SetStyles(s *theme.Styles) {
	m.styles = s
	m.applyStyles()
}

func (m *LookupModel) applyStyles() {
	m.input.PromptStyle = m.styles.Input
	m.input.TextStyle = m.styles.InputText
}

// SetDictionary sets the dictionary definitions are taken from.
func (m *LookupModel) SetDictionary(d *dictionary.Dictionary) {
	m.dict = d
}

// Typing reports whether keystrokes belong to the input.
func (m LookupModel) Typing() bool {
	return m.input.Focused()
}

// Update handles messages.
func (m LookupModel) Update(msg tea.Msg) (LookupModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			m.analyzeInput()
			return m, nil
		case "left":
			if len(m.results) > 1 {
				m.selected = (m.selected - 1 + len(m.results)) % len(m.results)
			}
			return m, nil
		case "right":
			if len(m.results) > 1 {
				m.selected = (m.selected + 1) % len(m.results)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *LookupModel) analyzeInput() {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return
	}

	m.results = nil
	m.selected = 0
	m.err = nil

	for _, word := range strings.Fields(input) {
		if !hangul.ContainsHangul(word) {
			continue
		}
		m.results = append(m.results, Analyze(word, m.romanizer, m.dict))
	}

	if len(m.results) == 0 {
		m.err = fmt.Errorf("no Hangul found in: %s", input)
	}
}

// View renders the lookup view.
func (m LookupModel) View() string {
	var b strings.Builder
	s := m.styles

	b.WriteString(s.Title.Render("Lookup"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(s.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}

	if len(m.results) > 1 {
		b.WriteString("\n")
		b.WriteString(m.renderWordBar())
		b.WriteString("\n")
	}
	if m.selected < len(m.results) {
		b.WriteString(m.renderDetail(m.results[m.selected]))
	}

	b.WriteString("\n")
	switch {
	case len(m.results) > 1:
		b.WriteString(s.Help.Render("←/→: navigate • enter: analyze"))
	default:
		b.WriteString(s.Help.Render("Type Hangul and press Enter to romanize"))
	}

	return b.String()
}

func (m LookupModel) renderWordBar() string {
	var tabs []string
	for i, r := range m.results {
		style := m.styles.SidebarItemStyle
		if i == m.selected {
			style = m.styles.Selected.Padding(0, 1)
		}
		tabs = append(tabs, style.Render(r.Word))
	}
	nav := m.styles.Subtitle.Render(fmt.Sprintf("◀ %d/%d ▶", m.selected+1, len(m.results)))
	return lipgloss.JoinHorizontal(lipgloss.Center, append(tabs, "  ", nav)...)
}

func (m LookupModel) renderDetail(r WordResult) string {
	s := m.styles
	var lines []string

	row := func(label, value string) {
		lines = append(lines, s.Label.Render(label+":")+" "+s.Value.Render(value))
	}

	row("Word", r.Word)
	row("Syllables", fmt.Sprint(r.Syllables))
	row("Difficulty", r.Bucket)
	if r.Definition != "" {
		row("Definition", r.Definition)
	}
	lines = append(lines, "")

	width := 0
	for _, ro := range r.Romanizations {
		width = max(width, len(ro.Scheme.Title()))
	}
	for _, ro := range r.Romanizations {
		mark := "  "
		if ro.Accepted {
			mark = s.Success.Render("✓ ")
		}
		lines = append(lines, mark+s.Subtitle.Render(padRight(ro.Scheme.Title(), width))+"  "+s.Word.Render(ro.Text))
	}

	return "\n" + s.Box.Render(strings.Join(lines, "\n")) + "\n" +
		s.Help.Render("✓ accepted as an answer")
}

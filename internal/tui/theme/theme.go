// Package theme holds the color palettes and styles of the kword TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/kword/internal/kword"
)

// Palette is the set of colors a theme is built from.
type Palette struct {
	Primary   lipgloss.Color // titles, errors
	Secondary lipgloss.Color // subtitles, directories
	Accent    lipgloss.Color // the quiz word, selection
	Muted     lipgloss.Color // help text
	Success   lipgloss.Color
	Text      lipgloss.Color
	Label     lipgloss.Color
	Bg        lipgloss.Color
	BgAlt     lipgloss.Color
	Border    lipgloss.Color
}

// Dark is the palette for dark terminals.
var Dark = Palette{
	Primary:   lipgloss.Color("#FF6B6B"),
	Secondary: lipgloss.Color("#4ecdc4"),
	Accent:    lipgloss.Color("#ffe66d"),
	Muted:     lipgloss.Color("#666666"),
	Success:   lipgloss.Color("#a8e6cf"),
	Text:      lipgloss.Color("#f1faee"),
	Label:     lipgloss.Color("#a8dadc"),
	Bg:        lipgloss.Color("#1a1a2e"),
	BgAlt:     lipgloss.Color("#2d3436"),
	Border:    lipgloss.Color("#3d5a80"),
}

// Light is the palette for light terminals.
var Light = Palette{
	Primary:   lipgloss.Color("#c0392b"),
	Secondary: lipgloss.Color("#16817a"),
	Accent:    lipgloss.Color("#b8860b"),
	Muted:     lipgloss.Color("#8a8a8a"),
	Success:   lipgloss.Color("#2e8b57"),
	Text:      lipgloss.Color("#1d1d1f"),
	Label:     lipgloss.Color("#35606b"),
	Bg:        lipgloss.Color("#f4f1ea"),
	BgAlt:     lipgloss.Color("#e4e0d6"),
	Border:    lipgloss.Color("#9db4c0"),
}

// hasDarkBackground is replaced in tests.
var hasDarkBackground = lipgloss.HasDarkBackground

// Resolve picks the palette for t. Auto follows the terminal background.
func Resolve(t kword.Theme) Palette {
	switch t {
	case kword.ThemeLight:
		return Light
	case kword.ThemeDark:
		return Dark
	default:
		if hasDarkBackground() {
			return Dark
		}
		return Light
	}
}

// Styles are the rendered styles shared by the app shell and its views.
type Styles struct {
	Palette Palette

	SidebarStyle           lipgloss.Style
	SidebarTitleStyle      lipgloss.Style
	SidebarItemStyle       lipgloss.Style
	SidebarItemActiveStyle lipgloss.Style
	SidebarItemCurrent     lipgloss.Style
	SidebarHelpStyle       lipgloss.Style
	ContentStyle           lipgloss.Style

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Copied   lipgloss.Style
	Divider  lipgloss.Style
	Box      lipgloss.Style

	Word       lipgloss.Style
	BigWord    lipgloss.Style
	Definition lipgloss.Style
	DotUsed    lipgloss.Style
	DotLeft    lipgloss.Style
	Input      lipgloss.Style
	InputText  lipgloss.Style

	Selected lipgloss.Style
	Dir      lipgloss.Style
	File     lipgloss.Style
	Path     lipgloss.Style

	HelpTitle   lipgloss.Style
	HelpSection lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style
	HelpBox     lipgloss.Style
}

// New builds the styles for a palette.
func New(p Palette) *Styles {
	return &Styles{
		Palette: p,

		SidebarStyle: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderRight(true).
			BorderForeground(p.Border).
			Padding(1, 1),
		SidebarTitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Background(p.Bg).
			Padding(0, 1).
			MarginBottom(1),
		SidebarItemStyle: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),
		SidebarItemActiveStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			Background(p.BgAlt).
			Padding(0, 1),
		SidebarItemCurrent: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary).
			Padding(0, 1),
		SidebarHelpStyle: lipgloss.NewStyle().
			Foreground(p.Muted).
			MarginTop(1).
			Padding(0, 1),
		ContentStyle: lipgloss.NewStyle().
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Secondary),
		Label: lipgloss.NewStyle().
			Foreground(p.Label).
			Bold(true).
			Width(16),
		Value: lipgloss.NewStyle().
			Foreground(p.Text),
		Help: lipgloss.NewStyle().
			Foreground(p.Muted),
		Error: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(p.Success).
			Bold(true),
		Copied: lipgloss.NewStyle().
			Foreground(p.Success).
			Bold(true),
		Divider: lipgloss.NewStyle().
			Foreground(p.Border),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1, 2),

		Word: lipgloss.NewStyle().
			Foreground(p.Accent),
		BigWord: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			Background(p.BgAlt).
			Padding(1, 6).
			Align(lipgloss.Center),
		Definition: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true).
			Align(lipgloss.Center),
		DotUsed: lipgloss.NewStyle().
			Foreground(p.Primary),
		DotLeft: lipgloss.NewStyle().
			Foreground(p.Success),
		Input: lipgloss.NewStyle().
			Foreground(p.Secondary),
		InputText: lipgloss.NewStyle().
			Foreground(p.Accent),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			Background(p.BgAlt),
		Dir: lipgloss.NewStyle().
			Foreground(p.Secondary).
			Bold(true),
		File: lipgloss.NewStyle().
			Foreground(p.Text),
		Path: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true).
			MarginBottom(1),

		HelpTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),
		HelpSection: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary).
			MarginTop(1),
		HelpKey: lipgloss.NewStyle().
			Foreground(p.Accent).
			Width(12),
		HelpDesc: lipgloss.NewStyle().
			Foreground(p.Text),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Secondary).
			Padding(1, 2).
			Width(54),
	}
}

// For returns the styles for a theme setting.
func For(t kword.Theme) *Styles {
	return New(Resolve(t))
}

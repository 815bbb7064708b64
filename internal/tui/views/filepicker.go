package views

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rmion/kword/internal/tui/theme"
)

// FileSelectedMsg is sent when a file is selected
type FileSelectedMsg struct {
	Path string
}

// DictionaryExtensions are the word list formats the picker shows.
var DictionaryExtensions = []string{".csv", ".apkg"}

// FileEntry represents a file or directory
type FileEntry struct {
	Name  string
	IsDir bool
	Path  string
}

// FilePickerModel is the dictionary file picker.
type FilePickerModel struct {
	currentDir string
	entries    []FileEntry
	selected   int
	offset     int // first visible entry

	extensions []string
	styles     *theme.Styles

	status string // result of the last load
	err    error

	width  int
	height int
}

// NewFilePickerModel creates a picker starting in startDir, falling back to
// the home directory.
func NewFilePickerModel(startDir string, styles *theme.Styles) FilePickerModel {
	if _, err := os.Stat(startDir); startDir == "" || err != nil {
		startDir, _ = os.UserHomeDir()
		if startDir == "" {
			startDir = "/"
		}
	}

	m := FilePickerModel{
		currentDir: startDir,
		extensions: DictionaryExtensions,
		styles:     styles,
	}
	m.loadDir()
	return m
}

// SetSize updates the view dimensions.
func (m *FilePickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetStyles switches the theme.
func (m *FilePickerModel) SetStyles(s *theme.Styles) {
	m.styles = s
}

// SetStatus reports the outcome of loading the selected file.
func (m *FilePickerModel) SetStatus(status string, err error) {
	m.status = status
	m.err = err
}

// Dir returns the directory being listed.
func (m FilePickerModel) Dir() string {
	return m.currentDir
}

// Entries returns the listed entries.
func (m FilePickerModel) Entries() []FileEntry {
	return m.entries
}

func (m *FilePickerModel) loadDir() {
	m.entries = nil
	m.selected = 0
	m.offset = 0
	m.err = nil

	entries, err := os.ReadDir(m.currentDir)
	if err != nil {
		m.err = err
		return
	}

	if parent := filepath.Dir(m.currentDir); parent != m.currentDir {
		m.entries = append(m.entries, FileEntry{Name: "..", IsDir: true, Path: parent})
	}

	var dirs, files []FileEntry
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		fe := FileEntry{
			Name:  entry.Name(),
			IsDir: entry.IsDir(),
			Path:  filepath.Join(m.currentDir, entry.Name()),
		}
		if entry.IsDir() {
			dirs = append(dirs, fe)
		} else if m.matchesExtension(entry.Name()) {
			files = append(files, fe)
		}
	}

	byName := func(list []FileEntry) {
		sort.Slice(list, func(i, j int) bool {
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		})
	}
	byName(dirs)
	byName(files)

	m.entries = append(m.entries, dirs...)
	m.entries = append(m.entries, files...)
}

func (m *FilePickerModel) matchesExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range m.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (m *FilePickerModel) chdir(dir string) {
	m.currentDir = dir
	m.loadDir()
}

// Update handles messages.
func (m FilePickerModel) Update(msg tea.Msg) (FilePickerModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "j", "down":
		if m.selected < len(m.entries)-1 {
			m.selected++
			m.adjustScroll()
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
			m.adjustScroll()
		}
	case "enter", "l", "right":
		if m.selected >= len(m.entries) {
			return m, nil
		}
		entry := m.entries[m.selected]
		if entry.IsDir {
			m.chdir(entry.Path)
			return m, nil
		}
		m.status = "Loading " + entry.Name + "..."
		return m, func() tea.Msg { return FileSelectedMsg{Path: entry.Path} }
	case "backspace", "h":
		if parent := filepath.Dir(m.currentDir); parent != m.currentDir {
			m.chdir(parent)
		}
	case "~":
		if home, _ := os.UserHomeDir(); home != "" {
			m.chdir(home)
		}
	case "g":
		m.selected = 0
		m.offset = 0
	case "G":
		m.selected = max(len(m.entries)-1, 0)
		m.adjustScroll()
	case "ctrl+d":
		m.selected = min(m.selected+m.visibleHeight()/2, max(len(m.entries)-1, 0))
		m.adjustScroll()
	case "ctrl+u":
		m.selected = max(m.selected-m.visibleHeight()/2, 0)
		m.adjustScroll()
	}

	return m, nil
}

func (m *FilePickerModel) visibleHeight() int {
	return max(m.height-10, 5)
}

func (m *FilePickerModel) adjustScroll() {
	h := m.visibleHeight()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+h {
		m.offset = m.selected - h + 1
	}
}

// View renders the file picker.
func (m FilePickerModel) View() string {
	var b strings.Builder
	s := m.styles
	divider := s.Divider.Render(strings.Repeat("─", min(max(m.width-4, 10), 60)))

	b.WriteString(s.Title.Render("Open Dictionary (.csv, .apkg)"))
	b.WriteString("\n")
	b.WriteString(s.Path.Render(m.currentDir))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(s.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(s.Success.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(divider)
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(s.Help.Render("  (no word lists found)"))
		b.WriteString("\n")
	}

	end := min(m.offset+m.visibleHeight(), len(m.entries))
	for i := m.offset; i < end; i++ {
		entry := m.entries[i]

		icon := "[FILE] "
		style := s.File
		if entry.IsDir {
			icon = "[DIR]  "
			style = s.Dir
		}

		prefix := "  "
		if i == m.selected {
			prefix = "> "
			style = s.Selected
		}

		b.WriteString(prefix + style.Render(icon+entry.Name) + "\n")
	}

	if len(m.entries) > m.visibleHeight() {
		b.WriteString(s.Help.Render(strings.Repeat(" ", 50) + "↕ scroll"))
		b.WriteString("\n")
	}

	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(s.Help.Render("enter: open • backspace: parent • ~: home"))

	return b.String()
}

package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rmion/kword/internal/config"
	"github.com/f3rmion/kword/internal/dictionary"
	"github.com/f3rmion/kword/internal/engine"
	"github.com/f3rmion/kword/internal/kword"
	"github.com/f3rmion/kword/internal/romanize"
	"github.com/f3rmion/kword/internal/settings"
	"github.com/f3rmion/kword/internal/store"
	"github.com/f3rmion/kword/internal/tui/views"
)

func newTestApp(t *testing.T, kv store.Store) AppModel {
	t.Helper()
	dir := t.TempDir()
	app, err := NewApp(context.Background(), Deps{
		Engine:    engine.New(kv),
		Settings:  settings.NewStore(kv),
		Romanizer: romanize.New(),
		Dict: dictionary.New("test.csv", []kword.DictionaryEntry{
			{Word: "안녕", Definition: "Hello"},
		}),
		Config:    config.Default(dir),
		ConfigDir: dir,
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	m, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m.(AppModel)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestHelpShownUntilDismissed(t *testing.T) {
	kv := store.NewMemory()
	m := newTestApp(t, kv)
	if !m.showHelp {
		t.Fatal("help overlay should show on first start")
	}

	m, _ = send(m, runes("d"))
	if m.showHelp {
		t.Fatal("help overlay should close")
	}

	again := newTestApp(t, kv)
	if again.showHelp {
		t.Error("dismissed help overlay shown again")
	}
}

func TestHelpClosedWithoutDismissing(t *testing.T) {
	kv := store.NewMemory()
	m := newTestApp(t, kv)
	m, _ = send(m, runes("x"))
	if m.showHelp {
		t.Fatal("help overlay should close")
	}
	if again := newTestApp(t, kv); !again.showHelp {
		t.Error("help overlay should show again when not dismissed")
	}
}

func TestTypingKeepsGlobalKeys(t *testing.T) {
	m := newTestApp(t, store.NewMemory())
	m, _ = send(m, runes("x")) // close help

	if !m.typing() {
		t.Fatal("play view should own keystrokes while a round is open")
	}

	m, cmd := send(m, runes("q"))
	if isQuit(cmd) {
		t.Fatal("q quit while typing a guess")
	}
	m, _ = send(m, runes("2"))
	if m.currentView != ViewPlay {
		t.Fatalf("view = %d, want play", m.currentView)
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.sidebarActive {
		t.Fatal("esc should focus the sidebar")
	}
	m, _ = send(m, runes("2"))
	if m.currentView != ViewLookup {
		t.Fatalf("view = %d, want lookup", m.currentView)
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd = send(m, runes("q"))
	if !isQuit(cmd) {
		t.Error("q from the sidebar should quit")
	}
}

func TestStatsViewRefreshes(t *testing.T) {
	m := newTestApp(t, store.NewMemory())
	m, _ = send(m, runes("x"))
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})

	m, cmd := send(m, runes("3"))
	if m.currentView != ViewStats {
		t.Fatalf("view = %d, want stats", m.currentView)
	}
	if cmd == nil {
		t.Fatal("switching to stats should reload statistics")
	}
	if _, ok := cmd().(views.StatsLoadedMsg); !ok {
		t.Error("expected StatsLoadedMsg")
	}
}

func TestSettingsChangeAppliesTheme(t *testing.T) {
	m := newTestApp(t, store.NewMemory())
	before := m.styles

	next := m.current
	next.Theme = kword.ThemeLight
	if next.Theme == m.current.Theme {
		next.Theme = kword.ThemeDark
	}
	m, _ = send(m, views.SettingsChangedMsg{Settings: next})

	if m.styles == before {
		t.Error("styles not rebuilt after theme change")
	}
	if m.current.Theme != next.Theme {
		t.Errorf("theme = %s, want %s", m.current.Theme, next.Theme)
	}
}

func TestDictionaryLoadFailureKeepsOldDictionary(t *testing.T) {
	m := newTestApp(t, store.NewMemory())
	m, _ = send(m, DictionaryLoadedMsg{Path: "missing.csv", Err: &dictionary.LoadError{Path: "missing.csv", Err: dictionary.ErrEmpty}})
	if !m.playView.Typing() {
		t.Error("play view lost its round after a failed load")
	}
}

package ui

import (
	"testing"
	"time"

	"linkday/internal/config"
	"linkday/internal/task"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest prepares the test environment for deterministic rendering.
// The ASCII profile disables all color codes in output.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// nullPersister satisfies task.Persister without touching disk.
type nullPersister struct{}

func (nullPersister) Load() ([]task.Task, error)   { return nil, nil }
func (nullPersister) Save(tasks []task.Task) error { return nil }

const day = "2025-06-13"

// createTestStore builds a store with a fixed, advancing clock so the
// week strip always starts on Friday 2025-06-13.
func createTestStore(t *testing.T) *task.Store {
	t.Helper()
	s, err := task.NewStore(nullPersister{})
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	base := time.Date(2025, 6, 13, 9, 0, 0, 0, time.UTC)
	calls := 0
	s.SetNowFunc(func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	})
	return s
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

func createTestApp(t *testing.T, store *task.Store) *App {
	t.Helper()
	return NewApp(store, createTestStyles(), &AppConfig{
		Keys:             &config.KeysConfig{},
		ConfirmDeletions: true,
		HighlightTags:    true,
	})
}

func mustAdd(t *testing.T, s *task.Store, text, d string) task.Task {
	t.Helper()
	created, err := s.AddTask(text, d)
	if err != nil {
		t.Fatalf("AddTask(%q) error: %v", text, err)
	}
	return *created
}

// press feeds one key press into the app and returns any command.
func press(a *App, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := a.Update(msg)
	return cmd
}

// pressAndRun feeds a key press and, if it produced a command, executes
// it synchronously and feeds the resulting message back into the app.
func pressAndRun(a *App, k string) {
	if cmd := press(a, k); cmd != nil {
		a.Update(cmd())
	}
}

// typeText feeds a string rune by rune into the active input.
func typeText(a *App, text string) {
	for _, r := range text {
		press(a, string(r))
	}
}

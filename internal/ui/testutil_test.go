package ui

import (
	"path/filepath"
	"testing"

	"taskmaster/internal/config"
	"taskmaster/internal/engine"

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

// createTestStore creates an empty store backed by a temp file.
func createTestStore(t *testing.T) *engine.Store {
	t.Helper()
	return engine.New(filepath.Join(t.TempDir(), "tasks.json"))
}

// createTestStyles creates a default Styles instance for testing. Call
// setupTest first so glyphs render without color codes.
func createTestStyles() *Styles {
	return NewStyles(&config.ThemeConfig{})
}

// newTestApp builds an app with the given task descriptions, oldest first,
// sized to a standard terminal.
func newTestApp(t *testing.T, descriptions ...string) *App {
	t.Helper()
	setupTest(t)

	store := createTestStore(t)
	for _, d := range descriptions {
		if _, err := store.Add(d); err != nil {
			t.Fatalf("Add(%q) error = %v", d, err)
		}
	}

	app := NewApp(store, createTestStyles(), &AppConfig{
		Keys:             &config.KeysConfig{},
		ConfirmDeletions: true,
	})
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return app
}

// press sends a single key to the app. Special keys use their Bubble Tea
// names ("enter", "esc", "tab"); anything else is sent as runes.
func press(app *App, k string) {
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
	app.Update(msg)
}

// typeText sends each rune of s as its own key press.
func typeText(app *App, s string) {
	for _, r := range s {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

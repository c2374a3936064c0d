package dashboard

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contactbook/internal/contact"
	"github.com/smileynet/contactbook/internal/storage"
)

// containsText is a test alias for strings.Contains.
func containsText(s, sub string) bool {
	return strings.Contains(s, sub)
}

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

// newTestBook returns a Manager over an in-memory store, seeded with the
// given names in order. IDs are "1", "2", ... from a stepping clock.
func newTestBook(t *testing.T, names ...string) *contact.Manager {
	t.Helper()
	var tick int64
	clock := func() time.Time {
		tick++
		return time.UnixMilli(tick)
	}
	m, err := contact.NewManager(storage.NewMemoryStore(), contact.WithClock(clock))
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	for _, name := range names {
		if _, err := m.Add(name, "555-"+name, strings.ToLower(name)+"@x"); err != nil {
			t.Fatalf("Add(%q) error = %v", name, err)
		}
	}
	return m
}

func newSizedModel(t *testing.T, book Book, w, h int) Model {
	t.Helper()
	m := NewModel(book)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(Model)
}

// press sends a key to the model and returns the updated model and command.
func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeText sends s one rune at a time, as a terminal would.
func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = press(m, runes(string(r)))
	}
	return m
}

var (
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyUp       = tea.KeyMsg{Type: tea.KeyUp}
	keyCtrlC    = tea.KeyMsg{Type: tea.KeyCtrlC}
)

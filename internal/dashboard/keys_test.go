package dashboard

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestBrowseKeys_ContainsExpected(t *testing.T) {
	// Given: the browse key map
	km := BrowseKeyMap()
	allKeys := collectKeys(km.ShortHelp())

	// Then: all expected navigation and action keys are present
	expected := []string{"up", "down", "a", "e", "enter", "d", "/", "esc", "q"}
	for _, want := range expected {
		if !containsKey(allKeys, want) {
			t.Errorf("BrowseKeyMap missing key %q, got %v", want, allKeys)
		}
	}
}

func TestFormKeys_ContainsExpected(t *testing.T) {
	km := FormKeyMap()
	allKeys := collectKeys(km.ShortHelp())

	for _, want := range []string{"tab", "shift+tab", "enter", "esc"} {
		if !containsKey(allKeys, want) {
			t.Errorf("FormKeyMap missing key %q, got %v", want, allKeys)
		}
	}
}

func TestFormKeys_NoQuit(t *testing.T) {
	// Given: the form key map
	allKeys := collectKeys(FormKeyMap().ShortHelp())

	// Then: q is not bound (it is typed into the field)
	if containsKey(allKeys, "q") {
		t.Error("FormKeyMap should not contain 'q' key")
	}
}

func TestSearchKeys_ContainsExpected(t *testing.T) {
	allKeys := collectKeys(SearchKeyMap().ShortHelp())

	for _, want := range []string{"enter", "esc"} {
		if !containsKey(allKeys, want) {
			t.Errorf("SearchKeyMap missing key %q, got %v", want, allKeys)
		}
	}
}

func TestConfirmKeys_ContainsExpected(t *testing.T) {
	allKeys := collectKeys(ConfirmKeyMap().ShortHelp())

	for _, want := range []string{"y", "enter", "n", "esc"} {
		if !containsKey(allKeys, want) {
			t.Errorf("ConfirmKeyMap missing key %q, got %v", want, allKeys)
		}
	}
}

func TestKeyMaps_FullHelpCoversShortHelp(t *testing.T) {
	maps := map[string]interface {
		ShortHelp() []key.Binding
		FullHelp() [][]key.Binding
	}{
		"browse":  BrowseKeyMap(),
		"search":  SearchKeyMap(),
		"form":    FormKeyMap(),
		"confirm": ConfirmKeyMap(),
	}
	for name, km := range maps {
		var full []key.Binding
		for _, group := range km.FullHelp() {
			full = append(full, group...)
		}
		if len(full) != len(km.ShortHelp()) {
			t.Errorf("%s: FullHelp has %d bindings, ShortHelp has %d", name, len(full), len(km.ShortHelp()))
		}
	}
}

func TestHelpBindings_PerMode(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeBrowse, "/"},
		{ModeSearch, "enter"},
		{ModeForm, "tab"},
		{ModeConfirm, "y"},
	}
	for _, tt := range tests {
		km := HelpBindings(tt.mode)
		if !containsKey(collectKeys(km.ShortHelp()), tt.want) {
			t.Errorf("HelpBindings(%d) missing key %q", tt.mode, tt.want)
		}
	}
}

// collectKeys extracts all key strings from a slice of key.Binding.
func collectKeys(bindings []key.Binding) []string {
	var keys []string
	for _, b := range bindings {
		keys = append(keys, b.Keys()...)
	}
	return keys
}

func containsKey(keys []string, want string) bool {
	for _, k := range keys {
		if k == want {
			return true
		}
	}
	return false
}

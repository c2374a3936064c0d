package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// CursorMarker is the prefix shown on the selected contact row.
const CursorMarker = "▸ "

// listState manages the rendered contact rows and the cursor for the left pane.
type listState struct {
	rows   []Row
	cursor int
}

// setRows replaces the rows, keeping the cursor in range.
func (ls listState) setRows(rows []Row) listState {
	ls.rows = rows
	if ls.cursor >= len(rows) {
		ls.cursor = len(rows) - 1
	}
	if ls.cursor < 0 {
		ls.cursor = 0
	}
	return ls
}

// selectID moves the cursor to the row with the given ID, if present.
func (ls listState) selectID(id string) listState {
	for i, r := range ls.rows {
		if r.ID == id {
			ls.cursor = i
			break
		}
	}
	return ls
}

func (ls listState) handleKey(msg tea.KeyMsg) listState {
	switch msg.String() {
	case "up", "k":
		if len(ls.rows) > 0 {
			ls.cursor--
			if ls.cursor < 0 {
				ls.cursor = len(ls.rows) - 1
			}
		}
	case "down", "j":
		if len(ls.rows) > 0 {
			ls.cursor++
			if ls.cursor >= len(ls.rows) {
				ls.cursor = 0
			}
		}
	}
	return ls
}

// Selected returns the row at the cursor, or false if the list is empty.
func (ls listState) Selected() (Row, bool) {
	if len(ls.rows) == 0 || ls.cursor < 0 || ls.cursor >= len(ls.rows) {
		return Row{}, false
	}
	return ls.rows[ls.cursor], true
}

// View renders the contact rows. query is the active search filter, used
// to explain an empty result.
func (ls listState) View(query string) string {
	if len(ls.rows) == 0 {
		if query != "" {
			return mutedText.Render(fmt.Sprintf("No contacts match %q", query))
		}
		return mutedText.Render("No contacts. Press a to add one.")
	}

	var b strings.Builder
	for i, r := range ls.rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i == ls.cursor {
			b.WriteString(CursorMarker)
			b.WriteString(selectedText.Render(displayName(r.Name)))
		} else {
			b.WriteString("  ")
			b.WriteString(displayName(r.Name))
		}
	}
	return b.String()
}

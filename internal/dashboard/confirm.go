package dashboard

import (
	"fmt"
	"strings"
)

// confirmState holds the contact awaiting delete confirmation.
type confirmState struct {
	id   string
	name string
}

// View renders the delete confirmation.
func (cs confirmState) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Delete %s?\n", displayName(cs.name))
	b.WriteString("\n  This removes the contact from the address book.")
	b.WriteString("\n\n  [y/Enter] Delete   [n/Esc] Cancel")
	return b.String()
}

// displayName returns name, or a placeholder for contacts saved without one.
func displayName(name string) string {
	if name == "" {
		return "(no name)"
	}
	return name
}

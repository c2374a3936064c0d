package dashboard

import (
	"fmt"
	"io"

	"github.com/smileynet/contactbook/internal/contact"
)

// WritePlain renders contacts as indented text blocks for non-interactive
// output, one block per contact in list order.
func WritePlain(w io.Writer, contacts []contact.Contact) error {
	if len(contacts) == 0 {
		_, err := fmt.Fprintln(w, "No contacts")
		return err
	}
	for i, r := range rowsFrom(contacts) {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n  Phone: %s\n  Email: %s\n  ID:    %s\n",
			displayName(r.Name), r.PhoneNumber, r.Email, r.ID); err != nil {
			return err
		}
	}
	return nil
}

// Package dashboard implements the two-pane address book TUI: the contact
// list on the left, contact detail or the add/edit form on the right.
package dashboard

import "github.com/smileynet/contactbook/internal/contact"

// Mode represents the current dashboard view mode.
type Mode int

const (
	ModeBrowse  Mode = iota // Moving through the contact list.
	ModeSearch              // Typing into the search box; list filters live.
	ModeForm                // Adding or editing a contact.
	ModeConfirm             // Confirming a delete.
)

// Book is the set of contact operations the dashboard drives.
// *contact.Manager satisfies it.
type Book interface {
	All() []contact.Contact
	Search(query string) []contact.Contact
	Get(id string) (contact.Contact, bool)
	Add(name, phoneNumber, email string) (contact.Contact, error)
	Update(id, name, phoneNumber, email string) (bool, error)
	Delete(id string) error
}

var _ Book = (*contact.Manager)(nil)

// Row is the rendered view of a single contact.
type Row struct {
	ID          string
	Name        string
	PhoneNumber string
	Email       string
}

// rowsFrom converts contacts to rows, preserving order.
func rowsFrom(contacts []contact.Contact) []Row {
	rows := make([]Row, len(contacts))
	for i, c := range contacts {
		rows[i] = Row{ID: c.ID, Name: c.Name, PhoneNumber: c.PhoneNumber, Email: c.Email}
	}
	return rows
}

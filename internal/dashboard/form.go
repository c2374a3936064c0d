package dashboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contactbook/internal/contact"
)

const (
	fieldName = iota
	fieldPhone
	fieldEmail
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Phone", "Email"}

// formState holds the add/edit form. editingID is empty when adding.
type formState struct {
	inputs    [fieldCount]textinput.Model
	focused   int
	editingID string
}

func newFormState() formState {
	var fs formState
	placeholders := [fieldCount]string{"Ada Lovelace", "555-0100", "ada@example.com"}
	for i := range fs.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		fs.inputs[i] = in
	}
	return fs
}

// open resets the form, fills it from c when editing, and focuses the
// first field. A nil c opens an empty form for a new contact.
func (fs formState) open(c *contact.Contact) (formState, tea.Cmd) {
	fs = fs.reset()
	if c != nil {
		fs.editingID = c.ID
		fs.inputs[fieldName].SetValue(c.Name)
		fs.inputs[fieldPhone].SetValue(c.PhoneNumber)
		fs.inputs[fieldEmail].SetValue(c.Email)
	}
	cmd := fs.inputs[fieldName].Focus()
	return fs, cmd
}

// reset clears every field and the editing ID.
func (fs formState) reset() formState {
	for i := range fs.inputs {
		fs.inputs[i].Reset()
		fs.inputs[i].Blur()
	}
	fs.focused = fieldName
	fs.editingID = ""
	return fs
}

// editing reports whether the form modifies an existing contact.
func (fs formState) editing() bool {
	return fs.editingID != ""
}

// values returns the name, phone number, and email as typed.
func (fs formState) values() (name, phoneNumber, email string) {
	return fs.inputs[fieldName].Value(), fs.inputs[fieldPhone].Value(), fs.inputs[fieldEmail].Value()
}

// Update moves focus between fields or forwards the key to the focused field.
func (fs formState) Update(msg tea.KeyMsg) (formState, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return fs.focus((fs.focused + 1) % fieldCount)
	case "shift+tab", "up":
		return fs.focus((fs.focused + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	fs.inputs[fs.focused], cmd = fs.inputs[fs.focused].Update(msg)
	return fs, cmd
}

func (fs formState) focus(i int) (formState, tea.Cmd) {
	fs.inputs[fs.focused].Blur()
	fs.focused = i
	cmd := fs.inputs[i].Focus()
	return fs, cmd
}

// View renders the form fields with their labels.
func (fs formState) View() string {
	var b strings.Builder
	if fs.editing() {
		b.WriteString(titleText.Render("Edit contact"))
	} else {
		b.WriteString(titleText.Render("New contact"))
	}
	b.WriteString("\n")

	for i, in := range fs.inputs {
		b.WriteString("\n")
		label := fieldLabels[i] + ":"
		if i == fs.focused {
			b.WriteString(CursorMarker + labelText.Render(label))
		} else {
			b.WriteString("  " + mutedText.Render(label))
		}
		b.WriteString(" " + in.View())
	}

	b.WriteString("\n\n  [Enter] Save   [Esc] Cancel")
	return b.String()
}

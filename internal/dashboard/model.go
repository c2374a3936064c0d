package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/contactbook/internal/contact"
)

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// statusBarHeight is the number of lines reserved for the status line.
const statusBarHeight = 1

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// Model is the root Bubble Tea model for the address book.
// Every mutation goes through Book synchronously inside Update, followed
// by a re-render of the list.
type Model struct {
	book    Book
	mode    Mode
	width   int
	height  int
	list    listState
	form    formState
	confirm confirmState
	search  textinput.Model
	query   string
	status  string
	err     error
	help    help.Model
}

// NewModel creates a dashboard Model in browse mode showing every contact.
func NewModel(book Book) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search by name"

	m := Model{
		book:   book,
		mode:   ModeBrowse,
		form:   newFormState(),
		search: search,
		help:   help.New(),
	}
	m.refresh()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages with mode-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case ModeSearch:
			return m.handleSearchKey(msg)
		case ModeForm:
			return m.handleFormKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		default:
			return m.handleBrowseKey(msg)
		}
	}

	// Forward everything else (cursor blink) to the active input.
	var cmd tea.Cmd
	switch m.mode {
	case ModeSearch:
		m.search, cmd = m.search.Update(msg)
	case ModeForm:
		m.form.inputs[m.form.focused], cmd = m.form.inputs[m.form.focused].Update(msg)
	}
	return m, cmd
}

// handleBrowseKey processes keys while moving through the list.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	m.err = nil

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "a":
		m.mode = ModeForm
		var cmd tea.Cmd
		m.form, cmd = m.form.open(nil)
		return m, cmd

	case "e", "enter":
		row, ok := m.list.Selected()
		if !ok {
			return m, nil
		}
		c, found := m.book.Get(row.ID)
		if !found {
			m.status = "Contact no longer exists"
			m.refresh()
			return m, nil
		}
		m.mode = ModeForm
		var cmd tea.Cmd
		m.form, cmd = m.form.open(&c)
		return m, cmd

	case "d":
		row, ok := m.list.Selected()
		if !ok {
			return m, nil
		}
		m.confirm = confirmState{id: row.ID, name: row.Name}
		m.mode = ModeConfirm
		return m, nil

	case "/":
		m.mode = ModeSearch
		cmd := m.search.Focus()
		return m, cmd

	case "esc":
		if m.query != "" {
			m.clearSearch()
			m.refresh()
		}
		return m, nil
	}

	m.list = m.list.handleKey(msg)
	return m, nil
}

// handleSearchKey filters the list on every keystroke.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		m.mode = ModeBrowse
		return m, nil
	case "esc":
		m.clearSearch()
		m.refresh()
		m.mode = ModeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.query {
		m.query = q
		m.list.cursor = 0
		m.refresh()
	}
	return m, cmd
}

// handleFormKey routes keys to the form; enter submits, esc cancels.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = m.form.reset()
		m.mode = ModeBrowse
		return m, nil
	case "enter":
		return m.submit(), nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// submit saves the form: an update when editing, an add otherwise. The
// list is then re-rendered in full with the search filter cleared.
func (m Model) submit() Model {
	name, phone, email := m.form.values()

	var selectID string
	if m.form.editing() {
		selectID = m.form.editingID
		found, err := m.book.Update(m.form.editingID, name, phone, email)
		switch {
		case err != nil:
			m.err = err
		case !found:
			m.status = "Contact no longer exists"
		default:
			m.status = fmt.Sprintf("Updated %s", displayName(name))
		}
	} else {
		c, err := m.book.Add(name, phone, email)
		selectID = c.ID
		if err != nil {
			m.err = err
		} else {
			m.status = fmt.Sprintf("Added %s", displayName(name))
		}
	}

	m.form = m.form.reset()
	m.mode = ModeBrowse
	m.clearSearch()
	m.refresh()
	m.list = m.list.selectID(selectID)
	return m
}

// handleConfirmKey deletes on y/enter and returns to browse on n/esc.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if err := m.book.Delete(m.confirm.id); err != nil {
			m.err = err
		} else {
			m.status = fmt.Sprintf("Deleted %s", displayName(m.confirm.name))
		}
		m.confirm = confirmState{}
		m.mode = ModeBrowse
		m.clearSearch()
		m.refresh()
		return m, nil
	case "n", "esc":
		m.confirm = confirmState{}
		m.mode = ModeBrowse
		return m, nil
	}
	return m, nil
}

// clearSearch empties the search box and the active filter.
func (m *Model) clearSearch() {
	m.search.SetValue("")
	m.search.Blur()
	m.query = ""
}

// refresh re-renders the list from the book: every contact when no filter
// is active, otherwise the search matches.
func (m *Model) refresh() {
	var contacts []contact.Contact
	if m.query == "" {
		contacts = m.book.All()
	} else {
		contacts = m.book.Search(m.query)
	}
	m.list = m.list.setRows(rowsFrom(contacts))
}

// contentHeight returns the usable height for pane content,
// accounting for border chrome, status line, and help bar.
func (m Model) contentHeight() int {
	h := m.height - borderChrome - statusBarHeight - helpBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// View renders the two-pane layout with status line and help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	leftWidth, rightWidth := PaneWidths(m.width)
	contentHeight := m.contentHeight()

	leftStyle, rightStyle := FocusedBorder(), UnfocusedBorder()
	if m.mode == ModeForm || m.mode == ModeConfirm {
		leftStyle, rightStyle = UnfocusedBorder(), FocusedBorder()
	}
	leftStyle = leftStyle.
		Width(leftWidth - borderChrome).
		Height(contentHeight)
	rightStyle = rightStyle.
		Width(rightWidth - borderChrome).
		Height(contentHeight)

	leftPane := leftStyle.Render(m.viewLeft())
	rightPane := rightStyle.Render(m.viewRight())
	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
	helpView := m.help.View(HelpBindings(m.mode))

	return lipgloss.JoinVertical(lipgloss.Left, panes, m.viewStatus(), helpView)
}

// viewLeft renders the search box (when active) above the contact list.
func (m Model) viewLeft() string {
	list := m.list.View(m.query)
	if m.mode == ModeSearch || m.query != "" {
		return m.search.View() + "\n\n" + list
	}
	return list
}

// viewRight renders the form, the delete confirmation, or the selected
// contact's detail depending on mode.
func (m Model) viewRight() string {
	switch m.mode {
	case ModeForm:
		return m.form.View()
	case ModeConfirm:
		return m.confirm.View()
	}

	row, ok := m.list.Selected()
	if !ok {
		return mutedText.Render("No contact selected")
	}
	return viewDetail(row)
}

// viewDetail renders a contact's fields.
func viewDetail(r Row) string {
	var b strings.Builder
	b.WriteString(titleText.Render(displayName(r.Name)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "\n%s %s", labelText.Render("Phone:"), r.PhoneNumber)
	fmt.Fprintf(&b, "\n%s %s", labelText.Render("Email:"), r.Email)
	fmt.Fprintf(&b, "\n%s %s", mutedText.Render("ID:   "), mutedText.Render(r.ID))
	b.WriteString("\n\n  [e] Edit   [d] Delete")
	return b.String()
}

// viewStatus renders the last error or confirmation message.
func (m Model) viewStatus() string {
	if m.err != nil {
		return errorText.Render("Error: " + m.err.Error())
	}
	return statusText.Render(m.status)
}

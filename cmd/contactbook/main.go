package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/smileynet/contactbook/internal/config"
	"github.com/smileynet/contactbook/internal/contact"
	"github.com/smileynet/contactbook/internal/dashboard"
	"github.com/smileynet/contactbook/internal/logging"
	"github.com/smileynet/contactbook/internal/storage"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for contactbook.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	UI      UICmd            `cmd:"" default:"1" help:"Open the interactive address book (default)."`
	Add     AddCmd           `cmd:"" help:"Add a contact."`
	List    ListCmd          `cmd:"" help:"List all contacts."`
	Search  SearchCmd        `cmd:"" help:"List contacts whose name contains a query (case-insensitive)."`
	Update  UpdateCmd        `cmd:"" help:"Replace a contact's name, phone number, and email."`
	Delete  DeleteCmd        `cmd:"" help:"Delete a contact."`
}

// session bundles the contact manager with the resources backing it.
type session struct {
	book     *contact.Manager
	logger   *zap.Logger
	closers  []func() error // released before the log, most recent first
	closeLog func() error
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/contactbook/config.yaml"),
		".contactbook/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSession loads config, opens the log and the store, and loads the
// contact list. The caller must Close the session.
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	s := &session{logger: logger, closeLog: closeLog}

	store, closeStore, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Dir)
	if err != nil {
		logger.Error("opening store failed", zap.Error(err))
		_ = s.Close()
		return nil, err
	}
	s.closers = append(s.closers, closeStore)
	logger.Debug("store opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("dir", cfg.Storage.Dir))

	book, err := contact.NewManager(store, contact.WithLogger(logger))
	if err != nil {
		logger.Error("loading contacts failed", zap.Error(err))
		_ = s.Close()
		return nil, err
	}
	s.book = book
	return s, nil
}

// Close releases the store, logging any failure, then flushes and closes
// the log. It returns every error encountered.
func (s *session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.logger.Error("closing store failed", zap.Error(err))
			errs = append(errs, err)
		}
	}
	if s.closeLog != nil {
		if err := s.closeLog(); err != nil {
			errs = append(errs, fmt.Errorf("closing log: %w", err))
		}
	}
	return errors.Join(errs...)
}

// withSession opens a session, runs fn, and closes the session. A close
// failure is returned only when fn succeeded.
func withSession(name string, fn func(*session) error) (err error) {
	s, err := openSession()
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%s: %w", name, cerr)
		}
	}()

	if err := fn(s); err != nil {
		s.logger.Error("command failed", zap.String("command", name), zap.Error(err))
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// --- UI command ---

// UICmd opens the interactive dashboard.
type UICmd struct{}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the dashboard TUI.
func (u *UICmd) Run() error {
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !tty {
		return u.run(false, nil)
	}
	return withSession("ui", func(s *session) error {
		prog := tea.NewProgram(dashboard.NewModel(s.book), tea.WithAltScreen())
		return u.run(true, prog)
	})
}

// run executes the tea program, enabling testable wiring.
func (u *UICmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("ui: requires a terminal (TTY); use list or search for plain output")
	}
	_, err := prog.Run()
	return err
}

// --- Plain commands ---

// AddCmd adds a contact.
type AddCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone number."`
	Email string `arg:"" help:"Email address."`
}

// Run executes the add command.
func (a *AddCmd) Run() error {
	return withSession("add", func(s *session) error { return a.run(os.Stdout, s.book) })
}

func (a *AddCmd) run(w io.Writer, book dashboard.Book) error {
	c, err := book.Add(a.Name, a.Phone, a.Email)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Added %s (%s)\n", a.Name, c.ID)
	return nil
}

// ListCmd prints every contact.
type ListCmd struct{}

// Run executes the list command.
func (l *ListCmd) Run() error {
	return withSession("list", func(s *session) error { return l.run(os.Stdout, s.book) })
}

func (l *ListCmd) run(w io.Writer, book dashboard.Book) error {
	return dashboard.WritePlain(w, book.All())
}

// SearchCmd prints contacts matching a name query.
type SearchCmd struct {
	Query string `arg:"" help:"Substring to look for in contact names."`
}

// Run executes the search command.
func (c *SearchCmd) Run() error {
	return withSession("search", func(s *session) error { return c.run(os.Stdout, s.book) })
}

func (c *SearchCmd) run(w io.Writer, book dashboard.Book) error {
	return dashboard.WritePlain(w, book.Search(c.Query))
}

// UpdateCmd overwrites a contact's editable fields.
type UpdateCmd struct {
	ID    string `arg:"" help:"Contact ID."`
	Name  string `arg:"" help:"New name."`
	Phone string `arg:"" help:"New phone number."`
	Email string `arg:"" help:"New email address."`
}

// Run executes the update command.
func (u *UpdateCmd) Run() error {
	return withSession("update", func(s *session) error { return u.run(os.Stdout, s.book) })
}

// run updates the contact. An unknown ID is reported as a warning, not an error.
func (u *UpdateCmd) run(w io.Writer, book dashboard.Book) error {
	found, err := book.Update(u.ID, u.Name, u.Phone, u.Email)
	if err != nil {
		return err
	}
	if !found {
		_, _ = fmt.Fprintf(w, "warning: no contact with ID %q (try: contactbook list)\n", u.ID)
		return nil
	}
	_, _ = fmt.Fprintf(w, "Updated %s\n", u.ID)
	return nil
}

// DeleteCmd removes a contact.
type DeleteCmd struct {
	ID string `arg:"" help:"Contact ID."`
}

// Run executes the delete command.
func (d *DeleteCmd) Run() error {
	return withSession("delete", func(s *session) error { return d.run(os.Stdout, s.book) })
}

// run deletes the contact. An unknown ID is reported as a warning, not an error.
func (d *DeleteCmd) run(w io.Writer, book dashboard.Book) error {
	_, existed := book.Get(d.ID)
	if err := book.Delete(d.ID); err != nil {
		return err
	}
	if !existed {
		_, _ = fmt.Fprintf(w, "warning: no contact with ID %q (try: contactbook list)\n", d.ID)
		return nil
	}
	_, _ = fmt.Fprintf(w, "Deleted %s\n", d.ID)
	return nil
}

const (
	exitSuccess = 0
	exitCorrupt = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, contact.ErrCorrupt) {
		return exitCorrupt
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Description("A small address book with a terminal UI."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}

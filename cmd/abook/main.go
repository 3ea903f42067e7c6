package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/smileynet/abook/internal/book"
	"github.com/smileynet/abook/internal/command"
	"github.com/smileynet/abook/internal/config"
	"github.com/smileynet/abook/internal/store"
	"github.com/smileynet/abook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for abook.
type CLI struct {
	Version   kong.VersionFlag `help:"Show version." short:"V"`
	Shell     ShellCmd         `cmd:"" default:"1" help:"Open an interactive session (default)."`
	List      ListCmd          `cmd:"" help:"List every contact."`
	Birthdays BirthdaysCmd     `cmd:"" help:"List contacts with upcoming birthdays."`
	Export    ExportCmd        `cmd:"" help:"Write the contact book to another file."`
}

// bookStore abstracts the contact book persistence for testing.
type bookStore interface {
	Load() (*book.AddressBook, bool, error)
	Save(*book.AddressBook) error
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/abook/config.yaml"),
		".abook.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ShellCmd runs the interactive session.
type ShellCmd struct {
	File  string `help:"Contact book file (overrides config)." type:"path"`
	Plain bool   `help:"Force plain text output even if stdout is a TTY." default:"false"`
}

// Run loads the book, runs the session, and saves on the way out.
func (s *ShellCmd) Run() error {
	cfg, err := setup(s.File)
	if err != nil {
		return err
	}

	display := tui.NewDisplay(tui.DisplayOptions{
		ForcePlain: s.Plain || cfg.Display.Plain,
	})
	return s.run(os.Stdout, store.NewFileStore(cfg.Storage.Path), display, cfg.Birthdays.WindowDays)
}

// run executes the session with the given store and display, enabling testable wiring.
func (s *ShellCmd) run(w io.Writer, st bookStore, display tui.Display, windowDays int) error {
	b, _, err := st.Load()
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	sess := command.NewSession(b, command.WithWindow(windowDays))
	runErr := display.Run(sess)

	// Normal termination always attempts to persist the book, even when
	// the display loop itself failed.
	if saveErr := st.Save(sess.Book()); saveErr != nil {
		_, _ = fmt.Fprintf(w, "warning: saving contact book failed: %v\n", saveErr)
		if runErr == nil {
			return fmt.Errorf("shell: %w", saveErr)
		}
	}

	if runErr != nil {
		return fmt.Errorf("shell: %w", runErr)
	}
	return nil
}

// ListCmd prints every contact without opening a session.
type ListCmd struct {
	File string `help:"Contact book file (overrides config)." type:"path"`
}

// Run executes the list command.
func (l *ListCmd) Run() error {
	cfg, err := setup(l.File)
	if err != nil {
		return err
	}
	return l.run(os.Stdout, store.NewFileStore(cfg.Storage.Path))
}

// run prints the contact list from the given store, enabling testable wiring.
func (l *ListCmd) run(w io.Writer, st bookStore) error {
	b, _, err := st.Load()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	_, _ = fmt.Fprintln(w, tui.RenderContactList(b.All()))
	return nil
}

// BirthdaysCmd prints contacts with birthdays due within the window.
type BirthdaysCmd struct {
	File string `help:"Contact book file (overrides config)." type:"path"`
	Days int    `help:"Window in days (overrides config)." default:"0"`
}

// Run executes the birthdays command.
func (b *BirthdaysCmd) Run() error {
	cfg, err := setup(b.File)
	if err != nil {
		return err
	}

	days := cfg.Birthdays.WindowDays
	if b.Days > 0 {
		days = b.Days
	}
	return b.run(os.Stdout, store.NewFileStore(cfg.Storage.Path), time.Now(), days)
}

// run prints upcoming birthdays from the given store, enabling testable wiring.
func (b *BirthdaysCmd) run(w io.Writer, st bookStore, now time.Time, windowDays int) error {
	bk, _, err := st.Load()
	if err != nil {
		return fmt.Errorf("birthdays: %w", err)
	}
	_, _ = fmt.Fprintln(w, tui.RenderUpcoming(bk.Upcoming(now, windowDays)))
	return nil
}

// ExportCmd copies the contact book to a caller-chosen file.
type ExportCmd struct {
	Out  string `arg:"" help:"Destination file." type:"path"`
	File string `help:"Contact book file (overrides config)." type:"path"`
}

// Run executes the export command.
func (e *ExportCmd) Run() error {
	cfg, err := setup(e.File)
	if err != nil {
		return err
	}
	return e.run(os.Stdout, store.NewFileStore(cfg.Storage.Path), store.NewFileStore(e.Out))
}

// run loads from st and saves to dst, enabling testable wiring.
func (e *ExportCmd) run(w io.Writer, st bookStore, dst bookStore) error {
	b, _, err := st.Load()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := dst.Save(b); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d contacts to %s\n", b.Len(), e.Out)
	return nil
}

// setup loads and validates config, applying the --file override.
// Failures here are setup errors and map to exitSetup.
func setup(fileOverride string) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, &setupError{err: err}
	}
	if fileOverride != "" {
		cfg.Storage.Path = fileOverride
	}
	if err := cfg.Validate(); err != nil {
		return nil, &setupError{err: err}
	}
	return cfg, nil
}

// setupError marks failures that happen before any command work starts.
type setupError struct {
	err error
}

func (e *setupError) Error() string { return e.err.Error() }
func (e *setupError) Unwrap() error { return e.err }

// Exit codes.
const (
	exitSuccess = 0
	exitFailure = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *setupError
	if errors.As(err, &se) {
		return exitSetup
	}
	return exitFailure
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, kong.Vars{"version": version + " " + commit + " " + date})
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}

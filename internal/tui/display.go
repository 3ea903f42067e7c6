// Package tui implements the interactive session display: a Bubble Tea
// prompt when stdout is a terminal, and a plain line-oriented loop
// otherwise.
package tui

import (
	"bufio"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/abook/internal/command"
)

// Display runs an interactive session to completion.
type Display interface {
	Run(sess *command.Session) error
}

// DisplayOptions configures display creation.
type DisplayOptions struct {
	Input      io.Reader // Command source (default: os.Stdin).
	Writer     io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force plain text even if TTY.
}

// NewDisplay returns a TUI display when stdout is a TTY, or a plain text
// display otherwise. ForcePlain overrides TTY detection.
func NewDisplay(opts DisplayOptions) Display {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	if opts.ForcePlain || !isTTY(opts.Writer) {
		return &PlainDisplay{in: opts.Input, w: opts.Writer}
	}

	return &TUIDisplay{in: opts.Input, w: opts.Writer}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainDisplay runs a prompt/reply loop over plain text lines.
type PlainDisplay struct {
	in io.Reader
	w  io.Writer
}

// Run reads commands until exit/close or end of input. Validation failures
// are printed as replies; only I/O failures return an error.
func (d *PlainDisplay) Run(sess *command.Session) error {
	_, _ = fmt.Fprintln(d.w, greeting)

	scanner := bufio.NewScanner(d.in)
	for {
		_, _ = fmt.Fprint(d.w, "Enter a command: ")
		if !scanner.Scan() {
			// End of input behaves like exit so the book still gets saved.
			_, _ = fmt.Fprintln(d.w)
			break
		}

		res := sess.Execute(scanner.Text())
		if res.Reply != "" {
			_, _ = fmt.Fprintln(d.w, res.Reply)
		}
		if res.Quit {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("tui: reading input: %w", err)
	}
	return nil
}

// TUIDisplay runs the session as a Bubble Tea program.
// Falls back to PlainDisplay if the TUI program fails to start.
type TUIDisplay struct {
	in io.Reader
	w  io.Writer
}

// Run starts the Bubble Tea session program.
func (d *TUIDisplay) Run(sess *command.Session) error {
	m := NewModel(sess)
	p := tea.NewProgram(m, tea.WithOutput(d.w))

	if _, err := p.Run(); err != nil {
		plain := &PlainDisplay{in: d.in, w: d.w}
		return plain.Run(sess)
	}
	return nil
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/abook/internal/command"
)

const greeting = "Welcome to the assistant bot!"

// Model is the Bubble Tea model for the interactive session: a command
// prompt over a scrollback viewport. Every submitted line goes through the
// shared command.Session, so behavior is identical to the plain display.
type Model struct {
	sess  *command.Session
	input textinput.Model
	vp    viewport.Model
	help  help.Model
	keys  sessionKeys

	lines   []string // Scrollback, newest last.
	history []string // Submitted lines for up/down recall.
	histIdx int      // len(history) means "past the end" (editing a new line).

	width  int
	height int
	ready  bool
	done   bool
}

// NewModel creates a session model over sess.
func NewModel(sess *command.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a command (try: help)"
	ti.Prompt = promptStyle.Render("> ")
	ti.Focus()

	return Model{
		sess:  sess,
		input: ti,
		help:  help.New(),
		keys:  defaultSessionKeys(),
		lines: []string{greeting},
	}
}

// Done reports whether the session ended via exit/close.
func (m Model) Done() bool {
	return m.done
}

// Init starts the input cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve rows for the title, the input line, and the help bar.
		vpHeight := msg.Height - 4
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpHeight
		}
		m.refreshScrollback()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Submit):
			return m.submit()

		case key.Matches(msg, m.keys.HistoryPrev):
			if m.histIdx > 0 {
				m.histIdx--
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, m.keys.HistoryNext):
			if m.histIdx < len(m.history) {
				m.histIdx++
				if m.histIdx == len(m.history) {
					m.input.SetValue("")
				} else {
					m.input.SetValue(m.history[m.histIdx])
					m.input.CursorEnd()
				}
			}
			return m, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit executes the current input line against the session.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	if strings.TrimSpace(line) == "" {
		m.input.Reset()
		return m, nil
	}

	m.history = append(m.history, line)
	m.histIdx = len(m.history)

	m.lines = append(m.lines, echoStyle.Render("> "+line))
	res := m.sess.Execute(line)
	if res.Reply != "" {
		m.lines = append(m.lines, res.Reply)
	}
	m.refreshScrollback()
	m.input.Reset()

	if res.Quit {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) refreshScrollback() {
	if !m.ready {
		return
	}
	m.vp.SetContent(strings.Join(m.lines, "\n"))
	m.vp.GotoBottom()
}

// View renders the title, scrollback, prompt, and help bar.
func (m Model) View() string {
	if !m.ready {
		return greeting + "\n"
	}
	return titleStyle.Render("abook") + "\n" +
		m.vp.View() + "\n" +
		m.input.View() + "\n" +
		m.help.View(m.keys)
}

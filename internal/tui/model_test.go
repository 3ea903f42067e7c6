package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/smileynet/abook/internal/book"
	"github.com/smileynet/abook/internal/command"
)

func newSessionModel() Model {
	return NewModel(command.NewSession(book.New()))
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func typeAndSubmit(t *testing.T, m Model, line string) Model {
	t.Helper()
	m.input.SetValue(line)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model)
}

func TestNewModel_StartsWithGreeting(t *testing.T) {
	m := newSessionModel()

	if len(m.lines) != 1 || m.lines[0] != greeting {
		t.Errorf("lines = %v, want just the greeting", m.lines)
	}
	if m.Done() {
		t.Error("new model is done, want not done")
	}
	if m.Init() == nil {
		t.Error("Init() = nil, want blink command")
	}
}

func TestModel_SubmitExecutesCommand(t *testing.T) {
	m := sized(t, newSessionModel())

	m = typeAndSubmit(t, m, "add alice 1234567890")

	joined := strings.Join(m.lines, "\n")
	if !strings.Contains(joined, "Contact added.") {
		t.Errorf("scrollback = %q, want it to contain the add reply", joined)
	}
	if m.input.Value() != "" {
		t.Errorf("input = %q after submit, want cleared", m.input.Value())
	}
	if m.Done() {
		t.Error("model done after add, want still running")
	}
}

func TestModel_SubmitBlankLineIsIgnored(t *testing.T) {
	m := sized(t, newSessionModel())

	before := len(m.lines)
	m = typeAndSubmit(t, m, "   ")

	if len(m.lines) != before {
		t.Errorf("scrollback grew on blank submit: %v", m.lines)
	}
}

func TestModel_ExitCommandQuits(t *testing.T) {
	m := sized(t, newSessionModel())

	m.input.SetValue("exit")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if !m.Done() {
		t.Error("Done() = false after exit, want true")
	}
	if cmd == nil {
		t.Fatal("Update(exit) cmd = nil, want tea.Quit")
	}
}

func TestModel_QuitKeyQuits(t *testing.T) {
	m := sized(t, newSessionModel())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(Model)

	if !m.Done() {
		t.Error("Done() = false after ctrl+c, want true")
	}
	if cmd == nil {
		t.Fatal("Update(ctrl+c) cmd = nil, want tea.Quit")
	}
}

func TestModel_HistoryRecall(t *testing.T) {
	m := sized(t, newSessionModel())
	m = typeAndSubmit(t, m, "hello")
	m = typeAndSubmit(t, m, "all")

	// Up twice walks back through history
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	if m.input.Value() != "all" {
		t.Errorf("input = %q after one up, want %q", m.input.Value(), "all")
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	if m.input.Value() != "hello" {
		t.Errorf("input = %q after two ups, want %q", m.input.Value(), "hello")
	}

	// Down walks forward and ends on an empty line
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	if m.input.Value() != "all" {
		t.Errorf("input = %q after down, want %q", m.input.Value(), "all")
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	if m.input.Value() != "" {
		t.Errorf("input = %q past end of history, want empty", m.input.Value())
	}
}

func TestModel_ViewBeforeAndAfterSizing(t *testing.T) {
	m := newSessionModel()
	if got := m.View(); !strings.Contains(got, greeting) {
		t.Errorf("unsized View() = %q, want greeting", got)
	}

	m = sized(t, m)
	got := m.View()
	if !strings.Contains(got, "abook") {
		t.Errorf("View() = %q, want title", got)
	}
	if !strings.Contains(got, greeting) {
		t.Errorf("View() = %q, want greeting in scrollback", got)
	}
}

// TestModel_Teatest_Session drives a whole session through teatest.
func TestModel_Teatest_Session(t *testing.T) {
	m := newSessionModel()
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	tm.Type("add alice 1234567890")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Type("phone alice")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Type("exit")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	if !final.Done() {
		t.Error("final model not done, want done")
	}
	joined := strings.Join(final.lines, "\n")
	for _, want := range []string{"Contact added.", "1234567890", "Good bye!"} {
		if !strings.Contains(joined, want) {
			t.Errorf("scrollback missing %q:\n%s", want, joined)
		}
	}
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/abook/internal/book"
)

var (
	accent = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dim    = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headerStyle = lipgloss.NewStyle().Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(accent)
	echoStyle   = lipgloss.NewStyle().Foreground(dim)
	dateStyle   = lipgloss.NewStyle().Foreground(dim)
)

// RenderContactList renders every record as a line under a bold header.
// Used by the one-shot list command; lipgloss degrades to plain text when
// the writer is not a terminal.
func RenderContactList(records []*book.Record) string {
	if len(records) == 0 {
		return "Phonebook is empty."
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("All contacts:"))
	for _, r := range records {
		sb.WriteString("\n" + r.String())
		if bd, ok := r.Birthday(); ok {
			sb.WriteString(dateStyle.Render(", birthday: " + bd.String()))
		}
	}
	return sb.String()
}

// RenderUpcoming renders the names with birthdays due within the window.
func RenderUpcoming(records []*book.Record) string {
	if len(records) == 0 {
		return "No upcoming birthdays in the next week."
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Users to greet in the next week:"))
	for _, r := range records {
		line := "\n" + r.Name()
		if bd, ok := r.Birthday(); ok {
			line += dateStyle.Render(" (" + bd.String() + ")")
		}
		sb.WriteString(line)
	}
	return sb.String()
}

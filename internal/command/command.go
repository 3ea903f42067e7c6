// Package command parses user input lines and dispatches them against an
// address book. It is display-agnostic: both the plain stdin loop and the
// Bubble Tea session feed lines through the same Session.
package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/smileynet/abook/internal/book"
	"github.com/smileynet/abook/internal/field"
)

// Parse splits an input line into a lower-cased command word and the raw
// argument remainder. An empty or blank line yields an empty command.
func Parse(line string) (cmd, args string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", ""
	}
	return strings.ToLower(fields[0]), strings.Join(fields[1:], " ")
}

// Result is the outcome of one dispatched command.
type Result struct {
	Reply string // Text to show the user; empty for blank input.
	Quit  bool   // True when the session should end.
}

// Session dispatches commands against a single address book.
type Session struct {
	book       *book.AddressBook
	now        func() time.Time
	windowDays int
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source used by the birthdays command.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithWindow overrides the upcoming-birthday window in days.
func WithWindow(days int) Option {
	return func(s *Session) { s.windowDays = days }
}

// NewSession creates a Session over the given book.
func NewSession(b *book.AddressBook, opts ...Option) *Session {
	s := &Session{
		book:       b,
		now:        time.Now,
		windowDays: 7,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book returns the session's address book.
func (s *Session) Book() *book.AddressBook {
	return s.book
}

// Execute parses and runs one input line. Validation failures come back as
// ordinary replies; nothing a user types can produce an error that ends
// the session short of exit/close.
func (s *Session) Execute(line string) Result {
	cmd, args := Parse(line)
	switch cmd {
	case "":
		return Result{}
	case "exit", "close":
		return Result{Reply: "Good bye!", Quit: true}
	case "hello":
		return Result{Reply: "How can I help you?"}
	case "help":
		return Result{Reply: helpText}
	case "add":
		return Result{Reply: s.add(args)}
	case "change":
		return Result{Reply: s.change(args)}
	case "phone":
		return Result{Reply: s.phone(args)}
	case "find":
		return Result{Reply: s.find(args)}
	case "delete":
		return Result{Reply: s.delete(args)}
	case "all":
		return Result{Reply: s.all()}
	case "add-birthday":
		return Result{Reply: s.addBirthday(args)}
	case "show-birthday":
		return Result{Reply: s.showBirthday(args)}
	case "birthdays":
		return Result{Reply: s.birthdays()}
	default:
		return Result{Reply: "Invalid command. Please try again."}
	}
}

const helpText = `Commands:
  hello                              greeting
  add <name> [phone ...]             add a contact (phones are 10 digits)
  change <name> <newphone>           replace the contact's first phone
  phone <name>                       show the contact's first phone
  find <name>                        show the full contact record
  delete <name>                      remove a contact
  all                                list every contact
  add-birthday <name> <DD.MM.YYYY>   set a contact's birthday
  show-birthday <name>               show a contact's birthday
  birthdays                          contacts with birthdays due soon
  exit | close                       save and quit`

func usage(text string) string {
	return "Invalid command format. Usage: " + text
}

// add creates (or overwrites) a contact. Every phone must validate before
// the book is touched, so a bad token leaves no partial contact behind.
func (s *Session) add(args string) string {
	tokens := strings.Fields(args)
	if len(tokens) == 0 {
		return usage("add <name> [phone ...]")
	}
	name, phones := tokens[0], tokens[1:]

	r, err := book.NewRecord(name)
	if err != nil {
		return err.Error()
	}
	for _, p := range phones {
		if err := r.AddPhone(p); err != nil {
			return err.Error()
		}
	}

	if s.book.Add(r) {
		return "Contact updated."
	}
	return "Contact added."
}

func (s *Session) change(args string) string {
	tokens := strings.Fields(args)
	if len(tokens) != 2 {
		return usage("change <name> <newphone>")
	}
	name, newPhone := tokens[0], tokens[1]

	r, ok := s.book.Find(name)
	if !ok {
		return "Contact not found."
	}

	phones := r.Phones()
	if len(phones) == 0 {
		// Nothing to replace: store the number as the first phone.
		if err := r.AddPhone(newPhone); err != nil {
			return err.Error()
		}
		return "Contact updated."
	}

	if err := r.EditPhone(phones[0].String(), newPhone); err != nil {
		return err.Error()
	}
	return "Contact updated."
}

func (s *Session) phone(args string) string {
	name := strings.TrimSpace(args)
	if name == "" {
		return usage("phone <name>")
	}

	r, ok := s.book.Find(name)
	if !ok {
		return "Contact not found."
	}
	phones := r.Phones()
	if len(phones) == 0 {
		return fmt.Sprintf("%s has no phone numbers.", name)
	}
	return fmt.Sprintf("%s's phone number: %s", name, phones[0])
}

func (s *Session) find(args string) string {
	name := strings.TrimSpace(args)
	if name == "" {
		return usage("find <name>")
	}

	r, ok := s.book.Find(name)
	if !ok {
		return "Record not found."
	}
	return fmt.Sprintf("Found record: %s", r)
}

func (s *Session) delete(args string) string {
	name := strings.TrimSpace(args)
	if name == "" {
		return usage("delete <name>")
	}

	if _, ok := s.book.Find(name); !ok {
		return "Record not found."
	}
	s.book.Delete(name)
	return fmt.Sprintf("Record '%s' deleted successfully.", name)
}

func (s *Session) all() string {
	if s.book.Len() == 0 {
		return "Phonebook is empty."
	}

	var sb strings.Builder
	sb.WriteString("All contacts:")
	for _, r := range s.book.All() {
		first := "(no phones)"
		if phones := r.Phones(); len(phones) > 0 {
			first = phones[0].String()
		}
		fmt.Fprintf(&sb, "\n%s: %s", r.Name(), first)
	}
	return sb.String()
}

func (s *Session) addBirthday(args string) string {
	tokens := strings.Fields(args)
	if len(tokens) != 2 {
		return usage("add-birthday <name> <DD.MM.YYYY>")
	}
	name, dateStr := tokens[0], tokens[1]

	r, ok := s.book.Find(name)
	if !ok {
		return "Contact not found."
	}

	bd, err := field.NewBirthday(dateStr)
	if err != nil {
		return err.Error()
	}
	r.SetBirthday(bd)
	return "Birthday added."
}

func (s *Session) showBirthday(args string) string {
	name := strings.TrimSpace(args)
	if name == "" {
		return usage("show-birthday <name>")
	}

	r, ok := s.book.Find(name)
	if !ok {
		return "Contact not found."
	}
	bd, ok := r.Birthday()
	if !ok {
		return fmt.Sprintf("%s has no registered birthday.", name)
	}
	return fmt.Sprintf("%s's birthday is: %s", name, bd)
}

func (s *Session) birthdays() string {
	due := s.book.Upcoming(s.now(), s.windowDays)
	if len(due) == 0 {
		return "No upcoming birthdays in the next week."
	}

	var sb strings.Builder
	sb.WriteString("Users to greet in the next week:")
	for _, r := range due {
		sb.WriteString("\n" + r.Name())
	}
	return sb.String()
}

// Package field defines the validated value types stored on a contact:
// names, phone numbers, and birthdays. Constructors return a
// *ValidationError with a user-facing message when the input is malformed;
// a zero-value field is never valid.
package field

import (
	"errors"
	"strings"
	"time"
)

// BirthdayLayout is the wire and display format for birthdays.
const BirthdayLayout = "02.01.2006"

// ValidationError reports malformed field input. The message is meant to be
// shown to the user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Name is a contact's display name.
type Name struct {
	value string
}

// NewName creates a Name. The only requirement is that the value is not
// blank.
func NewName(value string) (Name, error) {
	if strings.TrimSpace(value) == "" {
		return Name{}, &ValidationError{Message: "Name cannot be empty"}
	}
	return Name{value: value}, nil
}

func (n Name) String() string {
	return n.value
}

// Phone is a ten-digit phone number, stored exactly as entered.
type Phone struct {
	value string
}

// NewPhone creates a Phone. The value must be exactly 10 decimal digits.
func NewPhone(value string) (Phone, error) {
	if !isTenDigits(value) {
		return Phone{}, &ValidationError{Message: "Phone number must contain 10 digits"}
	}
	return Phone{value: value}, nil
}

func (p Phone) String() string {
	return p.value
}

func isTenDigits(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Birthday is a calendar date, parsed from and rendered as DD.MM.YYYY.
// Only the date components are meaningful; the time of day is always zero.
type Birthday struct {
	date time.Time
}

// NewBirthday parses value as a real calendar date in DD.MM.YYYY format.
// Impossible dates (29.02.2023, 31.04.2020) are rejected, not normalized.
func NewBirthday(value string) (Birthday, error) {
	d, err := time.Parse(BirthdayLayout, value)
	if err != nil {
		return Birthday{}, &ValidationError{Message: "Invalid date format. Use DD.MM.YYYY"}
	}
	return Birthday{date: d}, nil
}

// Date returns the underlying date value.
func (b Birthday) Date() time.Time {
	return b.date
}

func (b Birthday) String() string {
	return b.date.Format(BirthdayLayout)
}

// Package book implements the contact record and the name-keyed address
// book, including the upcoming-birthday window query.
package book

import (
	"fmt"
	"strings"

	"github.com/smileynet/abook/internal/field"
)

// Record is one contact: an immutable name, an ordered list of phone
// numbers (duplicates allowed), and at most one birthday.
type Record struct {
	name     field.Name
	phones   []field.Phone
	birthday *field.Birthday
}

// NewRecord creates a Record with the given name and no phones or birthday.
func NewRecord(name string) (*Record, error) {
	n, err := field.NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the contact's name.
func (r *Record) Name() string {
	return r.name.String()
}

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []field.Phone {
	out := make([]field.Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// Birthday returns the contact's birthday and whether one is set.
func (r *Record) Birthday() (field.Birthday, bool) {
	if r.birthday == nil {
		return field.Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates number and appends it to the phone list. On a
// validation failure the list is left untouched.
func (r *Record) AddPhone(number string) error {
	p, err := field.NewPhone(number)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes every phone whose value equals number. Removing a
// number that is not present is a no-op.
func (r *Record) RemovePhone(number string) {
	kept := r.phones[:0]
	for _, p := range r.phones {
		if p.String() != number {
			kept = append(kept, p)
		}
	}
	r.phones = kept
}

// EditPhone replaces the first phone equal to oldNumber with newNumber.
// The new number is validated before any mutation. If oldNumber matches
// nothing the record is unchanged and no error is returned.
func (r *Record) EditPhone(oldNumber, newNumber string) error {
	p, err := field.NewPhone(newNumber)
	if err != nil {
		return err
	}
	for i := range r.phones {
		if r.phones[i].String() == oldNumber {
			r.phones[i] = p
			break
		}
	}
	return nil
}

// FindPhone returns the first phone equal to number, if any.
func (r *Record) FindPhone(number string) (field.Phone, bool) {
	for _, p := range r.phones {
		if p.String() == number {
			return p, true
		}
	}
	return field.Phone{}, false
}

// SetBirthday sets or overwrites the contact's birthday.
func (r *Record) SetBirthday(b field.Birthday) {
	r.birthday = &b
}

// String renders the record as
// "Contact name: {name}, phones: {p1}; {p2}".
func (r *Record) String() string {
	nums := make([]string, len(r.phones))
	for i, p := range r.phones {
		nums[i] = p.String()
	}
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name, strings.Join(nums, "; "))
}

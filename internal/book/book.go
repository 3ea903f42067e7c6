package book

import (
	"time"
)

// AddressBook maps contact names to records. Lookup is by exact name;
// iteration follows insertion order so listings and saved files are
// deterministic.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// New creates an empty AddressBook.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// Add inserts the record under its name. An existing record with the same
// name is silently replaced (last write wins); the return value reports
// whether a replacement happened.
func (b *AddressBook) Add(r *Record) bool {
	name := r.Name()
	_, replaced := b.records[name]
	if !replaced {
		b.order = append(b.order, name)
	}
	b.records[name] = r
	return replaced
}

// Find returns the record stored under name, if any. Matching is exact:
// no case folding, no partial match.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes the record stored under name. Deleting an absent name is
// a no-op.
func (b *AddressBook) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// All returns every record in insertion order.
func (b *AddressBook) All() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	return len(b.records)
}

// Upcoming returns the records whose next birthday occurrence falls within
// the inclusive window [now, now+windowDays], at date granularity: a
// birthday today counts, and so does one exactly windowDays ahead.
// Records without a birthday are skipped. Results follow insertion order.
func (b *AddressBook) Upcoming(now time.Time, windowDays int) []*Record {
	today := truncateToDate(now)
	horizon := today.AddDate(0, 0, windowDays)

	var due []*Record
	for _, r := range b.All() {
		bd, ok := r.Birthday()
		if !ok {
			continue
		}
		occ := nextOccurrence(bd.Date(), today)
		if !occ.Before(today) && !occ.After(horizon) {
			due = append(due, r)
		}
	}
	return due
}

// nextOccurrence returns the first occurrence of the birthday's month/day
// on or after today. A Feb 29 birthday in a non-leap year lands on Mar 1:
// time.Date normalizes the out-of-range day forward, which is the
// observed-birthday policy here.
func nextOccurrence(birthday, today time.Time) time.Time {
	occ := time.Date(today.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, today.Location())
	if occ.Before(today) {
		occ = time.Date(today.Year()+1, birthday.Month(), birthday.Day(), 0, 0, 0, 0, today.Location())
	}
	return occ
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Package store persists the address book to a JSON file on disk.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smileynet/abook/internal/book"
	"github.com/smileynet/abook/internal/field"
)

// FileStore saves and loads a whole address book at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// bookSnapshot is the on-disk shape of an address book. Contacts keep
// their insertion order so round-tripping is stable.
type bookSnapshot struct {
	Contacts []contactSnapshot `json:"contacts"`
}

type contactSnapshot struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday,omitempty"` // DD.MM.YYYY, empty when unset
}

// Save writes the entire book to the store's path, creating parent
// directories as needed.
func (s *FileStore) Save(b *book.AddressBook) error {
	snap := snapshot(b)

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("store: creating directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshaling: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("store: writing %s: %w", s.path, err)
	}
	return nil
}

// Load reads the book from disk. Returns (book, true, nil) when the file
// exists and parses, and (fresh empty book, false, nil) when the file is
// absent. A present-but-unreadable file is an error.
func (s *FileStore) Load() (*book.AddressBook, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return book.New(), false, nil
		}
		return nil, false, fmt.Errorf("store: reading %s: %w", s.path, err)
	}

	var snap bookSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, fmt.Errorf("store: parsing %s: %w", s.path, err)
	}

	b, err := restore(snap)
	if err != nil {
		return nil, false, fmt.Errorf("store: restoring %s: %w", s.path, err)
	}
	return b, true, nil
}

func snapshot(b *book.AddressBook) bookSnapshot {
	snap := bookSnapshot{Contacts: make([]contactSnapshot, 0, b.Len())}
	for _, r := range b.All() {
		c := contactSnapshot{Name: r.Name(), Phones: make([]string, 0, len(r.Phones()))}
		for _, p := range r.Phones() {
			c.Phones = append(c.Phones, p.String())
		}
		if bd, ok := r.Birthday(); ok {
			c.Birthday = bd.String()
		}
		snap.Contacts = append(snap.Contacts, c)
	}
	return snap
}

// restore rebuilds a book through the domain constructors so stored data
// obeys the same validation rules as interactive input.
func restore(snap bookSnapshot) (*book.AddressBook, error) {
	b := book.New()
	for _, c := range snap.Contacts {
		r, err := book.NewRecord(c.Name)
		if err != nil {
			return nil, fmt.Errorf("contact %q: %w", c.Name, err)
		}
		for _, p := range c.Phones {
			if err := r.AddPhone(p); err != nil {
				return nil, fmt.Errorf("contact %q: phone %q: %w", c.Name, p, err)
			}
		}
		if c.Birthday != "" {
			bd, err := field.NewBirthday(c.Birthday)
			if err != nil {
				return nil, fmt.Errorf("contact %q: birthday %q: %w", c.Name, c.Birthday, err)
			}
			r.SetBirthday(bd)
		}
		b.Add(r)
	}
	return b, nil
}

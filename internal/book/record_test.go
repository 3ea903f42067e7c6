package book

import (
	"testing"

	"github.com/smileynet/abook/internal/field"
)

func TestNewRecord_RequiresName(t *testing.T) {
	if _, err := NewRecord(""); err == nil {
		t.Fatal("NewRecord(\"\") error = nil, want validation error")
	}

	r, err := NewRecord("alice")
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}
	if r.Name() != "alice" {
		t.Errorf("Name() = %q, want %q", r.Name(), "alice")
	}
	if len(r.Phones()) != 0 {
		t.Errorf("new record has %d phones, want 0", len(r.Phones()))
	}
	if _, ok := r.Birthday(); ok {
		t.Error("new record has a birthday, want none")
	}
}

func TestRecord_AddPhone(t *testing.T) {
	r, _ := NewRecord("alice")

	// Given two valid phones, order and duplicates are preserved
	if err := r.AddPhone("1234567890"); err != nil {
		t.Fatalf("AddPhone() error = %v", err)
	}
	if err := r.AddPhone("1234567890"); err != nil {
		t.Fatalf("AddPhone() duplicate error = %v", err)
	}
	if got := len(r.Phones()); got != 2 {
		t.Fatalf("phone count = %d, want 2", got)
	}

	// When an invalid phone is added
	err := r.AddPhone("111")

	// Then it fails and the list is unchanged
	if err == nil {
		t.Fatal("AddPhone(\"111\") error = nil, want validation error")
	}
	if !field.IsValidation(err) {
		t.Error("IsValidation(err) = false, want true")
	}
	if got := len(r.Phones()); got != 2 {
		t.Errorf("phone count after failed add = %d, want 2", got)
	}
}

func TestRecord_RemovePhone_RemovesEveryMatch(t *testing.T) {
	r, _ := NewRecord("bob")
	for _, n := range []string{"1111111111", "2222222222", "1111111111"} {
		if err := r.AddPhone(n); err != nil {
			t.Fatalf("AddPhone(%q) error = %v", n, err)
		}
	}

	r.RemovePhone("1111111111")

	phones := r.Phones()
	if len(phones) != 1 {
		t.Fatalf("phone count = %d, want 1", len(phones))
	}
	if phones[0].String() != "2222222222" {
		t.Errorf("remaining phone = %q, want %q", phones[0], "2222222222")
	}

	// Removing an absent number is a no-op
	r.RemovePhone("9999999999")
	if got := len(r.Phones()); got != 1 {
		t.Errorf("phone count after absent remove = %d, want 1", got)
	}
}

func TestRecord_EditPhone_FirstMatchOnly(t *testing.T) {
	r, _ := NewRecord("carol")
	for _, n := range []string{"1111111111", "1111111111"} {
		if err := r.AddPhone(n); err != nil {
			t.Fatalf("AddPhone(%q) error = %v", n, err)
		}
	}

	if err := r.EditPhone("1111111111", "3333333333"); err != nil {
		t.Fatalf("EditPhone() error = %v", err)
	}

	phones := r.Phones()
	if phones[0].String() != "3333333333" {
		t.Errorf("phones[0] = %q, want %q", phones[0], "3333333333")
	}
	if phones[1].String() != "1111111111" {
		t.Errorf("phones[1] = %q, want %q (second match untouched)", phones[1], "1111111111")
	}
}

func TestRecord_EditPhone_ValidatesNewNumber(t *testing.T) {
	r, _ := NewRecord("carol")
	if err := r.AddPhone("1111111111"); err != nil {
		t.Fatalf("AddPhone() error = %v", err)
	}

	err := r.EditPhone("1111111111", "12345")
	if err == nil {
		t.Fatal("EditPhone() with bad new number error = nil, want validation error")
	}
	if got := r.Phones()[0].String(); got != "1111111111" {
		t.Errorf("phones[0] = %q after failed edit, want original", got)
	}
}

func TestRecord_EditPhone_NoMatchIsNoop(t *testing.T) {
	r, _ := NewRecord("carol")
	if err := r.AddPhone("1111111111"); err != nil {
		t.Fatalf("AddPhone() error = %v", err)
	}

	if err := r.EditPhone("9999999999", "3333333333"); err != nil {
		t.Fatalf("EditPhone() no-match error = %v, want nil", err)
	}
	if got := r.Phones()[0].String(); got != "1111111111" {
		t.Errorf("phones[0] = %q, want unchanged", got)
	}
}

func TestRecord_FindPhone(t *testing.T) {
	r, _ := NewRecord("dave")
	if err := r.AddPhone("1234567890"); err != nil {
		t.Fatalf("AddPhone() error = %v", err)
	}

	p, ok := r.FindPhone("1234567890")
	if !ok {
		t.Fatal("FindPhone() ok = false, want true")
	}
	if p.String() != "1234567890" {
		t.Errorf("FindPhone() = %q, want %q", p, "1234567890")
	}

	if _, ok := r.FindPhone("0000000000"); ok {
		t.Error("FindPhone() ok = true for absent number, want false")
	}
}

func TestRecord_SetBirthday_Overwrites(t *testing.T) {
	r, _ := NewRecord("erin")
	first, _ := field.NewBirthday("01.01.1990")
	second, _ := field.NewBirthday("02.02.1992")

	r.SetBirthday(first)
	r.SetBirthday(second)

	got, ok := r.Birthday()
	if !ok {
		t.Fatal("Birthday() ok = false, want true")
	}
	if got.String() != "02.02.1992" {
		t.Errorf("Birthday() = %q, want %q", got, "02.02.1992")
	}
}

func TestRecord_String(t *testing.T) {
	r, _ := NewRecord("John")
	for _, n := range []string{"1234567890", "5555555555"} {
		if err := r.AddPhone(n); err != nil {
			t.Fatalf("AddPhone(%q) error = %v", n, err)
		}
	}

	want := "Contact name: John, phones: 1234567890; 5555555555"
	if got := r.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

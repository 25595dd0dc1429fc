package directory

import (
	"errors"
	"testing"

	"github.com/minibank/minibank/internal/domain"
)

func sampleParams() CreateParams {
	return CreateParams{
		Name:        "Alice",
		DateOfBirth: "01/02/1990",
		HomeAddress: "12 Harbor Lane",
		PhoneNumber: "5551234567",
		Gender:      "Female",
		Country:     "USA",
		Password:    "hunter2abc1",
	}
}

// ─── Create / Lookup Tests ──────────────────────────────────────────────────

func TestDirectory_Create(t *testing.T) {
	d := New()
	acct := d.Create(sampleParams())

	if len(acct.Address) != 6 {
		t.Errorf("address %q is not 6 digits", acct.Address)
	}
	if len(acct.SpecialCode) != 6 {
		t.Errorf("special code %q is not 6 digits", acct.SpecialCode)
	}
	if acct.Balance != 0 {
		t.Errorf("fresh account balance = %v, want 0", acct.Balance)
	}
	if acct.BranchID == "" || acct.BranchID[:2] != "BR" {
		t.Errorf("branch ID %q should start with BR", acct.BranchID)
	}
	if len(acct.Loans) != 0 {
		t.Errorf("fresh account has %d loan categories, want 0", len(acct.Loans))
	}

	got, err := d.Lookup(acct.Address)
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if got != acct {
		t.Error("Lookup returned a different record than Create")
	}
	if !d.Exists(acct.Address) {
		t.Error("Exists() = false for created account")
	}
	if d.Count() != 1 {
		t.Errorf("Count() = %d, want 1", d.Count())
	}
}

func TestDirectory_Create_InheritedSpecialCode(t *testing.T) {
	d := New()
	p := sampleParams()
	p.SpecialCode = "424242"
	acct := d.Create(p)

	if acct.SpecialCode != "424242" {
		t.Errorf("SpecialCode = %q, want inherited 424242", acct.SpecialCode)
	}
}

func TestDirectory_Create_UniqueAddresses(t *testing.T) {
	d := New()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		acct := d.Create(sampleParams())
		if seen[acct.Address] {
			t.Fatalf("duplicate address generated: %s", acct.Address)
		}
		seen[acct.Address] = true
	}
}

func TestDirectory_Lookup_NotFound(t *testing.T) {
	d := New()
	_, err := d.Lookup("000000")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("Lookup() error = %v, want ErrAccountNotFound", err)
	}
	if d.Exists("000000") {
		t.Error("Exists() = true for unknown address")
	}
}

// ─── Identity Matching Tests ────────────────────────────────────────────────

func TestDirectory_FindMatch(t *testing.T) {
	d := New()
	first := d.Create(sampleParams())

	other := sampleParams()
	other.Name = "Bob"
	d.Create(other)

	details := domain.PersonalDetails{
		Name:        "Alice",
		DateOfBirth: "01/02/1990",
		HomeAddress: "12 Harbor Lane",
		PhoneNumber: "5551234567",
		Gender:      "Female",
	}
	addr, code, found := d.FindMatch(details)
	if !found {
		t.Fatal("FindMatch() found nothing for identical details")
	}
	if addr != first.Address || code != first.SpecialCode {
		t.Errorf("FindMatch() = (%s, %s), want (%s, %s)", addr, code, first.Address, first.SpecialCode)
	}

	details.PhoneNumber = "0000000"
	if _, _, found := d.FindMatch(details); found {
		t.Error("FindMatch() matched despite differing phone number")
	}
}

func TestDirectory_FindMatch_FirstInsertedWins(t *testing.T) {
	d := New()
	first := d.Create(sampleParams())
	p := sampleParams()
	p.SpecialCode = first.SpecialCode
	d.Create(p)

	addr, _, found := d.FindMatch(domain.PersonalDetails{
		Name:        "Alice",
		DateOfBirth: "01/02/1990",
		HomeAddress: "12 Harbor Lane",
		PhoneNumber: "5551234567",
		Gender:      "Female",
	})
	if !found || addr != first.Address {
		t.Errorf("FindMatch() = %s, want first inserted %s", addr, first.Address)
	}
}

// ─── Link Session Tests ─────────────────────────────────────────────────────

func TestLinkSession_SuccessFirstTry(t *testing.T) {
	s := NewLinkSession("123456", 3)
	if !s.Try("123456") {
		t.Fatal("Try() with correct code = false")
	}
	if !s.Linked() {
		t.Error("Linked() = false after success")
	}
	if err := s.Result(); err != nil {
		t.Errorf("Result() = %v, want nil", err)
	}
}

func TestLinkSession_SuccessLastTry(t *testing.T) {
	s := NewLinkSession("123456", 3)
	s.Try("000000")
	s.Try("111111")
	if s.Remaining() != 1 {
		t.Fatalf("Remaining() = %d, want 1", s.Remaining())
	}
	if !s.Try("123456") {
		t.Fatal("third correct attempt should link")
	}
	if err := s.Result(); err != nil {
		t.Errorf("Result() = %v, want nil", err)
	}
}

func TestLinkSession_Exhausted(t *testing.T) {
	s := NewLinkSession("123456", 3)
	for i := 0; i < 3; i++ {
		if s.Try("999999") {
			t.Fatal("wrong code linked")
		}
	}
	if !errors.Is(s.Result(), domain.ErrLinkFailed) {
		t.Errorf("Result() = %v, want ErrLinkFailed", s.Result())
	}

	// Exhausted sessions stay failed even on a late correct code
	if s.Try("123456") {
		t.Error("Try() after exhaustion should not link")
	}
}

func TestLinkSession_AbortLeavesDirectoryUntouched(t *testing.T) {
	d := New()
	first := d.Create(sampleParams())

	s := NewLinkSession(first.SpecialCode, 3)
	s.Try("1")
	s.Try("2")
	s.Try("3")
	if s.Result() == nil {
		t.Fatal("exhausted session should fail")
	}

	// Caller aborts creation: directory size is unchanged.
	if d.Count() != 1 {
		t.Errorf("Count() = %d, want 1", d.Count())
	}
}

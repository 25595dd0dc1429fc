package journal

import (
	"testing"
	"time"
)

func openTest(t *testing.T, clock func() time.Time) *Journal {
	t.Helper()
	j, err := Open(clock)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournal_RecordAndList(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	j := openTest(t, func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})

	if _, err := j.Record("123456", KindDeposit, 100, 100, ""); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if _, err := j.Record("123456", KindWithdrawal, 40, 60, ""); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if _, err := j.Record("999999", KindDeposit, 5, 5, ""); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	entries, err := j.ListByAccount("123456")
	if err != nil {
		t.Fatalf("ListByAccount() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ListByAccount() returned %d entries, want 2", len(entries))
	}
	if entries[0].Kind != KindDeposit || entries[1].Kind != KindWithdrawal {
		t.Errorf("entries out of order: %s, %s", entries[0].Kind, entries[1].Kind)
	}
	if entries[1].Amount != 40 || entries[1].Balance != 60 {
		t.Errorf("entry = amount %v balance %v, want 40 / 60", entries[1].Amount, entries[1].Balance)
	}
	if entries[0].ID == entries[1].ID {
		t.Error("entries share an ID")
	}
	if entries[0].At.IsZero() {
		t.Error("timestamp not restored")
	}

	n, err := j.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}
}

func TestJournal_ListByAccount_Empty(t *testing.T) {
	j := openTest(t, nil)

	entries, err := j.ListByAccount("000000")
	if err != nil {
		t.Fatalf("ListByAccount() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("ListByAccount() = %d entries, want 0", len(entries))
	}
}

func TestJournal_RecordNote(t *testing.T) {
	j := openTest(t, nil)

	if _, err := j.Record("123456", KindRepayment, 300, 1700, "Home Loan"); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	entries, err := j.ListByAccount("123456")
	if err != nil {
		t.Fatalf("ListByAccount() error: %v", err)
	}
	if entries[0].Note != "Home Loan" {
		t.Errorf("Note = %q, want %q", entries[0].Note, "Home Loan")
	}
}

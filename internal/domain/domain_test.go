package domain

import (
	"testing"
	"time"
)

// ─── Payment Plan Tests ─────────────────────────────────────────────────────

func TestPaymentPlan_Installments(t *testing.T) {
	tests := []struct {
		plan     PaymentPlan
		interval float64
		want     int
	}{
		{Weekly, 0.25, 52},
		{Monthly, 1, 12},
		{Quarterly, 3, 4},
		{HalfYearly, 6, 2},
		{Yearly, 12, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.plan), func(t *testing.T) {
			if got := tt.plan.Installments(); got != tt.want {
				t.Errorf("Installments() = %d, want %d", got, tt.want)
			}
			if got := tt.plan.IntervalMonths(); got != tt.interval {
				t.Errorf("IntervalMonths() = %v, want %v", got, tt.interval)
			}
		})
	}
}

func TestValidPaymentPlan_Unknown(t *testing.T) {
	if ValidPaymentPlan(PaymentPlan("Fortnightly")) {
		t.Error("ValidPaymentPlan accepted an unknown plan")
	}
	if ValidPaymentPlan(PaymentPlan("")) {
		t.Error("ValidPaymentPlan accepted the empty string")
	}
}

func TestLoanTypes_Closed(t *testing.T) {
	types := LoanTypes()
	if len(types) != 5 {
		t.Fatalf("expected 5 loan types, got %d", len(types))
	}
	seen := make(map[LoanType]bool)
	for _, lt := range types {
		if !ValidLoanType(lt) {
			t.Errorf("ValidLoanType(%q) = false", lt)
		}
		if seen[lt] {
			t.Errorf("duplicate loan type: %s", lt)
		}
		seen[lt] = true
	}
	if ValidLoanType(LoanType("Boat Loan")) {
		t.Error("ValidLoanType accepted an unknown category")
	}
}

// ─── Loan Term Tests ────────────────────────────────────────────────────────

func TestNewLoan_MonthlyTerms(t *testing.T) {
	l := NewLoan(1000, Monthly, time.Now())

	if l.InterestAmount != 50 {
		t.Errorf("InterestAmount = %v, want 50", l.InterestAmount)
	}
	if l.TotalPayable != 1050 {
		t.Errorf("TotalPayable = %v, want 1050", l.TotalPayable)
	}
	if l.TotalInstallments != 12 {
		t.Errorf("TotalInstallments = %d, want 12", l.TotalInstallments)
	}
	if l.SuggestedInstallment != 87.5 {
		t.Errorf("SuggestedInstallment = %v, want 87.5", l.SuggestedInstallment)
	}
	if l.RemainingAmount != 1050 || l.PaidAmount != 0 {
		t.Errorf("fresh loan paid/remaining = %v/%v, want 0/1050", l.PaidAmount, l.RemainingAmount)
	}
	if l.InstallmentsPaid != 0 {
		t.Errorf("InstallmentsPaid = %d, want 0", l.InstallmentsPaid)
	}
	if !l.LastPaymentDate.IsZero() {
		t.Error("fresh loan should have no last payment date")
	}
}

func TestLoan_CompletionPercent(t *testing.T) {
	l := NewLoan(1000, Yearly, time.Now())
	l.PaidAmount = 525
	l.RemainingAmount = 525

	if got := l.CompletionPercent(); got != 50 {
		t.Errorf("CompletionPercent() = %v, want 50", got)
	}
	if l.Settled() {
		t.Error("half-paid loan reported as settled")
	}

	l.PaidAmount = 1050
	l.RemainingAmount = 0
	if !l.Settled() {
		t.Error("fully paid loan not reported as settled")
	}
}

// ─── Account Tests ──────────────────────────────────────────────────────────

func TestAccount_Matches(t *testing.T) {
	acct := &Account{
		Name:        "Alice",
		DateOfBirth: "01/02/1990",
		HomeAddress: "12 Harbor Lane",
		PhoneNumber: "5551234567",
		Gender:      "Female",
	}
	details := PersonalDetails{
		Name:        "Alice",
		DateOfBirth: "01/02/1990",
		HomeAddress: "12 Harbor Lane",
		PhoneNumber: "5551234567",
		Gender:      "Female",
	}

	if !acct.Matches(details) {
		t.Error("identical details should match")
	}

	// Comparison is case-sensitive as stored
	details.Name = "alice"
	if acct.Matches(details) {
		t.Error("case-differing name should not match")
	}
}

func TestAccount_ActiveLoans(t *testing.T) {
	acct := &Account{Loans: make(map[LoanType][]*Loan)}
	if acct.HasActiveLoans() {
		t.Error("empty account reported active loans")
	}

	settled := NewLoan(100, Yearly, time.Now())
	settled.PaidAmount = settled.TotalPayable
	settled.RemainingAmount = 0
	open := NewLoan(200, Monthly, time.Now())
	acct.Loans[CarLoan] = []*Loan{settled, open}

	active := acct.ActiveLoans(CarLoan)
	if len(active) != 1 || active[0] != open {
		t.Fatalf("ActiveLoans returned %d loans, want the single open loan", len(active))
	}
	if !acct.HasActiveLoans() {
		t.Error("account with open loan reported no active loans")
	}
	if got := acct.ActiveLoans(GoldLoan); len(got) != 0 {
		t.Errorf("ActiveLoans on empty category = %d, want 0", len(got))
	}
}

// ─── Error Tests ────────────────────────────────────────────────────────────

func TestSentinelErrors(t *testing.T) {
	errs := []struct {
		name string
		err  error
	}{
		{"ErrAccountNotFound", ErrAccountNotFound},
		{"ErrAuthFailed", ErrAuthFailed},
		{"ErrLockedOut", ErrLockedOut},
		{"ErrInvalidAmount", ErrInvalidAmount},
		{"ErrInsufficientFunds", ErrInsufficientFunds},
		{"ErrNoActiveLoans", ErrNoActiveLoans},
		{"ErrUnknownCategory", ErrUnknownCategory},
		{"ErrInvalidSelection", ErrInvalidSelection},
		{"ErrLinkFailed", ErrLinkFailed},
	}

	for _, tt := range errs {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatalf("%s is nil", tt.name)
			}
			if tt.err.Error() == "" {
				t.Errorf("%s.Error() is empty", tt.name)
			}
		})
	}
}

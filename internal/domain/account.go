// Package domain contains pure business types with zero infrastructure
// imports. This is the innermost ring — it depends on nothing.
package domain

// ─── Account ────────────────────────────────────────────────────────────────

// Account is one bank account record. Personal fields are immutable after
// creation; Balance is mutated only by the ledger and by loan repayment,
// Loans only by the loan book.
type Account struct {
	Address     string // unique 6-digit identifier, assigned at creation
	Name        string
	DateOfBirth string
	HomeAddress string
	PhoneNumber string
	Gender      string
	Country     string
	Password    string // exact-match shared secret; no change-password flow exists
	SpecialCode string // 6-digit secret shared across linked accounts
	BranchID    string // cosmetic

	Balance float64
	Loans   map[LoanType][]*Loan // insertion order = application order per type
}

// ActiveLoans returns the loans in the given category with remaining debt,
// preserving application order.
func (a *Account) ActiveLoans(lt LoanType) []*Loan {
	var active []*Loan
	for _, l := range a.Loans[lt] {
		if l.RemainingAmount > 0 {
			active = append(active, l)
		}
	}
	return active
}

// HasActiveLoans reports whether any category holds a loan with remaining
// debt.
func (a *Account) HasActiveLoans() bool {
	for lt := range a.Loans {
		if len(a.ActiveLoans(lt)) > 0 {
			return true
		}
	}
	return false
}

// PersonalDetails is the five-field identity tuple used to recognize that a
// new applicant already holds an account (account linking).
type PersonalDetails struct {
	Name        string
	DateOfBirth string
	HomeAddress string
	PhoneNumber string
	Gender      string
}

// Matches reports whether the account's stored personal fields equal the
// given details. Comparison is exact, case-sensitive as stored.
func (a *Account) Matches(d PersonalDetails) bool {
	return a.Name == d.Name &&
		a.DateOfBirth == d.DateOfBirth &&
		a.HomeAddress == d.HomeAddress &&
		a.PhoneNumber == d.PhoneNumber &&
		a.Gender == d.Gender
}

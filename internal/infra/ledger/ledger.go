// Package ledger implements balance mutation with the non-negative-balance
// invariant. Validation happens fully before any field is written, so every
// operation is all-or-nothing.
package ledger

import (
	"sync"

	"github.com/minibank/minibank/internal/domain"
)

// Ledger mutates account balances. A single mutex serializes mutations so a
// concurrent caller cannot race two withdrawals past the balance check.
type Ledger struct {
	mu sync.Mutex
}

// New creates a ledger.
func New() *Ledger {
	return &Ledger{}
}

// Deposit adds amount to the account balance and returns the new balance.
func (l *Ledger) Deposit(acct *domain.Account, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	acct.Balance += amount
	return acct.Balance, nil
}

// Withdraw removes amount from the account balance and returns the new
// balance. It never lets the balance go negative.
func (l *Ledger) Withdraw(acct *domain.Account, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if acct.Balance < amount {
		return 0, domain.ErrInsufficientFunds
	}
	acct.Balance -= amount
	return acct.Balance, nil
}

// Transfer is a menu slot only — the feature was never implemented.
func (l *Ledger) Transfer(from, to *domain.Account, amount float64) error {
	return domain.ErrTransferUnavailable
}

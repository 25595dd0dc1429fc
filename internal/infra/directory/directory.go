// Package directory implements the in-memory account store. It is the
// single owner of all account records; callers hold the *Directory they
// created rather than reaching for ambient globals.
package directory

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/minibank/minibank/internal/domain"
)

// Directory is the authoritative account store, keyed by account address.
// A single mutex serializes all access so the invariants on balance and
// loan state cannot race if a caller ever drives it from multiple
// goroutines.
type Directory struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	order    []string // insertion order, for deterministic identity scans
}

// New creates an empty directory.
func New() *Directory {
	return &Directory{accounts: make(map[string]*domain.Account)}
}

// CreateParams carries the pre-validated fields for a new account.
// SpecialCode is empty unless the account is being linked, in which case it
// is the existing holder's code.
type CreateParams struct {
	Name        string
	DateOfBirth string
	HomeAddress string
	PhoneNumber string
	Gender      string
	Country     string
	Password    string
	SpecialCode string
}

// Create builds a new account with a fresh unique address, inserts it and
// returns it. Balance starts at zero. When params carry no special code a
// random 6-digit one is generated; the branch ID is always generated.
func (d *Directory) Create(p CreateParams) *domain.Account {
	d.mu.Lock()
	defer d.mu.Unlock()

	addr := randomDigits()
	for d.accounts[addr] != nil {
		addr = randomDigits()
	}

	code := p.SpecialCode
	if code == "" {
		code = randomDigits()
	}

	acct := &domain.Account{
		Address:     addr,
		Name:        p.Name,
		DateOfBirth: p.DateOfBirth,
		HomeAddress: p.HomeAddress,
		PhoneNumber: p.PhoneNumber,
		Gender:      p.Gender,
		Country:     p.Country,
		Password:    p.Password,
		SpecialCode: code,
		BranchID:    fmt.Sprintf("BR%04d", rand.Intn(9000)+1000),
		Balance:     0,
		Loans:       make(map[domain.LoanType][]*domain.Loan),
	}
	d.accounts[addr] = acct
	d.order = append(d.order, addr)
	return acct
}

// Lookup returns the account stored under the given address.
func (d *Directory) Lookup(address string) (*domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	acct, ok := d.accounts[address]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return acct, nil
}

// Exists reports whether an account is stored under the given address.
func (d *Directory) Exists(address string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.accounts[address]
	return ok
}

// Count returns the number of stored accounts.
func (d *Directory) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.accounts)
}

// FindMatch scans stored accounts in insertion order for an exact match on
// all five personal fields and returns the first match's address and
// special code. Used only at account-creation time, before the new account
// is persisted.
func (d *Directory) FindMatch(details domain.PersonalDetails) (address, specialCode string, found bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, addr := range d.order {
		if acct := d.accounts[addr]; acct.Matches(details) {
			return addr, acct.SpecialCode, true
		}
	}
	return "", "", false
}

// randomDigits returns a uniformly random 6-digit string.
func randomDigits() string {
	return fmt.Sprintf("%d", rand.Intn(900000)+100000)
}

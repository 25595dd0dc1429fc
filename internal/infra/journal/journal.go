// Package journal records the session's transaction history in an
// in-memory SQLite database. The store is transient by construction: it
// lives and dies with the process, the same as the account directory.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Kind classifies a journal entry.
type Kind string

const (
	KindDeposit    Kind = "DEPOSIT"
	KindWithdrawal Kind = "WITHDRAWAL"
	KindLoanIssued Kind = "LOAN_ISSUED"
	KindRepayment  Kind = "LOAN_REPAYMENT"
)

// Entry is one row of transaction history.
type Entry struct {
	ID      string
	Address string // account address
	Kind    Kind
	Amount  float64
	Balance float64 // account balance after the transaction
	Note    string  // free-form detail, e.g. the loan category
	At      time.Time
}

// Journal is the transaction history store.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// migrations returns the schema statements. Each string is a single SQL
// statement (SQLite executes one at a time).
func migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id         TEXT PRIMARY KEY,
			address    TEXT NOT NULL,
			kind       TEXT NOT NULL,
			amount     REAL NOT NULL,
			balance    REAL NOT NULL,
			note       TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_address ON transactions(address, created_at)`,
	}
}

// Open creates the in-memory store and applies the schema. A nil clock
// falls back to time.Now.
func Open(clock func() time.Time) (*Journal, error) {
	if clock == nil {
		clock = time.Now
	}
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// Every pooled connection to ":memory:" gets its own database, so the
	// pool must stay at exactly one connection.
	db.SetMaxOpenConns(1)

	for _, stmt := range migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply journal schema: %w", err)
		}
	}
	return &Journal{db: db, now: clock}, nil
}

// Close releases the store.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends one entry and returns it with its generated ID and
// timestamp filled in.
func (j *Journal) Record(address string, kind Kind, amount, balance float64, note string) (Entry, error) {
	e := Entry{
		ID:      uuid.NewString(),
		Address: address,
		Kind:    kind,
		Amount:  amount,
		Balance: balance,
		Note:    note,
		At:      j.now(),
	}
	_, err := j.db.Exec(`
		INSERT INTO transactions (id, address, kind, amount, balance, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Address, string(e.Kind), e.Amount, e.Balance, e.Note, e.At.Format(time.RFC3339))
	if err != nil {
		return Entry{}, fmt.Errorf("record transaction: %w", err)
	}
	return e, nil
}

// ListByAccount returns the account's entries oldest first.
func (j *Journal) ListByAccount(address string) ([]Entry, error) {
	rows, err := j.db.Query(`
		SELECT id, address, kind, amount, balance, note, created_at
		FROM transactions WHERE address = ? ORDER BY created_at, id
	`, address)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdStr string
		if err := rows.Scan(&e.ID, &e.Address, &e.Kind, &e.Amount, &e.Balance, &e.Note, &createdStr); err != nil {
			return nil, err
		}
		e.At, _ = time.Parse(time.RFC3339, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the total number of recorded transactions.
func (j *Journal) Count() (int, error) {
	var n int
	err := j.db.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&n)
	return n, err
}

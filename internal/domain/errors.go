package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. The console maps
// them to user-facing messages; every one of them is recoverable by
// re-prompting or by waiting out a lockout.

var (
	// Directory errors
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateAddress = errors.New("account address already taken")

	// Authentication errors
	ErrAuthFailed = errors.New("account not found or details do not match")
	ErrLockedOut  = errors.New("account is temporarily locked")

	// Ledger errors
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInsufficientFunds   = errors.New("insufficient balance")
	ErrTransferUnavailable = errors.New("transfer feature not available")

	// Loan errors
	ErrUnknownLoanType         = errors.New("invalid loan type")
	ErrUnknownPaymentPlan      = errors.New("invalid payment plan")
	ErrNoActiveLoans           = errors.New("no loans to repay")
	ErrUnknownCategory         = errors.New("invalid loan category")
	ErrNoActiveLoansInCategory = errors.New("no active loans under this category")
	ErrInvalidSelection        = errors.New("invalid loan selection")

	// Linking errors
	ErrLinkFailed = errors.New("too many incorrect special code attempts")
)

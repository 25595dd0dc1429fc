// Package observability defines the Prometheus metrics for the simulator.
// Metrics are registered once at package load via promauto and updated by
// the teller service; the optional ops listener serves them on /metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Authentication Metrics ─────────────────────────────────────────────────

// LoginSuccesses counts completed logins.
var LoginSuccesses = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "minibank",
	Subsystem: "auth",
	Name:      "login_successes_total",
	Help:      "Total successful logins.",
})

// LoginFailures counts rejected login steps by stage.
var LoginFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "minibank",
	Subsystem: "auth",
	Name:      "login_failures_total",
	Help:      "Total rejected login steps by stage (identity, password).",
}, []string{"stage"})

// Lockouts counts lockouts tripped by three password strikes.
var Lockouts = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "minibank",
	Subsystem: "auth",
	Name:      "lockouts_total",
	Help:      "Total account lockouts after three password failures.",
})

// LockedAccounts tracks the number of addresses currently under lockout.
var LockedAccounts = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "minibank",
	Subsystem: "auth",
	Name:      "locked_accounts",
	Help:      "Number of account addresses currently locked out.",
})

// ─── Directory Metrics ──────────────────────────────────────────────────────

// AccountsCreated counts account creations, labeled by whether the account
// was linked to an existing holder.
var AccountsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "minibank",
	Subsystem: "directory",
	Name:      "accounts_created_total",
	Help:      "Total accounts created, by linked status.",
}, []string{"linked"})

// Accounts tracks the directory size.
var Accounts = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "minibank",
	Subsystem: "directory",
	Name:      "accounts",
	Help:      "Number of accounts in the directory.",
})

// LinkFailures counts aborted creations after exhausted special-code tries.
var LinkFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "minibank",
	Subsystem: "directory",
	Name:      "link_failures_total",
	Help:      "Total account creations aborted by failed linking.",
})

// ─── Ledger Metrics ─────────────────────────────────────────────────────────

// TransactionAmounts observes amounts by transaction kind.
var TransactionAmounts = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "minibank",
	Subsystem: "ledger",
	Name:      "transaction_amount",
	Help:      "Transaction amounts by kind (deposit, withdrawal, repayment).",
	Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
}, []string{"kind"})

// TransactionsRejected counts ledger rejections by reason.
var TransactionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "minibank",
	Subsystem: "ledger",
	Name:      "transactions_rejected_total",
	Help:      "Total rejected ledger operations by reason.",
}, []string{"reason"})

// ─── Loan Metrics ───────────────────────────────────────────────────────────

// LoansIssued counts issued loans by category.
var LoansIssued = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "minibank",
	Subsystem: "loans",
	Name:      "issued_total",
	Help:      "Total loans issued by category.",
}, []string{"category"})

// LoanRepayments counts repayment transactions.
var LoanRepayments = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "minibank",
	Subsystem: "loans",
	Name:      "repayments_total",
	Help:      "Total loan repayment transactions.",
})

// LoanSettlements counts loans paid off in full.
var LoanSettlements = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "minibank",
	Subsystem: "loans",
	Name:      "settlements_total",
	Help:      "Total loans fully settled and retired.",
})

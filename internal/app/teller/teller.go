// Package teller is the application service the console drives. It owns
// the wiring between the account directory, the auth guard, the ledger,
// the loan book and the transaction journal, and it keeps the metrics
// honest so the components themselves stay pure.
package teller

import (
	"log"

	"github.com/minibank/minibank/internal/domain"
	"github.com/minibank/minibank/internal/infra/authguard"
	"github.com/minibank/minibank/internal/infra/directory"
	"github.com/minibank/minibank/internal/infra/journal"
	"github.com/minibank/minibank/internal/infra/ledger"
	"github.com/minibank/minibank/internal/infra/loanbook"
	"github.com/minibank/minibank/internal/infra/observability"
)

// Service coordinates one account directory and its collaborators.
type Service struct {
	dir          *directory.Directory
	guard        *authguard.Guard
	ledger       *ledger.Ledger
	loans        *loanbook.Book
	journal      *journal.Journal // nil when history is disabled
	linkAttempts int
}

// SetLinkAttempts overrides the number of special-code tries a linking
// session allows.
func (s *Service) SetLinkAttempts(n int) {
	if n > 0 {
		s.linkAttempts = n
	}
}

// New wires a teller over the given components. The journal may be nil.
func New(dir *directory.Directory, guard *authguard.Guard, led *ledger.Ledger, loans *loanbook.Book, jnl *journal.Journal) *Service {
	return &Service{
		dir: dir, guard: guard, ledger: led, loans: loans, journal: jnl,
		linkAttempts: directory.DefaultLinkAttempts,
	}
}

// Directory exposes the underlying account store.
func (s *Service) Directory() *directory.Directory { return s.dir }

// ─── Account Creation ───────────────────────────────────────────────────────

// MatchExisting looks for an account holding the applicant's exact personal
// details and, when found, opens a linking session against its special
// code. The console runs the session's manual retry loop.
func (s *Service) MatchExisting(details domain.PersonalDetails) (*directory.LinkSession, bool) {
	_, code, found := s.dir.FindMatch(details)
	if !found {
		return nil, false
	}
	return directory.NewLinkSession(code, s.linkAttempts), true
}

// CreateAccount persists a new account. linked reports whether the special
// code was inherited through a completed linking session.
func (s *Service) CreateAccount(p directory.CreateParams, linked bool) *domain.Account {
	acct := s.dir.Create(p)
	label := "no"
	if linked {
		label = "yes"
	}
	observability.AccountsCreated.WithLabelValues(label).Inc()
	observability.Accounts.Set(float64(s.dir.Count()))
	log.Printf("[teller] account %s created (linked=%s)", acct.Address, label)
	return acct
}

// AbortLink records an account creation abandoned after the applicant
// exhausted the special-code attempts. Nothing is persisted.
func (s *Service) AbortLink() {
	observability.LinkFailures.Inc()
	log.Printf("[teller] account creation aborted: link attempts exhausted")
}

// ─── Login ──────────────────────────────────────────────────────────────────

// Authenticate runs the identity gate (name + special code).
func (s *Service) Authenticate(address, name, specialCode string) error {
	if err := s.guard.Authenticate(address, name, specialCode); err != nil {
		observability.LoginFailures.WithLabelValues("identity").Inc()
		return err
	}
	return nil
}

// CheckLock queries the lockout state for an address.
func (s *Service) CheckLock(address string) authguard.LockStatus {
	st := s.guard.CheckLock(address)
	observability.LockedAccounts.Set(float64(s.guard.LockedCount()))
	return st
}

// VerifyPassword consumes one password attempt.
func (s *Service) VerifyPassword(address, password string) (authguard.PasswordResult, error) {
	res, err := s.guard.VerifyPassword(address, password)
	if err != nil {
		return res, err
	}
	switch {
	case res.OK:
		observability.LoginSuccesses.Inc()
		log.Printf("[teller] login for account %s", address)
	case res.LockedOut:
		observability.LoginFailures.WithLabelValues("password").Inc()
		observability.Lockouts.Inc()
		log.Printf("[teller] account %s locked out", address)
	default:
		observability.LoginFailures.WithLabelValues("password").Inc()
	}
	observability.LockedAccounts.Set(float64(s.guard.LockedCount()))
	return res, nil
}

// AttemptsRemaining returns the password attempts left for the prompt.
func (s *Service) AttemptsRemaining(address string) int {
	return s.guard.AttemptsRemaining(address)
}

// ─── Account Switching ──────────────────────────────────────────────────────

// SwitchSession is the manual password-retry loop for moving a logged-in
// session to a sibling account sharing the same special code. Like
// linking, it has no time component and trips no lockout; failure leaves
// the current session where it was.
type SwitchSession struct {
	target    *domain.Account
	remaining int
}

// BeginSwitch validates the target address and ownership. The target must
// exist and carry the same special code as the current account.
func (s *Service) BeginSwitch(currentAddress, targetAddress string) (*SwitchSession, error) {
	current, err := s.dir.Lookup(currentAddress)
	if err != nil {
		return nil, err
	}
	target, err := s.dir.Lookup(targetAddress)
	if err != nil {
		return nil, err
	}
	if target.SpecialCode != current.SpecialCode {
		return nil, domain.ErrAuthFailed
	}
	return &SwitchSession{target: target, remaining: 3}, nil
}

// Try consumes one password attempt against the target account.
func (sw *SwitchSession) Try(password string) bool {
	if sw.remaining <= 0 {
		return false
	}
	sw.remaining--
	return sw.target.Password == password
}

// Remaining returns the attempts left.
func (sw *SwitchSession) Remaining() int { return sw.remaining }

// Target returns the account being switched to.
func (sw *SwitchSession) Target() *domain.Account { return sw.target }

// ─── Balance Operations ─────────────────────────────────────────────────────

// AccountInfo is the session header snapshot.
type AccountInfo struct {
	Name     string
	BranchID string
	Address  string
	Balance  float64
}

// Info returns the display snapshot for an account.
func (s *Service) Info(address string) (AccountInfo, error) {
	acct, err := s.dir.Lookup(address)
	if err != nil {
		return AccountInfo{}, err
	}
	return AccountInfo{
		Name:     acct.Name,
		BranchID: acct.BranchID,
		Address:  acct.Address,
		Balance:  acct.Balance,
	}, nil
}

// Deposit adds to the account balance and journals the transaction.
func (s *Service) Deposit(address string, amount float64) (float64, error) {
	acct, err := s.dir.Lookup(address)
	if err != nil {
		return 0, err
	}
	balance, err := s.ledger.Deposit(acct, amount)
	if err != nil {
		observability.TransactionsRejected.WithLabelValues(rejectReason(err)).Inc()
		return 0, err
	}
	observability.TransactionAmounts.WithLabelValues("deposit").Observe(amount)
	s.record(address, journal.KindDeposit, amount, balance, "")
	return balance, nil
}

// Withdraw removes from the account balance and journals the transaction.
func (s *Service) Withdraw(address string, amount float64) (float64, error) {
	acct, err := s.dir.Lookup(address)
	if err != nil {
		return 0, err
	}
	balance, err := s.ledger.Withdraw(acct, amount)
	if err != nil {
		observability.TransactionsRejected.WithLabelValues(rejectReason(err)).Inc()
		return 0, err
	}
	observability.TransactionAmounts.WithLabelValues("withdrawal").Observe(amount)
	s.record(address, journal.KindWithdrawal, amount, balance, "")
	return balance, nil
}

// Transfer is the menu slot for the unimplemented transfer feature.
func (s *Service) Transfer(fromAddress, toAddress string, amount float64) error {
	from, err := s.dir.Lookup(fromAddress)
	if err != nil {
		return err
	}
	to, err := s.dir.Lookup(toAddress)
	if err != nil {
		return err
	}
	return s.ledger.Transfer(from, to, amount)
}

// History returns the account's journaled transactions, oldest first. With
// the journal disabled it returns nothing.
func (s *Service) History(address string) ([]journal.Entry, error) {
	if s.journal == nil {
		return nil, nil
	}
	return s.journal.ListByAccount(address)
}

// ─── Loan Operations ────────────────────────────────────────────────────────

// ApplyLoan issues a loan after the loan book's own credential check.
func (s *Service) ApplyLoan(address string, p loanbook.ApplyParams) (*domain.Loan, error) {
	acct, err := s.dir.Lookup(address)
	if err != nil {
		return nil, err
	}
	loan, err := s.loans.Apply(acct, p)
	if err != nil {
		return nil, err
	}
	observability.LoansIssued.WithLabelValues(string(p.Type)).Inc()
	s.record(address, journal.KindLoanIssued, loan.Principal, acct.Balance, string(p.Type))
	log.Printf("[teller] loan issued on account %s: %s %.2f", address, p.Type, loan.Principal)
	return loan, nil
}

// ListLoans reports all five categories for the account.
func (s *Service) ListLoans(address string) ([]loanbook.CategoryReport, error) {
	acct, err := s.dir.Lookup(address)
	if err != nil {
		return nil, err
	}
	return s.loans.List(acct), nil
}

// RepayLoan applies one repayment transaction and journals it.
func (s *Service) RepayLoan(address string, p loanbook.RepayParams) (loanbook.RepayResult, error) {
	acct, err := s.dir.Lookup(address)
	if err != nil {
		return loanbook.RepayResult{}, err
	}
	res, err := s.loans.Repay(acct, p)
	if err != nil {
		return res, err
	}
	observability.LoanRepayments.Inc()
	observability.TransactionAmounts.WithLabelValues("repayment").Observe(res.AmountPaid)
	if res.Settled {
		observability.LoanSettlements.Inc()
		log.Printf("[teller] loan settled on account %s: %s", address, p.Type)
	}
	s.record(address, journal.KindRepayment, res.AmountPaid, res.NewBalance, string(p.Type))
	return res, nil
}

// ─── Stats ──────────────────────────────────────────────────────────────────

// Stats is the snapshot served by the ops listener.
type Stats struct {
	Accounts       int `json:"accounts"`
	LockedAccounts int `json:"locked_accounts"`
	Transactions   int `json:"transactions"`
}

// Stats returns current directory and journal totals.
func (s *Service) Stats() Stats {
	st := Stats{
		Accounts:       s.dir.Count(),
		LockedAccounts: s.guard.LockedCount(),
	}
	if s.journal != nil {
		if n, err := s.journal.Count(); err == nil {
			st.Transactions = n
		}
	}
	return st
}

// record journals a transaction; history is best-effort and never blocks
// the operation that already committed.
func (s *Service) record(address string, kind journal.Kind, amount, balance float64, note string) {
	if s.journal == nil {
		return
	}
	if _, err := s.journal.Record(address, kind, amount, balance, note); err != nil {
		log.Printf("[teller] journal write failed: %v", err)
	}
}

// rejectReason maps a ledger error to a metric label.
func rejectReason(err error) string {
	switch err {
	case domain.ErrInvalidAmount:
		return "invalid_amount"
	case domain.ErrInsufficientFunds:
		return "insufficient_funds"
	}
	return "other"
}

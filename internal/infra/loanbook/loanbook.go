// Package loanbook implements loan issuance, reporting and repayment.
// Repayment walks a fixed validation ladder and mutates nothing until every
// check has passed; the settling repayment removes the loan from its
// category.
package loanbook

import (
	"fmt"
	"sync"
	"time"

	"github.com/minibank/minibank/internal/domain"
)

// Book issues and services loans against account records.
type Book struct {
	mu  sync.Mutex
	now func() time.Time
}

// New creates a loan book. A nil clock falls back to time.Now.
func New(clock func() time.Time) *Book {
	if clock == nil {
		clock = time.Now
	}
	return &Book{now: clock}
}

// ─── Application ────────────────────────────────────────────────────────────

// ApplyParams carries one loan application.
type ApplyParams struct {
	Principal   float64
	Type        domain.LoanType
	Plan        domain.PaymentPlan
	SpecialCode string
	Password    string
}

// Apply validates the application, re-verifies the applicant's special code
// and password against the account record, and appends the new loan to its
// category. The credential check here is independent of login: a mismatch
// rejects immediately, with no attempt counting and no lockout.
func (b *Book) Apply(acct *domain.Account, p ApplyParams) (*domain.Loan, error) {
	if p.Principal <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !domain.ValidLoanType(p.Type) {
		return nil, domain.ErrUnknownLoanType
	}
	if !domain.ValidPaymentPlan(p.Plan) {
		return nil, domain.ErrUnknownPaymentPlan
	}
	if p.SpecialCode != acct.SpecialCode || p.Password != acct.Password {
		return nil, domain.ErrAuthFailed
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	loan := domain.NewLoan(p.Principal, p.Plan, b.now())
	if acct.Loans == nil {
		acct.Loans = make(map[domain.LoanType][]*domain.Loan)
	}
	acct.Loans[p.Type] = append(acct.Loans[p.Type], loan)
	return loan, nil
}

// ─── Reporting ──────────────────────────────────────────────────────────────

// LoanSnapshot is one loan's state at reporting time.
type LoanSnapshot struct {
	Loan       domain.Loan // value copy, safe to hold
	FullyPaid  bool
	Completion float64 // percent, meaningful when not fully paid
}

// CategoryReport covers one of the five fixed categories, including those
// with no loans.
type CategoryReport struct {
	Type  domain.LoanType
	Loans []LoanSnapshot
}

// List reports every category in menu order with each loan in application
// order.
func (b *Book) List(acct *domain.Account) []CategoryReport {
	b.mu.Lock()
	defer b.mu.Unlock()

	report := make([]CategoryReport, 0, len(domain.LoanTypes()))
	for _, lt := range domain.LoanTypes() {
		cat := CategoryReport{Type: lt}
		for _, l := range acct.Loans[lt] {
			cat.Loans = append(cat.Loans, LoanSnapshot{
				Loan:       *l,
				FullyPaid:  l.Settled(),
				Completion: l.CompletionPercent(),
			})
		}
		report = append(report, cat)
	}
	return report
}

// ─── Repayment ──────────────────────────────────────────────────────────────

// OverpaymentError signals that the requested amount exceeds the loan's
// remaining payable. It is a confirmation request, not a failure: the caller
// retries with AcceptOverpayment set to pay exactly MaxPayable, or drops the
// repayment with no state change.
type OverpaymentError struct {
	MaxPayable float64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("amount exceeds remaining loan balance (maximum payable: %.2f)", e.MaxPayable)
}

// RepayParams selects a loan and an amount. Index is 1-based within the
// category's active loans, as shown in the selection list; it is ignored
// when only one active loan exists.
type RepayParams struct {
	Type   domain.LoanType
	Index  int
	Amount float64
	// AcceptOverpayment confirms paying exactly the remaining amount when
	// the requested amount overshoots it.
	AcceptOverpayment bool
}

// RepayResult reports a successful repayment.
type RepayResult struct {
	AmountPaid float64
	NewBalance float64
	Settled    bool
	Completion float64 // percent, meaningful when not settled
	Loan       domain.Loan
}

// Repay applies one repayment transaction. The validation ladder runs in
// full before any mutation: active loans exist, category known, selection
// valid, amount positive, balance sufficient, overpayment confirmed. On the
// repayment that clears the loan it is removed from its category.
func (b *Book) Repay(acct *domain.Account, p RepayParams) (RepayResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !acct.HasActiveLoans() {
		return RepayResult{}, domain.ErrNoActiveLoans
	}
	if _, ok := acct.Loans[p.Type]; !ok {
		return RepayResult{}, domain.ErrUnknownCategory
	}
	active := acct.ActiveLoans(p.Type)
	if len(active) == 0 {
		return RepayResult{}, domain.ErrNoActiveLoansInCategory
	}

	var loan *domain.Loan
	if len(active) == 1 {
		loan = active[0]
	} else {
		if p.Index < 1 || p.Index > len(active) {
			return RepayResult{}, domain.ErrInvalidSelection
		}
		loan = active[p.Index-1]
	}

	if p.Amount <= 0 {
		return RepayResult{}, domain.ErrInvalidAmount
	}
	if acct.Balance < p.Amount {
		return RepayResult{}, domain.ErrInsufficientFunds
	}

	amount := p.Amount
	if amount > loan.RemainingAmount {
		if !p.AcceptOverpayment {
			return RepayResult{}, &OverpaymentError{MaxPayable: loan.RemainingAmount}
		}
		amount = loan.RemainingAmount
	}

	acct.Balance -= amount
	loan.PaidAmount += amount
	loan.RemainingAmount -= amount
	loan.InstallmentsPaid++
	loan.LastPaymentDate = b.now()

	res := RepayResult{
		AmountPaid: amount,
		NewBalance: acct.Balance,
		Settled:    loan.Settled(),
		Completion: loan.CompletionPercent(),
		Loan:       *loan,
	}
	if res.Settled {
		b.removeLoan(acct, p.Type, loan)
	}
	return res, nil
}

// removeLoan deletes the loan (by identity) from its category sequence.
func (b *Book) removeLoan(acct *domain.Account, lt domain.LoanType, loan *domain.Loan) {
	seq := acct.Loans[lt]
	for i, l := range seq {
		if l == loan {
			acct.Loans[lt] = append(seq[:i], seq[i+1:]...)
			return
		}
	}
}

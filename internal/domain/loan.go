package domain

import "time"

// ─── Loan Enumerations ──────────────────────────────────────────────────────

// InterestRate is the fixed annual rate applied to every loan.
const InterestRate = 0.05

// LoanType is a closed enumeration of the five loan categories.
type LoanType string

const (
	HomeLoan      LoanType = "Home Loan"
	CarLoan       LoanType = "Car Loan"
	EducationLoan LoanType = "Education Loan"
	PersonalLoan  LoanType = "Personal Loan"
	GoldLoan      LoanType = "Gold Loan"
)

// LoanTypes lists all categories in menu order.
func LoanTypes() []LoanType {
	return []LoanType{HomeLoan, CarLoan, EducationLoan, PersonalLoan, GoldLoan}
}

// ValidLoanType reports whether lt is one of the five fixed categories.
func ValidLoanType(lt LoanType) bool {
	switch lt {
	case HomeLoan, CarLoan, EducationLoan, PersonalLoan, GoldLoan:
		return true
	}
	return false
}

// PaymentPlan is a closed enumeration of repayment cadences.
type PaymentPlan string

const (
	Weekly     PaymentPlan = "Weekly"
	Monthly    PaymentPlan = "Monthly"
	Quarterly  PaymentPlan = "Quarterly"
	HalfYearly PaymentPlan = "Half Yearly"
	Yearly     PaymentPlan = "Yearly"
)

// PaymentPlans lists all plans in menu order.
func PaymentPlans() []PaymentPlan {
	return []PaymentPlan{Weekly, Monthly, Quarterly, HalfYearly, Yearly}
}

// IntervalMonths returns the scheduled gap between installments in months
// (0.25 for weekly). Zero for an unknown plan.
func (p PaymentPlan) IntervalMonths() float64 {
	switch p {
	case Weekly:
		return 0.25
	case Monthly:
		return 1
	case Quarterly:
		return 3
	case HalfYearly:
		return 6
	case Yearly:
		return 12
	}
	return 0
}

// Installments returns one year's worth of scheduled payments at the plan's
// cadence: 52, 12, 4, 2 or 1. Zero for an unknown plan.
func (p PaymentPlan) Installments() int {
	switch p {
	case Weekly:
		return 52
	case Monthly:
		return 12
	case Quarterly:
		return 4
	case HalfYearly:
		return 2
	case Yearly:
		return 1
	}
	return 0
}

// ValidPaymentPlan reports whether p is one of the five fixed plans.
func ValidPaymentPlan(p PaymentPlan) bool {
	return p.Installments() != 0
}

// ─── Loan ───────────────────────────────────────────────────────────────────

// Loan is one borrowing instance. PaidAmount and RemainingAmount are mutated
// only by repayment; the invariant PaidAmount + RemainingAmount ==
// TotalPayable holds across all repayments.
type Loan struct {
	Principal      float64
	InterestRate   float64
	InterestAmount float64
	TotalPayable   float64

	PaymentPlan          PaymentPlan
	IntervalMonths       float64
	TotalInstallments    int
	SuggestedInstallment float64 // advisory only; repayments are free-form amounts

	PaidAmount      float64
	RemainingAmount float64
	// InstallmentsPaid counts repayment transactions, not suggested-installment
	// units: a lump payment counts as one installment event.
	InstallmentsPaid int

	StartDate       time.Time
	LastPaymentDate time.Time // zero until the first repayment
}

// NewLoan computes the full loan terms for the given principal and plan.
// The caller is responsible for having validated principal and plan.
func NewLoan(principal float64, plan PaymentPlan, start time.Time) *Loan {
	interest := principal * InterestRate
	total := principal + interest
	installments := plan.Installments()
	return &Loan{
		Principal:            principal,
		InterestRate:         InterestRate,
		InterestAmount:       interest,
		TotalPayable:         total,
		PaymentPlan:          plan,
		IntervalMonths:       plan.IntervalMonths(),
		TotalInstallments:    installments,
		SuggestedInstallment: total / float64(installments),
		PaidAmount:           0,
		RemainingAmount:      total,
		StartDate:            start,
	}
}

// Settled reports whether the loan's remaining payable has reached zero.
func (l *Loan) Settled() bool {
	return l.RemainingAmount <= 0
}

// CompletionPercent returns paid / payable as a percentage.
func (l *Loan) CompletionPercent() float64 {
	return l.PaidAmount / l.TotalPayable * 100
}

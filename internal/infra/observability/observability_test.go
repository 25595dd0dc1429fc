package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(LoginSuccesses)
	LoginSuccesses.Inc()
	if got := testutil.ToFloat64(LoginSuccesses); got != before+1 {
		t.Errorf("LoginSuccesses = %v, want %v", got, before+1)
	}

	before = testutil.ToFloat64(LoginFailures.WithLabelValues("password"))
	LoginFailures.WithLabelValues("password").Inc()
	if got := testutil.ToFloat64(LoginFailures.WithLabelValues("password")); got != before+1 {
		t.Errorf("LoginFailures{password} = %v, want %v", got, before+1)
	}
}

func TestGauges(t *testing.T) {
	LockedAccounts.Set(2)
	if got := testutil.ToFloat64(LockedAccounts); got != 2 {
		t.Errorf("LockedAccounts = %v, want 2", got)
	}
	Accounts.Set(7)
	if got := testutil.ToFloat64(Accounts); got != 7 {
		t.Errorf("Accounts = %v, want 7", got)
	}
}

func TestLoanCounters(t *testing.T) {
	before := testutil.ToFloat64(LoansIssued.WithLabelValues("Home Loan"))
	LoansIssued.WithLabelValues("Home Loan").Inc()
	if got := testutil.ToFloat64(LoansIssued.WithLabelValues("Home Loan")); got != before+1 {
		t.Errorf("LoansIssued{Home Loan} = %v, want %v", got, before+1)
	}
}

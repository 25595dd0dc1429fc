package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/minibank/minibank/internal/app/teller"
	"github.com/minibank/minibank/internal/daemon"
	"github.com/minibank/minibank/internal/domain"
	"github.com/minibank/minibank/internal/infra/directory"
	"github.com/minibank/minibank/internal/infra/export"
	"github.com/minibank/minibank/internal/infra/loanbook"
	"github.com/minibank/minibank/internal/infra/validate"
)

const (
	ruleHeavy = "=================================================="
	ruleLight = "--------------------------------------------------"
)

// Console is the interactive menu loop. All banking semantics live in the
// teller; the console only prompts, re-prompts and renders.
type Console struct {
	teller *teller.Service
	cfg    daemon.Config
	in     *bufio.Scanner
	out    io.Writer
	sleep  func(time.Duration) // stubbed in tests
}

// NewConsole builds a console over the teller.
func NewConsole(svc *teller.Service, cfg daemon.Config, in io.Reader, out io.Writer) *Console {
	svc.SetLinkAttempts(cfg.Linking.MaxAttempts)
	return &Console{
		teller: svc,
		cfg:    cfg,
		in:     bufio.NewScanner(in),
		out:    out,
		sleep:  time.Sleep,
	}
}

// ─── Input Helpers ──────────────────────────────────────────────────────────

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(args ...interface{}) {
	fmt.Fprintln(c.out, args...)
}

func (c *Console) banner(title string) {
	c.println("\n" + ruleHeavy)
	c.println(title)
	c.println(ruleHeavy)
}

func (c *Console) header(title string) {
	c.println("\n" + ruleLight)
	c.println(title)
	c.println(ruleLight)
}

// readLine prompts and returns the trimmed input line. EOF reads as empty.
func (c *Console) readLine(prompt string) string {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

// readAmount parses a dollar amount; malformed input reads as not-ok.
func (c *Console) readAmount(prompt string) (float64, bool) {
	s := c.readLine(prompt)
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		c.println("Invalid amount!")
		return 0, false
	}
	return amount, true
}

func (c *Console) pause() {
	c.readLine("\nPress Enter to continue...")
}

// capitalize normalizes a name the way it is stored: first letter upper,
// rest lower.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// ─── Main Screen ────────────────────────────────────────────────────────────

// Run drives the main screen until the user exits or input ends.
func (c *Console) Run() {
	c.banner("WELCOME TO THE BANKING SYSTEM")

	for {
		c.header("MAIN SCREEN")
		c.println("1. Login")
		c.println("2. Create New Account")
		c.println("3. Exit")

		switch c.readLine("\nEnter your choice: ") {
		case "1":
			if address, ok := c.login(); ok {
				c.session(address)
			}
		case "2":
			c.createAccount()
		case "3":
			c.println("\nThank you for using our banking system. Goodbye!")
			return
		case "":
			return // input closed
		default:
			c.println("Invalid choice! Please try again.")
		}
	}
}

// ─── Account Creation ───────────────────────────────────────────────────────

func (c *Console) createAccount() {
	c.banner("NEW ACCOUNT CREATION")

	name := capitalize(c.readLine("\nEnter your name: "))

	var dob string
	for {
		dob = c.readLine("Enter your date of birth (DD/MM/YYYY): ")
		if validate.Date(dob) {
			break
		}
		c.println("Invalid date format! Please enter in DD/MM/YYYY format.")
	}

	var home string
	for {
		home = c.readLine("Enter your home address: ")
		if validate.HomeAddress(home) {
			break
		}
		c.println("Invalid address!")
	}

	country := c.readLine("Enter your country: ")

	var phone string
	for {
		phone = c.readLine("Enter your phone number: ")
		if validate.Phone(phone) {
			break
		}
		c.println("Invalid phone number!")
	}

	var gender string
	for gender == "" {
		c.println("\nSelect your gender:")
		c.println("1. Male")
		c.println("2. Female")
		switch c.readLine("Enter choice (1 or 2): ") {
		case "1":
			gender = "Male"
		case "2":
			gender = "Female"
		default:
			c.println("Invalid choice! Please select 1 or 2.")
		}
	}

	var password string
	for {
		password = c.readLine("\nEnter your password (min 8 characters, must contain numbers and alphabets): ")
		if validate.Password(password) {
			break
		}
		c.println("Invalid password! Must be at least 8 characters with both numbers and alphabets.")
	}
	for c.readLine("Re-enter your password: ") != password {
		c.println("Passwords don't match! Please re-enter.")
	}

	details := domain.PersonalDetails{
		Name:        name,
		DateOfBirth: dob,
		HomeAddress: home,
		PhoneNumber: phone,
		Gender:      gender,
	}

	specialCode := ""
	linked := false
	if session, found := c.teller.MatchExisting(details); found {
		c.println("\n" + ruleLight)
		c.println("An account with matching personal details was found!")
		c.println("Would you like to link this new account?")
		if strings.EqualFold(c.readLine("Enter 'yes' to link or 'no' to create independent account: "), "yes") {
			for session.Remaining() > 0 {
				code := c.readLine(fmt.Sprintf("\nEnter your special code to link accounts (%d attempts remaining): ", session.Remaining()))
				if session.Try(code) {
					c.println("\nAccounts linked successfully!")
					specialCode = code
					linked = true
					break
				}
				if session.Remaining() > 0 {
					c.printf("Incorrect special code! %d attempt(s) remaining.\n", session.Remaining())
				}
			}
			if !linked {
				c.teller.AbortLink()
				c.println("\nToo many incorrect attempts!")
				c.println("Please visit the nearest branch to resolve this issue.")
				c.pause()
				return
			}
		}
	}

	acct := c.teller.CreateAccount(directory.CreateParams{
		Name:        name,
		DateOfBirth: dob,
		HomeAddress: home,
		PhoneNumber: phone,
		Gender:      gender,
		Country:     country,
		Password:    password,
		SpecialCode: specialCode,
	}, linked)

	c.banner("ACCOUNT CREATED SUCCESSFULLY!")
	c.println("Your Special Code: " + acct.SpecialCode)
	c.println("Your Account Address: " + acct.Address)
	c.println("\nIMPORTANT: Please save these details securely.")
	c.println("You will need them for future logins.")
	c.println(ruleHeavy)
	c.pause()
}

// ─── Login ──────────────────────────────────────────────────────────────────

func (c *Console) login() (string, bool) {
	c.banner("LOGIN")

	name := capitalize(c.readLine("\nEnter your name: "))
	specialCode := c.readLine("Enter your special code: ")
	address := c.readLine("Enter your account address: ")

	if err := c.teller.Authenticate(address, name, specialCode); err != nil {
		c.println("\nAccount not found or details don't exist!")
		c.pause()
		return "", false
	}

	if st := c.teller.CheckLock(address); st.Locked {
		c.lockoutCountdown(address)
		return "", false
	}

	for c.teller.AttemptsRemaining(address) > 0 {
		password := c.readLine(fmt.Sprintf("\nEnter your password (%d attempts remaining): ", c.teller.AttemptsRemaining(address)))
		res, err := c.teller.VerifyPassword(address, password)
		if err != nil {
			c.println("\nAccount not found or details don't exist!")
			c.pause()
			return "", false
		}
		switch {
		case res.OK:
			c.println("\nLogin successful!")
			return address, true
		case res.LockedOut:
			c.lockoutCountdown(address)
			return "", false
		default:
			c.printf("Incorrect password! %d attempt(s) remaining.\n", res.AttemptsLeft)
		}
	}
	return "", false
}

// lockoutCountdown polls the lock once per second until it expires.
func (c *Console) lockoutCountdown(address string) {
	c.banner("TOO MANY WRONG ATTEMPTS!")
	for {
		st := c.teller.CheckLock(address)
		if !st.Locked {
			c.println("\nAccount unlocked! You may try again.")
			c.pause()
			return
		}
		c.printf("\rUser locked out of system. Time remaining: %d seconds  ", st.Remaining)
		c.sleep(time.Second)
	}
}

// ─── Session ────────────────────────────────────────────────────────────────

func (c *Console) showInfo(address string) {
	info, err := c.teller.Info(address)
	if err != nil {
		c.println("Error:", err)
		return
	}
	c.banner("ACCOUNT INFORMATION")
	c.println("Name: " + info.Name)
	c.println("Branch ID: " + info.BranchID)
	c.println("Account Address: " + info.Address)
	c.printf("Balance: $%.2f\n", info.Balance)
	c.println(ruleHeavy)
}

func (c *Console) session(address string) {
	for {
		c.showInfo(address)
		c.header("MAIN MENU")
		c.println("1. Account Options")
		c.println("2. Loan Options")
		c.println("3. Switch Account")
		c.println("4. Transaction History")
		c.println("5. Export Statement")
		c.println("6. Logout")

		switch c.readLine("\nEnter your choice: ") {
		case "1":
			c.accountOptions(address)
		case "2":
			c.loanOptions(address)
		case "3":
			address = c.switchAccount(address)
		case "4":
			c.history(address)
		case "5":
			c.exportStatement(address)
		case "6":
			c.println("\nLogging out... Thank you for using our banking system!")
			c.pause()
			return
		case "":
			return
		default:
			c.println("Invalid choice!")
		}
	}
}

// ─── Account Options ────────────────────────────────────────────────────────

func (c *Console) accountOptions(address string) {
	for {
		c.header("ACCOUNT OPTIONS")
		c.println("1. Deposit")
		c.println("2. Withdraw")
		c.println("3. Check Balance")
		c.println("4. Transfer")
		c.println("5. Back to Menu")

		switch c.readLine("\nEnter your choice: ") {
		case "1":
			c.deposit(address)
		case "2":
			c.withdraw(address)
		case "3":
			c.checkBalance(address)
		case "4":
			c.println("\nTransfer feature coming soon!")
		case "5", "":
			return
		default:
			c.println("Invalid choice!")
		}
	}
}

func (c *Console) deposit(address string) {
	amount, ok := c.readAmount("\nEnter deposit amount: $")
	if !ok {
		return
	}
	balance, err := c.teller.Deposit(address, amount)
	if err != nil {
		if err == domain.ErrInvalidAmount {
			c.println("Amount must be greater than zero!")
		} else {
			c.println("Error:", err)
		}
		return
	}
	c.printf("\nDeposited $%.2f\n", amount)
	c.printf("New balance: $%.2f\n", balance)
}

func (c *Console) withdraw(address string) {
	amount, ok := c.readAmount("\nEnter withdrawal amount: $")
	if !ok {
		return
	}
	balance, err := c.teller.Withdraw(address, amount)
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount:
			c.println("Amount must be greater than zero!")
		case domain.ErrInsufficientFunds:
			c.println("\nInsufficient balance!")
		default:
			c.println("Error:", err)
		}
		return
	}
	c.printf("\nWithdrew $%.2f\n", amount)
	c.printf("New balance: $%.2f\n", balance)
}

func (c *Console) checkBalance(address string) {
	info, err := c.teller.Info(address)
	if err != nil {
		c.println("Error:", err)
		return
	}
	c.printf("\nCurrent balance: $%.2f\n", info.Balance)
}

// ─── Switch Account ─────────────────────────────────────────────────────────

// switchAccount returns the new session address, or the current one when
// the switch does not complete.
func (c *Console) switchAccount(current string) string {
	c.banner("SWITCH ACCOUNT")

	target := c.readLine("\nEnter the account address to switch to: ")
	sw, err := c.teller.BeginSwitch(current, target)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			c.println("Account not found!")
		case domain.ErrAuthFailed:
			c.println("This account does not belong to you!")
		default:
			c.println("Error:", err)
		}
		c.pause()
		return current
	}

	for sw.Remaining() > 0 {
		password := c.readLine(fmt.Sprintf("\nEnter password for account %s (%d attempts remaining): ", target, sw.Remaining()))
		if sw.Try(password) {
			c.printf("\nSwitched to account %s successfully!\n", target)
			c.pause()
			return target
		}
		if sw.Remaining() > 0 {
			c.printf("Incorrect password! %d attempt(s) remaining.\n", sw.Remaining())
		}
	}
	c.println("\nToo many incorrect attempts! Returning to current account.")
	c.pause()
	return current
}

// ─── Loan Options ───────────────────────────────────────────────────────────

func (c *Console) loanOptions(address string) {
	for {
		c.header("LOAN OPTIONS")
		c.println("1. Apply for Loan")
		c.println("2. View Loans")
		c.println("3. Repay Loan")
		c.println("4. Back to Menu")

		switch c.readLine("\nEnter your choice: ") {
		case "1":
			c.applyLoan(address)
		case "2":
			c.viewLoans(address)
		case "3":
			c.repayLoan(address)
		case "4", "":
			return
		default:
			c.println("Invalid choice!")
		}
	}
}

func (c *Console) applyLoan(address string) {
	c.banner("APPLY FOR LOAN")

	amount, ok := c.readAmount("\nEnter loan amount: $")
	if !ok {
		c.pause()
		return
	}

	c.println("\nSelect Loan Type:")
	types := domain.LoanTypes()
	for i, lt := range types {
		c.printf("%d. %s\n", i+1, lt)
	}
	ti, err := strconv.Atoi(c.readLine("\nEnter your choice: "))
	if err != nil || ti < 1 || ti > len(types) {
		c.println("Invalid loan type!")
		c.pause()
		return
	}

	c.println("\nSelect Payment Plan:")
	plans := domain.PaymentPlans()
	for i, p := range plans {
		c.printf("%d. %s\n", i+1, p)
	}
	pi, err := strconv.Atoi(c.readLine("\nEnter your choice: "))
	if err != nil || pi < 1 || pi > len(plans) {
		c.println("Invalid payment plan!")
		c.pause()
		return
	}

	c.header("VERIFICATION")
	specialCode := c.readLine("Enter your special code: ")
	password := c.readLine("Enter your password: ")

	loan, err := c.teller.ApplyLoan(address, loanbook.ApplyParams{
		Principal:   amount,
		Type:        types[ti-1],
		Plan:        plans[pi-1],
		SpecialCode: specialCode,
		Password:    password,
	})
	if err != nil {
		switch err {
		case domain.ErrAuthFailed:
			c.println("\nAuthentication failed!")
		case domain.ErrInvalidAmount:
			c.println("Invalid amount! Amount must be greater than zero.")
		default:
			c.println("Error:", err)
		}
		c.pause()
		return
	}

	c.banner("LOAN APPROVED!")
	c.printf("Loan Type: %s\n", types[ti-1])
	c.printf("Principal: $%.2f\n", loan.Principal)
	c.printf("Interest Rate: %.0f%%\n", loan.InterestRate*100)
	c.printf("Interest Amount: $%.2f\n", loan.InterestAmount)
	c.printf("Total Payable: $%.2f\n", loan.TotalPayable)
	c.printf("Payment Plan: %s\n", loan.PaymentPlan)
	c.printf("Suggested Installment: $%.2f x %d\n", loan.SuggestedInstallment, loan.TotalInstallments)
	c.println(ruleHeavy)
	c.pause()
}

func (c *Console) viewLoans(address string) {
	report, err := c.teller.ListLoans(address)
	if err != nil {
		c.println("Error:", err)
		return
	}

	c.banner("YOUR LOANS")
	for _, cat := range report {
		c.println("\n" + string(cat.Type) + ":")
		if len(cat.Loans) == 0 {
			c.println("  No loan pending.")
			continue
		}
		for i, snap := range cat.Loans {
			l := snap.Loan
			c.printf("  Loan %d:\n", i+1)
			c.printf("    Principal: $%.2f\n", l.Principal)
			c.printf("    Total Payable: $%.2f\n", l.TotalPayable)
			c.printf("    Paid: $%.2f   Remaining: $%.2f\n", l.PaidAmount, l.RemainingAmount)
			c.printf("    Plan: %s (suggested $%.2f x %d, %d paid)\n",
				l.PaymentPlan, l.SuggestedInstallment, l.TotalInstallments, l.InstallmentsPaid)
			c.printf("    Start Date: %s\n", l.StartDate.Format("02/01/2006"))
			if !l.LastPaymentDate.IsZero() {
				c.printf("    Last Payment: %s\n", l.LastPaymentDate.Format("02/01/2006"))
			}
			if snap.FullyPaid {
				c.println("    Status: Fully Paid")
			} else {
				c.printf("    Status: %.1f%% complete\n", snap.Completion)
			}
		}
	}
	c.pause()
}

func (c *Console) repayLoan(address string) {
	c.banner("REPAY LOAN")

	report, err := c.teller.ListLoans(address)
	if err != nil {
		c.println("Error:", err)
		c.pause()
		return
	}

	// Only categories with an unsettled loan are offered.
	var active []loanbook.CategoryReport
	for _, cat := range report {
		for _, snap := range cat.Loans {
			if !snap.FullyPaid {
				active = append(active, cat)
				break
			}
		}
	}
	if len(active) == 0 {
		c.println("\nYou have no active loans.")
		c.pause()
		return
	}

	c.println("\nSelect Loan Category:")
	for i, cat := range active {
		c.printf("%d. %s\n", i+1, cat.Type)
	}
	ci, err := strconv.Atoi(c.readLine("\nEnter your choice: "))
	if err != nil || ci < 1 || ci > len(active) {
		c.println("Invalid choice!")
		c.pause()
		return
	}
	category := active[ci-1]

	// With several active loans in the category, the user picks one.
	index := 1
	var unsettled []loanbook.LoanSnapshot
	for _, snap := range category.Loans {
		if !snap.FullyPaid {
			unsettled = append(unsettled, snap)
		}
	}
	if len(unsettled) > 1 {
		c.println("\nSelect Loan:")
		for i, snap := range unsettled {
			c.printf("%d. Principal $%.2f, remaining $%.2f\n", i+1, snap.Loan.Principal, snap.Loan.RemainingAmount)
		}
		index, err = strconv.Atoi(c.readLine("\nEnter your choice: "))
		if err != nil {
			c.println("Invalid choice!")
			c.pause()
			return
		}
	}

	amount, ok := c.readAmount("\nEnter repayment amount: $")
	if !ok {
		c.pause()
		return
	}

	params := loanbook.RepayParams{Type: category.Type, Index: index, Amount: amount}
	res, err := c.teller.RepayLoan(address, params)
	if overpay, isOver := err.(*loanbook.OverpaymentError); isOver {
		c.printf("\nAmount exceeds remaining balance. Maximum payable: $%.2f\n", overpay.MaxPayable)
		if !strings.EqualFold(c.readLine("Pay the remaining balance instead? (yes/no): "), "yes") {
			c.println("\nRepayment cancelled.")
			c.pause()
			return
		}
		params.AcceptOverpayment = true
		res, err = c.teller.RepayLoan(address, params)
	}
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount:
			c.println("Amount must be greater than zero!")
		case domain.ErrInsufficientFunds:
			c.println("\nInsufficient balance!")
		case domain.ErrInvalidSelection:
			c.println("Invalid choice!")
		default:
			c.println("Error:", err)
		}
		c.pause()
		return
	}

	c.printf("\nPaid $%.2f\n", res.AmountPaid)
	c.printf("New balance: $%.2f\n", res.NewBalance)
	if res.Settled {
		c.println("\nCongratulations! This loan is fully settled.")
	} else {
		c.printf("Loan is %.1f%% complete.\n", res.Completion)
	}
	c.pause()
}

// ─── History & Export ───────────────────────────────────────────────────────

func (c *Console) history(address string) {
	entries, err := c.teller.History(address)
	if err != nil {
		c.println("Error:", err)
		c.pause()
		return
	}

	c.banner("TRANSACTION HISTORY")
	if len(entries) == 0 {
		c.println("\nNo transactions recorded.")
		c.pause()
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-14s  $%10.2f  balance $%10.2f",
			e.At.Format("02/01/2006 15:04:05"), e.Kind, e.Amount, e.Balance)
		if e.Note != "" {
			line += "  (" + e.Note + ")"
		}
		c.println(line)
	}
	c.pause()
}

func (c *Console) exportStatement(address string) {
	info, err := c.teller.Info(address)
	if err != nil {
		c.println("Error:", err)
		return
	}
	entries, err := c.teller.History(address)
	if err != nil {
		c.println("Error:", err)
		return
	}
	st := export.Statement{Account: info, Entries: entries}

	c.header("EXPORT STATEMENT")
	c.println("1. PDF")
	c.println("2. XLSX")
	c.println("3. Back to Menu")

	var path string
	switch c.readLine("\nEnter your choice: ") {
	case "1":
		path, err = export.PDF(c.cfg.Export.Dir, st)
	case "2":
		path, err = export.XLSX(c.cfg.Export.Dir, st)
	default:
		return
	}
	if err != nil {
		c.println("Export failed:", err)
	} else {
		c.println("\nStatement written to " + path)
	}
	c.pause()
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus indicates the lifecycle state of a loan.
type LoanStatus string

const (
	LoanActive    LoanStatus = "ACTIVE"
	LoanPaid      LoanStatus = "PAID"
	LoanDefaulted LoanStatus = "DEFAULTED"
	LoanCancelled LoanStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is possible.
func (s LoanStatus) IsTerminal() bool {
	return s != LoanActive
}

// Loan is money advanced to a team member out of an expense account.
// PrincipalAmount and CurrentBalance are in the account's native currency so
// balance arithmetic never needs a conversion; Original keeps the user input.
type Loan struct {
	LoanID          string          `json:"loanID"`
	OrganizationID  string          `json:"organizationID"`
	BusinessID      string          `json:"businessID"` // FK -> expense_accounts
	TeamMemberID    string          `json:"teamMemberID"`
	AccountCurrency string          `json:"accountCurrency"`
	PrincipalAmount decimal.Decimal `json:"principalAmount"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	Original        MoneyEntry      `json:"original"`
	LoanDate        time.Time       `json:"loanDate"`
	Notes           string          `json:"notes"`
	Status          LoanStatus      `json:"status"`
	AuditFields
}

// LoanPayment is an immutable, append-only pay-down record. Amount is in the
// loan's account currency.
type LoanPayment struct {
	LoanPaymentID string          `json:"loanPaymentID"`
	LoanID        string          `json:"loanID"`
	Amount        decimal.Decimal `json:"amount"`
	Original      MoneyEntry      `json:"original"`
	PaymentDate   time.Time       `json:"paymentDate"`
	RecordedBy    string          `json:"recordedBy"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// CanAcceptPayment reports whether amount may be applied without driving the
// balance negative.
func (l *Loan) CanAcceptPayment(amount decimal.Decimal) bool {
	return l.Status == LoanActive && amount.IsPositive() && amount.LessThanOrEqual(l.CurrentBalance)
}

// ApplyPayment decrements the balance and moves the loan to PAID once the
// balance reaches exactly zero. Callers must check CanAcceptPayment first.
func (l *Loan) ApplyPayment(amount decimal.Decimal, userID string, now time.Time) {
	l.CurrentBalance = l.CurrentBalance.Sub(amount)
	if l.CurrentBalance.IsZero() {
		l.Status = LoanPaid
	}
	l.Touch(userID, now)
}

// OutstandingFromPayments recomputes the balance from the principal and the
// payment history.
func (l *Loan) OutstandingFromPayments(payments []LoanPayment) decimal.Decimal {
	balance := l.PrincipalAmount
	for _, p := range payments {
		balance = balance.Sub(p.Amount)
	}
	return balance
}

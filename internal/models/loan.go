package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is the loans table row. The original_* columns hold the amount as entered.
type Loan struct {
	LoanID          string          `db:"loan_id"`
	OrganizationID  string          `db:"organization_id"`
	BusinessID      string          `db:"business_id"`
	TeamMemberID    string          `db:"team_member_id"`
	AccountCurrency string          `db:"account_currency"`
	PrincipalAmount decimal.Decimal `db:"principal_amount"`
	CurrentBalance  decimal.Decimal `db:"current_balance"`
	Original        MoneyEntry
	LoanDate        time.Time `db:"loan_date"`
	Notes           string    `db:"notes"`
	Status          string    `db:"status"`
	AuditFields
}

// LoanPayment is the loan_payments table row.
type LoanPayment struct {
	LoanPaymentID string          `db:"loan_payment_id"`
	LoanID        string          `db:"loan_id"`
	Amount        decimal.Decimal `db:"amount"`
	Original      MoneyEntry
	PaymentDate   time.Time `db:"payment_date"`
	RecordedBy    string    `db:"recorded_by"`
	CreatedAt     time.Time `db:"created_at"`
}

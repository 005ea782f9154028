package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseReport is the expense_reports table row. Breakdowns are stored as JSONB.
type ExpenseReport struct {
	ReportID          string          `db:"report_id"`
	OrganizationID    string          `db:"organization_id"`
	Kind              string          `db:"kind"`
	PeriodStart       time.Time       `db:"period_start"`
	PeriodEnd         time.Time       `db:"period_end"`
	ReportCurrency    string          `db:"report_currency"`
	AccountIDs        []string        `db:"account_ids"`
	TotalExpenses     decimal.Decimal `db:"total_expenses"`
	CategoryBreakdown []byte          `db:"category_breakdown"`
	AccountBreakdown  []byte          `db:"account_breakdown"`
	GeneratedAt       time.Time       `db:"generated_at"`
	GeneratedBy       string          `db:"generated_by"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportKind distinguishes user-requested reports from the monthly batch.
type ReportKind string

const (
	ReportCustom  ReportKind = "CUSTOM"
	ReportMonthly ReportKind = "MONTHLY"
)

// Period is a half-open [Start, End) time window.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// PreviousCalendarMonth returns the full calendar month before now's month.
func PreviousCalendarMonth(now time.Time) Period {
	firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Period{Start: firstOfThis.AddDate(0, -1, 0), End: firstOfThis}
}

// CurrentCalendarMonth returns the month containing now, up to now.
func CurrentCalendarMonth(now time.Time) Period {
	return Period{Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), End: now}
}

// LastDays returns the window of the n days ending at now.
func LastDays(now time.Time, n int) Period {
	return Period{Start: now.AddDate(0, 0, -n), End: now}
}

// CategoryTotal is a per-category sum in the report currency.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// AccountTotal is a per-account sum in that account's native currency.
type AccountTotal struct {
	ExpenseAccountID string          `json:"expenseAccountID"`
	AccountName      string          `json:"accountName"`
	Currency         string          `json:"currency"`
	Total            decimal.Decimal `json:"total"`
	Count            int             `json:"count"`
}

// ExpenseReport is a frozen aggregation. Totals are never recomputed once
// generated; regeneration creates a new report.
type ExpenseReport struct {
	ReportID          string          `json:"reportID"`
	OrganizationID    string          `json:"organizationID"`
	Kind              ReportKind      `json:"kind"`
	Period            Period          `json:"period"`
	ReportCurrency    string          `json:"reportCurrency"`
	AccountIDs        []string        `json:"accountIDs,omitempty"` // nil means all accounts
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	CategoryBreakdown []CategoryTotal `json:"categoryBreakdown"`
	AccountBreakdown  []AccountTotal  `json:"accountBreakdown"`
	GeneratedAt       time.Time       `json:"generatedAt"`
	GeneratedBy       string          `json:"generatedBy"`
}

// AccountSummary holds wall-clock windows for a single account, in the
// account's native currency.
type AccountSummary struct {
	ExpenseAccountID  string          `json:"expenseAccountID"`
	Currency          string          `json:"currency"`
	Last30Days        decimal.Decimal `json:"last30Days"`
	CurrentMonth      decimal.Decimal `json:"currentMonth"`
	CurrentMonthByCat []CategoryTotal `json:"currentMonthByCategory"`
	OutstandingLoans  decimal.Decimal `json:"outstandingLoans"`
	GeneratedAt       time.Time       `json:"generatedAt"`
}

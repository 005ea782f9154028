package dto

import (
	"time"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GenerateReportRequest defines the body for a custom report. An empty
// AccountIDs covers every account of the organization.
// The period is half-open like every stored report: PeriodEnd is excluded, so
// a January report runs to 2026-02-01. Unlike the expense listing's `to`, it is
// not an inclusive calendar date.
type GenerateReportRequest struct {
	AccountIDs     []string  `json:"accountIDs"`
	PeriodStart    time.Time `json:"periodStart" binding:"required"`
	PeriodEnd      time.Time `json:"periodEnd" binding:"required,gtfield=PeriodStart"` // exclusive
	ReportCurrency string    `json:"reportCurrency" binding:"required,currency_code"`
}

// ReportResponse defines the data returned for a stored report.
type ReportResponse struct {
	ReportID          string                 `json:"reportID"`
	Kind              domain.ReportKind      `json:"kind"`
	PeriodStart       time.Time              `json:"periodStart"`
	PeriodEnd         time.Time              `json:"periodEnd"`
	ReportCurrency    string                 `json:"reportCurrency"`
	AccountIDs        []string               `json:"accountIDs,omitempty"`
	TotalExpenses     decimal.Decimal        `json:"totalExpenses"`
	CategoryBreakdown []domain.CategoryTotal `json:"categoryBreakdown"`
	AccountBreakdown  []domain.AccountTotal  `json:"accountBreakdown"`
	GeneratedAt       time.Time              `json:"generatedAt"`
	GeneratedBy       string                 `json:"generatedBy"`
}

// ToReportResponse converts a domain.ExpenseReport to ReportResponse DTO.
func ToReportResponse(r domain.ExpenseReport) ReportResponse {
	return ReportResponse{
		ReportID:          r.ReportID,
		Kind:              r.Kind,
		PeriodStart:       r.Period.Start,
		PeriodEnd:         r.Period.End,
		ReportCurrency:    r.ReportCurrency,
		AccountIDs:        r.AccountIDs,
		TotalExpenses:     r.TotalExpenses,
		CategoryBreakdown: r.CategoryBreakdown,
		AccountBreakdown:  r.AccountBreakdown,
		GeneratedAt:       r.GeneratedAt,
		GeneratedBy:       r.GeneratedBy,
	}
}

// ToReportResponses converts a slice of domain.ExpenseReport.
func ToReportResponses(reports []domain.ExpenseReport) []ReportResponse {
	responses := make([]ReportResponse, len(reports))
	for i, r := range reports {
		responses[i] = ToReportResponse(r)
	}
	return responses
}

// AccountSummaryResponse defines the rolling windows of one account.
type AccountSummaryResponse struct {
	ExpenseAccountID       string                 `json:"expenseAccountID"`
	Currency               string                 `json:"currency"`
	Last30Days             decimal.Decimal        `json:"last30Days"`
	CurrentMonth           decimal.Decimal        `json:"currentMonth"`
	CurrentMonthByCategory []domain.CategoryTotal `json:"currentMonthByCategory"`
	OutstandingLoans       decimal.Decimal        `json:"outstandingLoans"`
	GeneratedAt            time.Time              `json:"generatedAt"`
}

// ToAccountSummaryResponse converts a domain.AccountSummary.
func ToAccountSummaryResponse(s domain.AccountSummary) AccountSummaryResponse {
	return AccountSummaryResponse{
		ExpenseAccountID:       s.ExpenseAccountID,
		Currency:               s.Currency,
		Last30Days:             s.Last30Days,
		CurrentMonth:           s.CurrentMonth,
		CurrentMonthByCategory: s.CurrentMonthByCat,
		OutstandingLoans:       s.OutstandingLoans,
		GeneratedAt:            s.GeneratedAt,
	}
}

// JobRunResponse reports how many items a batch job processed.
type JobRunResponse struct {
	Job       string    `json:"job"`
	Processed int       `json:"processed"`
	RanAt     time.Time `json:"ranAt"`
}

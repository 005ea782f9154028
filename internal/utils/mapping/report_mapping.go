package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/SscSPs/expense_ledger/internal/models"
)

// ToModelExpenseReport converts a domain ExpenseReport to a model ExpenseReport,
// encoding the breakdowns for their JSONB columns.
func ToModelExpenseReport(d domain.ExpenseReport) (models.ExpenseReport, error) {
	categories, err := json.Marshal(nonNil(d.CategoryBreakdown))
	if err != nil {
		return models.ExpenseReport{}, fmt.Errorf("failed to encode category breakdown: %w", err)
	}
	accounts, err := json.Marshal(nonNil(d.AccountBreakdown))
	if err != nil {
		return models.ExpenseReport{}, fmt.Errorf("failed to encode account breakdown: %w", err)
	}
	return models.ExpenseReport{
		ReportID:          d.ReportID,
		OrganizationID:    d.OrganizationID,
		Kind:              string(d.Kind),
		PeriodStart:       d.Period.Start,
		PeriodEnd:         d.Period.End,
		ReportCurrency:    d.ReportCurrency,
		AccountIDs:        d.AccountIDs,
		TotalExpenses:     d.TotalExpenses,
		CategoryBreakdown: categories,
		AccountBreakdown:  accounts,
		GeneratedAt:       d.GeneratedAt,
		GeneratedBy:       d.GeneratedBy,
	}, nil
}

// ToDomainExpenseReport converts a model ExpenseReport to a domain ExpenseReport.
func ToDomainExpenseReport(m models.ExpenseReport) (domain.ExpenseReport, error) {
	report := domain.ExpenseReport{
		ReportID:          m.ReportID,
		OrganizationID:    m.OrganizationID,
		Kind:              domain.ReportKind(m.Kind),
		Period:            domain.Period{Start: m.PeriodStart, End: m.PeriodEnd},
		ReportCurrency:    m.ReportCurrency,
		AccountIDs:        m.AccountIDs,
		TotalExpenses:     m.TotalExpenses,
		CategoryBreakdown: []domain.CategoryTotal{},
		AccountBreakdown:  []domain.AccountTotal{},
		GeneratedAt:       m.GeneratedAt,
		GeneratedBy:       m.GeneratedBy,
	}
	if len(m.CategoryBreakdown) > 0 {
		if err := json.Unmarshal(m.CategoryBreakdown, &report.CategoryBreakdown); err != nil {
			return domain.ExpenseReport{}, fmt.Errorf("failed to decode category breakdown of report %s: %w", m.ReportID, err)
		}
	}
	if len(m.AccountBreakdown) > 0 {
		if err := json.Unmarshal(m.AccountBreakdown, &report.AccountBreakdown); err != nil {
			return domain.ExpenseReport{}, fmt.Errorf("failed to decode account breakdown of report %s: %w", m.ReportID, err)
		}
	}
	return report, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
)

// ReportReader defines read operations for stored report snapshots
type ReportReader interface {
	// FindReportByID retrieves a report scoped to its organization.
	FindReportByID(ctx context.Context, organizationID, reportID string) (*domain.ExpenseReport, error)

	// ListReports retrieves an organization's reports, newest first.
	ListReports(ctx context.Context, organizationID string) ([]domain.ExpenseReport, error)

	// MonthlyReportExists reports whether the MONTHLY report starting at periodStart was generated.
	MonthlyReportExists(ctx context.Context, organizationID string, periodStart time.Time) (bool, error)
}

// ReportWriter defines write operations for report snapshots
type ReportWriter interface {
	// SaveReport persists a report. A second MONTHLY report for the same
	// period returns ErrDuplicate.
	SaveReport(ctx context.Context, report domain.ExpenseReport) error
}

// ReportRepositoryFacade combines all report repository interfaces
type ReportRepositoryFacade interface {
	ReportReader
	ReportWriter
}

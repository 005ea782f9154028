package services

import (
	"context"
	"time"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/SscSPs/expense_ledger/internal/dto"
)

// ReportGeneratorSvc builds and stores report snapshots
type ReportGeneratorSvc interface {
	// GenerateCustomReport aggregates the requested accounts and period.
	GenerateCustomReport(ctx context.Context, organizationID string, req dto.GenerateReportRequest, userID string) (*domain.ExpenseReport, error)
}

// ReportReaderSvc defines read operations for reports and live summaries
type ReportReaderSvc interface {
	GetReport(ctx context.Context, organizationID, reportID, userID string) (*domain.ExpenseReport, error)
	ListReports(ctx context.Context, organizationID, userID string) ([]domain.ExpenseReport, error)

	// GetAccountSummary computes wall-clock windows relative to now.
	GetAccountSummary(ctx context.Context, organizationID, accountID, userID string, now time.Time) (*domain.AccountSummary, error)
}

// MonthlyReportJob is the batch entry point run by the external scheduler.
type MonthlyReportJob interface {
	// GenerateMonthlyReports stores the previous calendar month's report for
	// every organization that does not have one yet and returns how many were generated.
	GenerateMonthlyReports(ctx context.Context, now time.Time) (int, error)
}

// ReportSvcFacade combines all report service interfaces
type ReportSvcFacade interface {
	ReportGeneratorSvc
	ReportReaderSvc
	MonthlyReportJob
}

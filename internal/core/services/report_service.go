package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/expense_ledger/internal/apperrors"
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
	"github.com/SscSPs/expense_ledger/internal/dto"
	"github.com/SscSPs/expense_ledger/internal/utils/aggregation"
	"github.com/SscSPs/expense_ledger/internal/utils/conversion"
	"github.com/google/uuid"
)

// reportService builds report snapshots and live account summaries.
type reportService struct {
	BaseService
	reportRepo  portsrepo.ReportRepositoryFacade
	expenseRepo portsrepo.ExpenseReader
	accountRepo portsrepo.ExpenseAccountReader
	loanRepo    portsrepo.LoanReader
	orgReader   portssvc.OrganizationReaderSvc
	rates       portssvc.RateTableProvider
	notifier    portssvc.Notifier
}

// ReportServiceOption is a functional option for configuring the report service
type ReportServiceOption func(*reportService)

// WithReportAuthorizer sets the organization authorizer for the report service.
func WithReportAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) ReportServiceOption {
	return func(s *reportService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// WithReportNotifier sets where monthly report mails are enqueued.
func WithReportNotifier(n portssvc.Notifier) ReportServiceOption {
	return func(s *reportService) {
		s.notifier = n
	}
}

// NewReportService creates a new report service.
func NewReportService(
	reportRepo portsrepo.ReportRepositoryFacade,
	expenseRepo portsrepo.ExpenseReader,
	accountRepo portsrepo.ExpenseAccountReader,
	loanRepo portsrepo.LoanReader,
	orgReader portssvc.OrganizationReaderSvc,
	rates portssvc.RateTableProvider,
	options ...ReportServiceOption,
) portssvc.ReportSvcFacade {
	svc := &reportService{
		reportRepo:  reportRepo,
		expenseRepo: expenseRepo,
		accountRepo: accountRepo,
		loanRepo:    loanRepo,
		orgReader:   orgReader,
		rates:       rates,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

// GenerateCustomReport aggregates the requested accounts over the period in
// the requested currency and stores the snapshot.
func (s *reportService) GenerateCustomReport(ctx context.Context, organizationID string, req dto.GenerateReportRequest, userID string) (*domain.ExpenseReport, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.AnyMember...); err != nil {
		return nil, err
	}
	period := domain.Period{Start: req.PeriodStart, End: req.PeriodEnd}
	if !period.Start.Before(period.End) {
		return nil, fmt.Errorf("%w: period end must be after period start", apperrors.ErrValidation)
	}

	report, err := s.buildReport(ctx, organizationID, req.AccountIDs, period, strings.ToUpper(req.ReportCurrency), domain.ReportCustom, userID, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.reportRepo.SaveReport(ctx, *report); err != nil {
		s.LogError(ctx, err, "Failed to save report", slog.String("report_id", report.ReportID))
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	s.LogInfo(ctx, "Custom report generated",
		slog.String("report_id", report.ReportID),
		slog.String("currency", report.ReportCurrency),
		slog.String("total", report.TotalExpenses.String()))
	return report, nil
}

func (s *reportService) buildReport(ctx context.Context, organizationID string, accountIDs []string, period domain.Period, currency string, kind domain.ReportKind, generatedBy string, now time.Time) (*domain.ExpenseReport, error) {
	accounts, err := s.accountRepo.ListExpenseAccounts(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense accounts: %w", err)
	}
	byID := make(map[string]domain.ExpenseAccount, len(accounts))
	for _, a := range accounts {
		byID[a.ExpenseAccountID] = a
	}
	for _, id := range accountIDs {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("%w: expense account %s", apperrors.ErrNotFound, id)
		}
	}

	table, err := s.rates.RateTable(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if currency != table.BaseCurrency {
		if _, ok := table.Rate(currency); !ok {
			return nil, apperrors.NewRateNotFoundError(currency)
		}
	}

	expenses, err := s.expenseRepo.ListExpenses(ctx, portsrepo.ExpenseFilter{
		OrganizationID: organizationID,
		AccountIDs:     accountIDs,
		From:           period.Start,
		To:             period.End,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for report: %w", err)
	}

	totals, err := aggregation.Aggregate(expenses, byID, currency, table)
	if err != nil {
		return nil, err
	}

	var ids []string
	if len(accountIDs) > 0 {
		ids = accountIDs
	}
	return &domain.ExpenseReport{
		ReportID:          uuid.NewString(),
		OrganizationID:    organizationID,
		Kind:              kind,
		Period:            period,
		ReportCurrency:    currency,
		AccountIDs:        ids,
		TotalExpenses:     totals.Total,
		CategoryBreakdown: totals.CategoryBreakdown,
		AccountBreakdown:  totals.AccountBreakdown,
		GeneratedAt:       now,
		GeneratedBy:       generatedBy,
	}, nil
}

// GenerateMonthlyReports stores the previous calendar month's report, in the
// base currency across all accounts, for every organization that lacks one.
// Re-running within the same month generates nothing new.
func (s *reportService) GenerateMonthlyReports(ctx context.Context, now time.Time) (int, error) {
	orgs, err := s.orgReader.ListOrganizations(ctx)
	if err != nil {
		return 0, err
	}
	period := domain.PreviousCalendarMonth(now)

	generated := 0
	for _, org := range orgs {
		if err := ctx.Err(); err != nil {
			s.LogWarn(ctx, "Monthly report job interrupted", slog.Int("reports_generated", generated))
			return generated, err
		}
		ok, err := s.generateMonthly(ctx, org, period, now)
		if err != nil {
			s.LogError(ctx, err, "Failed to generate monthly report",
				slog.String("organization_id", org.OrganizationID),
				slog.Time("period_start", period.Start))
			continue
		}
		if ok {
			generated++
		}
	}

	s.LogInfo(ctx, "Monthly report job finished",
		slog.Int("organizations", len(orgs)),
		slog.Int("reports_generated", generated))
	return generated, nil
}

func (s *reportService) generateMonthly(ctx context.Context, org domain.Organization, period domain.Period, now time.Time) (bool, error) {
	exists, err := s.reportRepo.MonthlyReportExists(ctx, org.OrganizationID, period.Start)
	if err != nil {
		return false, fmt.Errorf("failed to check existing monthly report: %w", err)
	}
	if exists {
		s.LogDebug(ctx, "Monthly report already exists", slog.String("organization_id", org.OrganizationID))
		return false, nil
	}

	report, err := s.buildReport(ctx, org.OrganizationID, nil, period, org.BaseCurrency, domain.ReportMonthly, systemUserID, now)
	if err != nil {
		return false, err
	}
	if err := s.reportRepo.SaveReport(ctx, *report); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return false, nil
		}
		return false, fmt.Errorf("failed to save monthly report: %w", err)
	}

	if err := s.notifyMonthly(ctx, org, *report, now); err != nil {
		s.LogError(ctx, err, "Failed to enqueue monthly report mail", slog.String("report_id", report.ReportID))
	}
	return true, nil
}

func (s *reportService) notifyMonthly(ctx context.Context, org domain.Organization, report domain.ExpenseReport, now time.Time) error {
	if s.notifier == nil {
		return nil
	}
	members, err := s.orgReader.ListMembers(ctx, org.OrganizationID)
	if err != nil {
		return err
	}
	recipients := make([]string, 0, len(members))
	for _, m := range members {
		if m.Email != "" && m.HasRole(domain.LedgerManagers...) {
			recipients = append(recipients, m.Email)
		}
	}
	if len(recipients) == 0 {
		return nil
	}

	format, err := s.rates.Formatting(ctx, org.OrganizationID, report.ReportCurrency)
	if err != nil {
		return err
	}
	month := report.Period.Start.Format("January 2006")
	return s.notifier.Enqueue(ctx, domain.MailJob{
		Kind:           domain.MailMonthlyReport,
		OrganizationID: org.OrganizationID,
		Recipients:     recipients,
		Subject:        fmt.Sprintf("%s expense report for %s", org.Name, month),
		Body: fmt.Sprintf("Total expenses for %s: %s across %d categories.",
			month, conversion.FormatAmount(report.TotalExpenses, report.ReportCurrency, format), len(report.CategoryBreakdown)),
		ReferenceID: report.ReportID,
		CreatedAt:   now,
	})
}

// GetAccountSummary returns the last 30 days and the current calendar month
// of one account, both measured from now, in the account's native currency.
func (s *reportService) GetAccountSummary(ctx context.Context, organizationID, accountID, userID string, now time.Time) (*domain.AccountSummary, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.AnyMember...); err != nil {
		return nil, err
	}
	account, err := findAccount(ctx, s.accountRepo, organizationID, accountID)
	if err != nil {
		return nil, err
	}
	table, err := s.rates.RateTable(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	last30 := domain.LastDays(now, 30)
	month := domain.CurrentCalendarMonth(now)
	from := last30.Start
	if month.Start.Before(from) {
		from = month.Start
	}

	expenses, err := s.expenseRepo.ListExpenses(ctx, portsrepo.ExpenseFilter{
		OrganizationID: organizationID,
		AccountIDs:     []string{accountID},
		From:           from,
		To:             now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for summary: %w", err)
	}

	last30Total, err := aggregation.SumIn(aggregation.Within(expenses, last30), account.Currency, table)
	if err != nil {
		return nil, err
	}
	monthExpenses := aggregation.Within(expenses, month)
	monthTotal, err := aggregation.SumIn(monthExpenses, account.Currency, table)
	if err != nil {
		return nil, err
	}
	byCategory, err := aggregation.CategoriesIn(monthExpenses, account.Currency, table)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.loanRepo.SumActiveBalance(ctx, organizationID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to total outstanding loans: %w", err)
	}

	return &domain.AccountSummary{
		ExpenseAccountID:  account.ExpenseAccountID,
		Currency:          account.Currency,
		Last30Days:        last30Total,
		CurrentMonth:      monthTotal,
		CurrentMonthByCat: byCategory,
		OutstandingLoans:  outstanding,
		GeneratedAt:       now,
	}, nil
}

// GetReport retrieves a stored report.
func (s *reportService) GetReport(ctx context.Context, organizationID, reportID, userID string) (*domain.ExpenseReport, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.AnyMember...); err != nil {
		return nil, err
	}
	report, err := s.reportRepo.FindReportByID(ctx, organizationID, reportID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: report %s", apperrors.ErrNotFound, reportID)
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	return report, nil
}

// ListReports lists an organization's stored reports.
func (s *reportService) ListReports(ctx context.Context, organizationID, userID string) ([]domain.ExpenseReport, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.AnyMember...); err != nil {
		return nil, err
	}
	reports, err := s.reportRepo.ListReports(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reports", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	if reports == nil {
		return []domain.ExpenseReport{}, nil
	}
	return reports, nil
}

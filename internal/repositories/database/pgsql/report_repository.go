package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/expense_ledger/internal/apperrors"
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/expense_ledger/internal/models"
	"github.com/SscSPs/expense_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxReportRepository implements portsrepo.ReportRepositoryFacade using pgxpool.
type PgxReportRepository struct {
	BaseRepository
}

func newPgxReportRepository(pool *pgxpool.Pool) portsrepo.ReportRepositoryFacade {
	return &PgxReportRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportRepositoryFacade = (*PgxReportRepository)(nil)

const reportColumns = `report_id, organization_id, kind, period_start, period_end, report_currency, account_ids,
	total_expenses, category_breakdown, account_breakdown, generated_at, generated_by`

func scanReport(row rowScanner) (domain.ExpenseReport, error) {
	var m models.ExpenseReport
	err := row.Scan(
		&m.ReportID, &m.OrganizationID, &m.Kind, &m.PeriodStart, &m.PeriodEnd, &m.ReportCurrency, &m.AccountIDs,
		&m.TotalExpenses, &m.CategoryBreakdown, &m.AccountBreakdown, &m.GeneratedAt, &m.GeneratedBy,
	)
	if err != nil {
		return domain.ExpenseReport{}, err
	}
	return mapping.ToDomainExpenseReport(m)
}

// SaveReport persists a report snapshot. The partial unique index on
// (organization_id, period_start) WHERE kind = 'MONTHLY' turns a second monthly
// report for the same period into ErrDuplicate.
func (r *PgxReportRepository) SaveReport(ctx context.Context, report domain.ExpenseReport) error {
	m, err := mapping.ToModelExpenseReport(report)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode report", err)
	}
	query := `INSERT INTO expense_reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err = r.Pool.Exec(ctx, query,
		m.ReportID, m.OrganizationID, m.Kind, m.PeriodStart, m.PeriodEnd, m.ReportCurrency, m.AccountIDs,
		m.TotalExpenses, string(m.CategoryBreakdown), string(m.AccountBreakdown), m.GeneratedAt, m.GeneratedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: monthly report for %s starting %s", apperrors.ErrDuplicate, m.OrganizationID, m.PeriodStart.Format("2006-01-02"))
		}
		return apperrors.NewAppError(500, "failed to insert report", err)
	}
	return nil
}

// FindReportByID retrieves a report scoped to its organization.
func (r *PgxReportRepository) FindReportByID(ctx context.Context, organizationID, reportID string) (*domain.ExpenseReport, error) {
	query := `SELECT ` + reportColumns + ` FROM expense_reports WHERE organization_id = $1 AND report_id = $2;`
	report, err := scanReport(r.Pool.QueryRow(ctx, query, organizationID, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("report " + reportID)
		}
		return nil, apperrors.NewAppError(500, "failed to find report", err)
	}
	return &report, nil
}

// ListReports retrieves an organization's reports, newest first.
func (r *PgxReportRepository) ListReports(ctx context.Context, organizationID string) ([]domain.ExpenseReport, error) {
	query := `SELECT ` + reportColumns + ` FROM expense_reports WHERE organization_id = $1 ORDER BY generated_at DESC;`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list reports", err)
	}
	defer rows.Close()

	reports := []domain.ExpenseReport{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan report", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating reports", err)
	}
	return reports, nil
}

// MonthlyReportExists reports whether the MONTHLY report for the period starting at periodStart exists.
func (r *PgxReportRepository) MonthlyReportExists(ctx context.Context, organizationID string, periodStart time.Time) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM expense_reports WHERE organization_id = $1 AND kind = $2 AND period_start = $3);`,
		organizationID, string(domain.ReportMonthly), periodStart,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check monthly report", err)
	}
	return exists, nil
}

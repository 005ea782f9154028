package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/expense_ledger/internal/apperrors"
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/expense_ledger/internal/models"
	"github.com/SscSPs/expense_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxLoanRepository implements portsrepo.LoanRepositoryFacade using pgxpool.
type PgxLoanRepository struct {
	BaseRepository
}

func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

const loanColumns = `loan_id, organization_id, business_id, team_member_id, account_currency,
	principal_amount, current_balance,
	original_amount, original_currency, original_conversion_rate, original_base_currency_amount,
	loan_date, notes, status, created_at, created_by, last_updated_at, last_updated_by`

func scanLoan(row rowScanner) (domain.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID, &m.OrganizationID, &m.BusinessID, &m.TeamMemberID, &m.AccountCurrency,
		&m.PrincipalAmount, &m.CurrentBalance,
		&m.Original.Amount, &m.Original.Currency, &m.Original.ConversionRate, &m.Original.BaseCurrencyAmount,
		&m.LoanDate, &m.Notes, &m.Status, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return mapping.ToDomainLoan(m), err
}

// SaveLoan persists a new loan.
func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)
	query := `INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);`
	_, err := r.Pool.Exec(ctx, query,
		m.LoanID, m.OrganizationID, m.BusinessID, m.TeamMemberID, m.AccountCurrency,
		m.PrincipalAmount, m.CurrentBalance,
		m.Original.Amount, m.Original.Currency, m.Original.ConversionRate, m.Original.BaseCurrencyAmount,
		m.LoanDate, m.Notes, m.Status, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert loan "+m.LoanID, err)
	}
	return nil
}

// FindLoanByID retrieves a loan scoped to its organization.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, organizationID, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE organization_id = $1 AND loan_id = $2;`
	loan, err := scanLoan(r.Pool.QueryRow(ctx, query, organizationID, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("loan " + loanID)
		}
		return nil, apperrors.NewAppError(500, "failed to find loan", err)
	}
	return &loan, nil
}

// ListLoans retrieves loans of an organization, optionally for one account.
func (r *PgxLoanRepository) ListLoans(ctx context.Context, organizationID, accountID string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans
		WHERE organization_id = $1 AND ($2 = '' OR business_id = $2)
		ORDER BY loan_date DESC, loan_id;`
	rows, err := r.Pool.Query(ctx, query, organizationID, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list loans", err)
	}
	defer rows.Close()

	loans := []domain.Loan{}
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan loan", err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating loans", err)
	}
	return loans, nil
}

// ListLoanPayments retrieves payments of a loan ordered by payment date.
func (r *PgxLoanRepository) ListLoanPayments(ctx context.Context, loanID string) ([]domain.LoanPayment, error) {
	query := `
		SELECT loan_payment_id, loan_id, amount,
		       original_amount, original_currency, original_conversion_rate, original_base_currency_amount,
		       payment_date, recorded_by, created_at
		FROM loan_payments
		WHERE loan_id = $1
		ORDER BY payment_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list loan payments", err)
	}
	defer rows.Close()

	payments := []domain.LoanPayment{}
	for rows.Next() {
		var m models.LoanPayment
		err := rows.Scan(
			&m.LoanPaymentID, &m.LoanID, &m.Amount,
			&m.Original.Amount, &m.Original.Currency, &m.Original.ConversionRate, &m.Original.BaseCurrencyAmount,
			&m.PaymentDate, &m.RecordedBy, &m.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan loan payment", err)
		}
		payments = append(payments, mapping.ToDomainLoanPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating loan payments", err)
	}
	return payments, nil
}

// SumActiveBalance totals current balances of ACTIVE loans on an account.
func (r *PgxLoanRepository) SumActiveBalance(ctx context.Context, organizationID, accountID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(current_balance), 0)
		FROM loans
		WHERE organization_id = $1 AND business_id = $2 AND status = $3;`,
		organizationID, accountID, string(domain.LoanActive),
	).Scan(&total)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to total outstanding loans", err)
	}
	return total, nil
}

// UpdateLoanLocked locks the loan row, applies fn and writes the loan and the
// optional payment in one transaction. Concurrent payments on the same loan
// serialize on the row lock.
func (r *PgxLoanRepository) UpdateLoanLocked(ctx context.Context, organizationID, loanID string, fn portsrepo.LoanMutation) (*domain.Loan, *domain.LoanPayment, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx) // no-op after commit

	query := `SELECT ` + loanColumns + ` FROM loans WHERE organization_id = $1 AND loan_id = $2 FOR UPDATE;`
	loan, err := scanLoan(tx.QueryRow(ctx, query, organizationID, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFoundError("loan " + loanID)
		}
		return nil, nil, apperrors.NewAppError(500, "failed to lock loan", err)
	}

	payment, err := fn(&loan)
	if err != nil {
		return nil, nil, err
	}

	m := mapping.ToModelLoan(loan)
	_, err = tx.Exec(ctx, `
		UPDATE loans
		SET current_balance = $1, status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE loan_id = $5;`,
		m.CurrentBalance, m.Status, m.LastUpdatedAt, m.LastUpdatedBy, m.LoanID,
	)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to update loan "+loanID, err)
	}

	if payment != nil {
		p := mapping.ToModelLoanPayment(*payment)
		_, err = tx.Exec(ctx, `
			INSERT INTO loan_payments (
				loan_payment_id, loan_id, amount,
				original_amount, original_currency, original_conversion_rate, original_base_currency_amount,
				payment_date, recorded_by, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
			p.LoanPaymentID, p.LoanID, p.Amount,
			p.Original.Amount, p.Original.Currency, p.Original.ConversionRate, p.Original.BaseCurrencyAmount,
			p.PaymentDate, p.RecordedBy, p.CreatedAt,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to insert loan payment for loan "+loanID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return &loan, payment, nil
}

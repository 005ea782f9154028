package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/expense_ledger/internal/apperrors"
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/expense_ledger/internal/models"
	"github.com/SscSPs/expense_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExpenseRepository implements portsrepo.ExpenseRepositoryFacade using pgxpool.
type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, organization_id, expense_account_id, category, description, expense_date,
	amount, currency, conversion_rate, base_currency_amount,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveExpense persists a new expense.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID, m.OrganizationID, m.ExpenseAccountID, m.Category, m.Description, m.ExpenseDate,
		m.Amount, m.Currency, m.ConversionRate, m.BaseCurrencyAmount,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: expense %s", apperrors.ErrDuplicate, m.ExpenseID)
		}
		return apperrors.NewAppError(500, "failed to insert expense", err)
	}
	return nil
}

// ListExpenses retrieves expenses matching filter ordered by expense date.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ExpenseFilter) ([]domain.Expense, error) {
	conditions := []string{"organization_id = $1"}
	args := []any{filter.OrganizationID}
	argNum := 2

	if len(filter.AccountIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf("expense_account_id = ANY($%d)", argNum))
		args = append(args, filter.AccountIDs)
		argNum++
	}
	if !filter.From.IsZero() {
		conditions = append(conditions, fmt.Sprintf("expense_date >= $%d", argNum))
		args = append(args, filter.From)
		argNum++
	}
	if !filter.To.IsZero() {
		conditions = append(conditions, fmt.Sprintf("expense_date < $%d", argNum))
		args = append(args, filter.To)
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY expense_date, expense_id;`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list expenses", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		var m models.Expense
		err := rows.Scan(
			&m.ExpenseID, &m.OrganizationID, &m.ExpenseAccountID, &m.Category, &m.Description, &m.ExpenseDate,
			&m.Amount, &m.Currency, &m.ConversionRate, &m.BaseCurrencyAmount,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense", err)
		}
		expenses = append(expenses, mapping.ToDomainExpense(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expenses", err)
	}
	return expenses, nil
}

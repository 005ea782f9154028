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
)

// PgxExpenseAccountRepository implements portsrepo.ExpenseAccountRepositoryFacade using pgxpool.
type PgxExpenseAccountRepository struct {
	BaseRepository
}

func newPgxExpenseAccountRepository(pool *pgxpool.Pool) portsrepo.ExpenseAccountRepositoryFacade {
	return &PgxExpenseAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseAccountRepositoryFacade = (*PgxExpenseAccountRepository)(nil)

const expenseAccountColumns = `expense_account_id, organization_id, name, currency, created_at, created_by, last_updated_at, last_updated_by`

func scanExpenseAccount(row rowScanner) (domain.ExpenseAccount, error) {
	var m models.ExpenseAccount
	err := row.Scan(&m.ExpenseAccountID, &m.OrganizationID, &m.Name, &m.Currency, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return mapping.ToDomainExpenseAccount(m), err
}

// FindExpenseAccountByID retrieves an account scoped to its organization.
func (r *PgxExpenseAccountRepository) FindExpenseAccountByID(ctx context.Context, organizationID, accountID string) (*domain.ExpenseAccount, error) {
	query := `SELECT ` + expenseAccountColumns + ` FROM expense_accounts WHERE organization_id = $1 AND expense_account_id = $2;`
	account, err := scanExpenseAccount(r.Pool.QueryRow(ctx, query, organizationID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("expense account " + accountID)
		}
		return nil, apperrors.NewAppError(500, "failed to find expense account", err)
	}
	return &account, nil
}

// ListExpenseAccounts retrieves all accounts of an organization.
func (r *PgxExpenseAccountRepository) ListExpenseAccounts(ctx context.Context, organizationID string) ([]domain.ExpenseAccount, error) {
	query := `SELECT ` + expenseAccountColumns + ` FROM expense_accounts WHERE organization_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list expense accounts", err)
	}
	defer rows.Close()

	accounts := []domain.ExpenseAccount{}
	for rows.Next() {
		account, err := scanExpenseAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense account", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense accounts", err)
	}
	return accounts, nil
}

// FindTeamMemberByID retrieves a team member scoped to its organization.
func (r *PgxExpenseAccountRepository) FindTeamMemberByID(ctx context.Context, organizationID, teamMemberID string) (*domain.TeamMember, error) {
	query := `SELECT team_member_id, organization_id, name, email FROM team_members WHERE organization_id = $1 AND team_member_id = $2;`
	var m models.TeamMember
	err := r.Pool.QueryRow(ctx, query, organizationID, teamMemberID).Scan(&m.TeamMemberID, &m.OrganizationID, &m.Name, &m.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("team member " + teamMemberID)
		}
		return nil, apperrors.NewAppError(500, "failed to find team member", err)
	}
	member := mapping.ToDomainTeamMember(m)
	return &member, nil
}

// IsTeamMemberOnAccount reports whether the member is associated with the account.
func (r *PgxExpenseAccountRepository) IsTeamMemberOnAccount(ctx context.Context, teamMemberID, accountID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM account_team_members WHERE team_member_id = $1 AND expense_account_id = $2);`,
		teamMemberID, accountID,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check team member association", err)
	}
	return exists, nil
}

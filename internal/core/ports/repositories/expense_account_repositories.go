package repositories

import (
	"context"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
)

// ExpenseAccountReader defines read operations for expense accounts
type ExpenseAccountReader interface {
	// FindExpenseAccountByID retrieves an account scoped to its organization.
	FindExpenseAccountByID(ctx context.Context, organizationID, accountID string) (*domain.ExpenseAccount, error)

	// ListExpenseAccounts retrieves all accounts of an organization.
	ListExpenseAccounts(ctx context.Context, organizationID string) ([]domain.ExpenseAccount, error)
}

// TeamMemberReader defines read operations for team members
type TeamMemberReader interface {
	// FindTeamMemberByID retrieves a team member scoped to its organization.
	FindTeamMemberByID(ctx context.Context, organizationID, teamMemberID string) (*domain.TeamMember, error)

	// IsTeamMemberOnAccount reports whether the member is associated with the account.
	IsTeamMemberOnAccount(ctx context.Context, teamMemberID, accountID string) (bool, error)
}

// ExpenseAccountRepositoryFacade combines account and team member reads
type ExpenseAccountRepositoryFacade interface {
	ExpenseAccountReader
	TeamMemberReader
}

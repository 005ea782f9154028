package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
)

// ExpenseFilter narrows an expense listing. Zero times leave that bound open;
// an empty AccountIDs matches every account.
type ExpenseFilter struct {
	OrganizationID string
	AccountIDs     []string
	From           time.Time // inclusive
	To             time.Time // exclusive
}

// ExpenseReader defines read operations for expenses
type ExpenseReader interface {
	// ListExpenses retrieves expenses matching filter ordered by expense date.
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expenses
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error
}

// ExpenseRepositoryFacade combines all expense repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}

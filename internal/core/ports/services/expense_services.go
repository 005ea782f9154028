package services

import (
	"context"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/SscSPs/expense_ledger/internal/dto"
)

// ExpenseWriterSvc defines write operations for expenses
type ExpenseWriterSvc interface {
	// CreateExpense records an expense, snapshotting its conversion to base.
	CreateExpense(ctx context.Context, organizationID string, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error)
}

// ExpenseReaderSvc defines read operations for expenses
type ExpenseReaderSvc interface {
	ListExpenses(ctx context.Context, organizationID string, params dto.ListExpensesParams, userID string) ([]domain.Expense, error)
}

// ExpenseSvcFacade combines all expense service interfaces
type ExpenseSvcFacade interface {
	ExpenseWriterSvc
	ExpenseReaderSvc
}

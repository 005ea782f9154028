package dto

import (
	"time"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
)

// CreateExpenseRequest defines the body for recording an expense.
type CreateExpenseRequest struct {
	ExpenseAccountID string    `json:"expenseAccountID" binding:"required"`
	Category         string    `json:"category" binding:"required,max=100"`
	Description      string    `json:"description" binding:"max=500"`
	ExpenseDate      time.Time `json:"expenseDate" binding:"required"`
	MoneyInputRequest
}

// ListExpensesParams are the query filters for listing expenses.
type ListExpensesParams struct {
	AccountID string    `form:"accountID"`
	From      time.Time `form:"from" time_format:"2006-01-02"`
	To        time.Time `form:"to" time_format:"2006-01-02"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID        string    `json:"expenseID"`
	ExpenseAccountID string    `json:"expenseAccountID"`
	Category         string    `json:"category"`
	Description      string    `json:"description"`
	ExpenseDate      time.Time `json:"expenseDate"`
	MoneyEntryResponse
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO.
func ToExpenseResponse(e domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:          e.ExpenseID,
		ExpenseAccountID:   e.ExpenseAccountID,
		Category:           e.Category,
		Description:        e.Description,
		ExpenseDate:        e.ExpenseDate,
		MoneyEntryResponse: ToMoneyEntryResponse(e.MoneyEntry),
		CreatedAt:          e.CreatedAt,
		CreatedBy:          e.CreatedBy,
	}
}

// ToExpenseResponses converts a slice of domain.Expense.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = ToExpenseResponse(e)
	}
	return responses
}

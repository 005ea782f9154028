package domain

import "time"

// Expense is a one-off spend booked against an expense account.
type Expense struct {
	ExpenseID        string    `json:"expenseID"`
	OrganizationID   string    `json:"organizationID"`
	ExpenseAccountID string    `json:"expenseAccountID"`
	Category         string    `json:"category"`
	Description      string    `json:"description"`
	ExpenseDate      time.Time `json:"expenseDate"`
	MoneyEntry
	AuditFields
}

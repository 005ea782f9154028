package models

import "time"

// ExpenseAccount is the expense_accounts table row.
type ExpenseAccount struct {
	ExpenseAccountID string `db:"expense_account_id"`
	OrganizationID   string `db:"organization_id"`
	Name             string `db:"name"`
	Currency         string `db:"currency"`
	AuditFields
}

// TeamMember is the team_members table row.
type TeamMember struct {
	TeamMemberID   string `db:"team_member_id"`
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	Email          string `db:"email"`
}

// Expense is the expenses table row.
type Expense struct {
	ExpenseID        string    `db:"expense_id"`
	OrganizationID   string    `db:"organization_id"`
	ExpenseAccountID string    `db:"expense_account_id"`
	Category         string    `db:"category"`
	Description      string    `db:"description"`
	ExpenseDate      time.Time `db:"expense_date"`
	MoneyEntry
	AuditFields
}

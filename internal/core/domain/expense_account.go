package domain

// ExpenseAccount is a ledger bucket; every balance and report scoped to it is
// expressed in its native Currency.
type ExpenseAccount struct {
	ExpenseAccountID string `json:"expenseAccountID"`
	OrganizationID   string `json:"organizationID"`
	Name             string `json:"name"`
	Currency         string `json:"currency"`
	AuditFields
}

// TeamMember is a person loans can be issued to. A member must be associated
// with an expense account before a loan can be booked against it.
type TeamMember struct {
	TeamMemberID   string `json:"teamMemberID"`
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	Email          string `json:"email"`
}

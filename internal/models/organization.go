package models

// Organization is the organizations table row.
type Organization struct {
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	BaseCurrency   string `db:"base_currency"`
	AuditFields
}

// Membership is an organization_members row joined with the member's email.
type Membership struct {
	OrganizationID string `db:"organization_id"`
	UserID         string `db:"user_id"`
	Email          string `db:"email"`
	Role           string `db:"role"`
}

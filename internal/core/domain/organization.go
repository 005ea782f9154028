package domain

// Organization owns expense accounts and a rate table. BaseCurrency is fixed
// for the organization's lifetime; every rate is expressed relative to it.
type Organization struct {
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	BaseCurrency   string `json:"baseCurrency"`
	AuditFields
}

// OrganizationRole defines the role a user holds within an organization.
type OrganizationRole string

const (
	RoleOwner  OrganizationRole = "OWNER"
	RoleAdmin  OrganizationRole = "ADMIN"
	RoleMember OrganizationRole = "MEMBER"
	RoleViewer OrganizationRole = "VIEWER"
)

// LedgerManagers are the roles allowed to mutate loans and rates.
var LedgerManagers = []OrganizationRole{RoleOwner, RoleAdmin}

// Contributors may record expenses and subscriptions.
var Contributors = []OrganizationRole{RoleOwner, RoleAdmin, RoleMember}

// AnyMember covers read access.
var AnyMember = []OrganizationRole{RoleOwner, RoleAdmin, RoleMember, RoleViewer}

// Membership represents a user's membership in an organization.
type Membership struct {
	OrganizationID string           `json:"organizationID"`
	UserID         string           `json:"userID"`
	Email          string           `json:"email"`
	Role           OrganizationRole `json:"role"`
}

// HasRole reports whether the membership role is one of allowed.
func (m Membership) HasRole(allowed ...OrganizationRole) bool {
	for _, r := range allowed {
		if m.Role == r {
			return true
		}
	}
	return false
}

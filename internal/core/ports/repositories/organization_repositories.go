package repositories

import (
	"context"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// FindOrganizationByID retrieves an organization, including its base currency.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListOrganizations retrieves every organization. Used by batch jobs.
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
}

// MembershipReader defines read operations for organization memberships
type MembershipReader interface {
	// FindMembership retrieves a user's membership. Returns ErrNotFound when the
	// user does not belong to the organization.
	FindMembership(ctx context.Context, organizationID, userID string) (*domain.Membership, error)

	// ListMembers retrieves all memberships of an organization.
	ListMembers(ctx context.Context, organizationID string) ([]domain.Membership, error)
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	MembershipReader
}

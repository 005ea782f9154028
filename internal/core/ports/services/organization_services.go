package services

import (
	"context"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
)

// OrganizationAuthorizerSvc defines operations for organization authorization
type OrganizationAuthorizerSvc interface {
	// AuthorizeUserAction checks that the user belongs to the organization with
	// one of the allowed roles and returns the membership.
	AuthorizeUserAction(ctx context.Context, userID, organizationID string, allowed ...domain.OrganizationRole) (*domain.Membership, error)
}

// OrganizationReaderSvc defines read operations for organization data
type OrganizationReaderSvc interface {
	// GetOrganization retrieves an organization, including its base currency.
	GetOrganization(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListOrganizations retrieves every organization.
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)

	// ListMembers retrieves the memberships of an organization.
	ListMembers(ctx context.Context, organizationID string) ([]domain.Membership, error)
}

// OrganizationSvcFacade combines all organization-related service interfaces
type OrganizationSvcFacade interface {
	OrganizationAuthorizerSvc
	OrganizationReaderSvc
}

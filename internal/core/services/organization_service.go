package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/expense_ledger/internal/apperrors"
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
)

// organizationService resolves organizations and authorizes members against them.
type organizationService struct {
	BaseService
	orgRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates a new organization service.
func NewOrganizationService(repo portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &organizationService{orgRepo: repo}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// AuthorizeUserAction implements portssvc.OrganizationAuthorizerSvc.
// Non-members and members without an allowed role both get ErrForbidden.
func (s *organizationService) AuthorizeUserAction(ctx context.Context, userID, organizationID string, allowed ...domain.OrganizationRole) (*domain.Membership, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	membership, err := s.orgRepo.FindMembership(ctx, organizationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Authorization failed: user is not a member of the organization",
				slog.String("user_id", userID),
				slog.String("organization_id", organizationID))
			return nil, fmt.Errorf("%w: user is not a member of organization %s", apperrors.ErrForbidden, organizationID)
		}
		s.LogError(ctx, err, "Failed to check organization membership",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to check authorization: %w", err)
	}

	if !membership.HasRole(allowed...) {
		s.LogWarn(ctx, "Authorization failed: user lacks required role",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID),
			slog.String("user_role", string(membership.Role)))
		return nil, fmt.Errorf("%w: role %s is not allowed to perform this action", apperrors.ErrForbidden, membership.Role)
	}
	return membership, nil
}

// GetOrganization retrieves an organization by id.
func (s *organizationService) GetOrganization(ctx context.Context, organizationID string) (*domain.Organization, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: organization %s", apperrors.ErrNotFound, organizationID)
		}
		s.LogError(ctx, err, "Failed to load organization", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to load organization %s: %w", organizationID, err)
	}
	return org, nil
}

// ListOrganizations retrieves every organization.
func (s *organizationService) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	orgs, err := s.orgRepo.ListOrganizations(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organizations")
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// ListMembers retrieves the memberships of an organization.
func (s *organizationService) ListMembers(ctx context.Context, organizationID string) ([]domain.Membership, error) {
	members, err := s.orgRepo.ListMembers(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organization members", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list members of organization %s: %w", organizationID, err)
	}
	if members == nil {
		return []domain.Membership{}, nil
	}
	return members, nil
}

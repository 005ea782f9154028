package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/expense_ledger/internal/apperrors"
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/expense_ledger/internal/models"
	"github.com/SscSPs/expense_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxOrganizationRepository implements portsrepo.OrganizationRepositoryFacade using pgxpool.
type PgxOrganizationRepository struct {
	BaseRepository
}

func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

const organizationColumns = `organization_id, name, base_currency, created_at, created_by, last_updated_at, last_updated_by`

func scanOrganization(row rowScanner) (domain.Organization, error) {
	var m models.Organization
	err := row.Scan(&m.OrganizationID, &m.Name, &m.BaseCurrency, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return mapping.ToDomainOrganization(m), err
}

// FindOrganizationByID retrieves an organization by its ID.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE organization_id = $1;`
	org, err := scanOrganization(r.Pool.QueryRow(ctx, query, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("organization " + organizationID)
		}
		return nil, apperrors.NewAppError(500, "failed to find organization", err)
	}
	return &org, nil
}

// ListOrganizations retrieves every organization.
func (r *PgxOrganizationRepository) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations ORDER BY organization_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list organizations", err)
	}
	defer rows.Close()

	orgs := []domain.Organization{}
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan organization", err)
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating organizations", err)
	}
	return orgs, nil
}

// FindMembership retrieves a user's membership in an organization.
func (r *PgxOrganizationRepository) FindMembership(ctx context.Context, organizationID, userID string) (*domain.Membership, error) {
	query := `
		SELECT m.organization_id, m.user_id, COALESCE(u.email, ''), m.role
		FROM organization_members m
		LEFT JOIN users u ON u.user_id = m.user_id
		WHERE m.organization_id = $1 AND m.user_id = $2;
	`
	var m models.Membership
	err := r.Pool.QueryRow(ctx, query, organizationID, userID).Scan(&m.OrganizationID, &m.UserID, &m.Email, &m.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("membership of user " + userID + " in organization " + organizationID)
		}
		return nil, apperrors.NewAppError(500, "failed to find membership", err)
	}
	membership := mapping.ToDomainMembership(m)
	return &membership, nil
}

// ListMembers retrieves all memberships of an organization.
func (r *PgxOrganizationRepository) ListMembers(ctx context.Context, organizationID string) ([]domain.Membership, error) {
	query := `
		SELECT m.organization_id, m.user_id, COALESCE(u.email, ''), m.role
		FROM organization_members m
		LEFT JOIN users u ON u.user_id = m.user_id
		WHERE m.organization_id = $1
		ORDER BY m.user_id;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list organization members", err)
	}
	defer rows.Close()

	members := []domain.Membership{}
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.OrganizationID, &m.UserID, &m.Email, &m.Role); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan organization member", err)
		}
		members = append(members, mapping.ToDomainMembership(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating organization members", err)
	}
	return members, nil
}

package mapping

import (
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/SscSPs/expense_ledger/internal/models"
)

// ToDomainOrganization converts a model Organization to a domain Organization
func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		BaseCurrency:   m.BaseCurrency,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMembership converts a model Membership to a domain Membership
func ToDomainMembership(m models.Membership) domain.Membership {
	return domain.Membership{
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		Email:          m.Email,
		Role:           domain.OrganizationRole(m.Role),
	}
}

package mapping

import (
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/SscSPs/expense_ledger/internal/models"
)

// ToDomainExpenseAccount converts a model ExpenseAccount to a domain ExpenseAccount
func ToDomainExpenseAccount(m models.ExpenseAccount) domain.ExpenseAccount {
	return domain.ExpenseAccount{
		ExpenseAccountID: m.ExpenseAccountID,
		OrganizationID:   m.OrganizationID,
		Name:             m.Name,
		Currency:         m.Currency,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTeamMember converts a model TeamMember to a domain TeamMember
func ToDomainTeamMember(m models.TeamMember) domain.TeamMember {
	return domain.TeamMember{
		TeamMemberID:   m.TeamMemberID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Email:          m.Email,
	}
}

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:        d.ExpenseID,
		OrganizationID:   d.OrganizationID,
		ExpenseAccountID: d.ExpenseAccountID,
		Category:         d.Category,
		Description:      d.Description,
		ExpenseDate:      d.ExpenseDate,
		MoneyEntry:       ToModelMoneyEntry(d.MoneyEntry),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:        m.ExpenseID,
		OrganizationID:   m.OrganizationID,
		ExpenseAccountID: m.ExpenseAccountID,
		Category:         m.Category,
		Description:      m.Description,
		ExpenseDate:      m.ExpenseDate,
		MoneyEntry:       ToDomainMoneyEntry(m.MoneyEntry),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

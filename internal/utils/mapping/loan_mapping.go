package mapping

import (
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/SscSPs/expense_ledger/internal/models"
)

// ToModelLoan converts a domain Loan to a model Loan
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:          d.LoanID,
		OrganizationID:  d.OrganizationID,
		BusinessID:      d.BusinessID,
		TeamMemberID:    d.TeamMemberID,
		AccountCurrency: d.AccountCurrency,
		PrincipalAmount: d.PrincipalAmount,
		CurrentBalance:  d.CurrentBalance,
		Original:        ToModelMoneyEntry(d.Original),
		LoanDate:        d.LoanDate,
		Notes:           d.Notes,
		Status:          string(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoan converts a model Loan to a domain Loan
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:          m.LoanID,
		OrganizationID:  m.OrganizationID,
		BusinessID:      m.BusinessID,
		TeamMemberID:    m.TeamMemberID,
		AccountCurrency: m.AccountCurrency,
		PrincipalAmount: m.PrincipalAmount,
		CurrentBalance:  m.CurrentBalance,
		Original:        ToDomainMoneyEntry(m.Original),
		LoanDate:        m.LoanDate,
		Notes:           m.Notes,
		Status:          domain.LoanStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLoanPayment converts a domain LoanPayment to a model LoanPayment
func ToModelLoanPayment(d domain.LoanPayment) models.LoanPayment {
	return models.LoanPayment{
		LoanPaymentID: d.LoanPaymentID,
		LoanID:        d.LoanID,
		Amount:        d.Amount,
		Original:      ToModelMoneyEntry(d.Original),
		PaymentDate:   d.PaymentDate,
		RecordedBy:    d.RecordedBy,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainLoanPayment converts a model LoanPayment to a domain LoanPayment
func ToDomainLoanPayment(m models.LoanPayment) domain.LoanPayment {
	return domain.LoanPayment{
		LoanPaymentID: m.LoanPaymentID,
		LoanID:        m.LoanID,
		Amount:        m.Amount,
		Original:      ToDomainMoneyEntry(m.Original),
		PaymentDate:   m.PaymentDate,
		RecordedBy:    m.RecordedBy,
		CreatedAt:     m.CreatedAt,
	}
}

package services

import (
	"context"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/SscSPs/expense_ledger/internal/dto"
)

// LoanWriterSvc defines state-changing loan operations. All require OWNER or ADMIN.
type LoanWriterSvc interface {
	// CreateStandaloneLoan books a loan to a team member out of an expense account.
	CreateStandaloneLoan(ctx context.Context, organizationID string, req dto.CreateLoanRequest, userID string) (*domain.Loan, error)

	// RecordLoanPayment pays a loan down atomically. Overpayment returns ErrInsufficientBalance.
	RecordLoanPayment(ctx context.Context, organizationID, loanID string, req dto.RecordLoanPaymentRequest, userID string) (*domain.Loan, *domain.LoanPayment, error)

	// CancelLoan moves an ACTIVE loan to CANCELLED.
	CancelLoan(ctx context.Context, organizationID, loanID, userID string) (*domain.Loan, error)

	// MarkLoanDefaulted moves an ACTIVE loan to DEFAULTED.
	MarkLoanDefaulted(ctx context.Context, organizationID, loanID, userID string) (*domain.Loan, error)
}

// LoanReaderSvc defines read operations for loans
type LoanReaderSvc interface {
	GetLoan(ctx context.Context, organizationID, loanID, userID string) (*domain.Loan, error)
	ListLoans(ctx context.Context, organizationID, accountID, userID string) ([]domain.Loan, error)
	ListLoanPayments(ctx context.Context, organizationID, loanID, userID string) ([]domain.LoanPayment, error)
}

// LoanSvcFacade combines all loan service interfaces
type LoanSvcFacade interface {
	LoanWriterSvc
	LoanReaderSvc
}

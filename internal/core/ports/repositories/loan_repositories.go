package repositories

import (
	"context"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LoanMutation changes a locked loan in place. A non-nil payment is appended
// in the same transaction. Returning an error rolls everything back.
type LoanMutation func(loan *domain.Loan) (*domain.LoanPayment, error)

// LoanReader defines read operations for loans and their payments
type LoanReader interface {
	// FindLoanByID retrieves a loan scoped to its organization.
	FindLoanByID(ctx context.Context, organizationID, loanID string) (*domain.Loan, error)

	// ListLoans retrieves loans of an organization, optionally for one account.
	ListLoans(ctx context.Context, organizationID, accountID string) ([]domain.Loan, error)

	// ListLoanPayments retrieves payments of a loan ordered by payment date.
	ListLoanPayments(ctx context.Context, loanID string) ([]domain.LoanPayment, error)

	// SumActiveBalance totals current balances of ACTIVE loans on an account.
	SumActiveBalance(ctx context.Context, organizationID, accountID string) (decimal.Decimal, error)
}

// LoanWriter defines write operations for loans
type LoanWriter interface {
	// SaveLoan persists a new loan.
	SaveLoan(ctx context.Context, loan domain.Loan) error

	// UpdateLoanLocked locks the loan row (SELECT ... FOR UPDATE), applies fn and
	// persists the loan plus the optional payment atomically.
	UpdateLoanLocked(ctx context.Context, organizationID, loanID string, fn LoanMutation) (*domain.Loan, *domain.LoanPayment, error)
}

// LoanRepositoryFacade combines all loan repository interfaces
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}

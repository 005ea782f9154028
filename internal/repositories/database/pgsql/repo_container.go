package pgsql

import (
	portsrepo "github.com/SscSPs/expense_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every Postgres-backed repository on one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrganizationRepo:   newPgxOrganizationRepository(dbPool),
		CurrencyRateRepo:   newPgxCurrencyRateRepository(dbPool),
		ExpenseAccountRepo: newPgxExpenseAccountRepository(dbPool),
		ExpenseRepo:        newPgxExpenseRepository(dbPool),
		LoanRepo:           newPgxLoanRepository(dbPool),
		SubscriptionRepo:   newPgxSubscriptionRepository(dbPool),
		ReportRepo:         newPgxReportRepository(dbPool),
	}
}

package services

import (
	portsrepo "github.com/SscSPs/expense_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
	"github.com/SscSPs/expense_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.Notifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Organization service first: every other service authorizes through it.
	container.Organization = NewOrganizationService(repos.OrganizationRepo)
	authorizer := container.Organization

	container.CurrencyRate = NewCurrencyRateService(
		repos.CurrencyRateRepo,
		container.Organization,
		WithCurrencyRateAuthorizer(authorizer),
	)

	container.Expense = NewExpenseService(
		repos.ExpenseRepo,
		repos.ExpenseAccountRepo,
		container.CurrencyRate,
		WithExpenseAuthorizer(authorizer),
	)

	container.Loan = NewLoanService(
		repos.LoanRepo,
		repos.ExpenseAccountRepo,
		container.CurrencyRate,
		WithLoanAuthorizer(authorizer),
	)

	container.Subscription = NewSubscriptionService(
		repos.SubscriptionRepo,
		repos.ExpenseAccountRepo,
		container.Organization,
		container.CurrencyRate,
		WithSubscriptionAuthorizer(authorizer),
		WithReminderNotifier(notifier),
		WithReminderItemTimeout(cfg.JobItemTimeout),
	)

	container.Report = NewReportService(
		repos.ReportRepo,
		repos.ExpenseRepo,
		repos.ExpenseAccountRepo,
		repos.LoanRepo,
		container.Organization,
		container.CurrencyRate,
		WithReportAuthorizer(authorizer),
		WithReportNotifier(notifier),
	)

	return container
}

package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	OrganizationRepo   OrganizationRepositoryFacade
	CurrencyRateRepo   CurrencyRateRepositoryFacade
	ExpenseAccountRepo ExpenseAccountRepositoryFacade
	ExpenseRepo        ExpenseRepositoryFacade
	LoanRepo           LoanRepositoryFacade
	SubscriptionRepo   SubscriptionRepositoryFacade
	ReportRepo         ReportRepositoryFacade
}

package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers and jobs.
type ServiceContainer struct {
	Organization OrganizationSvcFacade
	CurrencyRate CurrencyRateSvcFacade
	Expense      ExpenseSvcFacade
	Loan         LoanSvcFacade
	Subscription SubscriptionSvcFacade
	Report       ReportSvcFacade
}

package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock OrganizationRepository ---
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindMembership(ctx context.Context, organizationID, userID string) (*domain.Membership, error) {
	args := m.Called(ctx, organizationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockOrganizationRepository) ListMembers(ctx context.Context, organizationID string) ([]domain.Membership, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

// --- Mock CurrencyRateRepository ---
type MockCurrencyRateRepository struct {
	mock.Mock
}

func (m *MockCurrencyRateRepository) ListRates(ctx context.Context, organizationID string) ([]domain.CurrencyRate, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyRate), args.Error(1)
}

func (m *MockCurrencyRateRepository) FindRate(ctx context.Context, organizationID, currency string) (*domain.CurrencyRate, error) {
	args := m.Called(ctx, organizationID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyRate), args.Error(1)
}

func (m *MockCurrencyRateRepository) UpsertRate(ctx context.Context, rate domain.CurrencyRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockCurrencyRateRepository) DeleteRate(ctx context.Context, organizationID, currency string) error {
	args := m.Called(ctx, organizationID, currency)
	return args.Error(0)
}

// --- Mock ExpenseAccountRepository ---
type MockExpenseAccountRepository struct {
	mock.Mock
}

func (m *MockExpenseAccountRepository) FindExpenseAccountByID(ctx context.Context, organizationID, accountID string) (*domain.ExpenseAccount, error) {
	args := m.Called(ctx, organizationID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseAccount), args.Error(1)
}

func (m *MockExpenseAccountRepository) ListExpenseAccounts(ctx context.Context, organizationID string) ([]domain.ExpenseAccount, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseAccount), args.Error(1)
}

func (m *MockExpenseAccountRepository) FindTeamMemberByID(ctx context.Context, organizationID, teamMemberID string) (*domain.TeamMember, error) {
	args := m.Called(ctx, organizationID, teamMemberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}

func (m *MockExpenseAccountRepository) IsTeamMemberOnAccount(ctx context.Context, teamMemberID, accountID string) (bool, error) {
	args := m.Called(ctx, teamMemberID, accountID)
	return args.Bool(0), args.Error(1)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ExpenseFilter) ([]domain.Expense, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

// --- Mock LoanRepository ---
// UpdateLoanLocked applies the mutation to the loan passed to Return, the way
// the database would to the locked row, and keeps the result only on success.
type MockLoanRepository struct {
	mock.Mock
	Payments []domain.LoanPayment
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, organizationID, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, organizationID, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListLoans(ctx context.Context, organizationID, accountID string) ([]domain.Loan, error) {
	args := m.Called(ctx, organizationID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListLoanPayments(ctx context.Context, loanID string) ([]domain.LoanPayment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanPayment), args.Error(1)
}

func (m *MockLoanRepository) SumActiveBalance(ctx context.Context, organizationID, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, organizationID, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) UpdateLoanLocked(ctx context.Context, organizationID, loanID string, fn portsrepo.LoanMutation) (*domain.Loan, *domain.LoanPayment, error) {
	args := m.Called(ctx, organizationID, loanID, fn)
	if err := args.Error(1); err != nil {
		return nil, nil, err
	}
	stored := args.Get(0).(*domain.Loan)
	working := *stored
	payment, err := fn(&working)
	if err != nil {
		return nil, nil, err
	}
	*stored = working
	if payment != nil {
		m.Payments = append(m.Payments, *payment)
	}
	result := *stored
	return &result, payment, nil
}

// --- Mock SubscriptionRepository ---
// UpdateSubscriptionLocked mirrors MockLoanRepository.UpdateLoanLocked.
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindSubscriptionByID(ctx context.Context, organizationID, subscriptionID string) (*domain.Subscription, error) {
	args := m.Called(ctx, organizationID, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListSubscriptions(ctx context.Context, organizationID string) ([]domain.Subscription, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListDueSubscriptions(ctx context.Context, now time.Time) ([]domain.Subscription, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) SaveSubscription(ctx context.Context, sub domain.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) UpdateSubscriptionLocked(ctx context.Context, organizationID, subscriptionID string, fn portsrepo.SubscriptionMutation) (*domain.Subscription, []domain.SubscriptionReminder, error) {
	args := m.Called(ctx, organizationID, subscriptionID, fn)
	if err := args.Error(1); err != nil {
		return nil, nil, err
	}
	stored := args.Get(0).(*domain.Subscription)
	working := *stored
	reminders, changed, err := fn(&working)
	if err != nil {
		return nil, nil, err
	}
	if changed {
		*stored = working
	}
	result := *stored
	return &result, reminders, nil
}

func (m *MockSubscriptionRepository) MarkRemindersDispatched(ctx context.Context, reminderIDs []string, at time.Time) error {
	args := m.Called(ctx, reminderIDs, at)
	return args.Error(0)
}

// --- Mock ReportRepository ---
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) FindReportByID(ctx context.Context, organizationID, reportID string) (*domain.ExpenseReport, error) {
	args := m.Called(ctx, organizationID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseReport), args.Error(1)
}

func (m *MockReportRepository) ListReports(ctx context.Context, organizationID string) ([]domain.ExpenseReport, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseReport), args.Error(1)
}

func (m *MockReportRepository) MonthlyReportExists(ctx context.Context, organizationID string, periodStart time.Time) (bool, error) {
	args := m.Called(ctx, organizationID, periodStart)
	return args.Bool(0), args.Error(1)
}

func (m *MockReportRepository) SaveReport(ctx context.Context, report domain.ExpenseReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

// --- Mock RateTableProvider ---
type MockRateTableProvider struct {
	mock.Mock
}

func (m *MockRateTableProvider) RateTable(ctx context.Context, organizationID string) (domain.RateTable, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(domain.RateTable), args.Error(1)
}

func (m *MockRateTableProvider) Formatting(ctx context.Context, organizationID, currency string) (domain.RateFormatting, error) {
	args := m.Called(ctx, organizationID, currency)
	return args.Get(0).(domain.RateFormatting), args.Error(1)
}

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Enqueue(ctx context.Context, job domain.MailJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// --- shared fixtures ---

const (
	testOrgID  = "org-1"
	testUserID = "user-1"
)

func usdEurTable() domain.RateTable {
	return domain.RateTable{
		BaseCurrency: "USD",
		Rates:        map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.90")},
	}
}

func membership(role domain.OrganizationRole) *domain.Membership {
	return &domain.Membership{OrganizationID: testOrgID, UserID: testUserID, Role: role, Email: "user1@example.com"}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

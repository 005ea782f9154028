package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
	"github.com/SscSPs/expense_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock CurrencyRateService ---
type MockCurrencyRateService struct {
	mock.Mock
}

func (m *MockCurrencyRateService) RateTable(ctx context.Context, organizationID string) (domain.RateTable, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(domain.RateTable), args.Error(1)
}
func (m *MockCurrencyRateService) Formatting(ctx context.Context, organizationID, currency string) (domain.RateFormatting, error) {
	args := m.Called(ctx, organizationID, currency)
	return args.Get(0).(domain.RateFormatting), args.Error(1)
}
func (m *MockCurrencyRateService) GetRate(ctx context.Context, organizationID, currency, userID string) (*domain.CurrencyRate, error) {
	args := m.Called(ctx, organizationID, currency, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyRate), args.Error(1)
}
func (m *MockCurrencyRateService) ListRates(ctx context.Context, organizationID, userID string) ([]domain.CurrencyRate, error) {
	args := m.Called(ctx, organizationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyRate), args.Error(1)
}
func (m *MockCurrencyRateService) UpsertRate(ctx context.Context, organizationID, currency string, req dto.UpsertCurrencyRateRequest, userID string) (*domain.CurrencyRate, error) {
	args := m.Called(ctx, organizationID, currency, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyRate), args.Error(1)
}
func (m *MockCurrencyRateService) DeleteRate(ctx context.Context, organizationID, currency, userID string) error {
	return m.Called(ctx, organizationID, currency, userID).Error(0)
}
func (m *MockCurrencyRateService) Convert(ctx context.Context, organizationID string, req dto.ConvertRequest, userID string) (*dto.ConvertResponse, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConvertResponse), args.Error(1)
}

var _ portssvc.CurrencyRateSvcFacade = (*MockCurrencyRateService)(nil)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) CreateExpense(ctx context.Context, organizationID string, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) ListExpenses(ctx context.Context, organizationID string, params dto.ListExpensesParams, userID string) ([]domain.Expense, error) {
	args := m.Called(ctx, organizationID, params, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Mock LoanService ---
type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) CreateStandaloneLoan(ctx context.Context, organizationID string, req dto.CreateLoanRequest, userID string) (*domain.Loan, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) RecordLoanPayment(ctx context.Context, organizationID, loanID string, req dto.RecordLoanPaymentRequest, userID string) (*domain.Loan, *domain.LoanPayment, error) {
	args := m.Called(ctx, organizationID, loanID, req, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Loan), args.Get(1).(*domain.LoanPayment), args.Error(2)
}
func (m *MockLoanService) CancelLoan(ctx context.Context, organizationID, loanID, userID string) (*domain.Loan, error) {
	args := m.Called(ctx, organizationID, loanID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) MarkLoanDefaulted(ctx context.Context, organizationID, loanID, userID string) (*domain.Loan, error) {
	args := m.Called(ctx, organizationID, loanID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) GetLoan(ctx context.Context, organizationID, loanID, userID string) (*domain.Loan, error) {
	args := m.Called(ctx, organizationID, loanID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) ListLoans(ctx context.Context, organizationID, accountID, userID string) ([]domain.Loan, error) {
	args := m.Called(ctx, organizationID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanService) ListLoanPayments(ctx context.Context, organizationID, loanID, userID string) ([]domain.LoanPayment, error) {
	args := m.Called(ctx, organizationID, loanID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanPayment), args.Error(1)
}

var _ portssvc.LoanSvcFacade = (*MockLoanService)(nil)

// --- Mock SubscriptionService ---
type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) CreateSubscription(ctx context.Context, organizationID string, req dto.CreateSubscriptionRequest, userID string) (*domain.Subscription, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}
func (m *MockSubscriptionService) UpdateSubscriptionStatus(ctx context.Context, organizationID, subscriptionID string, status domain.SubscriptionStatus, userID string) (*domain.Subscription, error) {
	args := m.Called(ctx, organizationID, subscriptionID, status, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}
func (m *MockSubscriptionService) GetSubscription(ctx context.Context, organizationID, subscriptionID, userID string) (*domain.Subscription, error) {
	args := m.Called(ctx, organizationID, subscriptionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}
func (m *MockSubscriptionService) ListSubscriptions(ctx context.Context, organizationID, userID string) ([]domain.Subscription, error) {
	args := m.Called(ctx, organizationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}
func (m *MockSubscriptionService) ProcessSubscriptionReminders(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

var _ portssvc.SubscriptionSvcFacade = (*MockSubscriptionService)(nil)

// --- Mock ReportService ---
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GenerateCustomReport(ctx context.Context, organizationID string, req dto.GenerateReportRequest, userID string) (*domain.ExpenseReport, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseReport), args.Error(1)
}
func (m *MockReportService) GetReport(ctx context.Context, organizationID, reportID, userID string) (*domain.ExpenseReport, error) {
	args := m.Called(ctx, organizationID, reportID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseReport), args.Error(1)
}
func (m *MockReportService) ListReports(ctx context.Context, organizationID, userID string) ([]domain.ExpenseReport, error) {
	args := m.Called(ctx, organizationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseReport), args.Error(1)
}
func (m *MockReportService) GetAccountSummary(ctx context.Context, organizationID, accountID, userID string, now time.Time) (*domain.AccountSummary, error) {
	args := m.Called(ctx, organizationID, accountID, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountSummary), args.Error(1)
}
func (m *MockReportService) GenerateMonthlyReports(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

var _ portssvc.ReportSvcFacade = (*MockReportService)(nil)

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/expense_ledger/internal/apperrors"
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
	"github.com/SscSPs/expense_ledger/internal/core/services"
	"github.com/SscSPs/expense_ledger/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LoanServiceTestSuite struct {
	suite.Suite
	mockOrgRepo     *MockOrganizationRepository
	mockLoanRepo    *MockLoanRepository
	mockAccountRepo *MockExpenseAccountRepository
	mockRates       *MockRateTableProvider
	service         portssvc.LoanSvcFacade
	eurAccount      *domain.ExpenseAccount
}

func (suite *LoanServiceTestSuite) SetupTest() {
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockAccountRepo = new(MockExpenseAccountRepository)
	suite.mockRates = new(MockRateTableProvider)
	suite.service = services.NewLoanService(
		suite.mockLoanRepo,
		suite.mockAccountRepo,
		suite.mockRates,
		services.WithLoanAuthorizer(services.NewOrganizationService(suite.mockOrgRepo)),
	)
	suite.eurAccount = &domain.ExpenseAccount{
		ExpenseAccountID: "acc-eur",
		OrganizationID:   testOrgID,
		Name:             "Berlin office",
		Currency:         "EUR",
	}
}

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}

func (suite *LoanServiceTestSuite) expectRole(role domain.OrganizationRole) {
	suite.mockOrgRepo.On("FindMembership", mock.Anything, testOrgID, testUserID).Return(membership(role), nil)
}

func (suite *LoanServiceTestSuite) activeLoan(balance string) *domain.Loan {
	return &domain.Loan{
		LoanID:          "loan-1",
		OrganizationID:  testOrgID,
		BusinessID:      suite.eurAccount.ExpenseAccountID,
		TeamMemberID:    "tm-1",
		AccountCurrency: "EUR",
		PrincipalAmount: dec("90.00"),
		CurrentBalance:  dec(balance),
		Status:          domain.LoanActive,
	}
}

func paymentRequest(amount, currency string) dto.RecordLoanPaymentRequest {
	return dto.RecordLoanPaymentRequest{
		PaymentDate:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		MoneyInputRequest: dto.MoneyInputRequest{Amount: dec(amount), Currency: currency},
	}
}

func (suite *LoanServiceTestSuite) TestCreateStandaloneLoan_ConvertsToAccountCurrency() {
	ctx := context.Background()
	suite.expectRole(domain.RoleAdmin)
	suite.mockAccountRepo.On("FindExpenseAccountByID", mock.Anything, testOrgID, "acc-eur").Return(suite.eurAccount, nil).Once()
	suite.mockAccountRepo.On("FindTeamMemberByID", mock.Anything, testOrgID, "tm-1").Return(&domain.TeamMember{TeamMemberID: "tm-1"}, nil).Once()
	suite.mockAccountRepo.On("IsTeamMemberOnAccount", mock.Anything, "tm-1", "acc-eur").Return(true, nil).Once()
	suite.mockRates.On("RateTable", mock.Anything, testOrgID).Return(usdEurTable(), nil).Once()
	suite.mockLoanRepo.On("SaveLoan", mock.Anything, mock.MatchedBy(func(l domain.Loan) bool {
		return l.PrincipalAmount.Equal(dec("90")) && l.CurrentBalance.Equal(dec("90")) && l.Status == domain.LoanActive
	})).Return(nil).Once()

	loan, err := suite.service.CreateStandaloneLoan(ctx, testOrgID, dto.CreateLoanRequest{
		TeamMemberID:      "tm-1",
		BusinessID:        "acc-eur",
		LoanDate:          time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		MoneyInputRequest: dto.MoneyInputRequest{Amount: dec("100"), Currency: "USD"},
	}, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "EUR", loan.AccountCurrency)
	assert.True(suite.T(), loan.PrincipalAmount.Equal(dec("90")))
	assert.True(suite.T(), loan.Original.Amount.Equal(dec("100")))
	assert.Equal(suite.T(), "USD", loan.Original.Currency)
	assert.Nil(suite.T(), loan.Original.ConversionRate)
	assert.True(suite.T(), loan.Original.BaseCurrencyAmount.Equal(dec("100")))
	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestCreateStandaloneLoan_MemberNotOnAccount() {
	ctx := context.Background()
	suite.expectRole(domain.RoleOwner)
	suite.mockAccountRepo.On("FindExpenseAccountByID", mock.Anything, testOrgID, "acc-eur").Return(suite.eurAccount, nil).Once()
	suite.mockAccountRepo.On("FindTeamMemberByID", mock.Anything, testOrgID, "tm-2").Return(&domain.TeamMember{TeamMemberID: "tm-2"}, nil).Once()
	suite.mockAccountRepo.On("IsTeamMemberOnAccount", mock.Anything, "tm-2", "acc-eur").Return(false, nil).Once()

	loan, err := suite.service.CreateStandaloneLoan(ctx, testOrgID, dto.CreateLoanRequest{
		TeamMemberID:      "tm-2",
		BusinessID:        "acc-eur",
		MoneyInputRequest: dto.MoneyInputRequest{Amount: dec("10"), Currency: "EUR"},
	}, testUserID)

	assert.Nil(suite.T(), loan)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SaveLoan", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestCreateStandaloneLoan_ViewerForbidden() {
	suite.expectRole(domain.RoleViewer)

	_, err := suite.service.CreateStandaloneLoan(context.Background(), testOrgID, dto.CreateLoanRequest{
		TeamMemberID:      "tm-1",
		BusinessID:        "acc-eur",
		MoneyInputRequest: dto.MoneyInputRequest{Amount: dec("10"), Currency: "EUR"},
	}, testUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindExpenseAccountByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestCreateStandaloneLoan_MissingRateNamesCurrency() {
	suite.expectRole(domain.RoleAdmin)
	suite.mockAccountRepo.On("FindExpenseAccountByID", mock.Anything, testOrgID, "acc-eur").Return(suite.eurAccount, nil).Once()
	suite.mockAccountRepo.On("FindTeamMemberByID", mock.Anything, testOrgID, "tm-1").Return(&domain.TeamMember{TeamMemberID: "tm-1"}, nil).Once()
	suite.mockAccountRepo.On("IsTeamMemberOnAccount", mock.Anything, "tm-1", "acc-eur").Return(true, nil).Once()
	suite.mockRates.On("RateTable", mock.Anything, testOrgID).Return(usdEurTable(), nil).Once()

	_, err := suite.service.CreateStandaloneLoan(context.Background(), testOrgID, dto.CreateLoanRequest{
		TeamMemberID:      "tm-1",
		BusinessID:        "acc-eur",
		MoneyInputRequest: dto.MoneyInputRequest{Amount: dec("10"), Currency: "GBP"},
	}, testUserID)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrRateNotFound)
	currency, ok := apperrors.MissingRateCurrency(err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "GBP", currency)
}

func (suite *LoanServiceTestSuite) TestRecordLoanPayment_BalanceLifecycle() {
	ctx := context.Background()
	loan := suite.activeLoan("90.00")
	suite.expectRole(domain.RoleAdmin)
	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, testOrgID, "loan-1").Return(loan, nil)
	suite.mockRates.On("RateTable", mock.Anything, testOrgID).Return(usdEurTable(), nil)
	suite.mockLoanRepo.On("UpdateLoanLocked", mock.Anything, testOrgID, "loan-1", mock.Anything).Return(loan, nil)

	updated, payment, err := suite.service.RecordLoanPayment(ctx, testOrgID, "loan-1", paymentRequest("50", "EUR"), testUserID)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), updated.CurrentBalance.Equal(dec("40")))
	assert.Equal(suite.T(), domain.LoanActive, updated.Status)
	assert.True(suite.T(), payment.Amount.Equal(dec("50")))
	assert.Equal(suite.T(), testUserID, payment.RecordedBy)

	_, _, err = suite.service.RecordLoanPayment(ctx, testOrgID, "loan-1", paymentRequest("45", "EUR"), testUserID)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientBalance)
	assert.True(suite.T(), loan.CurrentBalance.Equal(dec("40")), "rejected payment must not change the balance")

	updated, _, err = suite.service.RecordLoanPayment(ctx, testOrgID, "loan-1", paymentRequest("40", "EUR"), testUserID)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), updated.CurrentBalance.IsZero())
	assert.Equal(suite.T(), domain.LoanPaid, updated.Status)

	require.Len(suite.T(), suite.mockLoanRepo.Payments, 2)
	assert.True(suite.T(), loan.OutstandingFromPayments(suite.mockLoanRepo.Payments).Equal(loan.CurrentBalance))
}

func (suite *LoanServiceTestSuite) TestRecordLoanPayment_ForeignCurrencyPayment() {
	loan := suite.activeLoan("90.00")
	suite.expectRole(domain.RoleOwner)
	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, testOrgID, "loan-1").Return(loan, nil).Once()
	suite.mockRates.On("RateTable", mock.Anything, testOrgID).Return(usdEurTable(), nil).Once()
	suite.mockLoanRepo.On("UpdateLoanLocked", mock.Anything, testOrgID, "loan-1", mock.Anything).Return(loan, nil).Once()

	updated, payment, err := suite.service.RecordLoanPayment(context.Background(), testOrgID, "loan-1", paymentRequest("10", "USD"), testUserID)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), payment.Amount.Equal(dec("9")))
	assert.Equal(suite.T(), "USD", payment.Original.Currency)
	assert.True(suite.T(), updated.CurrentBalance.Equal(dec("81")))
}

func (suite *LoanServiceTestSuite) TestRecordLoanPayment_PaidLoanRejected() {
	loan := suite.activeLoan("0")
	loan.Status = domain.LoanPaid
	suite.expectRole(domain.RoleOwner)
	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, testOrgID, "loan-1").Return(loan, nil).Once()

	_, _, err := suite.service.RecordLoanPayment(context.Background(), testOrgID, "loan-1", paymentRequest("1", "EUR"), testUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidState)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "UpdateLoanLocked", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestCancelLoan() {
	loan := suite.activeLoan("40.00")
	suite.expectRole(domain.RoleAdmin)
	suite.mockLoanRepo.On("UpdateLoanLocked", mock.Anything, testOrgID, "loan-1", mock.Anything).Return(loan, nil)

	updated, err := suite.service.CancelLoan(context.Background(), testOrgID, "loan-1", testUserID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.LoanCancelled, updated.Status)
	assert.True(suite.T(), updated.CurrentBalance.Equal(dec("40")))

	_, err = suite.service.MarkLoanDefaulted(context.Background(), testOrgID, "loan-1", testUserID)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidState)
	assert.Equal(suite.T(), domain.LoanCancelled, loan.Status)
}

func (suite *LoanServiceTestSuite) TestMarkLoanDefaulted_NotFound() {
	suite.expectRole(domain.RoleAdmin)
	suite.mockLoanRepo.On("UpdateLoanLocked", mock.Anything, testOrgID, "missing", mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.MarkLoanDefaulted(context.Background(), testOrgID, "missing", testUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *LoanServiceTestSuite) TestListLoanPayments_UnknownLoan() {
	suite.expectRole(domain.RoleViewer)
	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, testOrgID, "missing").Return(nil, apperrors.ErrNotFound).Once()

	payments, err := suite.service.ListLoanPayments(context.Background(), testOrgID, "missing", testUserID)

	assert.Nil(suite.T(), payments)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "ListLoanPayments", mock.Anything, mock.Anything)
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/expense_ledger/internal/apperrors"
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
	"github.com/SscSPs/expense_ledger/internal/core/services"
	"github.com/SscSPs/expense_ledger/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockOrgRepo     *MockOrganizationRepository
	mockExpenseRepo *MockExpenseRepository
	mockAccountRepo *MockExpenseAccountRepository
	mockRates       *MockRateTableProvider
	service         portssvc.ExpenseSvcFacade
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockAccountRepo = new(MockExpenseAccountRepository)
	suite.mockRates = new(MockRateTableProvider)
	suite.service = services.NewExpenseService(
		suite.mockExpenseRepo,
		suite.mockAccountRepo,
		suite.mockRates,
		services.WithExpenseAuthorizer(services.NewOrganizationService(suite.mockOrgRepo)),
	)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_CustomRate() {
	custom := dec("1.3")
	suite.mockOrgRepo.On("FindMembership", mock.Anything, testOrgID, testUserID).Return(membership(domain.RoleMember), nil).Once()
	suite.mockAccountRepo.On("FindExpenseAccountByID", mock.Anything, testOrgID, "acc-eur").Return(&domain.ExpenseAccount{ExpenseAccountID: "acc-eur", Currency: "EUR"}, nil).Once()
	suite.mockRates.On("RateTable", mock.Anything, testOrgID).Return(usdEurTable(), nil).Once()
	suite.mockExpenseRepo.On("SaveExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Currency == "CHF" && e.BaseCurrencyAmount.Equal(dec("130")) && e.CreatedBy == testUserID
	})).Return(nil).Once()

	expense, err := suite.service.CreateExpense(context.Background(), testOrgID, dto.CreateExpenseRequest{
		ExpenseAccountID: "acc-eur",
		Category:         "Travel",
		ExpenseDate:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		MoneyInputRequest: dto.MoneyInputRequest{
			Amount:     dec("100"),
			Currency:   "CHF",
			RateType:   domain.RateTypeCustom,
			CustomRate: &custom,
		},
	}, testUserID)

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), expense.ConversionRate)
	assert.True(suite.T(), expense.ConversionRate.Equal(custom))
	assert.NoError(suite.T(), expense.CheckInvariant("USD"))
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_UnknownAccount() {
	suite.mockOrgRepo.On("FindMembership", mock.Anything, testOrgID, testUserID).Return(membership(domain.RoleMember), nil).Once()
	suite.mockAccountRepo.On("FindExpenseAccountByID", mock.Anything, testOrgID, "acc-x").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateExpense(context.Background(), testOrgID, dto.CreateExpenseRequest{
		ExpenseAccountID:  "acc-x",
		Category:          "Travel",
		MoneyInputRequest: dto.MoneyInputRequest{Amount: dec("1"), Currency: "USD"},
	}, testUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_ViewerForbidden() {
	suite.mockOrgRepo.On("FindMembership", mock.Anything, testOrgID, testUserID).Return(membership(domain.RoleViewer), nil).Once()

	_, err := suite.service.CreateExpense(context.Background(), testOrgID, dto.CreateExpenseRequest{}, testUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_NonMemberForbidden() {
	suite.mockOrgRepo.On("FindMembership", mock.Anything, testOrgID, testUserID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateExpense(context.Background(), testOrgID, dto.CreateExpenseRequest{}, testUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_InclusiveToDate() {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	suite.mockOrgRepo.On("FindMembership", mock.Anything, testOrgID, testUserID).Return(membership(domain.RoleViewer), nil).Once()
	suite.mockExpenseRepo.On("ListExpenses", mock.Anything, portsrepo.ExpenseFilter{
		OrganizationID: testOrgID,
		AccountIDs:     []string{"acc-eur"},
		From:           from,
		To:             time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}).Return(nil, nil).Once()

	expenses, err := suite.service.ListExpenses(context.Background(), testOrgID, dto.ListExpensesParams{AccountID: "acc-eur", From: from, To: to}, testUserID)

	require.NoError(suite.T(), err)
	assert.NotNil(suite.T(), expenses)
	assert.Empty(suite.T(), expenses)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_InvertedRange() {
	suite.mockOrgRepo.On("FindMembership", mock.Anything, testOrgID, testUserID).Return(membership(domain.RoleViewer), nil).Once()

	_, err := suite.service.ListExpenses(context.Background(), testOrgID, dto.ListExpensesParams{
		From: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}, testUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

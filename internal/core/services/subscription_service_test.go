package services_test

import (
	"context"
	"errors"
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

type SubscriptionServiceTestSuite struct {
	suite.Suite
	mockOrgRepo     *MockOrganizationRepository
	mockSubRepo     *MockSubscriptionRepository
	mockAccountRepo *MockExpenseAccountRepository
	mockRates       *MockRateTableProvider
	mockNotifier    *MockNotifier
	service         portssvc.SubscriptionSvcFacade
	now             time.Time
}

func (suite *SubscriptionServiceTestSuite) SetupTest() {
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.mockSubRepo = new(MockSubscriptionRepository)
	suite.mockAccountRepo = new(MockExpenseAccountRepository)
	suite.mockRates = new(MockRateTableProvider)
	suite.mockNotifier = new(MockNotifier)
	orgSvc := services.NewOrganizationService(suite.mockOrgRepo)
	suite.service = services.NewSubscriptionService(
		suite.mockSubRepo,
		suite.mockAccountRepo,
		orgSvc,
		suite.mockRates,
		services.WithSubscriptionAuthorizer(orgSvc),
		services.WithReminderNotifier(suite.mockNotifier),
		services.WithReminderItemTimeout(5*time.Second),
	)
	suite.now = time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)
}

func TestSubscriptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}

func dueSubscription(id string) *domain.Subscription {
	return &domain.Subscription{
		SubscriptionID:   id,
		OrganizationID:   testOrgID,
		ExpenseAccountID: "acc-eur",
		Name:             "Design tool",
		Category:         "Software",
		MoneyEntry: domain.MoneyEntry{
			Amount:             dec("12.99"),
			Currency:           "EUR",
			BaseCurrencyAmount: dec("14.43"),
		},
		RenewalDate:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		RenewalFrequency: domain.FrequencyMonthly,
		AnchorDay:        10,
		ReminderDays:     3,
		NextReminderDate: time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		Status:           domain.SubscriptionActive,
	}
}

func (suite *SubscriptionServiceTestSuite) expectMembers() {
	suite.mockOrgRepo.On("ListMembers", mock.Anything, testOrgID).Return([]domain.Membership{
		{OrganizationID: testOrgID, UserID: "u1", Email: "owner@example.com", Role: domain.RoleOwner},
		{OrganizationID: testOrgID, UserID: "u2", Email: "owner@example.com", Role: domain.RoleMember},
		{OrganizationID: testOrgID, UserID: "u3", Email: "", Role: domain.RoleViewer},
		{OrganizationID: testOrgID, UserID: "u4", Email: "finance@example.com", Role: domain.RoleAdmin},
	}, nil)
	suite.mockRates.On("Formatting", mock.Anything, testOrgID, "EUR").Return(domain.RateFormatting{
		Symbol:             "€",
		SymbolPosition:     domain.SymbolAfter,
		ThousandsSeparator: ".",
		DecimalSeparator:   ",",
	}, nil)
}

func (suite *SubscriptionServiceTestSuite) TestCreateSubscription_AnchorsEndOfMonth() {
	suite.mockOrgRepo.On("FindMembership", mock.Anything, testOrgID, testUserID).Return(membership(domain.RoleMember), nil).Once()
	suite.mockAccountRepo.On("FindExpenseAccountByID", mock.Anything, testOrgID, "acc-eur").Return(&domain.ExpenseAccount{ExpenseAccountID: "acc-eur", Currency: "EUR"}, nil).Once()
	suite.mockRates.On("RateTable", mock.Anything, testOrgID).Return(usdEurTable(), nil).Once()
	suite.mockSubRepo.On("SaveSubscription", mock.Anything, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.AnchorDay == 31 && s.Status == domain.SubscriptionActive
	})).Return(nil).Once()

	sub, err := suite.service.CreateSubscription(context.Background(), testOrgID, dto.CreateSubscriptionRequest{
		ExpenseAccountID:  "acc-eur",
		Name:              "Design tool",
		Category:          "Software",
		RenewalDate:       time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		RenewalFrequency:  domain.FrequencyMonthly,
		ReminderDays:      3,
		MoneyInputRequest: dto.MoneyInputRequest{Amount: dec("12.99"), Currency: "EUR"},
	}, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC), sub.NextReminderDate)
	assert.NotNil(suite.T(), sub.ConversionRate)
	assert.Equal(suite.T(), time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), sub.NextRenewal(sub.RenewalDate))
	suite.mockSubRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestCreateSubscription_ClientOffsetKeepsCalendarDate() {
	suite.mockOrgRepo.On("FindMembership", mock.Anything, testOrgID, testUserID).Return(membership(domain.RoleMember), nil).Once()
	suite.mockAccountRepo.On("FindExpenseAccountByID", mock.Anything, testOrgID, "acc-eur").Return(&domain.ExpenseAccount{ExpenseAccountID: "acc-eur", Currency: "EUR"}, nil).Once()
	suite.mockRates.On("RateTable", mock.Anything, testOrgID).Return(usdEurTable(), nil).Once()
	suite.mockSubRepo.On("SaveSubscription", mock.Anything, mock.Anything).Return(nil).Once()

	est := time.FixedZone("EST", -5*60*60)
	sub, err := suite.service.CreateSubscription(context.Background(), testOrgID, dto.CreateSubscriptionRequest{
		ExpenseAccountID:  "acc-eur",
		Name:              "Design tool",
		Category:          "Software",
		RenewalDate:       time.Date(2026, 1, 31, 0, 0, 0, 0, est),
		RenewalFrequency:  domain.FrequencyMonthly,
		ReminderDays:      3,
		MoneyInputRequest: dto.MoneyInputRequest{Amount: dec("12.99"), Currency: "EUR"},
	}, testUserID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), sub.RenewalDate)
	assert.Equal(suite.T(), 31, sub.AnchorDay)
	assert.Equal(suite.T(), time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC), sub.NextReminderDate)
	assert.Equal(suite.T(), time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), sub.NextRenewal(sub.RenewalDate))
}

func (suite *SubscriptionServiceTestSuite) TestCreateSubscription_CustomWithoutInterval() {
	suite.mockOrgRepo.On("FindMembership", mock.Anything, testOrgID, testUserID).Return(membership(domain.RoleAdmin), nil).Once()
	suite.mockAccountRepo.On("FindExpenseAccountByID", mock.Anything, testOrgID, "acc-eur").Return(&domain.ExpenseAccount{ExpenseAccountID: "acc-eur", Currency: "EUR"}, nil).Once()
	suite.mockRates.On("RateTable", mock.Anything, testOrgID).Return(usdEurTable(), nil).Once()

	_, err := suite.service.CreateSubscription(context.Background(), testOrgID, dto.CreateSubscriptionRequest{
		ExpenseAccountID:  "acc-eur",
		Name:              "Hosting",
		Category:          "Infrastructure",
		RenewalDate:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		RenewalFrequency:  domain.FrequencyCustom,
		MoneyInputRequest: dto.MoneyInputRequest{Amount: dec("20"), Currency: "EUR"},
	}, testUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "SaveSubscription", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestProcessSubscriptionReminders_OncePerCycle() {
	stored := dueSubscription("sub-1")
	suite.expectMembers()
	suite.mockSubRepo.On("ListDueSubscriptions", mock.Anything, suite.now).Return([]domain.Subscription{*stored}, nil)
	suite.mockSubRepo.On("UpdateSubscriptionLocked", mock.Anything, testOrgID, "sub-1", mock.Anything).Return(stored, nil)
	suite.mockNotifier.On("Enqueue", mock.Anything, mock.MatchedBy(func(job domain.MailJob) bool {
		return job.Kind == domain.MailSubscriptionReminder &&
			job.ReferenceID == "sub-1" &&
			assert.ObjectsAreEqual([]string{"owner@example.com", "finance@example.com"}, job.Recipients)
	})).Return(nil).Once()
	suite.mockSubRepo.On("MarkRemindersDispatched", mock.Anything, mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 2
	}), suite.now).Return(nil).Once()

	sent, err := suite.service.ProcessSubscriptionReminders(context.Background(), suite.now)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, sent)
	assert.Equal(suite.T(), time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), stored.RenewalDate)
	assert.Equal(suite.T(), time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC), stored.NextReminderDate)
	require.NotNil(suite.T(), stored.LastReminderCycle)
	assert.Equal(suite.T(), time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *stored.LastReminderCycle)
	assert.Equal(suite.T(), "system", stored.LastUpdatedBy)

	// a second run on the same day finds nothing left to remind
	sent, err = suite.service.ProcessSubscriptionReminders(context.Background(), suite.now)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, sent)
	suite.mockNotifier.AssertExpectations(suite.T())
	suite.mockSubRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestProcessSubscriptionReminders_SkipsFailingSubscription() {
	broken := dueSubscription("sub-broken")
	healthy := dueSubscription("sub-ok")
	suite.expectMembers()
	suite.mockSubRepo.On("ListDueSubscriptions", mock.Anything, suite.now).Return([]domain.Subscription{*broken, *healthy}, nil).Once()
	suite.mockSubRepo.On("UpdateSubscriptionLocked", mock.Anything, testOrgID, "sub-broken", mock.Anything).Return(nil, errors.New("deadlock detected")).Once()
	suite.mockSubRepo.On("UpdateSubscriptionLocked", mock.Anything, testOrgID, "sub-ok", mock.Anything).Return(healthy, nil).Once()
	suite.mockNotifier.On("Enqueue", mock.Anything, mock.MatchedBy(func(job domain.MailJob) bool {
		return job.ReferenceID == "sub-ok"
	})).Return(nil).Once()
	suite.mockSubRepo.On("MarkRemindersDispatched", mock.Anything, mock.Anything, suite.now).Return(nil).Once()

	sent, err := suite.service.ProcessSubscriptionReminders(context.Background(), suite.now)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, sent)
	assert.Equal(suite.T(), time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), broken.RenewalDate)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestProcessSubscriptionReminders_NotifierFailureIsNotRetried() {
	stored := dueSubscription("sub-1")
	suite.expectMembers()
	suite.mockSubRepo.On("ListDueSubscriptions", mock.Anything, suite.now).Return([]domain.Subscription{*stored}, nil).Once()
	suite.mockSubRepo.On("UpdateSubscriptionLocked", mock.Anything, testOrgID, "sub-1", mock.Anything).Return(stored, nil).Once()
	suite.mockNotifier.On("Enqueue", mock.Anything, mock.Anything).Return(errors.New("queue unavailable")).Once()

	sent, err := suite.service.ProcessSubscriptionReminders(context.Background(), suite.now)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, sent)
	assert.Equal(suite.T(), time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), stored.RenewalDate)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "MarkRemindersDispatched", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestProcessSubscriptionReminders_StopsOnCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	suite.mockSubRepo.On("ListDueSubscriptions", mock.Anything, suite.now).Return([]domain.Subscription{*dueSubscription("sub-1")}, nil).Once()

	sent, err := suite.service.ProcessSubscriptionReminders(ctx, suite.now)

	assert.ErrorIs(suite.T(), err, context.Canceled)
	assert.Equal(suite.T(), 0, sent)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "UpdateSubscriptionLocked", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestUpdateSubscriptionStatus() {
	stored := dueSubscription("sub-1")
	stored.Status = domain.SubscriptionPaused
	stored.RenewalDate = time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	suite.mockOrgRepo.On("FindMembership", mock.Anything, testOrgID, testUserID).Return(membership(domain.RoleOwner), nil)
	suite.mockSubRepo.On("UpdateSubscriptionLocked", mock.Anything, testOrgID, "sub-1", mock.Anything).Return(stored, nil)

	updated, err := suite.service.UpdateSubscriptionStatus(context.Background(), testOrgID, "sub-1", domain.SubscriptionActive, testUserID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.SubscriptionActive, updated.Status)
	assert.Equal(suite.T(), time.Date(2026, 5, 7, 0, 0, 0, 0, time.UTC), updated.NextReminderDate)

	_, err = suite.service.UpdateSubscriptionStatus(context.Background(), testOrgID, "sub-1", domain.SubscriptionCancelled, testUserID)
	require.NoError(suite.T(), err)

	_, err = suite.service.UpdateSubscriptionStatus(context.Background(), testOrgID, "sub-1", domain.SubscriptionActive, testUserID)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidState)
	assert.Equal(suite.T(), domain.SubscriptionCancelled, stored.Status)
}

func (suite *SubscriptionServiceTestSuite) TestUpdateSubscriptionStatus_MemberForbidden() {
	suite.mockOrgRepo.On("FindMembership", mock.Anything, testOrgID, testUserID).Return(membership(domain.RoleMember), nil).Once()

	_, err := suite.service.UpdateSubscriptionStatus(context.Background(), testOrgID, "sub-1", domain.SubscriptionPaused, testUserID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
}

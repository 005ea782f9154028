package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_ledger/internal/apperrors"
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
	"github.com/SscSPs/expense_ledger/internal/dto"
	"github.com/SscSPs/expense_ledger/internal/utils/conversion"
	"github.com/google/uuid"
)

const defaultItemTimeout = 30 * time.Second

// subscriptionService manages recurring charges and their renewal reminders.
type subscriptionService struct {
	BaseService
	subRepo     portsrepo.SubscriptionRepositoryFacade
	accountRepo portsrepo.ExpenseAccountReader
	orgReader   portssvc.OrganizationReaderSvc
	rates       portssvc.RateTableProvider
	notifier    portssvc.Notifier
	itemTimeout time.Duration
}

// SubscriptionServiceOption is a functional option for configuring the subscription service
type SubscriptionServiceOption func(*subscriptionService)

// WithSubscriptionAuthorizer sets the organization authorizer for the subscription service.
func WithSubscriptionAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) SubscriptionServiceOption {
	return func(s *subscriptionService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// WithReminderNotifier sets where reminder mails are enqueued.
func WithReminderNotifier(n portssvc.Notifier) SubscriptionServiceOption {
	return func(s *subscriptionService) {
		s.notifier = n
	}
}

// WithReminderItemTimeout bounds the time spent on a single subscription during a job run.
func WithReminderItemTimeout(d time.Duration) SubscriptionServiceOption {
	return func(s *subscriptionService) {
		if d > 0 {
			s.itemTimeout = d
		}
	}
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(
	subRepo portsrepo.SubscriptionRepositoryFacade,
	accountRepo portsrepo.ExpenseAccountReader,
	orgReader portssvc.OrganizationReaderSvc,
	rates portssvc.RateTableProvider,
	options ...SubscriptionServiceOption,
) portssvc.SubscriptionSvcFacade {
	svc := &subscriptionService{
		subRepo:     subRepo,
		accountRepo: accountRepo,
		orgReader:   orgReader,
		rates:       rates,
		itemTimeout: defaultItemTimeout,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SubscriptionSvcFacade = (*subscriptionService)(nil)

// CreateSubscription registers a recurring charge on an expense account.
func (s *subscriptionService) CreateSubscription(ctx context.Context, organizationID string, req dto.CreateSubscriptionRequest, userID string) (*domain.Subscription, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.Contributors...); err != nil {
		return nil, err
	}

	account, err := findAccount(ctx, s.accountRepo, organizationID, req.ExpenseAccountID)
	if err != nil {
		return nil, err
	}

	table, err := s.rates.RateTable(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	res, err := conversion.ResolveEntry(req.ToMoneyInput(), account.Currency, table)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	renewal := domain.CalendarDate(req.RenewalDate)
	sub := domain.Subscription{
		SubscriptionID:     uuid.NewString(),
		OrganizationID:     organizationID,
		ExpenseAccountID:   account.ExpenseAccountID,
		Name:               req.Name,
		Category:           req.Category,
		MoneyEntry:         res.Entry,
		RenewalDate:        renewal,
		RenewalFrequency:   req.RenewalFrequency,
		CustomIntervalDays: req.CustomIntervalDays,
		AnchorDay:          renewal.Day(),
		ReminderDays:       req.ReminderDays,
		Status:             domain.SubscriptionActive,
		AuditFields:        domain.NewAuditFields(userID, now),
	}
	if err := sub.ValidateSchedule(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	sub.NextReminderDate = sub.ReminderDateFor(sub.RenewalDate)

	if err := s.subRepo.SaveSubscription(ctx, sub); err != nil {
		s.LogError(ctx, err, "Failed to save subscription", slog.String("subscription_id", sub.SubscriptionID))
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	s.LogInfo(ctx, "Subscription created",
		slog.String("subscription_id", sub.SubscriptionID),
		slog.String("frequency", string(sub.RenewalFrequency)),
		slog.Time("renewal_date", sub.RenewalDate))
	return &sub, nil
}

// GetSubscription retrieves a subscription.
func (s *subscriptionService) GetSubscription(ctx context.Context, organizationID, subscriptionID, userID string) (*domain.Subscription, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.AnyMember...); err != nil {
		return nil, err
	}
	sub, err := s.subRepo.FindSubscriptionByID(ctx, organizationID, subscriptionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: subscription %s", apperrors.ErrNotFound, subscriptionID)
		}
		s.LogError(ctx, err, "Failed to load subscription", slog.String("subscription_id", subscriptionID))
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return sub, nil
}

// ListSubscriptions lists an organization's subscriptions.
func (s *subscriptionService) ListSubscriptions(ctx context.Context, organizationID, userID string) ([]domain.Subscription, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.AnyMember...); err != nil {
		return nil, err
	}
	subs, err := s.subRepo.ListSubscriptions(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list subscriptions", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	if subs == nil {
		return []domain.Subscription{}, nil
	}
	return subs, nil
}

// UpdateSubscriptionStatus pauses, resumes or cancels a subscription.
// Cancelled subscriptions cannot be reactivated.
func (s *subscriptionService) UpdateSubscriptionStatus(ctx context.Context, organizationID, subscriptionID string, status domain.SubscriptionStatus, userID string) (*domain.Subscription, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.LedgerManagers...); err != nil {
		return nil, err
	}
	switch status {
	case domain.SubscriptionActive, domain.SubscriptionPaused, domain.SubscriptionCancelled, domain.SubscriptionInactive:
	default:
		return nil, fmt.Errorf("%w: unknown subscription status '%s'", apperrors.ErrValidation, status)
	}

	now := time.Now()
	updated, _, err := s.subRepo.UpdateSubscriptionLocked(ctx, organizationID, subscriptionID, func(locked *domain.Subscription) ([]domain.SubscriptionReminder, bool, error) {
		if locked.Status == status {
			return nil, false, nil
		}
		if locked.Status == domain.SubscriptionCancelled {
			return nil, false, fmt.Errorf("%w: subscription %s is cancelled", apperrors.ErrInvalidState, subscriptionID)
		}
		locked.Status = status
		if status == domain.SubscriptionActive {
			locked.NextReminderDate = locked.ReminderDateFor(locked.RenewalDate)
		}
		locked.Touch(userID, now)
		return nil, true, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: subscription %s", apperrors.ErrNotFound, subscriptionID)
		}
		if errors.Is(err, apperrors.ErrInvalidState) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update subscription status", slog.String("subscription_id", subscriptionID))
		return nil, fmt.Errorf("failed to update subscription status: %w", err)
	}

	s.LogInfo(ctx, "Subscription status updated",
		slog.String("subscription_id", subscriptionID),
		slog.String("status", string(updated.Status)))
	return updated, nil
}

// ProcessSubscriptionReminders emits one reminder per due subscription cycle.
// A failing subscription is logged and skipped; cancellation of ctx stops the
// run and returns the count so far.
func (s *subscriptionService) ProcessSubscriptionReminders(ctx context.Context, now time.Time) (int, error) {
	due, err := s.subRepo.ListDueSubscriptions(ctx, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to list due subscriptions")
		return 0, fmt.Errorf("failed to list due subscriptions: %w", err)
	}

	sent := 0
	for _, sub := range due {
		if err := ctx.Err(); err != nil {
			s.LogWarn(ctx, "Reminder job interrupted", slog.Int("reminders_sent", sent))
			return sent, err
		}
		n, err := s.processOne(ctx, sub, now)
		if err != nil {
			s.LogError(ctx, err, "Failed to process subscription reminder",
				slog.String("subscription_id", sub.SubscriptionID),
				slog.String("organization_id", sub.OrganizationID))
			continue
		}
		sent += n
	}

	s.LogInfo(ctx, "Subscription reminder job finished",
		slog.Int("due", len(due)),
		slog.Int("reminders_sent", sent))
	return sent, nil
}

// processOne advances one subscription inside its own transaction, then
// dispatches the mail. Dispatch happens after commit so a reminder is sent at
// most once per cycle and recipient.
func (s *subscriptionService) processOne(ctx context.Context, sub domain.Subscription, now time.Time) (int, error) {
	itemCtx, cancel := context.WithTimeout(ctx, s.itemTimeout)
	defer cancel()

	recipients, err := s.recipients(itemCtx, sub.OrganizationID)
	if err != nil {
		return 0, err
	}
	if len(recipients) == 0 {
		s.LogWarn(itemCtx, "Organization has no member with an email, advancing without reminders",
			slog.String("organization_id", sub.OrganizationID))
	}

	updated, inserted, err := s.subRepo.UpdateSubscriptionLocked(itemCtx, sub.OrganizationID, sub.SubscriptionID, func(locked *domain.Subscription) ([]domain.SubscriptionReminder, bool, error) {
		if !locked.IsReminderDue(now) {
			return nil, false, nil
		}
		cycle := locked.AdvanceAfterReminder(now)
		locked.Touch(systemUserID, now)
		reminders := make([]domain.SubscriptionReminder, 0, len(recipients))
		for _, email := range recipients {
			reminders = append(reminders, domain.SubscriptionReminder{
				ReminderID:     uuid.NewString(),
				SubscriptionID: locked.SubscriptionID,
				OrganizationID: locked.OrganizationID,
				CycleDate:      cycle,
				RecipientEmail: email,
				CreatedAt:      now,
			})
		}
		return reminders, true, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to advance subscription: %w", err)
	}
	if len(inserted) == 0 {
		return 0, nil
	}

	if err := s.dispatch(itemCtx, sub, updated, inserted, now); err != nil {
		return 0, err
	}
	return len(inserted), nil
}

func (s *subscriptionService) dispatch(ctx context.Context, sub domain.Subscription, updated *domain.Subscription, reminders []domain.SubscriptionReminder, now time.Time) error {
	if s.notifier == nil {
		return fmt.Errorf("no notifier configured, %d reminders left undispatched", len(reminders))
	}

	format, err := s.rates.Formatting(ctx, sub.OrganizationID, sub.Currency)
	if err != nil {
		s.LogWarn(ctx, "Falling back to plain amount formatting", slog.String("error", err.Error()))
	}

	cycle := reminders[0].CycleDate
	emails := make([]string, len(reminders))
	ids := make([]string, len(reminders))
	for i, r := range reminders {
		emails[i] = r.RecipientEmail
		ids[i] = r.ReminderID
	}

	job := domain.MailJob{
		Kind:           domain.MailSubscriptionReminder,
		OrganizationID: sub.OrganizationID,
		Recipients:     emails,
		Subject:        fmt.Sprintf("%s renews on %s", sub.Name, cycle.Format("2006-01-02")),
		Body: fmt.Sprintf("%s (%s) renews on %s for %s. The following renewal is on %s.",
			sub.Name, sub.Category, cycle.Format("2006-01-02"),
			conversion.FormatAmount(sub.Amount, sub.Currency, format),
			updated.RenewalDate.Format("2006-01-02")),
		ReferenceID: sub.SubscriptionID,
		CreatedAt:   now,
	}
	if err := s.notifier.Enqueue(ctx, job); err != nil {
		return fmt.Errorf("failed to enqueue reminder mail: %w", err)
	}

	if err := s.subRepo.MarkRemindersDispatched(ctx, ids, now); err != nil {
		s.LogError(ctx, err, "Failed to mark reminders dispatched", slog.String("subscription_id", sub.SubscriptionID))
	}
	s.LogInfo(ctx, "Subscription reminder sent",
		slog.String("subscription_id", sub.SubscriptionID),
		slog.Time("cycle", cycle),
		slog.Int("recipients", len(emails)))
	return nil
}

// recipients returns the distinct member emails of an organization.
func (s *subscriptionService) recipients(ctx context.Context, organizationID string) ([]string, error) {
	members, err := s.orgReader.ListMembers(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(members))
	emails := make([]string, 0, len(members))
	for _, m := range members {
		if m.Email == "" || seen[m.Email] {
			continue
		}
		seen[m.Email] = true
		emails = append(emails, m.Email)
	}
	return emails, nil
}

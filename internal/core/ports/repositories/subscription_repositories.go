package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
)

// SubscriptionMutation changes a locked subscription in place. When changed is
// false the transaction is rolled back and nothing is written. Reminders are
// inserted with the subscription update; duplicates per (subscription, cycle,
// recipient) are ignored.
type SubscriptionMutation func(sub *domain.Subscription) (reminders []domain.SubscriptionReminder, changed bool, err error)

// SubscriptionReader defines read operations for subscriptions
type SubscriptionReader interface {
	// FindSubscriptionByID retrieves a subscription scoped to its organization.
	FindSubscriptionByID(ctx context.Context, organizationID, subscriptionID string) (*domain.Subscription, error)

	// ListSubscriptions retrieves all subscriptions of an organization.
	ListSubscriptions(ctx context.Context, organizationID string) ([]domain.Subscription, error)

	// ListDueSubscriptions retrieves ACTIVE subscriptions whose next reminder date is at or before now.
	ListDueSubscriptions(ctx context.Context, now time.Time) ([]domain.Subscription, error)
}

// SubscriptionWriter defines write operations for subscriptions
type SubscriptionWriter interface {
	// SaveSubscription persists a new subscription.
	SaveSubscription(ctx context.Context, sub domain.Subscription) error

	// UpdateSubscriptionLocked locks the subscription row, applies fn and
	// persists the result. It returns the stored subscription and the reminders
	// that were actually inserted.
	UpdateSubscriptionLocked(ctx context.Context, organizationID, subscriptionID string, fn SubscriptionMutation) (*domain.Subscription, []domain.SubscriptionReminder, error)

	// MarkRemindersDispatched stamps dispatched_at on the given reminders.
	MarkRemindersDispatched(ctx context.Context, reminderIDs []string, at time.Time) error
}

// SubscriptionRepositoryFacade combines all subscription repository interfaces
type SubscriptionRepositoryFacade interface {
	SubscriptionReader
	SubscriptionWriter
}

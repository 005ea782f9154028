package services

import (
	"context"
	"time"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/SscSPs/expense_ledger/internal/dto"
)

// SubscriptionWriterSvc defines write operations for subscriptions
type SubscriptionWriterSvc interface {
	CreateSubscription(ctx context.Context, organizationID string, req dto.CreateSubscriptionRequest, userID string) (*domain.Subscription, error)
	UpdateSubscriptionStatus(ctx context.Context, organizationID, subscriptionID string, status domain.SubscriptionStatus, userID string) (*domain.Subscription, error)
}

// SubscriptionReaderSvc defines read operations for subscriptions
type SubscriptionReaderSvc interface {
	GetSubscription(ctx context.Context, organizationID, subscriptionID, userID string) (*domain.Subscription, error)
	ListSubscriptions(ctx context.Context, organizationID, userID string) ([]domain.Subscription, error)
}

// SubscriptionReminderJob is the batch entry point run by the external scheduler.
type SubscriptionReminderJob interface {
	// ProcessSubscriptionReminders emits reminders for every due subscription
	// and returns how many reminders were sent.
	ProcessSubscriptionReminders(ctx context.Context, now time.Time) (int, error)
}

// SubscriptionSvcFacade combines all subscription service interfaces
type SubscriptionSvcFacade interface {
	SubscriptionWriterSvc
	SubscriptionReaderSvc
	SubscriptionReminderJob
}

package dto

import (
	"time"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
)

// CreateSubscriptionRequest defines the body for registering a recurring charge.
type CreateSubscriptionRequest struct {
	ExpenseAccountID   string                  `json:"expenseAccountID" binding:"required"`
	Name               string                  `json:"name" binding:"required,max=200"`
	Category           string                  `json:"category" binding:"required,max=100"`
	RenewalDate        time.Time               `json:"renewalDate" binding:"required"`
	RenewalFrequency   domain.RenewalFrequency `json:"renewalFrequency" binding:"required,oneof=WEEKLY MONTHLY YEARLY CUSTOM"`
	CustomIntervalDays int                     `json:"customIntervalDays" binding:"omitempty,min=1,max=3660"`
	ReminderDays       int                     `json:"reminderDays" binding:"min=0,max=365"`
	MoneyInputRequest
}

// UpdateSubscriptionStatusRequest pauses, resumes or cancels a subscription.
type UpdateSubscriptionStatusRequest struct {
	Status domain.SubscriptionStatus `json:"status" binding:"required,oneof=ACTIVE PAUSED CANCELLED INACTIVE"`
}

// SubscriptionResponse defines the data returned for a subscription.
type SubscriptionResponse struct {
	SubscriptionID     string                    `json:"subscriptionID"`
	ExpenseAccountID   string                    `json:"expenseAccountID"`
	Name               string                    `json:"name"`
	Category           string                    `json:"category"`
	MoneyEntryResponse                           // recurring charge
	RenewalDate        time.Time                 `json:"renewalDate"`
	RenewalFrequency   domain.RenewalFrequency   `json:"renewalFrequency"`
	CustomIntervalDays int                       `json:"customIntervalDays,omitempty"`
	ReminderDays       int                       `json:"reminderDays"`
	NextReminderDate   time.Time                 `json:"nextReminderDate"`
	LastReminderDate   *time.Time                `json:"lastReminderDate,omitempty"`
	Status             domain.SubscriptionStatus `json:"status"`
}

// ToSubscriptionResponse converts a domain.Subscription to SubscriptionResponse DTO.
func ToSubscriptionResponse(s domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		SubscriptionID:     s.SubscriptionID,
		ExpenseAccountID:   s.ExpenseAccountID,
		Name:               s.Name,
		Category:           s.Category,
		MoneyEntryResponse: ToMoneyEntryResponse(s.MoneyEntry),
		RenewalDate:        s.RenewalDate,
		RenewalFrequency:   s.RenewalFrequency,
		CustomIntervalDays: s.CustomIntervalDays,
		ReminderDays:       s.ReminderDays,
		NextReminderDate:   s.NextReminderDate,
		LastReminderDate:   s.LastReminderDate,
		Status:             s.Status,
	}
}

// ToSubscriptionResponses converts a slice of domain.Subscription.
func ToSubscriptionResponses(subs []domain.Subscription) []SubscriptionResponse {
	responses := make([]SubscriptionResponse, len(subs))
	for i, s := range subs {
		responses[i] = ToSubscriptionResponse(s)
	}
	return responses
}

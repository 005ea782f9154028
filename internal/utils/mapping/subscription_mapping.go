package mapping

import (
	"time"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/SscSPs/expense_ledger/internal/models"
)

// ToModelSubscription converts a domain Subscription to a model Subscription
func ToModelSubscription(d domain.Subscription) models.Subscription {
	return models.Subscription{
		SubscriptionID:     d.SubscriptionID,
		OrganizationID:     d.OrganizationID,
		ExpenseAccountID:   d.ExpenseAccountID,
		Name:               d.Name,
		Category:           d.Category,
		RenewalDate:        d.RenewalDate,
		RenewalFrequency:   string(d.RenewalFrequency),
		CustomIntervalDays: d.CustomIntervalDays,
		AnchorDay:          d.AnchorDay,
		ReminderDays:       d.ReminderDays,
		NextReminderDate:   d.NextReminderDate,
		LastReminderDate:   d.LastReminderDate,
		LastReminderCycle:  d.LastReminderCycle,
		Status:             string(d.Status),
		MoneyEntry:         ToModelMoneyEntry(d.MoneyEntry),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSubscription converts a model Subscription to a domain Subscription
func ToDomainSubscription(m models.Subscription) domain.Subscription {
	return domain.Subscription{
		SubscriptionID:     m.SubscriptionID,
		OrganizationID:     m.OrganizationID,
		ExpenseAccountID:   m.ExpenseAccountID,
		Name:               m.Name,
		Category:           m.Category,
		MoneyEntry:         ToDomainMoneyEntry(m.MoneyEntry),
		RenewalDate:        domain.StoredCalendarDate(m.RenewalDate),
		RenewalFrequency:   domain.RenewalFrequency(m.RenewalFrequency),
		CustomIntervalDays: m.CustomIntervalDays,
		AnchorDay:          m.AnchorDay,
		ReminderDays:       m.ReminderDays,
		NextReminderDate:   domain.StoredCalendarDate(m.NextReminderDate),
		LastReminderDate:   m.LastReminderDate,
		LastReminderCycle:  storedCycle(m.LastReminderCycle),
		Status:             domain.SubscriptionStatus(m.Status),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

func storedCycle(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cycle := domain.StoredCalendarDate(*t)
	return &cycle
}

// ToModelSubscriptionReminder converts a domain SubscriptionReminder to a model SubscriptionReminder
func ToModelSubscriptionReminder(d domain.SubscriptionReminder) models.SubscriptionReminder {
	return models.SubscriptionReminder{
		ReminderID:     d.ReminderID,
		SubscriptionID: d.SubscriptionID,
		OrganizationID: d.OrganizationID,
		CycleDate:      d.CycleDate,
		RecipientEmail: d.RecipientEmail,
		CreatedAt:      d.CreatedAt,
		DispatchedAt:   d.DispatchedAt,
	}
}

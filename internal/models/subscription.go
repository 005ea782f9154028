package models

import "time"

// Subscription is the subscriptions table row.
type Subscription struct {
	SubscriptionID     string     `db:"subscription_id"`
	OrganizationID     string     `db:"organization_id"`
	ExpenseAccountID   string     `db:"expense_account_id"`
	Name               string     `db:"name"`
	Category           string     `db:"category"`
	RenewalDate        time.Time  `db:"renewal_date"`
	RenewalFrequency   string     `db:"renewal_frequency"`
	CustomIntervalDays int        `db:"custom_interval_days"`
	AnchorDay          int        `db:"anchor_day"`
	ReminderDays       int        `db:"reminder_days"`
	NextReminderDate   time.Time  `db:"next_reminder_date"`
	LastReminderDate   *time.Time `db:"last_reminder_date"`
	LastReminderCycle  *time.Time `db:"last_reminder_cycle"`
	Status             string     `db:"status"`
	MoneyEntry
	AuditFields
}

// SubscriptionReminder is the subscription_reminders table row. The
// (subscription_id, cycle_date, recipient_email) triple is unique.
type SubscriptionReminder struct {
	ReminderID     string     `db:"reminder_id"`
	SubscriptionID string     `db:"subscription_id"`
	OrganizationID string     `db:"organization_id"`
	CycleDate      time.Time  `db:"cycle_date"`
	RecipientEmail string     `db:"recipient_email"`
	CreatedAt      time.Time  `db:"created_at"`
	DispatchedAt   *time.Time `db:"dispatched_at"`
}

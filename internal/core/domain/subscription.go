package domain

import (
	"fmt"
	"time"
)

// RenewalFrequency defines how far a subscription's renewal date moves per cycle.
type RenewalFrequency string

const (
	FrequencyWeekly  RenewalFrequency = "WEEKLY"
	FrequencyMonthly RenewalFrequency = "MONTHLY"
	FrequencyYearly  RenewalFrequency = "YEARLY"
	FrequencyCustom  RenewalFrequency = "CUSTOM"
)

// SubscriptionStatus indicates whether reminders are processed for a subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionPaused    SubscriptionStatus = "PAUSED"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionInactive  SubscriptionStatus = "INACTIVE"
)

// Subscription is a recurring obligation billed to an expense account.
type Subscription struct {
	SubscriptionID     string             `json:"subscriptionID"`
	OrganizationID     string             `json:"organizationID"`
	ExpenseAccountID   string             `json:"expenseAccountID"`
	Name               string             `json:"name"`
	Category           string             `json:"category"`
	MoneyEntry                            // recurring charge as entered
	RenewalDate        time.Time          `json:"renewalDate"`
	RenewalFrequency   RenewalFrequency   `json:"renewalFrequency"`
	CustomIntervalDays int                `json:"customIntervalDays,omitempty"`
	AnchorDay          int                `json:"anchorDay"` // day of month monthly/yearly cycles return to
	ReminderDays       int                `json:"reminderDays"`
	NextReminderDate   time.Time          `json:"nextReminderDate"`
	LastReminderDate   *time.Time         `json:"lastReminderDate,omitempty"`
	LastReminderCycle  *time.Time         `json:"lastReminderCycle,omitempty"` // renewal date the last reminder was for
	Status             SubscriptionStatus `json:"status"`
	AuditFields
}

// SubscriptionReminder is one emitted reminder for one recipient and cycle.
type SubscriptionReminder struct {
	ReminderID     string     `json:"reminderID"`
	SubscriptionID string     `json:"subscriptionID"`
	OrganizationID string     `json:"organizationID"`
	CycleDate      time.Time  `json:"cycleDate"`
	RecipientEmail string     `json:"recipientEmail"`
	CreatedAt      time.Time  `json:"createdAt"`
	DispatchedAt   *time.Time `json:"dispatchedAt,omitempty"`
}

// ValidateSchedule checks frequency, custom interval and lead time.
func (s *Subscription) ValidateSchedule() error {
	switch s.RenewalFrequency {
	case FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		if s.CustomIntervalDays != 0 {
			return fmt.Errorf("custom interval is only allowed for CUSTOM frequency")
		}
	case FrequencyCustom:
		if s.CustomIntervalDays <= 0 {
			return fmt.Errorf("custom interval days must be positive for CUSTOM frequency")
		}
	default:
		return fmt.Errorf("unknown renewal frequency '%s'", s.RenewalFrequency)
	}
	if s.ReminderDays < 0 {
		return fmt.Errorf("reminder days cannot be negative")
	}
	if s.RenewalDate.IsZero() {
		return fmt.Errorf("renewal date is required")
	}
	return nil
}

// NextRenewal returns the renewal date one cycle after from.
func (s *Subscription) NextRenewal(from time.Time) time.Time {
	from = StoredCalendarDate(from)
	anchor := s.AnchorDay
	if anchor <= 0 {
		anchor = from.Day()
	}
	switch s.RenewalFrequency {
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return AddMonthsClamped(from, 1, anchor)
	case FrequencyYearly:
		return AddMonthsClamped(from, 12, anchor)
	case FrequencyCustom:
		return from.AddDate(0, 0, s.CustomIntervalDays)
	}
	return from
}

// ReminderDateFor returns when the reminder for a renewal on renewal is due.
func (s *Subscription) ReminderDateFor(renewal time.Time) time.Time {
	return StoredCalendarDate(renewal).AddDate(0, 0, -s.ReminderDays)
}

// IsReminderDue reports whether a reminder for the current cycle should be
// emitted at now.
func (s *Subscription) IsReminderDue(now time.Time) bool {
	if s.Status != SubscriptionActive {
		return false
	}
	if s.ReminderDateFor(s.RenewalDate).After(now) {
		return false
	}
	return s.LastReminderCycle == nil || !s.LastReminderCycle.Equal(s.RenewalDate)
}

// AdvanceAfterReminder marks the current cycle as reminded and moves the
// renewal date forward. Cycles that already lie in the past are skipped so the
// new renewal date is always after now. It returns the reminded cycle date.
func (s *Subscription) AdvanceAfterReminder(now time.Time) time.Time {
	cycle := StoredCalendarDate(s.RenewalDate)
	next := s.NextRenewal(cycle)
	for !next.After(now) {
		following := s.NextRenewal(next)
		if !following.After(next) {
			break
		}
		next = following
	}
	remindedAt := now
	s.LastReminderCycle = &cycle
	s.LastReminderDate = &remindedAt
	s.RenewalDate = next
	s.NextReminderDate = s.ReminderDateFor(next)
	return cycle
}

// CalendarDate returns the date t falls on in its own zone, as UTC midnight.
// Renewal dates are calendar dates and are always held in this form.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StoredCalendarDate recovers a calendar date that was written as UTC
// midnight, whatever zone it was read back in.
func StoredCalendarDate(t time.Time) time.Time {
	return CalendarDate(t.UTC())
}

// AddMonthsClamped moves t by months calendar months, landing on anchorDay or
// the last day of the target month when it is shorter.
func AddMonthsClamped(t time.Time, months int, anchorDay int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month()+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	day := anchorDay
	if last := daysIn(firstOfTarget.Year(), firstOfTarget.Month(), t.Location()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

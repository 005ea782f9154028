package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSubscription_NextRenewal(t *testing.T) {
	tests := []struct {
		name string
		sub  domain.Subscription
		from time.Time
		want time.Time
	}{
		{
			name: "monthly clamps to end of february",
			sub:  domain.Subscription{RenewalFrequency: domain.FrequencyMonthly, AnchorDay: 31},
			from: date(2026, time.January, 31),
			want: date(2026, time.February, 28),
		},
		{
			name: "monthly returns to anchor day after short month",
			sub:  domain.Subscription{RenewalFrequency: domain.FrequencyMonthly, AnchorDay: 31},
			from: date(2026, time.February, 28),
			want: date(2026, time.March, 31),
		},
		{
			name: "monthly without anchor uses current day",
			sub:  domain.Subscription{RenewalFrequency: domain.FrequencyMonthly},
			from: date(2026, time.April, 15),
			want: date(2026, time.May, 15),
		},
		{
			name: "monthly across year end",
			sub:  domain.Subscription{RenewalFrequency: domain.FrequencyMonthly, AnchorDay: 31},
			from: date(2026, time.December, 31),
			want: date(2027, time.January, 31),
		},
		{
			name: "leap year february",
			sub:  domain.Subscription{RenewalFrequency: domain.FrequencyMonthly, AnchorDay: 30},
			from: date(2028, time.January, 30),
			want: date(2028, time.February, 29),
		},
		{
			name: "yearly clamps leap day",
			sub:  domain.Subscription{RenewalFrequency: domain.FrequencyYearly, AnchorDay: 29},
			from: date(2028, time.February, 29),
			want: date(2029, time.February, 28),
		},
		{
			name: "weekly adds seven days",
			sub:  domain.Subscription{RenewalFrequency: domain.FrequencyWeekly},
			from: date(2026, time.December, 28),
			want: date(2027, time.January, 4),
		},
		{
			name: "custom adds interval days",
			sub:  domain.Subscription{RenewalFrequency: domain.FrequencyCustom, CustomIntervalDays: 90},
			from: date(2026, time.January, 1),
			want: date(2026, time.April, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sub.NextRenewal(tt.from)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestSubscription_NextRenewal_IgnoresReaderZone(t *testing.T) {
	sub := domain.Subscription{RenewalFrequency: domain.FrequencyMonthly, AnchorDay: 31}
	stored := date(2026, time.January, 31)

	for _, zone := range []*time.Location{
		time.UTC,
		time.FixedZone("EST", -5*60*60),
		time.FixedZone("JST", 9*60*60),
	} {
		t.Run(zone.String(), func(t *testing.T) {
			got := sub.NextRenewal(stored.In(zone))
			assert.Equal(t, date(2026, time.February, 28), got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestCalendarDate_KeepsClientDate(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)

	assert.Equal(t, date(2026, time.January, 31), domain.CalendarDate(time.Date(2026, time.January, 31, 0, 0, 0, 0, est)))
	assert.Equal(t, date(2026, time.January, 31), domain.CalendarDate(time.Date(2026, time.January, 31, 23, 30, 0, 0, time.UTC)))
	assert.Equal(t, date(2026, time.January, 31), domain.StoredCalendarDate(date(2026, time.January, 31).In(est)))
}

func TestSubscription_IsReminderDue(t *testing.T) {
	renewal := date(2026, time.February, 10)
	sub := domain.Subscription{
		RenewalDate:      renewal,
		RenewalFrequency: domain.FrequencyMonthly,
		ReminderDays:     3,
		Status:           domain.SubscriptionActive,
	}

	assert.False(t, sub.IsReminderDue(date(2026, time.February, 6)), "before lead time")
	assert.True(t, sub.IsReminderDue(date(2026, time.February, 7)), "on lead time boundary")

	reminded := renewal
	sub.LastReminderCycle = &reminded
	assert.False(t, sub.IsReminderDue(date(2026, time.February, 8)), "cycle already reminded")

	sub.LastReminderCycle = nil
	sub.Status = domain.SubscriptionPaused
	assert.False(t, sub.IsReminderDue(date(2026, time.February, 8)), "paused")
}

func TestSubscription_AdvanceAfterReminder(t *testing.T) {
	sub := domain.Subscription{
		RenewalDate:      date(2026, time.January, 31),
		RenewalFrequency: domain.FrequencyMonthly,
		AnchorDay:        31,
		ReminderDays:     5,
		Status:           domain.SubscriptionActive,
	}
	now := date(2026, time.January, 27)

	cycle := sub.AdvanceAfterReminder(now)

	assert.True(t, cycle.Equal(date(2026, time.January, 31)))
	assert.True(t, sub.RenewalDate.Equal(date(2026, time.February, 28)))
	assert.True(t, sub.NextReminderDate.Equal(date(2026, time.February, 23)))
	require.NotNil(t, sub.LastReminderCycle)
	assert.True(t, sub.LastReminderCycle.Equal(cycle))
	require.NotNil(t, sub.LastReminderDate)
	assert.True(t, sub.LastReminderDate.Equal(now))
	assert.False(t, sub.IsReminderDue(now), "same cycle must not be due twice")
}

func TestSubscription_AdvanceAfterReminder_SkipsMissedCycles(t *testing.T) {
	sub := domain.Subscription{
		RenewalDate:      date(2026, time.January, 5),
		RenewalFrequency: domain.FrequencyWeekly,
		Status:           domain.SubscriptionActive,
	}
	now := date(2026, time.February, 1)

	sub.AdvanceAfterReminder(now)

	assert.True(t, sub.RenewalDate.Equal(date(2026, time.February, 2)))
}

func TestSubscription_ValidateSchedule(t *testing.T) {
	tests := []struct {
		name    string
		sub     domain.Subscription
		wantErr string
	}{
		{
			name: "valid monthly",
			sub:  domain.Subscription{RenewalFrequency: domain.FrequencyMonthly, RenewalDate: date(2026, 1, 1)},
		},
		{
			name:    "custom without interval",
			sub:     domain.Subscription{RenewalFrequency: domain.FrequencyCustom, RenewalDate: date(2026, 1, 1)},
			wantErr: "custom interval days must be positive",
		},
		{
			name:    "interval on non custom",
			sub:     domain.Subscription{RenewalFrequency: domain.FrequencyWeekly, CustomIntervalDays: 3, RenewalDate: date(2026, 1, 1)},
			wantErr: "only allowed for CUSTOM",
		},
		{
			name:    "unknown frequency",
			sub:     domain.Subscription{RenewalFrequency: "DAILY", RenewalDate: date(2026, 1, 1)},
			wantErr: "unknown renewal frequency",
		},
		{
			name:    "negative reminder days",
			sub:     domain.Subscription{RenewalFrequency: domain.FrequencyYearly, ReminderDays: -1, RenewalDate: date(2026, 1, 1)},
			wantErr: "cannot be negative",
		},
		{
			name:    "missing renewal date",
			sub:     domain.Subscription{RenewalFrequency: domain.FrequencyYearly},
			wantErr: "renewal date is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sub.ValidateSchedule()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/SscSPs/expense_ledger/internal/models"
	"github.com/SscSPs/expense_ledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyEntry_BaseCurrencyStoresNullRate(t *testing.T) {
	entry := domain.MoneyEntry{Amount: decimal.RequireFromString("10"), Currency: "USD", BaseCurrencyAmount: decimal.RequireFromString("10")}

	m := mapping.ToModelMoneyEntry(entry)
	assert.False(t, m.ConversionRate.Valid)

	back := mapping.ToDomainMoneyEntry(m)
	assert.Nil(t, back.ConversionRate)
	assert.False(t, back.IsConverted())
}

func TestMoneyEntry_ConvertedKeepsRate(t *testing.T) {
	rate := decimal.RequireFromString("1.25")
	entry := domain.MoneyEntry{Amount: decimal.RequireFromString("100"), Currency: "EUR", ConversionRate: &rate, BaseCurrencyAmount: decimal.RequireFromString("125")}

	back := mapping.ToDomainMoneyEntry(mapping.ToModelMoneyEntry(entry))

	require.NotNil(t, back.ConversionRate)
	assert.True(t, back.ConversionRate.Equal(rate))
	assert.NoError(t, back.CheckInvariant("USD"))
}

func TestExpenseReport_BreakdownsSurviveJSONB(t *testing.T) {
	report := domain.ExpenseReport{
		ReportID:       "r-1",
		Kind:           domain.ReportMonthly,
		Period:         domain.PreviousCalendarMonth(time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)),
		ReportCurrency: "USD",
		TotalExpenses:  decimal.RequireFromString("250.00"),
		CategoryBreakdown: []domain.CategoryTotal{
			{Category: "Travel", Total: decimal.RequireFromString("200.00"), Count: 2},
		},
	}

	m, err := mapping.ToModelExpenseReport(report)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(m.AccountBreakdown))

	back, err := mapping.ToDomainExpenseReport(m)
	require.NoError(t, err)
	require.Len(t, back.CategoryBreakdown, 1)
	assert.Equal(t, "Travel", back.CategoryBreakdown[0].Category)
	assert.True(t, back.CategoryBreakdown[0].Total.Equal(decimal.RequireFromString("200")))
	assert.Empty(t, back.AccountBreakdown)
	assert.Equal(t, report.Period, back.Period)
}

func TestSubscription_RenewalDatesLoadAsUTCDates(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	renewal := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC).In(est)
	cycle := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC).In(est)

	sub := mapping.ToDomainSubscription(models.Subscription{
		RenewalFrequency:  string(domain.FrequencyMonthly),
		AnchorDay:         31,
		RenewalDate:       renewal,
		NextReminderDate:  time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC).In(est),
		LastReminderCycle: &cycle,
	})

	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), sub.RenewalDate)
	assert.Equal(t, time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC), sub.NextReminderDate)
	require.NotNil(t, sub.LastReminderCycle)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), *sub.LastReminderCycle)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), sub.NextRenewal(sub.RenewalDate))
}

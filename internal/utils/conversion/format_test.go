package conversion_test

import (
	"testing"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/SscSPs/expense_ledger/internal/utils/conversion"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		format   domain.RateFormatting
		want     string
	}{
		{name: "symbol before", amount: "1234567.891", currency: "USD", format: domain.RateFormatting{Symbol: "$"}, want: "$1,234,567.89"},
		{
			name:     "european layout",
			amount:   "1234.5",
			currency: "EUR",
			format:   domain.RateFormatting{Symbol: "€", SymbolPosition: domain.SymbolAfter, ThousandsSeparator: ".", DecimalSeparator: ","},
			want:     "1.234,50 €",
		},
		{name: "no metadata", amount: "12", currency: "JPY", want: "12.00 JPY"},
		{name: "negative", amount: "-5", currency: "USD", format: domain.RateFormatting{Symbol: "$"}, want: "-$5.00"},
		{name: "exact thousands", amount: "123456", currency: "GBP", format: domain.RateFormatting{Symbol: "£"}, want: "£123,456.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, conversion.FormatAmount(d(tt.amount), tt.currency, tt.format))
		})
	}
}

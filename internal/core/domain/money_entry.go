package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateType selects where the input->base hop rate comes from.
type RateType string

const (
	RateTypeTable  RateType = "TABLE"
	RateTypeCustom RateType = "CUSTOM"
)

// MoneyInput is an amount as the user typed it.
type MoneyInput struct {
	Amount     decimal.Decimal  `json:"amount"`
	Currency   string           `json:"currency"`
	RateType   RateType         `json:"rateType"`
	CustomRate *decimal.Decimal `json:"customRate,omitempty"` // input->base multiplier, CUSTOM only
}

// Validate checks the input shape; rate availability is checked at conversion.
func (in MoneyInput) Validate() error {
	if !in.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	if len(in.Currency) != 3 {
		return fmt.Errorf("currency must be a 3 letter code")
	}
	switch in.RateType {
	case RateTypeTable, "":
	case RateTypeCustom:
		if in.CustomRate == nil || !in.CustomRate.IsPositive() {
			return fmt.Errorf("custom rate must be positive when rate type is CUSTOM")
		}
	default:
		return fmt.Errorf("unknown rate type '%s'", in.RateType)
	}
	return nil
}

// MoneyEntry is the persisted shape shared by expenses, subscriptions, loans
// and loan payments. BaseCurrencyAmount is computed once at creation and is
// never recomputed from later rate table edits.
type MoneyEntry struct {
	Amount             decimal.Decimal  `json:"amount"`
	Currency           string           `json:"currency"`
	ConversionRate     *decimal.Decimal `json:"conversionRate,omitempty"` // input->base multiplier
	BaseCurrencyAmount decimal.Decimal  `json:"baseCurrencyAmount"`
}

// IsConverted reports whether the entry was entered in a non-base currency.
func (e MoneyEntry) IsConverted() bool {
	return e.ConversionRate != nil
}

// CheckInvariant verifies the snapshot relation between amount, rate and base amount.
func (e MoneyEntry) CheckInvariant(baseCurrency string) error {
	if e.Currency == baseCurrency {
		if e.ConversionRate != nil {
			return fmt.Errorf("base currency entry must not carry a conversion rate")
		}
		if !e.BaseCurrencyAmount.Equal(e.Amount) {
			return fmt.Errorf("base currency entry amount %s differs from base amount %s", e.Amount, e.BaseCurrencyAmount)
		}
		return nil
	}
	if e.ConversionRate == nil {
		return fmt.Errorf("entry in %s is missing its conversion rate", e.Currency)
	}
	if !e.BaseCurrencyAmount.Equal(e.Amount.Mul(*e.ConversionRate)) {
		return fmt.Errorf("base amount %s does not equal %s * %s", e.BaseCurrencyAmount, e.Amount, e.ConversionRate)
	}
	return nil
}

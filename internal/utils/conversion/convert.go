// Package conversion converts money between currencies through an
// organization's base currency. Rates are only ever stored from the base
// currency outward, so every non-base pair is converted in two hops.
package conversion

import (
	"fmt"

	"github.com/SscSPs/expense_ledger/internal/apperrors"
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerScale is the number of fractional digits kept for displayed values and
// stored account-currency balances.
const LedgerScale int32 = 2

// rateScale is the number of fractional digits kept when dividing by a table
// rate, both for hop one of Convert and for an inverted rate snapshot.
const rateScale int32 = 18

// Convert converts amount from one currency to another using table.
// Hop one keeps rateScale fractional digits; the result is never rounded here.
func Convert(amount decimal.Decimal, from, to string, table domain.RateTable) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	base, err := ToBase(amount, from, table)
	if err != nil {
		return decimal.Zero, err
	}
	return FromBase(base, to, table)
}

// ConvertWithExplicitRate converts like Convert but replaces the from->base
// hop with explicitRate, a multiplier expressing how many base units one unit
// of from is worth. The base->to hop still uses the table.
func ConvertWithExplicitRate(amount decimal.Decimal, from, to string, table domain.RateTable, explicitRate decimal.Decimal) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	if from == table.BaseCurrency {
		return FromBase(amount, to, table)
	}
	if !explicitRate.IsPositive() {
		return decimal.Zero, apperrors.NewValidationError("custom rate must be positive")
	}
	return FromBase(amount.Mul(explicitRate), to, table)
}

// ToBase converts amount in currency to the base currency: amount / rate(currency).
func ToBase(amount decimal.Decimal, currency string, table domain.RateTable) (decimal.Decimal, error) {
	if currency == table.BaseCurrency {
		return amount, nil
	}
	rate, err := rateFor(currency, table)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.DivRound(rate, rateScale), nil
}

// FromBase converts a base currency amount to currency: amount * rate(currency).
func FromBase(baseAmount decimal.Decimal, currency string, table domain.RateTable) (decimal.Decimal, error) {
	if currency == table.BaseCurrency {
		return baseAmount, nil
	}
	rate, err := rateFor(currency, table)
	if err != nil {
		return decimal.Zero, err
	}
	return baseAmount.Mul(rate), nil
}

// InverseTableRate returns the currency->base multiplier implied by the table
// rate for currency.
func InverseTableRate(currency string, table domain.RateTable) (decimal.Decimal, error) {
	rate, err := rateFor(currency, table)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(1).DivRound(rate, rateScale), nil
}

func rateFor(currency string, table domain.RateTable) (decimal.Decimal, error) {
	rate, ok := table.Rate(currency)
	if !ok {
		return decimal.Zero, apperrors.NewRateNotFoundError(currency)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: stored rate for %s is not positive", apperrors.ErrValidation, currency)
	}
	return rate, nil
}

// RoundForDisplay rounds a final value for presentation or for storage as a
// ledger balance. Never call it between hops.
func RoundForDisplay(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(LedgerScale)
}

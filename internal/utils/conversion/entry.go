package conversion

import (
	"fmt"

	"github.com/SscSPs/expense_ledger/internal/apperrors"
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Resolution is the outcome of turning user input into a ledger entry.
type Resolution struct {
	Entry           domain.MoneyEntry
	AccountCurrency string
	AccountAmount   decimal.Decimal // full precision
}

// LedgerAmount is the account-currency value rounded once for storage as a
// balance or payment.
func (r Resolution) LedgerAmount() decimal.Decimal {
	return RoundForDisplay(r.AccountAmount)
}

// ResolveEntry snapshots the input->base rate, computes the base currency
// amount and derives the amount in the target account's native currency.
// It is the single path used by expense, subscription, loan and payment creation.
func ResolveEntry(in domain.MoneyInput, accountCurrency string, table domain.RateTable) (Resolution, error) {
	if err := in.Validate(); err != nil {
		return Resolution{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	entry := domain.MoneyEntry{
		Amount:   in.Amount,
		Currency: in.Currency,
	}

	if in.Currency == table.BaseCurrency {
		entry.BaseCurrencyAmount = in.Amount
	} else {
		multiplier, err := hopOneMultiplier(in, table)
		if err != nil {
			return Resolution{}, err
		}
		entry.ConversionRate = &multiplier
		entry.BaseCurrencyAmount = in.Amount.Mul(multiplier)
	}

	accountAmount, err := AmountIn(entry, accountCurrency, table)
	if err != nil {
		return Resolution{}, err
	}

	return Resolution{
		Entry:           entry,
		AccountCurrency: accountCurrency,
		AccountAmount:   accountAmount,
	}, nil
}

// AmountIn expresses a stored entry in target currency from its persisted
// base amount. Entries already in target are returned as entered.
func AmountIn(entry domain.MoneyEntry, target string, table domain.RateTable) (decimal.Decimal, error) {
	if entry.Currency == target {
		return entry.Amount, nil
	}
	return FromBase(entry.BaseCurrencyAmount, target, table)
}

func hopOneMultiplier(in domain.MoneyInput, table domain.RateTable) (decimal.Decimal, error) {
	if in.RateType == domain.RateTypeCustom {
		return *in.CustomRate, nil
	}
	return InverseTableRate(in.Currency, table)
}

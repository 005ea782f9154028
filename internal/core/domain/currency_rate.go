package domain

import (
	"github.com/shopspring/decimal"
)

// SymbolPosition controls where a currency symbol is rendered.
type SymbolPosition string

const (
	SymbolBefore SymbolPosition = "BEFORE"
	SymbolAfter  SymbolPosition = "AFTER"
)

// RateFormatting is optional display metadata for a currency.
type RateFormatting struct {
	Symbol             string         `json:"symbol,omitempty"`
	SymbolPosition     SymbolPosition `json:"symbolPosition,omitempty"`
	ThousandsSeparator string         `json:"thousandsSeparator,omitempty"`
	DecimalSeparator   string         `json:"decimalSeparator,omitempty"`
}

// CurrencyRate states that 1 unit of the organization's base currency equals
// Rate units of ToCurrency. Unique per (OrganizationID, ToCurrency).
type CurrencyRate struct {
	OrganizationID string          `json:"organizationID"`
	ToCurrency     string          `json:"toCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	Formatting     RateFormatting  `json:"formatting"`
	AuditFields
}

// RateTable is the rate snapshot used for one conversion: the base currency
// plus base->currency rates keyed by currency code.
type RateTable struct {
	BaseCurrency string
	Rates        map[string]decimal.Decimal
}

// NewRateTable builds a RateTable from stored rates.
func NewRateTable(baseCurrency string, rates []CurrencyRate) RateTable {
	m := make(map[string]decimal.Decimal, len(rates))
	for _, r := range rates {
		m[r.ToCurrency] = r.Rate
	}
	return RateTable{BaseCurrency: baseCurrency, Rates: m}
}

// Rate returns the base->currency rate.
func (t RateTable) Rate(currency string) (decimal.Decimal, bool) {
	r, ok := t.Rates[currency]
	return r, ok
}

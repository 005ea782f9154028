package models

import "github.com/shopspring/decimal"

// CurrencyRate is the currency_rates table row. One row per organization and currency.
type CurrencyRate struct {
	OrganizationID     string          `db:"organization_id"`
	ToCurrency         string          `db:"to_currency"`
	Rate               decimal.Decimal `db:"rate"`
	Symbol             string          `db:"symbol"`
	SymbolPosition     string          `db:"symbol_position"`
	ThousandsSeparator string          `db:"thousands_separator"`
	DecimalSeparator   string          `db:"decimal_separator"`
	AuditFields
}

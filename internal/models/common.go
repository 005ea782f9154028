package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds the audit columns shared by most tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// MoneyEntry holds the money snapshot columns shared by expenses,
// subscriptions, loans and loan payments.
type MoneyEntry struct {
	Amount             decimal.Decimal     `db:"amount"`
	Currency           string              `db:"currency"`
	ConversionRate     decimal.NullDecimal `db:"conversion_rate"` // NULL for base currency entries
	BaseCurrencyAmount decimal.Decimal     `db:"base_currency_amount"`
}

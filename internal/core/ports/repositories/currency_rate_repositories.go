package repositories

import (
	"context"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
)

// CurrencyRateReader defines read operations for an organization's rate table
type CurrencyRateReader interface {
	// ListRates retrieves every rate of the organization.
	ListRates(ctx context.Context, organizationID string) ([]domain.CurrencyRate, error)

	// FindRate retrieves the rate for one currency.
	FindRate(ctx context.Context, organizationID, currency string) (*domain.CurrencyRate, error)
}

// CurrencyRateWriter defines write operations for an organization's rate table
type CurrencyRateWriter interface {
	// UpsertRate inserts the rate or replaces the existing one for the same currency.
	UpsertRate(ctx context.Context, rate domain.CurrencyRate) error

	// DeleteRate removes the rate for one currency.
	DeleteRate(ctx context.Context, organizationID, currency string) error
}

// CurrencyRateRepositoryFacade combines all currency rate repository interfaces
type CurrencyRateRepositoryFacade interface {
	CurrencyRateReader
	CurrencyRateWriter
}

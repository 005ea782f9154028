package services

import (
	"context"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/SscSPs/expense_ledger/internal/dto"
)

// RateTableProvider supplies the current rate snapshot of an organization.
type RateTableProvider interface {
	// RateTable returns the organization's base currency and its rates.
	RateTable(ctx context.Context, organizationID string) (domain.RateTable, error)

	// Formatting returns display metadata for currency, or the zero value.
	Formatting(ctx context.Context, organizationID, currency string) (domain.RateFormatting, error)
}

// CurrencyRateReaderSvc defines read operations for the rate table
type CurrencyRateReaderSvc interface {
	GetRate(ctx context.Context, organizationID, currency, userID string) (*domain.CurrencyRate, error)
	ListRates(ctx context.Context, organizationID, userID string) ([]domain.CurrencyRate, error)
}

// CurrencyRateWriterSvc defines write operations for the rate table
type CurrencyRateWriterSvc interface {
	UpsertRate(ctx context.Context, organizationID, currency string, req dto.UpsertCurrencyRateRequest, userID string) (*domain.CurrencyRate, error)
	DeleteRate(ctx context.Context, organizationID, currency, userID string) error
}

// ConversionSvc converts amounts with an organization's table
type ConversionSvc interface {
	Convert(ctx context.Context, organizationID string, req dto.ConvertRequest, userID string) (*dto.ConvertResponse, error)
}

// CurrencyRateSvcFacade combines all rate-related service interfaces
type CurrencyRateSvcFacade interface {
	RateTableProvider
	CurrencyRateReaderSvc
	CurrencyRateWriterSvc
	ConversionSvc
}

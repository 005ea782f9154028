package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/expense_ledger/internal/apperrors"
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
	"github.com/SscSPs/expense_ledger/internal/dto"
	"github.com/SscSPs/expense_ledger/internal/utils/conversion"
	"github.com/shopspring/decimal"
)

// currencyRateService manages an organization's rate table and converts with it.
type currencyRateService struct {
	BaseService
	rateRepo  portsrepo.CurrencyRateRepositoryFacade
	orgReader portssvc.OrganizationReaderSvc
}

// CurrencyRateServiceOption is a functional option for configuring the currency rate service
type CurrencyRateServiceOption func(*currencyRateService)

// WithCurrencyRateAuthorizer sets the organization authorizer for the currency rate service.
func WithCurrencyRateAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) CurrencyRateServiceOption {
	return func(s *currencyRateService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewCurrencyRateService creates a new currency rate service.
func NewCurrencyRateService(repo portsrepo.CurrencyRateRepositoryFacade, orgReader portssvc.OrganizationReaderSvc, options ...CurrencyRateServiceOption) portssvc.CurrencyRateSvcFacade {
	svc := &currencyRateService{
		rateRepo:  repo,
		orgReader: orgReader,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CurrencyRateSvcFacade = (*currencyRateService)(nil)

// RateTable returns the organization's base currency and current rates.
func (s *currencyRateService) RateTable(ctx context.Context, organizationID string) (domain.RateTable, error) {
	org, err := s.orgReader.GetOrganization(ctx, organizationID)
	if err != nil {
		return domain.RateTable{}, err
	}
	rates, err := s.rateRepo.ListRates(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load rate table", slog.String("organization_id", organizationID))
		return domain.RateTable{}, fmt.Errorf("failed to load rate table: %w", err)
	}
	return domain.NewRateTable(org.BaseCurrency, rates), nil
}

// Formatting returns display metadata for currency. Currencies without a rate
// row, including the base currency, get the zero value.
func (s *currencyRateService) Formatting(ctx context.Context, organizationID, currency string) (domain.RateFormatting, error) {
	rates, err := s.rateRepo.ListRates(ctx, organizationID)
	if err != nil {
		return domain.RateFormatting{}, fmt.Errorf("failed to load rate formatting: %w", err)
	}
	for _, r := range rates {
		if r.ToCurrency == currency {
			return r.Formatting, nil
		}
	}
	return domain.RateFormatting{}, nil
}

// GetRate retrieves the rate for one currency.
func (s *currencyRateService) GetRate(ctx context.Context, organizationID, currency, userID string) (*domain.CurrencyRate, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.AnyMember...); err != nil {
		return nil, err
	}
	currency = strings.ToUpper(currency)

	rate, err := s.rateRepo.FindRate(ctx, organizationID, currency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no rate for currency %s", apperrors.ErrNotFound, currency)
		}
		s.LogError(ctx, err, "Failed to get currency rate",
			slog.String("organization_id", organizationID),
			slog.String("currency", currency))
		return nil, fmt.Errorf("failed to get currency rate: %w", err)
	}
	return rate, nil
}

// ListRates retrieves the full rate table.
func (s *currencyRateService) ListRates(ctx context.Context, organizationID, userID string) ([]domain.CurrencyRate, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.AnyMember...); err != nil {
		return nil, err
	}
	rates, err := s.rateRepo.ListRates(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currency rates", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list currency rates: %w", err)
	}
	if rates == nil {
		return []domain.CurrencyRate{}, nil
	}
	return rates, nil
}

// UpsertRate creates or replaces the rate for currency. Entries already
// recorded keep their own snapshot and are not affected.
func (s *currencyRateService) UpsertRate(ctx context.Context, organizationID, currency string, req dto.UpsertCurrencyRateRequest, userID string) (*domain.CurrencyRate, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.LedgerManagers...); err != nil {
		return nil, err
	}
	currency = strings.ToUpper(currency)
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: currency must be a 3 letter code", apperrors.ErrValidation)
	}
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}

	org, err := s.orgReader.GetOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if currency == org.BaseCurrency {
		return nil, fmt.Errorf("%w: cannot set a rate for the base currency %s", apperrors.ErrValidation, currency)
	}

	now := time.Now()
	audit := domain.NewAuditFields(userID, now)
	existing, err := s.rateRepo.FindRate(ctx, organizationID, currency)
	switch {
	case err == nil:
		audit = existing.AuditFields
		audit.Touch(userID, now)
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up existing rate", slog.String("currency", currency))
		return nil, fmt.Errorf("failed to look up existing rate: %w", err)
	}

	rate := domain.CurrencyRate{
		OrganizationID: organizationID,
		ToCurrency:     currency,
		Rate:           req.Rate,
		Formatting:     req.Formatting(),
		AuditFields:    audit,
	}
	if err := s.rateRepo.UpsertRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to upsert currency rate",
			slog.String("organization_id", organizationID),
			slog.String("currency", currency))
		return nil, fmt.Errorf("failed to save currency rate: %w", err)
	}

	s.LogInfo(ctx, "Currency rate saved",
		slog.String("organization_id", organizationID),
		slog.String("currency", currency),
		slog.String("rate", rate.Rate.String()))
	return &rate, nil
}

// DeleteRate removes the rate for currency.
func (s *currencyRateService) DeleteRate(ctx context.Context, organizationID, currency, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.LedgerManagers...); err != nil {
		return err
	}
	currency = strings.ToUpper(currency)

	if err := s.rateRepo.DeleteRate(ctx, organizationID, currency); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: no rate for currency %s", apperrors.ErrNotFound, currency)
		}
		s.LogError(ctx, err, "Failed to delete currency rate", slog.String("currency", currency))
		return fmt.Errorf("failed to delete currency rate: %w", err)
	}
	s.LogInfo(ctx, "Currency rate deleted",
		slog.String("organization_id", organizationID),
		slog.String("currency", currency))
	return nil
}

// Convert converts an amount with the organization's table, or with an
// explicit from->base multiplier when one is supplied.
func (s *currencyRateService) Convert(ctx context.Context, organizationID string, req dto.ConvertRequest, userID string) (*dto.ConvertResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.AnyMember...); err != nil {
		return nil, err
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
	}

	table, err := s.RateTable(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	var result decimal.Decimal
	if req.ExplicitRate != nil {
		result, err = conversion.ConvertWithExplicitRate(req.Amount, req.From, req.To, table, *req.ExplicitRate)
	} else {
		result, err = conversion.Convert(req.Amount, req.From, req.To, table)
	}
	if err != nil {
		s.LogWarn(ctx, "Conversion failed",
			slog.String("from", req.From),
			slog.String("to", req.To),
			slog.String("error", err.Error()))
		return nil, err
	}

	format, err := s.Formatting(ctx, organizationID, req.To)
	if err != nil {
		return nil, err
	}

	return &dto.ConvertResponse{
		Amount:    req.Amount,
		From:      req.From,
		To:        req.To,
		Result:    result,
		Rounded:   conversion.RoundForDisplay(result),
		Formatted: conversion.FormatAmount(result, req.To, format),
	}, nil
}

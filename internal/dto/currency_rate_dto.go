package dto

import (
	"time"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertCurrencyRateRequest defines the body for creating or replacing a rate.
// Rate is the number of ToCurrency units one base unit buys.
type UpsertCurrencyRateRequest struct {
	Rate               decimal.Decimal       `json:"rate" swaggertype:"string" example:"0.90"`
	Symbol             string                `json:"symbol" binding:"omitempty,max=8"`
	SymbolPosition     domain.SymbolPosition `json:"symbolPosition" binding:"omitempty,oneof=BEFORE AFTER"`
	ThousandsSeparator string                `json:"thousandsSeparator" binding:"omitempty,max=1"`
	DecimalSeparator   string                `json:"decimalSeparator" binding:"omitempty,max=1"`
}

// Formatting extracts the display metadata of the request.
func (r UpsertCurrencyRateRequest) Formatting() domain.RateFormatting {
	return domain.RateFormatting{
		Symbol:             r.Symbol,
		SymbolPosition:     r.SymbolPosition,
		ThousandsSeparator: r.ThousandsSeparator,
		DecimalSeparator:   r.DecimalSeparator,
	}
}

// CurrencyRateResponse defines the structure for API responses containing a rate.
type CurrencyRateResponse struct {
	OrganizationID string                `json:"organizationID"`
	BaseCurrency   string                `json:"baseCurrency,omitempty"`
	ToCurrency     string                `json:"toCurrency"`
	Rate           decimal.Decimal       `json:"rate"`
	Formatting     domain.RateFormatting `json:"formatting"`
	LastUpdatedAt  time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy  string                `json:"lastUpdatedBy"`
}

// ToCurrencyRateResponse converts a domain.CurrencyRate to CurrencyRateResponse DTO
func ToCurrencyRateResponse(rate domain.CurrencyRate) CurrencyRateResponse {
	return CurrencyRateResponse{
		OrganizationID: rate.OrganizationID,
		ToCurrency:     rate.ToCurrency,
		Rate:           rate.Rate,
		Formatting:     rate.Formatting,
		LastUpdatedAt:  rate.LastUpdatedAt,
		LastUpdatedBy:  rate.LastUpdatedBy,
	}
}

// ToListCurrencyRateResponse converts a slice of rates to CurrencyRateResponse DTOs.
func ToListCurrencyRateResponse(rates []domain.CurrencyRate) []CurrencyRateResponse {
	responses := make([]CurrencyRateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = ToCurrencyRateResponse(rate)
	}
	return responses
}

// ConvertRequest asks for an amount to be converted with the organization's table,
// or with an explicit from->base multiplier.
type ConvertRequest struct {
	Amount       decimal.Decimal  `json:"amount" swaggertype:"string" example:"100"`
	From         string           `json:"from" binding:"required,currency_code" example:"USD"`
	To           string           `json:"to" binding:"required,currency_code" example:"EUR"`
	ExplicitRate *decimal.Decimal `json:"explicitRate,omitempty" swaggertype:"string"`
}

// ConvertResponse carries the full-precision result and its display forms.
type ConvertResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Result    decimal.Decimal `json:"result"`
	Rounded   decimal.Decimal `json:"rounded"`
	Formatted string          `json:"formatted"`
}

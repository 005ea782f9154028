package dto

import (
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyInputRequest is the amount block shared by every money-entry request.
type MoneyInputRequest struct {
	Amount     decimal.Decimal  `json:"amount" swaggertype:"string" example:"100.00"`
	Currency   string           `json:"currency" binding:"required,currency_code" example:"EUR"`
	RateType   domain.RateType  `json:"rateType" binding:"omitempty,oneof=TABLE CUSTOM" example:"TABLE"`
	CustomRate *decimal.Decimal `json:"customRate,omitempty" swaggertype:"string"` // how many base units one unit of currency is worth
}

// ToMoneyInput converts the request block to its domain form.
func (r MoneyInputRequest) ToMoneyInput() domain.MoneyInput {
	rateType := r.RateType
	if rateType == "" {
		rateType = domain.RateTypeTable
	}
	return domain.MoneyInput{
		Amount:     r.Amount,
		Currency:   r.Currency,
		RateType:   rateType,
		CustomRate: r.CustomRate,
	}
}

// MoneyEntryResponse is the stored snapshot of an entered amount.
type MoneyEntryResponse struct {
	Amount             decimal.Decimal  `json:"amount"`
	Currency           string           `json:"currency"`
	ConversionRate     *decimal.Decimal `json:"conversionRate,omitempty"`
	BaseCurrencyAmount decimal.Decimal  `json:"baseCurrencyAmount"`
}

// ToMoneyEntryResponse converts a domain.MoneyEntry to MoneyEntryResponse DTO.
func ToMoneyEntryResponse(e domain.MoneyEntry) MoneyEntryResponse {
	return MoneyEntryResponse{
		Amount:             e.Amount,
		Currency:           e.Currency,
		ConversionRate:     e.ConversionRate,
		BaseCurrencyAmount: e.BaseCurrencyAmount,
	}
}

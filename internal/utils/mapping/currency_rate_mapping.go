package mapping

import (
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/SscSPs/expense_ledger/internal/models"
)

// ToModelCurrencyRate converts a domain CurrencyRate to a model CurrencyRate
func ToModelCurrencyRate(d domain.CurrencyRate) models.CurrencyRate {
	return models.CurrencyRate{
		OrganizationID:     d.OrganizationID,
		ToCurrency:         d.ToCurrency,
		Rate:               d.Rate,
		Symbol:             d.Formatting.Symbol,
		SymbolPosition:     string(d.Formatting.SymbolPosition),
		ThousandsSeparator: d.Formatting.ThousandsSeparator,
		DecimalSeparator:   d.Formatting.DecimalSeparator,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrencyRate converts a model CurrencyRate to a domain CurrencyRate
func ToDomainCurrencyRate(m models.CurrencyRate) domain.CurrencyRate {
	return domain.CurrencyRate{
		OrganizationID: m.OrganizationID,
		ToCurrency:     m.ToCurrency,
		Rate:           m.Rate,
		Formatting: domain.RateFormatting{
			Symbol:             m.Symbol,
			SymbolPosition:     domain.SymbolPosition(m.SymbolPosition),
			ThousandsSeparator: m.ThousandsSeparator,
			DecimalSeparator:   m.DecimalSeparator,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

package mapping

import (
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/SscSPs/expense_ledger/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelMoneyEntry converts a domain MoneyEntry to its column form.
// A nil conversion rate is stored as NULL.
func ToModelMoneyEntry(d domain.MoneyEntry) models.MoneyEntry {
	m := models.MoneyEntry{
		Amount:             d.Amount,
		Currency:           d.Currency,
		BaseCurrencyAmount: d.BaseCurrencyAmount,
	}
	if d.ConversionRate != nil {
		m.ConversionRate = decimal.NewNullDecimal(*d.ConversionRate)
	}
	return m
}

// ToDomainMoneyEntry converts the column form back to a domain MoneyEntry.
func ToDomainMoneyEntry(m models.MoneyEntry) domain.MoneyEntry {
	d := domain.MoneyEntry{
		Amount:             m.Amount,
		Currency:           m.Currency,
		BaseCurrencyAmount: m.BaseCurrencyAmount,
	}
	if m.ConversionRate.Valid {
		rate := m.ConversionRate.Decimal
		d.ConversionRate = &rate
	}
	return d
}

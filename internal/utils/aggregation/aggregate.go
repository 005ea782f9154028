// Package aggregation sums stored expenses into report totals. Every expense
// contributes through its persisted base currency amount, so results do not
// depend on rate edits made after the expense was recorded, except for the
// final base->target hop which uses the table passed in.
package aggregation

import (
	"fmt"
	"sort"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/SscSPs/expense_ledger/internal/utils/conversion"
	"github.com/shopspring/decimal"
)

// Totals is the outcome of one aggregation run.
type Totals struct {
	Total             decimal.Decimal
	CategoryBreakdown []domain.CategoryTotal
	AccountBreakdown  []domain.AccountTotal
}

// Aggregate totals expenses in reportCurrency, breaks them down by category in
// reportCurrency and by account in each account's native currency.
// Sums keep full precision; each published figure is rounded once.
func Aggregate(expenses []domain.Expense, accounts map[string]domain.ExpenseAccount, reportCurrency string, table domain.RateTable) (Totals, error) {
	total := decimal.Zero
	byCategory := make(map[string]*domain.CategoryTotal)
	byAccount := make(map[string]*domain.AccountTotal)

	for _, e := range expenses {
		inReport, err := conversion.AmountIn(e.MoneyEntry, reportCurrency, table)
		if err != nil {
			return Totals{}, fmt.Errorf("failed to convert expense %s to %s: %w", e.ExpenseID, reportCurrency, err)
		}
		total = total.Add(inReport)

		ct, ok := byCategory[e.Category]
		if !ok {
			ct = &domain.CategoryTotal{Category: e.Category, Total: decimal.Zero}
			byCategory[e.Category] = ct
		}
		ct.Total = ct.Total.Add(inReport)
		ct.Count++

		acc, ok := accounts[e.ExpenseAccountID]
		if !ok {
			return Totals{}, fmt.Errorf("expense %s references unknown account %s", e.ExpenseID, e.ExpenseAccountID)
		}
		native, err := conversion.AmountIn(e.MoneyEntry, acc.Currency, table)
		if err != nil {
			return Totals{}, fmt.Errorf("failed to convert expense %s to account currency %s: %w", e.ExpenseID, acc.Currency, err)
		}
		at, ok := byAccount[acc.ExpenseAccountID]
		if !ok {
			at = &domain.AccountTotal{
				ExpenseAccountID: acc.ExpenseAccountID,
				AccountName:      acc.Name,
				Currency:         acc.Currency,
				Total:            decimal.Zero,
			}
			byAccount[acc.ExpenseAccountID] = at
		}
		at.Total = at.Total.Add(native)
		at.Count++
	}

	return Totals{
		Total:             conversion.RoundForDisplay(total),
		CategoryBreakdown: sortedCategories(byCategory),
		AccountBreakdown:  sortedAccounts(byAccount),
	}, nil
}

// SumIn totals expenses in currency without any breakdown.
func SumIn(expenses []domain.Expense, currency string, table domain.RateTable) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range expenses {
		amount, err := conversion.AmountIn(e.MoneyEntry, currency, table)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to convert expense %s to %s: %w", e.ExpenseID, currency, err)
		}
		total = total.Add(amount)
	}
	return conversion.RoundForDisplay(total), nil
}

// CategoriesIn is the category breakdown of expenses in currency.
func CategoriesIn(expenses []domain.Expense, currency string, table domain.RateTable) ([]domain.CategoryTotal, error) {
	byCategory := make(map[string]*domain.CategoryTotal)
	for _, e := range expenses {
		amount, err := conversion.AmountIn(e.MoneyEntry, currency, table)
		if err != nil {
			return nil, fmt.Errorf("failed to convert expense %s to %s: %w", e.ExpenseID, currency, err)
		}
		ct, ok := byCategory[e.Category]
		if !ok {
			ct = &domain.CategoryTotal{Category: e.Category, Total: decimal.Zero}
			byCategory[e.Category] = ct
		}
		ct.Total = ct.Total.Add(amount)
		ct.Count++
	}
	return sortedCategories(byCategory), nil
}

// Within returns the expenses dated inside period.
func Within(expenses []domain.Expense, period domain.Period) []domain.Expense {
	out := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if period.Contains(e.ExpenseDate) {
			out = append(out, e)
		}
	}
	return out
}

func sortedCategories(m map[string]*domain.CategoryTotal) []domain.CategoryTotal {
	out := make([]domain.CategoryTotal, 0, len(m))
	for _, ct := range m {
		c := *ct
		c.Total = conversion.RoundForDisplay(c.Total)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

func sortedAccounts(m map[string]*domain.AccountTotal) []domain.AccountTotal {
	out := make([]domain.AccountTotal, 0, len(m))
	for _, at := range m {
		a := *at
		a.Total = conversion.RoundForDisplay(a.Total)
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AccountName != out[j].AccountName {
			return out[i].AccountName < out[j].AccountName
		}
		return out[i].ExpenseAccountID < out[j].ExpenseAccountID
	})
	return out
}

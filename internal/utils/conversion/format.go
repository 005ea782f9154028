package conversion

import (
	"strings"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatAmount renders amount rounded to two digits using the currency's
// formatting metadata. Missing metadata falls back to the currency code and
// "," / "." separators.
func FormatAmount(amount decimal.Decimal, currency string, f domain.RateFormatting) string {
	thousands := f.ThousandsSeparator
	if thousands == "" {
		thousands = ","
	}
	decimalSep := f.DecimalSeparator
	if decimalSep == "" {
		decimalSep = "."
	}

	fixed := RoundForDisplay(amount).Abs().StringFixed(LedgerScale)
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	number := groupThousands(intPart, thousands) + decimalSep + fracPart

	sign := ""
	if amount.Round(LedgerScale).IsNegative() {
		sign = "-"
	}

	if f.Symbol == "" {
		return sign + number + " " + currency
	}
	if f.SymbolPosition == domain.SymbolAfter {
		return sign + number + " " + f.Symbol
	}
	return sign + f.Symbol + number
}

func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

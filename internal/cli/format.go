// Package cli provides formatting and rendering utilities for terminal
// output and outbound message text.
package cli

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount formats a money value rounded to cents with thousands
// separators. Trailing fraction zeros are trimmed but one fraction digit is
// always kept, matching the ledger bot's historical message format.
// e.g., 500 -> "500.0", 1234.5 -> "1,234.5", 1234.56 -> "1,234.56"
func FormatAmount(d decimal.Decimal) string {
	d = d.Round(2)
	neg := d.IsNegative()

	s := d.Abs().StringFixed(2)
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot+1:]

	if frac[1] == '0' {
		frac = frac[:1]
	}

	out := groupThousands(intPart) + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// FormatMoney formats a money value as "$1,234.56", always two decimals.
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}

	s := d.Abs().Round(2).StringFixed(2)
	dot := strings.IndexByte(s, '.')
	return sign + "$" + groupThousands(s[:dot]) + s[dot:]
}

// FormatRate formats an interest rate percentage, e.g. "6.8%".
func FormatRate(d decimal.Decimal) string {
	return d.String() + "%"
}

// groupThousands inserts comma separators into a bare digit string.
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

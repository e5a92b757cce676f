// Package format provides display formatting for cent amounts and ratios.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Currency returns a cent amount as a dollar string with thousands
// separators (e.g., 123456 -> "$1,234.56", -5 -> "-$0.05").
func Currency(cents int64) string {
	if cents < 0 {
		return "-$" + formatPositiveCents(uint64(-cents))
	}
	return "$" + formatPositiveCents(uint64(cents))
}

// Decimal returns a cent amount as a plain dollar figure with no separators
// (e.g., "-1234.56"), suitable for CSV.
func Decimal(cents int64) string {
	sign := ""
	abs := uint64(cents)
	if cents < 0 {
		sign = "-"
		abs = uint64(-cents)
	}
	return fmt.Sprintf("%s%d.%02d", sign, abs/100, abs%100)
}

// Percentage renders a ratio already expressed in percent with two decimals.
func Percentage(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 2, 64) + "%"
}

func formatPositiveCents(cents uint64) string {
	intPart := strconv.FormatUint(cents/100, 10)
	decPart := fmt.Sprintf("%02d", cents%100)

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}

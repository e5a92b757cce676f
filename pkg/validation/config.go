// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"math"
)

// ValidateMonth checks that a 1-based month placement falls within a horizon
// of totalMonths. Zero is accepted when zeroAllowed, since several fields
// treat it as "unset".
func ValidateMonth(label string, month, totalMonths int, zeroAllowed bool) string {
	if month == 0 && zeroAllowed {
		return ""
	}
	if month < 1 || month > totalMonths {
		return fmt.Sprintf("%s month %d is outside the project horizon (1-%d) and will be dropped",
			label, month, totalMonths)
	}
	return ""
}

// ValidateSpan checks that a spread starting at startMonth for spanMonths
// months stays within a horizon of totalMonths.
func ValidateSpan(label string, startMonth, spanMonths, totalMonths int) string {
	if startMonth <= 0 {
		startMonth = 1
	}
	if spanMonths <= 0 {
		spanMonths = 1
	}
	if spanMonths > totalMonths-startMonth+1 {
		end := startMonth + spanMonths - 1
		if end < startMonth {
			end = math.MaxInt
		}
		return fmt.Sprintf("%s spreads to month %d, beyond the project horizon of %d months; later months will be dropped",
			label, end, totalMonths)
	}
	return ""
}

// ValidateLandPayments checks that a lot's deposit and scheduled payments do
// not exceed its purchase price.
func ValidateLandPayments(label string, purchasePrice, deposit int64, scheduled []int64) string {
	paid := deposit
	for _, amount := range scheduled {
		paid += amount
	}
	if paid > purchasePrice {
		return fmt.Sprintf("%s deposit and scheduled payments (%d) exceed purchase price (%d)",
			label, paid, purchasePrice)
	}
	return ""
}

// ValidateEnum checks that value is one of allowed. Empty values are accepted
// when emptyAllowed.
func ValidateEnum(label, field, value string, allowed []string, emptyAllowed bool) string {
	if value == "" && emptyAllowed {
		return ""
	}
	for _, candidate := range allowed {
		if value == candidate {
			return ""
		}
	}
	return fmt.Sprintf("%s has unknown %s '%s'", label, field, value)
}

// ValidateUniqueNames returns one warning per name that occurs more than once.
func ValidateUniqueNames(kind string, names []string) []string {
	var warnings []string
	seen := make(map[string]int, len(names))
	for _, name := range names {
		seen[name]++
		if seen[name] == 2 {
			warnings = append(warnings, fmt.Sprintf("Duplicate %s name '%s'", kind, name))
		}
	}
	return warnings
}

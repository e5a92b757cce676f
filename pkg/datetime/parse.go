// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/iwvelando/feasibility/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in config files and is also the
	// machine-readable month format.
	DateTimeLayout = constants.DateTimeLayout

	// MonthLabelLayout is the human-readable month label format.
	MonthLabelLayout = constants.MonthLabelLayout
)

// MonthStart truncates t to midnight on the first day of its month so that
// month offsets never overflow into the following month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddMonths returns the first day of the month that is offset months after t.
func AddMonths(t time.Time, offset int) time.Time {
	return MonthStart(t).AddDate(0, offset, 0)
}

// MonthLabel returns the human label (e.g. "Mar 2026") for the month that is
// offset months after start.
func MonthLabel(start time.Time, offset int) string {
	return AddMonths(start, offset).Format(MonthLabelLayout)
}

// MonthKey returns the machine key (e.g. "2026-03") for the month that is
// offset months after start.
func MonthKey(start time.Time, offset int) string {
	return AddMonths(start, offset).Format(DateTimeLayout)
}

// ParseMonth parses a "2006-01" month string. An empty string yields the zero
// time and no error.
func ParseMonth(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateTimeLayout, value)
}

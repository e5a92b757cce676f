package datetime

import (
	"testing"
	"time"
)

func TestMonthLabel(t *testing.T) {
	// The 31st must not skip February when advanced by one month.
	start := time.Date(2026, time.January, 31, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		offset int
		label  string
		key    string
	}{
		{0, "Jan 2026", "2026-01"},
		{1, "Feb 2026", "2026-02"},
		{2, "Mar 2026", "2026-03"},
		{11, "Dec 2026", "2026-12"},
		{12, "Jan 2027", "2027-01"},
	}

	for _, tt := range tests {
		if got := MonthLabel(start, tt.offset); got != tt.label {
			t.Errorf("MonthLabel(offset %d) = %s, expected %s", tt.offset, got, tt.label)
		}
		if got := MonthKey(start, tt.offset); got != tt.key {
			t.Errorf("MonthKey(offset %d) = %s, expected %s", tt.offset, got, tt.key)
		}
	}
}

func TestParseMonth(t *testing.T) {
	empty, err := ParseMonth("")
	if err != nil || !empty.IsZero() {
		t.Errorf("ParseMonth(\"\") = %v, %v; expected zero time and no error", empty, err)
	}

	parsed, err := ParseMonth("2026-03")
	if err != nil {
		t.Fatalf("ParseMonth() error = %v", err)
	}
	if parsed.Year() != 2026 || parsed.Month() != time.March {
		t.Errorf("ParseMonth() = %v", parsed)
	}

	if _, err := ParseMonth("03/2026"); err == nil {
		t.Errorf("expected error for malformed month")
	}
}

package gst

import "testing"

func TestNormalizeToExGst(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		status   Status
		expected int64
	}{
		{"Inclusive exact", 110000, Inclusive, 100000},
		{"Inclusive rounds down", 100000, Inclusive, 90909},
		{"Inclusive rounds up", 100001, Inclusive, 90910},
		{"Inclusive one cent", 1, Inclusive, 1},
		{"Inclusive zero", 0, Inclusive, 0},
		{"Exclusive unchanged", 100000, Exclusive, 100000},
		{"Exempt unchanged", 100000, Exempt, 100000},
		{"Unknown status unchanged", 100000, Status("bogus"), 100000},
		{"Empty status unchanged", 12345, Status(""), 12345},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeToExGst(tt.amount, tt.status)
			if got != tt.expected {
				t.Errorf("NormalizeToExGst(%d, %q) = %d, expected %d", tt.amount, tt.status, got, tt.expected)
			}
		})
	}
}

func TestNormalizeToExGstPassThrough(t *testing.T) {
	amounts := []int64{0, 1, 7, 99, 100, 12345, 987654321, -500}
	for _, amount := range amounts {
		for _, status := range []Status{Exclusive, Exempt} {
			if got := NormalizeToExGst(amount, status); got != amount {
				t.Errorf("NormalizeToExGst(%d, %q) = %d, expected pass-through", amount, status, got)
			}
		}
	}
}

func TestCalculateGst(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		status   Status
		expected int64
	}{
		{"Exclusive", 100000, Exclusive, 10000},
		{"Inclusive basis still taxed", 100000, Inclusive, 10000},
		{"Exempt", 100000, Exempt, 0},
		{"Rounds half away from zero", 5, Exclusive, 1},
		{"Rounds down", 4, Exclusive, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateGst(tt.amount, tt.status)
			if got != tt.expected {
				t.Errorf("CalculateGst(%d, %q) = %d, expected %d", tt.amount, tt.status, got, tt.expected)
			}
		})
	}
}

func TestMarginSchemeGst(t *testing.T) {
	tests := []struct {
		name     string
		sale     int64
		purchase int64
		expected int64
	}{
		{"Positive margin", 1100000, 0, 100000},
		{"Margin rounding", 1000000, 500000, 45455},
		{"No margin", 500000, 500000, 0},
		{"Negative margin clamped", 400000, 500000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarginSchemeGst(tt.sale, tt.purchase)
			if got != tt.expected {
				t.Errorf("MarginSchemeGst(%d, %d) = %d, expected %d", tt.sale, tt.purchase, got, tt.expected)
			}
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{Inclusive, Exclusive, Exempt} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if Status("gst_free").Valid() {
		t.Errorf("expected unknown status to be invalid")
	}
}

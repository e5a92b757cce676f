package feasibility

import (
	"testing"

	"github.com/iwvelando/feasibility/pkg/gst"
	"github.com/shopspring/decimal"
)

func TestResolveLineItemAmount(t *testing.T) {
	ctx := ResolutionContext{
		TotalLandSize:     decimal.NewFromInt(1000),
		LotCount:          2,
		ConstructionTotal: 1000000,
		GrvTotal:          2200000,
	}

	tests := []struct {
		name     string
		item     LineItem
		expected int64
	}{
		{
			name:     "Rate per square metre",
			item:     LineItem{RateType: RatePerM2, Quantity: 1, Rate: 50, GstStatus: gst.Exclusive},
			expected: 50000,
		},
		{
			name:     "Rate per lot",
			item:     LineItem{RateType: RatePerLot, Quantity: 2, Rate: 1000, GstStatus: gst.Exclusive},
			expected: 4000,
		},
		{
			name:     "Percentage of construction",
			item:     LineItem{RateType: RatePercentConstruction, Quantity: 1, Rate: 10, GstStatus: gst.Exclusive},
			expected: 100000,
		},
		{
			name:     "Percentage of GRV",
			item:     LineItem{RateType: RatePercentGRV, Quantity: 1, Rate: 2.5, GstStatus: gst.Exclusive},
			expected: 55000,
		},
		{
			name:     "Fixed amount with zero quantity defaults to one",
			item:     LineItem{RateType: RateAmount, Rate: 12345, GstStatus: gst.Exempt},
			expected: 12345,
		},
		{
			name:     "Inclusive amount normalised",
			item:     LineItem{RateType: RateAmount, Quantity: 1, Rate: 110000, GstStatus: gst.Inclusive},
			expected: 100000,
		},
		{
			name:     "Inclusive percentage normalised after rounding",
			item:     LineItem{RateType: RatePercentConstruction, Quantity: 1, Rate: 5, GstStatus: gst.Inclusive},
			expected: 45455,
		},
		{
			name:     "Unknown rate type falls back to fixed amount",
			item:     LineItem{RateType: RateType("per sqft"), Quantity: 3, Rate: 500, GstStatus: gst.Exclusive},
			expected: 1500,
		},
		{
			name:     "Fractional quantity rounds half away from zero",
			item:     LineItem{RateType: RateAmount, Quantity: 1.5, Rate: 333, GstStatus: gst.Exclusive},
			expected: 500,
		},
		{
			name:     "Quantity multiplies percentage",
			item:     LineItem{RateType: RatePercentGRV, Quantity: 2, Rate: 1, GstStatus: gst.Exclusive},
			expected: 44000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveLineItemAmount(tt.item, ctx)
			if got != tt.expected {
				t.Errorf("ResolveLineItemAmount() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestResolveLineItemAmountEmptyContext(t *testing.T) {
	// A zero context must never panic or divide by zero.
	ctx := NewResolutionContext(Snapshot{})
	if ctx.LotCount != 1 {
		t.Fatalf("expected lot count guard of 1, got %d", ctx.LotCount)
	}

	items := []LineItem{
		{RateType: RatePerM2, Rate: 50},
		{RateType: RatePerLot, Rate: 700},
		{RateType: RatePercentConstruction, Rate: 10},
		{RateType: RatePercentGRV, Rate: 3},
		{RateType: RateAmount, Rate: 0},
	}
	expected := []int64{0, 700, 0, 0, 0}

	for i, item := range items {
		if got := ResolveLineItemAmount(item, ctx); got != expected[i] {
			t.Errorf("item %d (%s) = %d, expected %d", i, item.RateType, got, expected[i])
		}
	}
}

func TestNewResolutionContext(t *testing.T) {
	s := Snapshot{
		LandLots: []LandLot{
			{LandSizeM2: 400},
			{LandSizeM2: 600},
		},
		SalesUnits: []SalesUnit{
			{SalePrice: 1100000, GstStatus: gst.Inclusive},
			{SalePrice: 500000, GstStatus: gst.Exempt},
		},
		LineItems: []LineItem{
			{Section: SectionConstruction, RateType: RateAmount, Rate: 600000},
			{Section: SectionConstruction, RateType: RatePerM2, Rate: 400},
			{Section: SectionConstruction, RateType: RatePercentConstruction, Rate: 10},
			{Section: SectionConstruction, RateType: RatePercentGRV, Rate: 1},
			{Section: SectionProfessionalFees, RateType: RateAmount, Rate: 99999},
		},
	}

	ctx := NewResolutionContext(s)

	if !ctx.TotalLandSize.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("TotalLandSize = %s, expected 1000", ctx.TotalLandSize)
	}
	if ctx.LotCount != 2 {
		t.Errorf("LotCount = %d, expected 2", ctx.LotCount)
	}
	if ctx.GrvTotal != 1600000 {
		t.Errorf("GrvTotal = %d, expected raw GST-inclusive 1600000", ctx.GrvTotal)
	}
	if ctx.ConstructionTotal != 1000000 {
		t.Errorf("ConstructionTotal = %d, expected flat items only 1000000", ctx.ConstructionTotal)
	}
}

func TestTotalLandSizeIsExact(t *testing.T) {
	lots := []LandLot{{LandSizeM2: 0.1}, {LandSizeM2: 0.2}}
	if got := totalLandSize(lots); !got.Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("totalLandSize() = %s, expected 0.3", got)
	}
}

package feasibility

import (
	"github.com/iwvelando/feasibility/pkg/gst"
	"github.com/iwvelando/feasibility/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// ResolutionContext carries the scenario-wide totals that line item rates
// are resolved against.
type ResolutionContext struct {
	TotalLandSize     decimal.Decimal // m2
	LotCount          int64           // never zero
	ConstructionTotal int64           // basis for "% Construction"
	GrvTotal          int64           // basis for "% GRV", GST-inclusive
}

// ResolveLineItemAmount returns the ex-GST amount in cents for one line
// item. The raw formula result is rounded to the cent and then normalised
// using the item's own GST status. Unknown rate types resolve as a fixed
// amount.
func ResolveLineItemAmount(item LineItem, ctx ResolutionContext) int64 {
	quantity := decimal.NewFromFloat(item.EffectiveQuantity())
	rate := decimal.NewFromFloat(item.Rate)

	var raw decimal.Decimal
	switch item.RateType {
	case RatePerM2:
		raw = quantity.Mul(rate).Mul(ctx.TotalLandSize)
	case RatePerLot:
		raw = quantity.Mul(rate).Mul(decimal.NewFromInt(ctx.LotCount))
	case RatePercentConstruction:
		raw = mathutil.Percent(item.Rate).Mul(decimal.NewFromInt(ctx.ConstructionTotal)).Mul(quantity)
	case RatePercentGRV:
		raw = mathutil.Percent(item.Rate).Mul(decimal.NewFromInt(ctx.GrvTotal)).Mul(quantity)
	default:
		raw = quantity.Mul(rate)
	}

	return gst.NormalizeToExGst(mathutil.RoundCents(raw), item.GstStatus)
}

// NewResolutionContext builds the context shared by the summary and the
// cashflow projector: land size, lot count and GRV from the snapshot, and a
// construction total taken from the flat construction items only.
func NewResolutionContext(s Snapshot) ResolutionContext {
	ctx := baseContext(s)
	ctx.ConstructionTotal = flatConstructionTotal(s.LineItems, ctx)
	return ctx
}

// baseContext is the first-pass context; its construction total is zero
// since flat rate types never reference it.
func baseContext(s Snapshot) ResolutionContext {
	return ResolutionContext{
		TotalLandSize: totalLandSize(s.LandLots),
		LotCount:      lotCount(s.LandLots),
		GrvTotal:      totalRevenue(s.SalesUnits),
	}
}

func flatConstructionTotal(items []LineItem, ctx ResolutionContext) int64 {
	var total int64
	for _, item := range items {
		if item.Section != SectionConstruction || item.RateType.IsPercentage() {
			continue
		}
		total += ResolveLineItemAmount(item, ctx)
	}
	return total
}

func totalLandSize(lots []LandLot) decimal.Decimal {
	total := decimal.Zero
	for _, lot := range lots {
		total = total.Add(decimal.NewFromFloat(lot.LandSizeM2))
	}
	return total
}

func lotCount(lots []LandLot) int64 {
	if len(lots) == 0 {
		return 1
	}
	return int64(len(lots))
}

// totalRevenue sums raw sale prices without GST normalisation.
func totalRevenue(units []SalesUnit) int64 {
	var total int64
	for _, unit := range units {
		total += unit.SalePrice
	}
	return total
}

func totalRevenueExGst(units []SalesUnit) int64 {
	var total int64
	for _, unit := range units {
		total += gst.NormalizeToExGst(unit.SalePrice, unit.GstStatus)
	}
	return total
}

func landCost(lots []LandLot) int64 {
	var total int64
	for _, lot := range lots {
		total += lot.PurchasePrice
	}
	return total
}

package feasibility

import (
	"github.com/iwvelando/feasibility/pkg/gst"
	"github.com/iwvelando/feasibility/pkg/loans"
	"github.com/iwvelando/feasibility/pkg/mathutil"
)

// FeasibilitySummary holds the aggregated totals and ratios of a scenario.
// Amounts are cents; ratios are percentages.
type FeasibilitySummary struct {
	TotalLandSize         float64 `json:"totalLandSize"`
	LotCount              int64   `json:"lotCount"`
	UnitCount             int     `json:"unitCount"`
	FlatConstructionTotal int64   `json:"flatConstructionTotal"`

	LandCost          int64 `json:"landCost"`
	AcquisitionCosts  int64 `json:"acquisitionCosts"`
	ProfessionalFees  int64 `json:"professionalFees"`
	ConstructionCosts int64 `json:"constructionCosts"`
	DevFees           int64 `json:"devFees"`
	LandHoldingCosts  int64 `json:"landHoldingCosts"`
	ContingencyCosts  int64 `json:"contingencyCosts"`
	AgentFees         int64 `json:"agentFees"`
	LegalFees         int64 `json:"legalFees"`

	FacilityFees       int64 `json:"facilityFees"`
	LoanFees           int64 `json:"loanFees"`
	EquityFees         int64 `json:"equityFees"`
	TotalDebtInterest  int64 `json:"totalDebtInterest"`
	TotalDebtFacility  int64 `json:"totalDebtFacility"`
	TotalLoanPrincipal int64 `json:"totalLoanPrincipal"`
	TotalEquity        int64 `json:"totalEquity"`

	TotalCostsExFunding int64 `json:"totalCostsExFunding"`
	TotalFundingCosts   int64 `json:"totalFundingCosts"`
	TotalCosts          int64 `json:"totalCosts"`

	TotalRevenue      int64 `json:"totalRevenue"`
	TotalRevenueExGst int64 `json:"totalRevenueExGst"`
	TotalRevenueGst   int64 `json:"totalRevenueGst"`
	MarginSchemeGst   int64 `json:"marginSchemeGst"`

	Profit            int64   `json:"profit"`
	ProfitOnCost      float64 `json:"profitOnCost"`
	DevelopmentMargin float64 `json:"developmentMargin"`

	// RevenuePerUnit is based on GST-inclusive revenue while Profit uses
	// ex-GST revenue. The asymmetry is kept for compatibility with existing
	// reports.
	RevenuePerUnit    int64 `json:"revenuePerUnit"`
	CostPerUnit       int64 `json:"costPerUnit"`
	ProfitPerUnit     int64 `json:"profitPerUnit"`
	ResidualLandValue int64 `json:"residualLandValue"`
}

// ComputeSummary resolves every line item of the snapshot and aggregates the
// results into a FeasibilitySummary.
//
// Percentage-of-construction items depend on the construction total, which
// itself comes from line items, so resolution runs in two passes: the flat
// construction items ($ Amount, $/m2, $/Lot) are summed first, and every
// item is then resolved against that flat total.
func ComputeSummary(s Snapshot) FeasibilitySummary {
	ctx := NewResolutionContext(s)

	sections := make(map[Section]int64, len(SummarySections))
	for _, section := range SummarySections {
		sections[section] = 0
	}
	for _, item := range s.LineItems {
		if _, ok := sections[item.Section]; !ok {
			continue
		}
		sections[item.Section] += ResolveLineItemAmount(item, ctx)
	}

	summary := FeasibilitySummary{
		LotCount:              ctx.LotCount,
		UnitCount:             len(s.SalesUnits),
		FlatConstructionTotal: ctx.ConstructionTotal,

		LandCost:          landCost(s.LandLots),
		AcquisitionCosts:  sections[SectionAcquisition],
		ProfessionalFees:  sections[SectionProfessionalFees],
		ConstructionCosts: sections[SectionConstruction],
		DevFees:           sections[SectionDevFees],
		LandHoldingCosts:  sections[SectionLandHolding],
		ContingencyCosts:  sections[SectionContingency],
		AgentFees:         sections[SectionAgentFees],
		LegalFees:         sections[SectionLegalFees],

		FacilityFees: sections[SectionFacilityFees],
		LoanFees:     sections[SectionLoanFees],
		EquityFees:   sections[SectionEquityFees],

		TotalRevenue:      ctx.GrvTotal,
		TotalRevenueExGst: totalRevenueExGst(s.SalesUnits),
	}
	summary.TotalLandSize, _ = ctx.TotalLandSize.Float64()

	summary.TotalDebtInterest = totalDebtInterest(s.DebtFacilities, s.DebtLoans)
	for _, facility := range s.DebtFacilities {
		summary.TotalDebtFacility += facility.TotalFacility
	}
	for _, loan := range s.DebtLoans {
		summary.TotalLoanPrincipal += loan.PrincipalAmount
	}
	for _, partner := range s.EquityPartners {
		summary.TotalEquity += partner.EquityAmount
	}

	summary.TotalCostsExFunding = summary.LandCost +
		summary.AcquisitionCosts +
		summary.ProfessionalFees +
		summary.ConstructionCosts +
		summary.DevFees +
		summary.LandHoldingCosts +
		summary.ContingencyCosts +
		summary.AgentFees +
		summary.LegalFees
	summary.TotalFundingCosts = summary.FacilityFees +
		summary.LoanFees +
		summary.EquityFees +
		summary.TotalDebtInterest
	summary.TotalCosts = summary.TotalCostsExFunding + summary.TotalFundingCosts

	summary.TotalRevenueGst = summary.TotalRevenue - summary.TotalRevenueExGst
	summary.MarginSchemeGst = gst.MarginSchemeGst(summary.TotalRevenue, summary.LandCost)

	summary.Profit = summary.TotalRevenueExGst - summary.TotalCosts
	if summary.TotalCosts > 0 {
		summary.ProfitOnCost = mathutil.CalculatePercentage(summary.Profit, summary.TotalCosts)
	}
	if summary.TotalRevenueExGst > 0 {
		summary.DevelopmentMargin = mathutil.CalculatePercentage(summary.Profit, summary.TotalRevenueExGst)
	}

	if units := int64(summary.UnitCount); units > 0 {
		summary.RevenuePerUnit = mathutil.DivRound(summary.TotalRevenue, units)
		summary.CostPerUnit = mathutil.DivRound(summary.TotalCosts, units)
		summary.ProfitPerUnit = mathutil.DivRound(summary.Profit, units)
	}

	summary.ResidualLandValue = summary.TotalRevenueExGst - (summary.TotalCosts - summary.LandCost)

	return summary
}

// totalDebtInterest sums trusted facility provisions and simple interest on
// every fixed loan.
func totalDebtInterest(facilities []DebtFacility, debtLoans []DebtLoan) int64 {
	var total int64
	for _, facility := range facilities {
		total += facility.InterestProvision
	}
	for _, loan := range debtLoans {
		total += loans.SimpleInterest(loan.PrincipalAmount, loan.InterestRate, loan.TermMonths)
	}
	return total
}

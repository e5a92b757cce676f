package feasibility

import (
	"time"

	"github.com/iwvelando/feasibility/pkg/datetime"
	"github.com/iwvelando/feasibility/pkg/gst"
	"github.com/iwvelando/feasibility/pkg/mathutil"
)

// CashflowMonth is one row of the projected cashflow. Month is the 0-based
// bucket index; all amounts are cents.
type CashflowMonth struct {
	Month int    `json:"month"`
	Label string `json:"label"`
	Key   string `json:"key"`

	LandCosts         int64 `json:"landCosts"`
	AcquisitionCosts  int64 `json:"acquisitionCosts"`
	ProfessionalFees  int64 `json:"professionalFees"`
	ConstructionCosts int64 `json:"constructionCosts"`
	DevFees           int64 `json:"devFees"`
	LandHoldingCosts  int64 `json:"landHoldingCosts"`
	ContingencyCosts  int64 `json:"contingencyCosts"`
	MarketingCosts    int64 `json:"marketingCosts"`
	AgentFees         int64 `json:"agentFees"`
	LegalFees         int64 `json:"legalFees"`
	// FundingCosts folds facility, loan and equity fees together.
	FundingCosts int64 `json:"fundingCosts"`

	Revenue            int64 `json:"revenue"`
	TotalCosts         int64 `json:"totalCosts"`
	NetCashflow        int64 `json:"netCashflow"`
	CumulativeCashflow int64 `json:"cumulativeCashflow"`
}

// addCost places amount into the column for section. It reports false for
// sections the projector does not distribute.
func (m *CashflowMonth) addCost(section Section, amount int64) bool {
	switch section {
	case SectionAcquisition:
		m.AcquisitionCosts += amount
	case SectionProfessionalFees:
		m.ProfessionalFees += amount
	case SectionConstruction:
		m.ConstructionCosts += amount
	case SectionDevFees:
		m.DevFees += amount
	case SectionLandHolding:
		m.LandHoldingCosts += amount
	case SectionContingency:
		m.ContingencyCosts += amount
	case SectionMarketing:
		m.MarketingCosts += amount
	case SectionAgentFees:
		m.AgentFees += amount
	case SectionLegalFees:
		m.LegalFees += amount
	case SectionFacilityFees, SectionLoanFees, SectionEquityFees:
		m.FundingCosts += amount
	default:
		return false
	}
	return true
}

func (m *CashflowMonth) finalize(previousCumulative int64) {
	m.TotalCosts = m.LandCosts +
		m.AcquisitionCosts +
		m.ProfessionalFees +
		m.ConstructionCosts +
		m.DevFees +
		m.LandHoldingCosts +
		m.ContingencyCosts +
		m.MarketingCosts +
		m.AgentFees +
		m.LegalFees +
		m.FundingCosts
	m.NetCashflow = m.Revenue - m.TotalCosts
	m.CumulativeCashflow = previousCumulative + m.NetCashflow
}

// Sources of cashflow placements, used when reporting dropped entries.
const (
	SourceLandDeposit    = "land_deposit"
	SourceLandPayment    = "land_payment"
	SourceLandSettlement = "land_settlement"
	SourceLineItem       = "line_item"
	SourceSalesUnit      = "sales_unit"
)

// DroppedEntry is a cashflow placement that fell outside the project
// horizon and was therefore not written to any month.
type DroppedEntry struct {
	Source string `json:"source"`
	Name   string `json:"name"`
	// Month is the 1-based month requested. For a line item spread it is
	// the first month beyond the horizon and Amount covers the whole tail.
	Month  int    `json:"month"`
	Amount int64  `json:"amount"`
}

// Projection is the full result of projecting a snapshot onto its timeline.
type Projection struct {
	Months  []CashflowMonth `json:"months"`
	Dropped []DroppedEntry  `json:"dropped,omitempty"`
	// PeakFundingRequirement is the depth of the lowest cumulative balance,
	// or 0 if the balance never goes negative.
	PeakFundingRequirement int64 `json:"peakFundingRequirement"`
	// PeakFundingMonth is the 0-based month of that low point, or -1.
	PeakFundingMonth int `json:"peakFundingMonth"`
}

// GenerateCashflow projects the snapshot onto its month horizon. An unset
// scenario start date is anchored to the current month.
func GenerateCashflow(s Snapshot) []CashflowMonth {
	return GenerateCashflowAt(s, time.Now())
}

// GenerateCashflowAt is GenerateCashflow with an explicit fallback start
// date.
func GenerateCashflowAt(s Snapshot, now time.Time) []CashflowMonth {
	return ProjectCashflow(s, now).Months
}

// ProjectCashflow distributes every resolved amount of the snapshot across
// its month horizon and accumulates the running balance. now is used as the
// start date when the scenario has none.
//
// Line items are resolved with the same context as ComputeSummary. Each
// item's amount is spread evenly as round(amount/span) per month, so the
// spread sum may differ from the resolved amount by at most span-1 cents.
func ProjectCashflow(s Snapshot, now time.Time) Projection {
	totalMonths := s.TotalMonths()
	start := s.Scenario.StartDate
	if start.IsZero() {
		start = now
	}

	p := &projector{months: make([]CashflowMonth, totalMonths)}
	for i := range p.months {
		p.months[i].Month = i
		p.months[i].Label = datetime.MonthLabel(start, i)
		p.months[i].Key = datetime.MonthKey(start, i)
	}

	ctx := NewResolutionContext(s)

	for _, lot := range s.LandLots {
		p.placeLand(lot)
	}

	for _, item := range s.LineItems {
		if !item.Section.Valid() {
			continue
		}
		p.spreadLineItem(item, ResolveLineItemAmount(item, ctx))
	}

	for _, unit := range s.SalesUnits {
		month := unit.SettlementMonth
		if month <= 0 {
			month = totalMonths
		}
		amount := gst.NormalizeToExGst(unit.SalePrice, unit.GstStatus)
		if bucket := p.bucket(month - 1); bucket != nil {
			bucket.Revenue += amount
		} else {
			p.drop(SourceSalesUnit, unit.Name, month, amount)
		}
	}

	result := Projection{Months: p.months, Dropped: p.dropped, PeakFundingMonth: -1}
	var cumulative, lowest int64
	for i := range p.months {
		p.months[i].finalize(cumulative)
		cumulative = p.months[i].CumulativeCashflow
		if cumulative < lowest {
			lowest = cumulative
			result.PeakFundingMonth = i
		}
	}
	result.PeakFundingRequirement = -lowest

	return result
}

type projector struct {
	months  []CashflowMonth
	dropped []DroppedEntry
}

// bucket returns the month at the 0-based index, or nil when out of range.
func (p *projector) bucket(index int) *CashflowMonth {
	if index < 0 || index >= len(p.months) {
		return nil
	}
	return &p.months[index]
}

func (p *projector) drop(source, name string, month int, amount int64) {
	p.dropped = append(p.dropped, DroppedEntry{Source: source, Name: name, Month: month, Amount: amount})
}

func (p *projector) placeLandCost(source, name string, month int, amount int64) {
	if bucket := p.bucket(month - 1); bucket != nil {
		bucket.LandCosts += amount
		return
	}
	p.drop(source, name, month, amount)
}

// placeLand writes the deposit, each scheduled payment and any remaining
// settlement balance. Payments beyond the purchase price are not clawed back;
// the settlement balance simply clamps at zero.
func (p *projector) placeLand(lot LandLot) {
	depositMonth := lot.DepositMonth
	if depositMonth <= 0 {
		depositMonth = 1
	}
	settlementMonth := lot.SettlementMonth
	if settlementMonth <= 0 {
		settlementMonth = 1
	}

	if lot.DepositAmount != 0 {
		p.placeLandCost(SourceLandDeposit, lot.Name, depositMonth, lot.DepositAmount)
	}

	var scheduled int64
	for _, payment := range lot.PaymentSchedule {
		scheduled += payment.Amount
		p.placeLandCost(SourceLandPayment, lot.Name, payment.Month, payment.Amount)
	}

	balance := mathutil.Max(0, lot.PurchasePrice-lot.DepositAmount-scheduled)
	if balance > 0 {
		p.placeLandCost(SourceLandSettlement, lot.Name, settlementMonth, balance)
	}
}

// spreadLineItem writes round(amount/span) into each month of the spread
// that falls inside the horizon. Months past the horizon are reported as one
// dropped entry starting at the first missing month.
func (p *projector) spreadLineItem(item LineItem, amount int64) {
	span := item.Span()
	perMonth := mathutil.DivRound(amount, int64(span))
	first := item.StartIndex()

	placed := 0
	if remaining := len(p.months) - first; remaining > 0 {
		placed = span
		if placed > remaining {
			placed = remaining
		}
	}
	for index := first; index < first+placed; index++ {
		p.months[index].addCost(item.Section, perMonth)
	}

	if dropped := span - placed; dropped > 0 {
		p.drop(SourceLineItem, item.Name, first+placed+1, perMonth*int64(dropped))
	}
}

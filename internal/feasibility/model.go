// Package feasibility computes the profit-and-loss position and month by
// month cashflow of a real-estate development from an in-memory scenario
// snapshot.
//
// Every function in this package is pure: it reads only its arguments,
// performs no I/O and never fails. Missing numeric fields count as zero,
// missing divisors count as one, and cashflow placements outside the project
// horizon are dropped and reported rather than raised.
package feasibility

import (
	"time"

	"github.com/iwvelando/feasibility/pkg/constants"
	"github.com/iwvelando/feasibility/pkg/gst"
)

// DevelopmentType classifies a scenario.
type DevelopmentType string

const (
	Residential     DevelopmentType = "residential"
	Commercial      DevelopmentType = "commercial"
	MixedUse        DevelopmentType = "mixed_use"
	Industrial      DevelopmentType = "industrial"
	LandSubdivision DevelopmentType = "land_subdivision"
)

// Valid reports whether d is a known development type.
func (d DevelopmentType) Valid() bool {
	switch d {
	case Residential, Commercial, MixedUse, Industrial, LandSubdivision:
		return true
	}
	return false
}

// Section is the cost category a line item belongs to.
type Section string

const (
	SectionAcquisition      Section = "acquisition"
	SectionProfessionalFees Section = "professional_fees"
	SectionConstruction     Section = "construction"
	SectionDevFees          Section = "dev_fees"
	SectionLandHolding      Section = "land_holding"
	SectionContingency      Section = "contingency"
	SectionMarketing        Section = "marketing"
	SectionAgentFees        Section = "agent_fees"
	SectionLegalFees        Section = "legal_fees"
	SectionFacilityFees     Section = "facility_fees"
	SectionLoanFees         Section = "loan_fees"
	SectionEquityFees       Section = "equity_fees"
)

// SummarySections are the sections the summary totals. Marketing is absent.
var SummarySections = []Section{
	SectionAcquisition,
	SectionProfessionalFees,
	SectionConstruction,
	SectionDevFees,
	SectionLandHolding,
	SectionContingency,
	SectionAgentFees,
	SectionLegalFees,
	SectionFacilityFees,
	SectionLoanFees,
	SectionEquityFees,
}

// CashflowSections are the sections the cashflow projector distributes.
// Unlike the summary this includes marketing.
var CashflowSections = []Section{
	SectionAcquisition,
	SectionProfessionalFees,
	SectionConstruction,
	SectionDevFees,
	SectionLandHolding,
	SectionContingency,
	SectionMarketing,
	SectionAgentFees,
	SectionLegalFees,
	SectionFacilityFees,
	SectionLoanFees,
	SectionEquityFees,
}

// Valid reports whether s is recognised by either the summary or the
// cashflow projector.
func (s Section) Valid() bool {
	for _, known := range CashflowSections {
		if s == known {
			return true
		}
	}
	return false
}

// RateType is the unit basis a line item's rate is expressed in.
type RateType string

const (
	RateAmount              RateType = "$ Amount"
	RatePerM2               RateType = "$/m2"
	RatePerLot              RateType = "$/Lot"
	RatePercentConstruction RateType = "% Construction"
	RatePercentGRV          RateType = "% GRV"
)

// Valid reports whether r is a known rate type. Unknown rate types still
// resolve, as a fixed amount.
func (r RateType) Valid() bool {
	switch r {
	case RateAmount, RatePerM2, RatePerLot, RatePercentConstruction, RatePercentGRV:
		return true
	}
	return false
}

// IsPercentage reports whether the rate references another computed total.
func (r RateType) IsPercentage() bool {
	return r == RatePercentConstruction || r == RatePercentGRV
}

// Scenario is the root record of one feasibility study.
type Scenario struct {
	ID                  string
	Name                string
	ProjectID           string
	DevelopmentType     DevelopmentType
	ProjectLengthMonths int
	ProjectLots         int
	// StartDate anchors month 0; the zero time means unset.
	StartDate time.Time
	// Cached holds summary figures written by older clients. The engine
	// never reads or writes them.
	Cached CachedSummary
}

// CachedSummary is the legacy stored summary carried on a scenario.
type CachedSummary struct {
	TotalCosts   int64
	TotalRevenue int64
	Profit       int64
	ProfitOnCost float64
}

// PaymentScheduleEntry is one progress payment towards a land lot.
type PaymentScheduleEntry struct {
	Month  int // 1-based
	Amount int64
}

// LandLot is a parcel of land being acquired. Months are 1-based; zero
// deposit and settlement months mean month 1.
type LandLot struct {
	Name            string
	LandSizeM2      float64
	PurchasePrice   int64
	DepositAmount   int64
	DepositMonth    int
	SettlementMonth int
	PaymentSchedule []PaymentScheduleEntry
}

// LineItem is a single cost entry. Its amount is always derived from
// quantity, rate, rate type and GST status.
type LineItem struct {
	Name               string
	Section            Section
	RateType           RateType
	Quantity           float64
	Rate               float64
	GstStatus          gst.Status
	CashflowStartMonth int // 1-based, zero means month 1
	CashflowSpanMonths int // zero means 1
}

// EffectiveQuantity returns the quantity, defaulting zero to one.
func (item LineItem) EffectiveQuantity() float64 {
	if item.Quantity == 0 {
		return constants.DefaultQuantity
	}
	return item.Quantity
}

// StartIndex returns the 0-based bucket the item's spread begins in.
func (item LineItem) StartIndex() int {
	if item.CashflowStartMonth <= 0 {
		return 0
	}
	return item.CashflowStartMonth - 1
}

// Span returns the number of months the item is spread over.
func (item LineItem) Span() int {
	if item.CashflowSpanMonths <= 0 {
		return constants.DefaultSpanMonths
	}
	return item.CashflowSpanMonths
}

// SalesUnit is one sellable unit. Zero settlement month means the final
// month of the project.
type SalesUnit struct {
	Name            string
	SalePrice       int64
	GstStatus       gst.Status
	SettlementMonth int
}

// DebtFacility is a construction or revolving debt line. Its interest
// provision is supplied precomputed and trusted.
type DebtFacility struct {
	Name              string
	TotalFacility     int64
	InterestRate      float64
	TermMonths        int
	LvrMethod         string
	LvrPct            float64
	InterestProvision int64
}

// DebtLoan is a fixed loan charged simple interest over its full term.
type DebtLoan struct {
	Name            string
	PrincipalAmount int64
	InterestRate    float64 // annual percent
	TermMonths      int
	LoanType        string
}

// EquityPartner is a capital contributor.
type EquityPartner struct {
	Name              string
	EquityAmount      int64
	ReturnPercentage  float64
	IsDeveloperEquity bool
}

// Snapshot is a fully-materialised scenario with all of its child records.
type Snapshot struct {
	Scenario       Scenario
	LandLots       []LandLot
	LineItems      []LineItem
	SalesUnits     []SalesUnit
	DebtFacilities []DebtFacility
	DebtLoans      []DebtLoan
	EquityPartners []EquityPartner
}

// TotalMonths returns the cashflow horizon, defaulting to 24 months.
func (s Snapshot) TotalMonths() int {
	if s.Scenario.ProjectLengthMonths <= 0 {
		return constants.DefaultProjectLengthMonths
	}
	return s.Scenario.ProjectLengthMonths
}

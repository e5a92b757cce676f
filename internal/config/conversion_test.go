package config

import (
	"testing"
	"time"

	"github.com/iwvelando/feasibility/internal/feasibility"
	"github.com/iwvelando/feasibility/pkg/gst"
)

func TestToSnapshot(t *testing.T) {
	scenario := &Scenario{
		ID:                  "scn-1",
		Name:                "Converted",
		ProjectID:           "prj-9",
		DevelopmentType:     "commercial",
		ProjectLengthMonths: 18,
		ProjectLots:         4,
		StartDate:           "2027-04",
		LandLots: []LandLot{{
			Name:            "Lot 7",
			LandSizeM2:      812.5,
			PurchasePrice:   900000,
			DepositAmount:   90000,
			DepositMonth:    2,
			SettlementMonth: 6,
			PaymentSchedule: []Payment{{Month: 4, Amount: 10000}},
		}},
		LineItems: []LineItem{{
			Name:               "Fitout",
			Section:            "construction",
			RateType:           "$/m2",
			Quantity:           2,
			Rate:               35.5,
			GstStatus:          "inclusive",
			CashflowStartMonth: 5,
			CashflowSpanMonths: 3,
		}},
		SalesUnits:     []SalesUnit{{Name: "Shop 1", SalePrice: 1200000, GstStatus: "exclusive", SettlementMonth: 18}},
		DebtFacilities: []DebtFacility{{Name: "Senior", TotalFacility: 600000, InterestRate: 8, TermMonths: 18, LvrMethod: "lvr", LvrPct: 65, InterestProvision: 54000}},
		DebtLoans:      []DebtLoan{{Name: "Bridge", PrincipalAmount: 50000, InterestRate: 10, TermMonths: 6, LoanType: "bridging"}},
		EquityPartners: []EquityPartner{{Name: "Sponsor", EquityAmount: 300000, ReturnPercentage: 12, IsDeveloperEquity: true}},
	}

	snapshot, err := scenario.ToSnapshot()
	if err != nil {
		t.Fatalf("ToSnapshot() error = %v", err)
	}

	expectedStart := time.Date(2027, time.April, 1, 0, 0, 0, 0, time.UTC)
	if !snapshot.Scenario.StartDate.Equal(expectedStart) {
		t.Errorf("StartDate = %v, expected %v", snapshot.Scenario.StartDate, expectedStart)
	}
	if snapshot.Scenario.DevelopmentType != feasibility.Commercial || snapshot.Scenario.ProjectLots != 4 {
		t.Errorf("unexpected scenario: %+v", snapshot.Scenario)
	}

	lot := snapshot.LandLots[0]
	if lot.LandSizeM2 != 812.5 || lot.DepositMonth != 2 || len(lot.PaymentSchedule) != 1 || lot.PaymentSchedule[0].Amount != 10000 {
		t.Errorf("unexpected land lot: %+v", lot)
	}

	item := snapshot.LineItems[0]
	if item.Section != feasibility.SectionConstruction || item.RateType != feasibility.RatePerM2 ||
		item.GstStatus != gst.Inclusive || item.CashflowSpanMonths != 3 {
		t.Errorf("unexpected line item: %+v", item)
	}

	if snapshot.SalesUnits[0].GstStatus != gst.Exclusive {
		t.Errorf("unexpected sales unit: %+v", snapshot.SalesUnits[0])
	}
	if snapshot.DebtFacilities[0].InterestProvision != 54000 || snapshot.DebtFacilities[0].LvrPct != 65 {
		t.Errorf("unexpected facility: %+v", snapshot.DebtFacilities[0])
	}
	if snapshot.DebtLoans[0].LoanType != "bridging" {
		t.Errorf("unexpected loan: %+v", snapshot.DebtLoans[0])
	}
	if !snapshot.EquityPartners[0].IsDeveloperEquity {
		t.Errorf("unexpected equity partner: %+v", snapshot.EquityPartners[0])
	}
}

func TestToSnapshotStartDate(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		wantZero  bool
		wantError bool
	}{
		{"Unset start date", "", true, false},
		{"Valid start date", "2026-11", false, false},
		{"Day precision rejected", "2026-11-05", false, true},
		{"Garbage", "next spring", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, err := (&Scenario{Name: "Dates", StartDate: tt.startDate}).ToSnapshot()
			if tt.wantError {
				if err == nil {
					t.Errorf("ToSnapshot() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("ToSnapshot() error = %v", err)
			}
			if snapshot.Scenario.StartDate.IsZero() != tt.wantZero {
				t.Errorf("StartDate zero = %t, expected %t", snapshot.Scenario.StartDate.IsZero(), tt.wantZero)
			}
		})
	}
}

func TestToSnapshotNil(t *testing.T) {
	var scenario *Scenario
	snapshot, err := scenario.ToSnapshot()
	if err != nil {
		t.Fatalf("ToSnapshot() error = %v", err)
	}
	if snapshot.Scenario.Name != "" || len(snapshot.LineItems) != 0 {
		t.Errorf("expected an empty snapshot, got %+v", snapshot)
	}
}

func TestActiveSnapshots(t *testing.T) {
	config := Configuration{
		Scenarios: []Scenario{
			{Name: "Active", Active: true, StartDate: "2026-01"},
			{Name: "Inactive with bad date", Active: false, StartDate: "bogus"},
		},
	}

	snapshots, err := config.ActiveSnapshots()
	if err != nil {
		t.Fatalf("ActiveSnapshots() error = %v", err)
	}
	if len(snapshots) != 1 || snapshots[0].Scenario.Name != "Active" {
		t.Errorf("unexpected snapshots: %+v", snapshots)
	}

	config.Scenarios[1].Active = true
	if _, err := config.ActiveSnapshots(); err == nil {
		t.Error("expected an error once the bad scenario is active")
	}
}

func TestActiveSnapshotsFromFile(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	snapshots, err := config.ActiveSnapshots()
	if err != nil {
		t.Fatalf("ActiveSnapshots() error = %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("expected 2 active snapshots, got %d", len(snapshots))
	}

	summary := feasibility.ComputeSummary(snapshots[0])
	if summary.TotalCosts != 1858655 || summary.Profit != 1141345 {
		t.Errorf("file-loaded summary drifted: costs %d profit %d", summary.TotalCosts, summary.Profit)
	}
}

// Package config defines conversion utilities for configuration objects.
package config

import (
	"fmt"

	"github.com/iwvelando/feasibility/internal/feasibility"
	"github.com/iwvelando/feasibility/pkg/datetime"
	"github.com/iwvelando/feasibility/pkg/gst"
)

// ToSnapshot converts a configured scenario into the engine's snapshot. Only
// the start date can fail to convert.
func (s *Scenario) ToSnapshot() (feasibility.Snapshot, error) {
	if s == nil {
		return feasibility.Snapshot{}, nil
	}

	startDate, err := datetime.ParseMonth(s.StartDate)
	if err != nil {
		return feasibility.Snapshot{}, fmt.Errorf("scenario %q has invalid startDate %q: %w", s.Name, s.StartDate, err)
	}

	snapshot := feasibility.Snapshot{
		Scenario: feasibility.Scenario{
			ID:                  s.ID,
			Name:                s.Name,
			ProjectID:           s.ProjectID,
			DevelopmentType:     feasibility.DevelopmentType(s.DevelopmentType),
			ProjectLengthMonths: s.ProjectLengthMonths,
			ProjectLots:         s.ProjectLots,
			StartDate:           startDate,
		},
	}

	for _, lot := range s.LandLots {
		converted := feasibility.LandLot{
			Name:            lot.Name,
			LandSizeM2:      lot.LandSizeM2,
			PurchasePrice:   lot.PurchasePrice,
			DepositAmount:   lot.DepositAmount,
			DepositMonth:    lot.DepositMonth,
			SettlementMonth: lot.SettlementMonth,
		}
		for _, payment := range lot.PaymentSchedule {
			converted.PaymentSchedule = append(converted.PaymentSchedule, feasibility.PaymentScheduleEntry{
				Month:  payment.Month,
				Amount: payment.Amount,
			})
		}
		snapshot.LandLots = append(snapshot.LandLots, converted)
	}

	for _, item := range s.LineItems {
		snapshot.LineItems = append(snapshot.LineItems, feasibility.LineItem{
			Name:               item.Name,
			Section:            feasibility.Section(item.Section),
			RateType:           feasibility.RateType(item.RateType),
			Quantity:           item.Quantity,
			Rate:               item.Rate,
			GstStatus:          gst.Status(item.GstStatus),
			CashflowStartMonth: item.CashflowStartMonth,
			CashflowSpanMonths: item.CashflowSpanMonths,
		})
	}

	for _, unit := range s.SalesUnits {
		snapshot.SalesUnits = append(snapshot.SalesUnits, feasibility.SalesUnit{
			Name:            unit.Name,
			SalePrice:       unit.SalePrice,
			GstStatus:       gst.Status(unit.GstStatus),
			SettlementMonth: unit.SettlementMonth,
		})
	}

	for _, facility := range s.DebtFacilities {
		snapshot.DebtFacilities = append(snapshot.DebtFacilities, feasibility.DebtFacility(facility))
	}

	for _, loan := range s.DebtLoans {
		snapshot.DebtLoans = append(snapshot.DebtLoans, feasibility.DebtLoan(loan))
	}

	for _, partner := range s.EquityPartners {
		snapshot.EquityPartners = append(snapshot.EquityPartners, feasibility.EquityPartner(partner))
	}

	return snapshot, nil
}

// ActiveSnapshots converts every active scenario into a snapshot.
func (c *Configuration) ActiveSnapshots() ([]feasibility.Snapshot, error) {
	active := c.ActiveScenarios()
	snapshots := make([]feasibility.Snapshot, 0, len(active))
	for i := range active {
		snapshot, err := active[i].ToSnapshot()
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

package config

import (
	"fmt"

	"github.com/iwvelando/feasibility/internal/feasibility"
	"github.com/iwvelando/feasibility/pkg/constants"
	"github.com/iwvelando/feasibility/pkg/datetime"
	"github.com/iwvelando/feasibility/pkg/gst"
	"github.com/iwvelando/feasibility/pkg/validation"
)

var (
	developmentTypes = []string{
		string(feasibility.Residential),
		string(feasibility.Commercial),
		string(feasibility.MixedUse),
		string(feasibility.Industrial),
		string(feasibility.LandSubdivision),
	}
	rateTypes = []string{
		string(feasibility.RateAmount),
		string(feasibility.RatePerM2),
		string(feasibility.RatePerLot),
		string(feasibility.RatePercentConstruction),
		string(feasibility.RatePercentGRV),
	}
	gstStatuses = []string{
		string(gst.Inclusive),
		string(gst.Exclusive),
		string(gst.Exempt),
	}
)

func sectionNames() []string {
	names := make([]string, 0, len(feasibility.CashflowSections))
	for _, section := range feasibility.CashflowSections {
		names = append(names, string(section))
	}
	return names
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Nothing reported here stops evaluation: the engine
// defaults or drops whatever it cannot place.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	var names []string
	for _, scenario := range c.Scenarios {
		if !scenario.Active {
			continue
		}
		names = append(names, scenario.Name)
		warnings = append(warnings, scenario.validate()...)
	}
	warnings = append(warnings, validation.ValidateUniqueNames("scenario", names)...)

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	return warnings
}

func (s *Scenario) validate() []string {
	var warnings []string
	add := func(warning string) {
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	prefix := fmt.Sprintf("Scenario '%s'", s.Name)

	add(validation.ValidateEnum(prefix, "development type", s.DevelopmentType, developmentTypes, true))
	if _, err := datetime.ParseMonth(s.StartDate); err != nil {
		add(fmt.Sprintf("%s has invalid startDate '%s', expected %s", prefix, s.StartDate, DateTimeLayout))
	}

	totalMonths := s.ProjectLengthMonths
	if totalMonths <= 0 {
		totalMonths = constants.DefaultProjectLengthMonths
	}
	if totalMonths > constants.MaxProjectLengthMonths {
		add(fmt.Sprintf("%s projectLengthMonths %d exceeds the maximum of %d months",
			prefix, totalMonths, constants.MaxProjectLengthMonths))
	}

	sections := sectionNames()

	for _, lot := range s.LandLots {
		label := fmt.Sprintf("%s land lot '%s'", prefix, lot.Name)
		if lot.DepositAmount != 0 {
			add(validation.ValidateMonth(label+" deposit", lot.DepositMonth, totalMonths, true))
		}
		add(validation.ValidateMonth(label+" settlement", lot.SettlementMonth, totalMonths, true))

		scheduled := make([]int64, 0, len(lot.PaymentSchedule))
		for _, payment := range lot.PaymentSchedule {
			scheduled = append(scheduled, payment.Amount)
			add(validation.ValidateMonth(label+" scheduled payment", payment.Month, totalMonths, false))
		}
		add(validation.ValidateLandPayments(label, lot.PurchasePrice, lot.DepositAmount, scheduled))
	}

	for _, item := range s.LineItems {
		label := fmt.Sprintf("%s line item '%s'", prefix, item.Name)
		if warning := validation.ValidateEnum(label, "section", item.Section, sections, false); warning != "" {
			add(warning + " and will be ignored")
		}
		if warning := validation.ValidateEnum(label, "rate type", item.RateType, rateTypes, false); warning != "" {
			add(warning + " and will be treated as a fixed amount")
		}
		add(validation.ValidateEnum(label, "GST status", item.GstStatus, gstStatuses, true))
		add(validation.ValidateSpan(label, item.CashflowStartMonth, item.CashflowSpanMonths, totalMonths))
	}

	for _, unit := range s.SalesUnits {
		label := fmt.Sprintf("%s sales unit '%s'", prefix, unit.Name)
		add(validation.ValidateEnum(label, "GST status", unit.GstStatus, gstStatuses, true))
		add(validation.ValidateMonth(label+" settlement", unit.SettlementMonth, totalMonths, true))
	}

	return warnings
}

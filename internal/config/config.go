// Package config defines the data structures related to configuration and
// includes functions for loading, validating and converting the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/feasibility/pkg/constants"
	"github.com/spf13/viper"
)

// DateTimeLayout is the format expected for scenario start dates.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for feasibility.
type Configuration struct {
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
	Scenarios []Scenario    `yaml:"scenarios"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, xlsx, pdf
	Path   string `yaml:"path,omitempty"`   // destination for xlsx and pdf
}

// Scenario holds one feasibility study and all of its child records. All
// amounts are cents.
type Scenario struct {
	ID                  string          `yaml:"id,omitempty"`
	Name                string          `yaml:"name"`
	Active              bool            `yaml:"active"`
	ProjectID           string          `yaml:"projectId,omitempty"`
	DevelopmentType     string          `yaml:"developmentType,omitempty"`
	ProjectLengthMonths int             `yaml:"projectLengthMonths,omitempty"`
	ProjectLots         int             `yaml:"projectLots,omitempty"`
	StartDate           string          `yaml:"startDate,omitempty"`
	LandLots            []LandLot       `yaml:"landLots,omitempty"`
	LineItems           []LineItem      `yaml:"lineItems,omitempty"`
	SalesUnits          []SalesUnit     `yaml:"salesUnits,omitempty"`
	DebtFacilities      []DebtFacility  `yaml:"debtFacilities,omitempty"`
	DebtLoans           []DebtLoan      `yaml:"debtLoans,omitempty"`
	EquityPartners      []EquityPartner `yaml:"equityPartners,omitempty"`
}

// LandLot is a parcel of land being acquired.
type LandLot struct {
	Name            string    `yaml:"name"`
	LandSizeM2      float64   `yaml:"landSizeM2"`
	PurchasePrice   int64     `yaml:"purchasePrice"`
	DepositAmount   int64     `yaml:"depositAmount,omitempty"`
	DepositMonth    int       `yaml:"depositMonth,omitempty"`
	SettlementMonth int       `yaml:"settlementMonth,omitempty"`
	PaymentSchedule []Payment `yaml:"paymentSchedule,omitempty"`
}

// Payment is one scheduled progress payment towards a land lot.
type Payment struct {
	Month  int   `yaml:"month"`
	Amount int64 `yaml:"amount"`
}

// LineItem is a single cost entry.
type LineItem struct {
	Name               string  `yaml:"name"`
	Section            string  `yaml:"section"`
	RateType           string  `yaml:"rateType"`
	Quantity           float64 `yaml:"quantity,omitempty"`
	Rate               float64 `yaml:"rate"`
	GstStatus          string  `yaml:"gstStatus,omitempty"`
	CashflowStartMonth int     `yaml:"cashflowStartMonth,omitempty"`
	CashflowSpanMonths int     `yaml:"cashflowSpanMonths,omitempty"`
}

// SalesUnit is one sellable unit.
type SalesUnit struct {
	Name            string `yaml:"name"`
	SalePrice       int64  `yaml:"salePrice"`
	GstStatus       string `yaml:"gstStatus,omitempty"`
	SettlementMonth int    `yaml:"settlementMonth,omitempty"`
}

// DebtFacility is a construction or revolving debt line.
type DebtFacility struct {
	Name              string  `yaml:"name"`
	TotalFacility     int64   `yaml:"totalFacility"`
	InterestRate      float64 `yaml:"interestRate,omitempty"`
	TermMonths        int     `yaml:"termMonths,omitempty"`
	LvrMethod         string  `yaml:"lvrMethod,omitempty"`
	LvrPct            float64 `yaml:"lvrPct,omitempty"`
	InterestProvision int64   `yaml:"interestProvision,omitempty"`
}

// DebtLoan is a fixed loan charged simple interest.
type DebtLoan struct {
	Name            string  `yaml:"name"`
	PrincipalAmount int64   `yaml:"principalAmount"`
	InterestRate    float64 `yaml:"interestRate"`
	TermMonths      int     `yaml:"termMonths"`
	LoanType        string  `yaml:"loanType,omitempty"`
}

// EquityPartner is a capital contributor.
type EquityPartner struct {
	Name              string  `yaml:"name"`
	EquityAmount      int64   `yaml:"equityAmount"`
	ReturnPercentage  float64 `yaml:"returnPercentage,omitempty"`
	IsDeveloperEquity bool    `yaml:"isDeveloperEquity,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
// Each call uses its own viper instance so concurrent loads do not interfere.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// ActiveScenarios returns the scenarios marked active, in file order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}

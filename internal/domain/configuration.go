package domain

import (
	"github.com/shopspring/decimal"
)

// Configuration is the complete input file: shared base parameters plus named scenarios
type Configuration struct {
	Base      ProjectionParameters `yaml:"base" toml:"base" json:"base"`
	Scenarios []Scenario           `yaml:"scenarios" toml:"scenarios" json:"scenarios"`
	Report    ReportSettings       `yaml:"report,omitempty" toml:"report,omitempty" json:"report,omitempty"`
}

// ReportSettings controls which reports a run produces
type ReportSettings struct {
	Formats   []string `yaml:"formats,omitempty" toml:"formats,omitempty" json:"formats,omitempty"`
	OutputDir string   `yaml:"output_dir,omitempty" toml:"output_dir,omitempty" json:"output_dir,omitempty"`
}

// Scenario names a variation of the base parameters
type Scenario struct {
	Name      string            `yaml:"name" toml:"name" json:"name"`
	Overrides ScenarioOverrides `yaml:"overrides,omitempty" toml:"overrides,omitempty" json:"overrides,omitempty"`
}

// ScenarioOverrides replaces individual base parameters. Nil fields inherit the base value.
type ScenarioOverrides struct {
	AnnualReturnRate           *decimal.Decimal `yaml:"annual_return_rate,omitempty" toml:"annual_return_rate,omitempty" json:"annual_return_rate,omitempty"`
	AnnualInflationRate        *decimal.Decimal `yaml:"annual_inflation_rate,omitempty" toml:"annual_inflation_rate,omitempty" json:"annual_inflation_rate,omitempty"`
	InitialYearlySpend         *decimal.Decimal `yaml:"initial_yearly_spend,omitempty" toml:"initial_yearly_spend,omitempty" json:"initial_yearly_spend,omitempty"`
	OneTimeAdditionalSpend     *decimal.Decimal `yaml:"one_time_additional_spend,omitempty" toml:"one_time_additional_spend,omitempty" json:"one_time_additional_spend,omitempty"`
	EffectiveTaxRate           *decimal.Decimal `yaml:"effective_tax_rate,omitempty" toml:"effective_tax_rate,omitempty" json:"effective_tax_rate,omitempty"`
	TaxableAccountTaxRate      *decimal.Decimal `yaml:"taxable_account_tax_rate,omitempty" toml:"taxable_account_tax_rate,omitempty" json:"taxable_account_tax_rate,omitempty"`
	StartingTaxDeferredBalance *decimal.Decimal `yaml:"starting_tax_deferred_balance,omitempty" toml:"starting_tax_deferred_balance,omitempty" json:"starting_tax_deferred_balance,omitempty"`
	StartingTaxFreeBalance     *decimal.Decimal `yaml:"starting_tax_free_balance,omitempty" toml:"starting_tax_free_balance,omitempty" json:"starting_tax_free_balance,omitempty"`
	StartingTaxableBalance     *decimal.Decimal `yaml:"starting_taxable_balance,omitempty" toml:"starting_taxable_balance,omitempty" json:"starting_taxable_balance,omitempty"`
	ProjectionYears            *int             `yaml:"projection_years,omitempty" toml:"projection_years,omitempty" json:"projection_years,omitempty"`
	AnnualExternalIncome       *decimal.Decimal `yaml:"annual_external_income,omitempty" toml:"annual_external_income,omitempty" json:"annual_external_income,omitempty"`
	IncomeInflationAdjusted    *bool            `yaml:"income_inflation_adjusted,omitempty" toml:"income_inflation_adjusted,omitempty" json:"income_inflation_adjusted,omitempty"`
	TaxTreatment               *TaxTreatment    `yaml:"tax_treatment,omitempty" toml:"tax_treatment,omitempty" json:"tax_treatment,omitempty"`
	ShortfallPolicy            *ShortfallPolicy `yaml:"shortfall_policy,omitempty" toml:"shortfall_policy,omitempty" json:"shortfall_policy,omitempty"`
	StartYear                  *int             `yaml:"start_year,omitempty" toml:"start_year,omitempty" json:"start_year,omitempty"`
}

// Apply returns a copy of base with every non-nil override substituted
func (o ScenarioOverrides) Apply(base ProjectionParameters) ProjectionParameters {
	p := base
	setDecimal(&p.AnnualReturnRate, o.AnnualReturnRate)
	setDecimal(&p.AnnualInflationRate, o.AnnualInflationRate)
	setDecimal(&p.InitialYearlySpend, o.InitialYearlySpend)
	setDecimal(&p.OneTimeAdditionalSpend, o.OneTimeAdditionalSpend)
	setDecimal(&p.EffectiveTaxRate, o.EffectiveTaxRate)
	setDecimal(&p.TaxableAccountTaxRate, o.TaxableAccountTaxRate)
	setDecimal(&p.StartingTaxDeferredBalance, o.StartingTaxDeferredBalance)
	setDecimal(&p.StartingTaxFreeBalance, o.StartingTaxFreeBalance)
	setDecimal(&p.StartingTaxableBalance, o.StartingTaxableBalance)
	setDecimal(&p.AnnualExternalIncome, o.AnnualExternalIncome)
	if o.ProjectionYears != nil {
		p.ProjectionYears = *o.ProjectionYears
	}
	if o.IncomeInflationAdjusted != nil {
		p.IncomeInflationAdjusted = *o.IncomeInflationAdjusted
	}
	if o.TaxTreatment != nil {
		p.TaxTreatment = *o.TaxTreatment
	}
	if o.ShortfallPolicy != nil {
		p.ShortfallPolicy = *o.ShortfallPolicy
	}
	if o.StartYear != nil {
		p.StartYear = *o.StartYear
	}
	return p
}

func setDecimal(dst *decimal.Decimal, src *decimal.Decimal) {
	if src != nil {
		*dst = *src
	}
}

// ScenarioParameters resolves the parameters for one scenario
func (c *Configuration) ScenarioParameters(s Scenario) ProjectionParameters {
	return s.Overrides.Apply(c.Base)
}

// ResolvedScenarios returns the configured scenarios, or a single "Base" scenario
// when none are listed.
func (c *Configuration) ResolvedScenarios() []Scenario {
	if len(c.Scenarios) == 0 {
		return []Scenario{{Name: "Base"}}
	}
	return c.Scenarios
}

// FindScenario looks a scenario up by name
func (c *Configuration) FindScenario(name string) (Scenario, bool) {
	for _, s := range c.ResolvedScenarios() {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

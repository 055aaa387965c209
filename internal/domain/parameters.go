package domain

import (
	"fmt"

	"github.com/rpgo/drawdown/pkg/money"
	"github.com/shopspring/decimal"
)

// TaxTreatment selects how flat-rate taxes interact with the spending need
type TaxTreatment string

const (
	// TaxDeduct withdraws exactly the cash need and takes tax out of it
	TaxDeduct TaxTreatment = "deduct"
	// TaxGrossUp withdraws enough that the amount left after tax covers the need
	TaxGrossUp TaxTreatment = "gross_up"
)

// ShortfallPolicy selects what happens when total balances cannot cover a year's need
type ShortfallPolicy string

const (
	// ShortfallSkip withdraws nothing in a year the balances cannot fully serve
	ShortfallSkip ShortfallPolicy = "skip"
	// ShortfallDrain withdraws whatever is left, in priority order
	ShortfallDrain ShortfallPolicy = "drain"
)

// Default policy constants
var (
	DefaultTaxableAccountTaxRate = decimal.NewFromFloat(0.15)
	DefaultProjectionYears       = 30
)

// ProjectionParameters is the immutable input to a single projection run.
// Rates are fractions (0.055 for 5.5%), money is in whole currency units.
type ProjectionParameters struct {
	AnnualReturnRate       decimal.Decimal `yaml:"annual_return_rate" toml:"annual_return_rate" json:"annual_return_rate"`
	AnnualInflationRate    decimal.Decimal `yaml:"annual_inflation_rate" toml:"annual_inflation_rate" json:"annual_inflation_rate"`
	InitialYearlySpend     decimal.Decimal `yaml:"initial_yearly_spend" toml:"initial_yearly_spend" json:"initial_yearly_spend"`
	OneTimeAdditionalSpend decimal.Decimal `yaml:"one_time_additional_spend" toml:"one_time_additional_spend" json:"one_time_additional_spend"`
	EffectiveTaxRate       decimal.Decimal `yaml:"effective_tax_rate" toml:"effective_tax_rate" json:"effective_tax_rate"`
	TaxableAccountTaxRate  decimal.Decimal `yaml:"taxable_account_tax_rate" toml:"taxable_account_tax_rate" json:"taxable_account_tax_rate"`

	StartingTaxDeferredBalance decimal.Decimal `yaml:"starting_tax_deferred_balance" toml:"starting_tax_deferred_balance" json:"starting_tax_deferred_balance"`
	StartingTaxFreeBalance     decimal.Decimal `yaml:"starting_tax_free_balance" toml:"starting_tax_free_balance" json:"starting_tax_free_balance"`
	StartingTaxableBalance     decimal.Decimal `yaml:"starting_taxable_balance" toml:"starting_taxable_balance" json:"starting_taxable_balance"`

	ProjectionYears int `yaml:"projection_years" toml:"projection_years" json:"projection_years"`

	// Sum of pension, annuity and Social Security
	AnnualExternalIncome    decimal.Decimal `yaml:"annual_external_income" toml:"annual_external_income" json:"annual_external_income"`
	IncomeInflationAdjusted bool            `yaml:"income_inflation_adjusted" toml:"income_inflation_adjusted" json:"income_inflation_adjusted"`

	TaxTreatment    TaxTreatment    `yaml:"tax_treatment,omitempty" toml:"tax_treatment,omitempty" json:"tax_treatment,omitempty"`
	ShortfallPolicy ShortfallPolicy `yaml:"shortfall_policy,omitempty" toml:"shortfall_policy,omitempty" json:"shortfall_policy,omitempty"`

	// Calendar year of the first record; zero keeps relative indexes
	StartYear int `yaml:"start_year,omitempty" toml:"start_year,omitempty" json:"start_year,omitempty"`
}

// DefaultParameters returns parameters carrying the policy defaults and zero amounts
func DefaultParameters() ProjectionParameters {
	return ProjectionParameters{
		TaxableAccountTaxRate: DefaultTaxableAccountTaxRate,
		ProjectionYears:       DefaultProjectionYears,
		TaxTreatment:          TaxDeduct,
		ShortfallPolicy:       ShortfallSkip,
	}
}

// TotalStartingBalance sums the three starting balances
func (p ProjectionParameters) TotalStartingBalance() decimal.Decimal {
	return p.StartingTaxDeferredBalance.Add(p.StartingTaxFreeBalance).Add(p.StartingTaxableBalance)
}

// EffectiveTaxTreatment resolves an empty treatment to the default
func (p ProjectionParameters) EffectiveTaxTreatment() TaxTreatment {
	if p.TaxTreatment == "" {
		return TaxDeduct
	}
	return p.TaxTreatment
}

// EffectiveShortfallPolicy resolves an empty policy to the default
func (p ProjectionParameters) EffectiveShortfallPolicy() ShortfallPolicy {
	if p.ShortfallPolicy == "" {
		return ShortfallSkip
	}
	return p.ShortfallPolicy
}

// YearLabel returns the calendar year for a zero-based index, or the index itself
// when no start year is set.
func (p ProjectionParameters) YearLabel(index int) int {
	if p.StartYear == 0 {
		return index
	}
	return p.StartYear + index
}

// IsValid reports whether the treatment is a known value
func (t TaxTreatment) IsValid() bool {
	return t == "" || t == TaxDeduct || t == TaxGrossUp
}

// IsValid reports whether the policy is a known value
func (s ShortfallPolicy) IsValid() bool {
	return s == "" || s == ShortfallSkip || s == ShortfallDrain
}

// Assumptions lists the modeling assumptions behind these parameters for reports
func (p ProjectionParameters) Assumptions() []string {
	income := "External income held flat in nominal terms"
	if p.IncomeInflationAdjusted {
		income = "External income grows with inflation"
	}
	taxes := "Taxes deducted from each withdrawal"
	if p.EffectiveTaxTreatment() == TaxGrossUp {
		taxes = "Withdrawals grossed up so after-tax cash covers spending"
	}
	shortfall := "No withdrawal in a year the balances cannot fully cover"
	if p.EffectiveShortfallPolicy() == ShortfallDrain {
		shortfall = "Remaining balances drained when they cannot cover a full year"
	}
	return []string{
		fmt.Sprintf("Investment return: %s annually", money.FormatRate(p.AnnualReturnRate)),
		fmt.Sprintf("Spending inflation: %s annually", money.FormatRate(p.AnnualInflationRate)),
		fmt.Sprintf("Tax-deferred withdrawals taxed at %s", money.FormatRate(p.EffectiveTaxRate)),
		fmt.Sprintf("Taxable-account withdrawals taxed at %s", money.FormatRate(p.TaxableAccountTaxRate)),
		"Withdrawal order: tax-deferred, then tax-free, then taxable",
		income,
		taxes,
		shortfall,
	}
}

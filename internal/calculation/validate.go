package calculation

import (
	"errors"
	"strconv"

	"github.com/rpgo/drawdown/internal/domain"
	"github.com/shopspring/decimal"
)

// Accepted parameter domain
var (
	MaxReturnRate    = decimal.NewFromFloat(0.50)
	MaxInflationRate = decimal.NewFromFloat(0.20)
	MaxTaxRate       = decimal.NewFromFloat(0.50)
)

const (
	MinProjectionYears = 1
	MaxProjectionYears = 50
)

// ValidateParameters checks every parameter before any simulation runs.
// All violations are reported together; each matches domain.ErrInvalidParameter.
func ValidateParameters(p domain.ProjectionParameters) error {
	var errs []error

	rate := func(field string, v, max decimal.Decimal) {
		if v.IsNegative() || v.GreaterThan(max) {
			errs = append(errs, domain.NewParameterError(field, v.String(),
				"must be between 0 and "+max.String()))
		}
	}
	amount := func(field string, v decimal.Decimal) {
		if v.IsNegative() {
			errs = append(errs, domain.NewParameterError(field, v.String(), "cannot be negative"))
		}
	}

	rate("annual_return_rate", p.AnnualReturnRate, MaxReturnRate)
	rate("annual_inflation_rate", p.AnnualInflationRate, MaxInflationRate)
	rate("effective_tax_rate", p.EffectiveTaxRate, MaxTaxRate)
	rate("taxable_account_tax_rate", p.TaxableAccountTaxRate, MaxTaxRate)

	amount("initial_yearly_spend", p.InitialYearlySpend)
	amount("one_time_additional_spend", p.OneTimeAdditionalSpend)
	amount("annual_external_income", p.AnnualExternalIncome)

	negativeBalance := false
	for _, b := range []struct {
		field string
		value decimal.Decimal
	}{
		{"starting_tax_deferred_balance", p.StartingTaxDeferredBalance},
		{"starting_tax_free_balance", p.StartingTaxFreeBalance},
		{"starting_taxable_balance", p.StartingTaxableBalance},
	} {
		if b.value.IsNegative() {
			negativeBalance = true
			amount(b.field, b.value)
		}
	}
	if !negativeBalance && !p.TotalStartingBalance().IsPositive() {
		errs = append(errs, domain.NewParameterError("starting_balances", p.TotalStartingBalance().String(),
			"sum of starting balances must be greater than zero"))
	}

	if p.ProjectionYears < MinProjectionYears || p.ProjectionYears > MaxProjectionYears {
		errs = append(errs, domain.NewParameterError("projection_years", strconv.Itoa(p.ProjectionYears),
			"must be between 1 and 50"))
	}

	if !p.TaxTreatment.IsValid() {
		errs = append(errs, domain.NewParameterError("tax_treatment", string(p.TaxTreatment),
			"must be 'deduct' or 'gross_up'"))
	}
	if !p.ShortfallPolicy.IsValid() {
		errs = append(errs, domain.NewParameterError("shortfall_policy", string(p.ShortfallPolicy),
			"must be 'skip' or 'drain'"))
	}

	return errors.Join(errs...)
}

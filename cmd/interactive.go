package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/rpgo/drawdown/internal/domain"
	"github.com/rpgo/drawdown/pkg/money"
)

func validateRate(s string) error {
	_, err := money.ParseRate(s)
	return err
}

func validateAmount(s string) error {
	_, err := money.ParseAmount(s)
	return err
}

func validateYears(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("whole number of years required")
	}
	if n < 1 || n > 50 {
		return fmt.Errorf("must be between 1 and 50")
	}
	return nil
}

// parameterForm prompts for every projection input, prefilled with the current flag values.
// years receives the projection length as text; the caller converts it.
func parameterForm(years *string) *huh.Form {
	rate := func(title string, v *string) *huh.Input {
		return huh.NewInput().Title(title).Description("5.5% or 0.055").Value(v).Validate(validateRate)
	}
	amount := func(title string, v *string) *huh.Input {
		return huh.NewInput().Title(title).Value(v).Validate(validateAmount)
	}

	return huh.NewForm(
		huh.NewGroup(
			amount("Tax-deferred balance", &projTaxDeferred),
			amount("Tax-free balance", &projTaxFree),
			amount("Taxable balance", &projTaxable),
		).Title("Starting balances"),
		huh.NewGroup(
			amount("First-year spending", &projSpend),
			amount("One-time first-year spending", &projOneTime),
			amount("Annual external income", &projIncome),
			huh.NewConfirm().Title("Grow income with inflation?").Value(&projIncomeIndexed),
		).Title("Spending and income"),
		huh.NewGroup(
			rate("Annual return", &projReturn),
			rate("Annual inflation", &projInflation),
			rate("Effective tax rate", &projTax),
			rate("Taxable account tax rate", &projTaxableTax),
			huh.NewInput().Title("Years to project").Value(years).Validate(validateYears),
		).Title("Assumptions"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Tax treatment").Options(
				huh.NewOption("Deduct tax from each withdrawal", string(domain.TaxDeduct)),
				huh.NewOption("Gross up withdrawals to cover tax", string(domain.TaxGrossUp)),
			).Value(&projTaxTreatment),
			huh.NewSelect[string]().Title("When balances cannot cover a year").Options(
				huh.NewOption("Skip the withdrawal", string(domain.ShortfallSkip)),
				huh.NewOption("Drain what is left", string(domain.ShortfallDrain)),
			).Value(&projShortfallPolicy),
		).Title("Policies"),
	)
}

// promptParameters runs the form and copies the answers back into the project flags
func promptParameters() error {
	years := strconv.Itoa(projYears)
	if err := parameterForm(&years).Run(); err != nil {
		return err
	}
	n, err := strconv.Atoi(years)
	if err != nil {
		return err
	}
	projYears = n
	return nil
}

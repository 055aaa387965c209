package cmd

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rpgo/drawdown/internal/domain"
	"github.com/rpgo/drawdown/pkg/money"
)

var (
	projName            string
	projReturn          string
	projInflation       string
	projSpend           string
	projOneTime         string
	projTax             string
	projTaxableTax      string
	projTaxDeferred     string
	projTaxFree         string
	projTaxable         string
	projIncome          string
	projIncomeIndexed   bool
	projYears           int
	projStartYear       int
	projTaxTreatment    string
	projShortfallPolicy string
	projInteractive     bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project a single parameter set given on the command line",
	Long: "Rates accept either fractions (0.055) or percentages (5.5%).\n" +
		"Amounts accept plain numbers or formatted values like $1,250,000.",
	Args: cobra.NoArgs,
	RunE: runProject,
}

func init() {
	f := projectCmd.Flags()
	f.StringVar(&projName, "name", "Base", "Scenario name shown in reports")
	f.StringVar(&projReturn, "return", "0", "Annual nominal return rate")
	f.StringVar(&projInflation, "inflation", "0", "Annual inflation rate")
	f.StringVar(&projSpend, "spend", "0", "First-year spending need in today's money")
	f.StringVar(&projOneTime, "one-time", "0", "Extra spending added to the first year only")
	f.StringVar(&projTax, "tax", "0", "Effective tax rate on tax-deferred withdrawals")
	f.StringVar(&projTaxableTax, "taxable-tax", domain.DefaultTaxableAccountTaxRate.String(), "Tax rate on taxable account withdrawals")
	f.StringVar(&projTaxDeferred, "tax-deferred", "0", "Starting tax-deferred balance")
	f.StringVar(&projTaxFree, "tax-free", "0", "Starting tax-free balance")
	f.StringVar(&projTaxable, "taxable", "0", "Starting taxable balance")
	f.StringVar(&projIncome, "income", "0", "Annual external income (pension, annuity, Social Security)")
	f.BoolVar(&projIncomeIndexed, "income-indexed", false, "Grow external income with inflation")
	f.IntVar(&projYears, "years", domain.DefaultProjectionYears, "Number of years to project")
	f.IntVar(&projStartYear, "start-year", 0, "Calendar year of the first projected year (0 keeps indexes)")
	f.StringVar(&projTaxTreatment, "tax-treatment", string(domain.TaxDeduct), "deduct or gross_up")
	f.StringVar(&projShortfallPolicy, "shortfall", string(domain.ShortfallSkip), "skip or drain")
	f.BoolVar(&flagRecord, "record", false, "Save the run summary in the history database")
	f.BoolVarP(&projInteractive, "interactive", "i", false, "Prompt for every parameter, starting from the flag values")
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	if projInteractive {
		if err := promptParameters(); err != nil {
			return err
		}
	}
	params, err := projectParameters()
	if err != nil {
		return err
	}
	cfg := &domain.Configuration{
		Base:      params,
		Scenarios: []domain.Scenario{{Name: projName}},
	}
	report, err := newEngine(cmd).RunScenarios(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if err := emitReport(cmd, report, splitFormats(flagFormat), flagOutputDir); err != nil {
		return err
	}
	return recordRun(cmd, report, "project")
}

// projectParameters parses the command-line flags into projection parameters
func projectParameters() (domain.ProjectionParameters, error) {
	params := domain.DefaultParameters()
	params.ProjectionYears = projYears
	params.StartYear = projStartYear
	params.IncomeInflationAdjusted = projIncomeIndexed
	params.TaxTreatment = domain.TaxTreatment(projTaxTreatment)
	params.ShortfallPolicy = domain.ShortfallPolicy(projShortfallPolicy)

	fields := []struct {
		flag  string
		value string
		dst   *decimal.Decimal
		parse func(string) (decimal.Decimal, error)
	}{
		{"return", projReturn, &params.AnnualReturnRate, money.ParseRate},
		{"inflation", projInflation, &params.AnnualInflationRate, money.ParseRate},
		{"tax", projTax, &params.EffectiveTaxRate, money.ParseRate},
		{"taxable-tax", projTaxableTax, &params.TaxableAccountTaxRate, money.ParseRate},
		{"spend", projSpend, &params.InitialYearlySpend, money.ParseAmount},
		{"one-time", projOneTime, &params.OneTimeAdditionalSpend, money.ParseAmount},
		{"tax-deferred", projTaxDeferred, &params.StartingTaxDeferredBalance, money.ParseAmount},
		{"tax-free", projTaxFree, &params.StartingTaxFreeBalance, money.ParseAmount},
		{"taxable", projTaxable, &params.StartingTaxableBalance, money.ParseAmount},
		{"income", projIncome, &params.AnnualExternalIncome, money.ParseAmount},
	}

	var errs []error
	for _, field := range fields {
		v, err := field.parse(field.value)
		if err != nil {
			errs = append(errs, fmt.Errorf("--%s: %w", field.flag, err))
			continue
		}
		*field.dst = v
	}
	return params, errors.Join(errs...)
}

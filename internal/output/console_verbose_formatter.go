package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/drawdown/internal/calculation"
	"github.com/rpgo/drawdown/internal/domain"
	"github.com/rpgo/drawdown/pkg/dateutil"
	"github.com/rpgo/drawdown/pkg/money"
)

// ConsoleVerboseFormatter renders the summary followed by a year-by-year table per scenario.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	writeHeader(&buf, report)
	writeSummaryTable(&buf, report)

	for i, sc := range report.Scenarios {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, headerStyle.Render(fmt.Sprintf("SCENARIO %d: %s", i+1, sc.Name)))
		writeParameters(&buf, sc.Parameters)
		buf.WriteString(renderTable(yearTable(sc.Projection)))
	}

	writeCrossover(&buf, report)
	writeRecommendation(&buf, report)
	return buf.Bytes(), nil
}

func writeParameters(buf *bytes.Buffer, p domain.ProjectionParameters) {
	fmt.Fprintf(buf, "  Return %s, inflation %s, tax %s (taxable %s), %d years\n",
		money.FormatRate(p.AnnualReturnRate), money.FormatRate(p.AnnualInflationRate),
		money.FormatRate(p.EffectiveTaxRate), money.FormatRate(p.TaxableAccountTaxRate), p.ProjectionYears)
	fmt.Fprintf(buf, "  Spend %s/yr + %s once, income %s/yr, balances %s / %s / %s\n",
		FormatWholeCurrency(p.InitialYearlySpend), FormatWholeCurrency(p.OneTimeAdditionalSpend),
		FormatWholeCurrency(p.AnnualExternalIncome), FormatWholeCurrency(p.StartingTaxDeferredBalance),
		FormatWholeCurrency(p.StartingTaxFreeBalance), FormatWholeCurrency(p.StartingTaxableBalance))
	fmt.Fprintf(buf, "  Tax treatment %s, shortfall policy %s\n", p.EffectiveTaxTreatment(), p.EffectiveShortfallPolicy())
}

func yearTable(r domain.ProjectionResult) table {
	t := table{
		Headers: []string{"Year", "Beginning", "Need", "Income", "Tax-Deferred", "Tax-Free", "Taxable", "Taxes", "Net Spending", "Shortfall", "Ending", "Draw %", "Monthly"},
	}
	for _, y := range r {
		year := intToString(y.Year)
		if y.Depleted {
			year += " *"
		}
		t.Rows = append(t.Rows, []string{
			year,
			FormatWholeCurrency(y.BeginningTotalBalance),
			FormatWholeCurrency(y.SpendingNeed),
			FormatWholeCurrency(y.ExternalIncome),
			FormatWholeCurrency(y.TaxDeferredWithdrawal),
			FormatWholeCurrency(y.TaxFreeWithdrawal),
			FormatWholeCurrency(y.TaxableWithdrawal),
			FormatWholeCurrency(y.TaxesPaid),
			FormatWholeCurrency(y.NetSpendingAvailable),
			FormatWholeCurrency(y.Shortfall),
			FormatWholeCurrency(y.EndingTotalBalance),
			FormatPercentage(y.PercentOfBalanceWithdrawn),
			FormatCurrency(y.MonthlyNetSpending),
		})
	}
	return t
}

// writeCrossover reports where the first two scenarios' cumulative net spending meets
func writeCrossover(buf *bytes.Buffer, report *domain.ProjectionReport) {
	if len(report.Scenarios) < 2 {
		return
	}
	a, b := report.Scenarios[0], report.Scenarios[1]
	cross, err := calculation.CumulativeCrossover(a.Projection, b.Projection)
	if err != nil || cross == nil {
		return
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Cumulative net spending of %q and %q crosses in year %d (%s of the year) at %s",
		a.Name, b.Name, cross.Year, FormatPercentage(cross.Fraction.Mul(hundred)), FormatCurrency(cross.CumulativeAmount))
	if dateutil.IsCalendarYear(cross.Year) {
		fmt.Fprintf(buf, ", around %s", dateutil.DateInYear(cross.Year, cross.Fraction).Format(dateutil.MonthLayout))
	}
	fmt.Fprintln(buf)
}

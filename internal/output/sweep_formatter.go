package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rpgo/drawdown/internal/calculation"
	"github.com/rpgo/drawdown/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatSweep renders a sensitivity sweep as console, csv or json
func FormatSweep(result *calculation.SweepResult, format string) ([]byte, error) {
	switch NormalizeFormatName(format) {
	case "console", "console-verbose":
		return sweepConsole(result), nil
	case "csv", "detailed-csv":
		return sweepCSV(result)
	case "json":
		return json.MarshalIndent(result, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q (sweeps support console, csv, json)", ErrUnsupportedFormat, format)
	}
}

// sweepValue shows rates as percentages and everything else as money
func sweepValue(parameter string, v decimal.Decimal) string {
	if strings.HasSuffix(parameter, "_rate") {
		return money.FormatRate(v)
	}
	return FormatWholeCurrency(v)
}

func sweepConsole(result *calculation.SweepResult) []byte {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, renderTitle("SENSITIVITY: "+strings.ToUpper(result.Parameter)))
	t := table{
		Headers: []string{result.Parameter, "Final Balance", "Net Spending", "Taxes", "Shortfall", "Yr 1 Monthly", "Funded", "Depleted"},
	}
	for _, pt := range result.Points {
		s := pt.Summary
		depleted := "-"
		if s.Depleted {
			depleted = badStyle.Render(intToString(s.DepletionYear))
		}
		t.Rows = append(t.Rows, []string{
			sweepValue(result.Parameter, pt.Value),
			FormatWholeCurrency(s.FinalBalance),
			FormatWholeCurrency(s.CumulativeNetSpending),
			FormatWholeCurrency(s.CumulativeTaxes),
			FormatWholeCurrency(s.CumulativeShortfall),
			FormatCurrency(s.FirstYearMonthlyNet),
			intToString(s.YearsFunded),
			depleted,
		})
	}
	buf.WriteString(renderTable(t))
	fmt.Fprintf(&buf, "Final balance range: %s to %s\n", FormatCurrency(result.FinalBalanceLow), FormatCurrency(result.FinalBalanceHigh))
	return buf.Bytes()
}

func sweepCSV(result *calculation.SweepResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{result.Parameter, "FinalBalance", "CumulativeNetSpending", "CumulativeTaxes", "CumulativeShortfall", "FirstYearMonthlyNet", "YearsFunded", "Depleted"}); err != nil {
		return nil, err
	}
	for _, pt := range result.Points {
		s := pt.Summary
		if err := w.Write([]string{
			pt.Value.String(),
			money2(s.FinalBalance),
			money2(s.CumulativeNetSpending),
			money2(s.CumulativeTaxes),
			money2(s.CumulativeShortfall),
			money2(s.FirstYearMonthlyNet),
			intToString(s.YearsFunded),
			boolToString(s.Depleted),
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// FormatSustainableSpend renders the sustainable spending search result for the terminal
func FormatSustainableSpend(result *calculation.SustainableSpendResult, years int) string {
	var b strings.Builder
	fmt.Fprintln(&b, renderTitle("SUSTAINABLE SPENDING"))
	fmt.Fprintf(&b, "Largest first-year spend that stays funded for %d years: %s\n", years, goodStyle.Render(FormatCurrency(result.MaxInitialYearlySpend)))
	fmt.Fprintf(&b, "First-year monthly net spending: %s\n", FormatCurrency(result.FirstYearMonthlyNet))
	fmt.Fprintf(&b, "Balance remaining after the final year: %s\n", FormatCurrency(result.FinalBalance))
	fmt.Fprintf(&b, "Search iterations: %d\n", result.Iterations)
	return b.String()
}

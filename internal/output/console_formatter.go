package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/drawdown/internal/domain"
	"github.com/rpgo/drawdown/pkg/dateutil"
)

// ConsoleFormatter renders a bordered scenario summary table for the terminal.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	writeHeader(&buf, report)
	writeSummaryTable(&buf, report)
	writeRecommendation(&buf, report)
	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, report *domain.ProjectionReport) {
	fmt.Fprintln(buf, renderTitle("RETIREMENT DRAWDOWN PROJECTION"))
	if report.ID != "" {
		fmt.Fprintf(buf, "Report %s, generated %s\n", report.ID, dateutil.Display(report.GeneratedAt))
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, headerStyle.Render("Key Assumptions"))
	for _, a := range reportAssumptions(report) {
		fmt.Fprintf(buf, "  • %s\n", a)
	}
	fmt.Fprintln(buf)
}

func writeSummaryTable(buf *bytes.Buffer, report *domain.ProjectionReport) {
	t := table{
		Title:   "Scenario Summary",
		Headers: []string{"Scenario", "Starting", "Final", "Withdrawn", "Taxes", "Net Spending", "Shortfall", "Avg Draw", "Yr 1 Monthly", "Funded", "Status"},
	}
	for _, sc := range report.Scenarios {
		s := sc.Summary
		t.Rows = append(t.Rows, []string{
			sc.Name,
			FormatWholeCurrency(s.TotalStartingBalance),
			FormatWholeCurrency(s.FinalBalance),
			FormatWholeCurrency(s.CumulativeWithdrawals),
			FormatWholeCurrency(s.CumulativeTaxes),
			FormatWholeCurrency(s.CumulativeNetSpending),
			FormatWholeCurrency(s.CumulativeShortfall),
			FormatPercentage(s.AverageWithdrawalPercent),
			FormatCurrency(s.FirstYearMonthlyNet),
			fmt.Sprintf("%d/%d", s.YearsFunded, len(sc.Projection)),
			statusLabel(sc),
		})
	}
	buf.WriteString(renderTable(t))
}

// statusLabel summarizes how a scenario ended
func statusLabel(sc domain.ScenarioOutcome) string {
	return summaryStatus(sc.Summary, len(sc.Projection))
}

func summaryStatus(s domain.ProjectionSummary, years int) string {
	switch {
	case s.Depleted:
		return badStyle.Render(fmt.Sprintf("depleted in %d", s.DepletionYear))
	case s.YearsFunded < years:
		return warnStyle.Render("shortfall")
	default:
		return goodStyle.Render("funded")
	}
}

func writeRecommendation(buf *bytes.Buffer, report *domain.ProjectionReport) {
	rec := AnalyzeScenarios(report)
	if rec.ScenarioName == "" || len(report.Scenarios) < 2 {
		return
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Recommended: %s (funded %d years, final balance %s, net spending Δ %s / %s)\n",
		rec.ScenarioName, rec.YearsFunded, FormatCurrency(rec.FinalBalance),
		FormatCurrency(rec.NetSpendingChange), FormatPercentage(rec.PercentageChange))
}

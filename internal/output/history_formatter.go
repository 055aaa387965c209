package output

import (
	"fmt"
	"strings"

	"github.com/rpgo/drawdown/internal/store"
	"github.com/rpgo/drawdown/pkg/dateutil"
)

// FormatRunList renders recorded runs, newest first, as a terminal table.
func FormatRunList(runs []store.RunRecord) string {
	var b strings.Builder
	fmt.Fprintln(&b, renderTitle("PROJECTION HISTORY"))
	if len(runs) == 0 {
		fmt.Fprintln(&b, dimStyle.Render("No recorded runs"))
		return b.String()
	}
	t := table{Headers: []string{"Report", "Generated", "Source", "Scenarios"}}
	for _, r := range runs {
		t.Rows = append(t.Rows, []string{r.ReportID, dateutil.Display(r.GeneratedAt), r.Source, intToString(r.ScenarioCount)})
	}
	b.WriteString(renderTable(t))
	return b.String()
}

// FormatRun renders the stored scenario summaries of one run.
func FormatRun(run *store.RunRecord) string {
	var b strings.Builder
	fmt.Fprintln(&b, renderTitle("RUN "+run.ReportID))
	fmt.Fprintf(&b, "Generated %s from %s\n\n", dateutil.Display(run.GeneratedAt), run.Source)
	t := table{
		Headers: []string{"Scenario", "Starting", "Final", "Taxes", "Net Spending", "Shortfall", "Yr 1 Monthly", "Funded", "Status"},
	}
	for _, sc := range run.Scenarios {
		s := sc.Summary
		t.Rows = append(t.Rows, []string{
			sc.Name,
			FormatWholeCurrency(s.TotalStartingBalance),
			FormatWholeCurrency(s.FinalBalance),
			FormatWholeCurrency(s.CumulativeTaxes),
			FormatWholeCurrency(s.CumulativeNetSpending),
			FormatWholeCurrency(s.CumulativeShortfall),
			FormatCurrency(s.FirstYearMonthlyNet),
			fmt.Sprintf("%d/%d", s.YearsFunded, sc.ProjectionYears),
			summaryStatus(s, sc.ProjectionYears),
		})
	}
	b.WriteString(renderTable(t))
	return b.String()
}

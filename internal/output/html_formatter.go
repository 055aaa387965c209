package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	calc "github.com/rpgo/drawdown/internal/calculation"
	"github.com/rpgo/drawdown/internal/domain"
	"github.com/rpgo/drawdown/pkg/dateutil"
	"github.com/rpgo/drawdown/pkg/money"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"whole": FormatWholeCurrency,
	"pct":   FormatPercentage,
	"rate":  money.FormatRate,
	"add":   func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// chartSeries is the per-scenario balance series embedded for the inline chart
type chartSeries struct {
	Name     string    `json:"name"`
	Years    []int     `json:"years"`
	Balances []float64 `json:"balances"`
}

func (h HTMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	rec := AnalyzeScenarios(report)

	// Compute server-side cumulative crossover for scenarios 1 vs 2 if available
	var crossover *calc.CrossoverResult
	if len(report.Scenarios) >= 2 {
		projA := report.Scenarios[0].Projection
		projB := report.Scenarios[1].Projection
		if c, err := calc.CumulativeCrossover(projA, projB); err == nil && c != nil {
			crossover = c
		}
	}

	series := make([]chartSeries, 0, len(report.Scenarios))
	for _, sc := range report.Scenarios {
		s := chartSeries{Name: sc.Name}
		for _, y := range sc.Projection {
			s.Years = append(s.Years, y.Year)
			s.Balances = append(s.Balances, y.EndingTotalBalance.Round(2).InexactFloat64())
		}
		series = append(series, s)
	}

	data := struct {
		*domain.ProjectionReport
		Recommendation Recommendation
		Assumptions    []string
		Crossover      *calc.CrossoverResult
		CrossoverPct   string
		CrossoverDate  string
		Generated      string
		Series         []chartSeries
	}{
		ProjectionReport: report,
		Recommendation:   rec,
		Assumptions:      reportAssumptions(report),
		Crossover:        crossover,
		Generated:        dateutil.Display(report.GeneratedAt),
		Series:           series,
	}
	if crossover != nil {
		data.CrossoverPct = FormatPercentage(crossover.Fraction.Mul(hundred))
		if dateutil.IsCalendarYear(crossover.Year) {
			data.CrossoverDate = dateutil.DateInYear(crossover.Year, crossover.Fraction).Format(dateutil.MonthLayout)
		}
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/drawdown/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario,
// in configuration order).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Years", "TotalStartingBalance", "FinalBalance", "CumulativeWithdrawals", "CumulativeTaxes", "CumulativeNetSpending", "CumulativeShortfall", "AverageWithdrawalPercent", "FirstYearMonthlyNet", "YearsFunded", "Depleted", "DepletionYear"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range report.Scenarios {
		s := sc.Summary
		depletionYear := ""
		if s.Depleted {
			depletionYear = intToString(s.DepletionYear)
		}
		row := []string{
			sc.Name,
			intToString(len(sc.Projection)),
			money2(s.TotalStartingBalance),
			money2(s.FinalBalance),
			money2(s.CumulativeWithdrawals),
			money2(s.CumulativeTaxes),
			money2(s.CumulativeNetSpending),
			money2(s.CumulativeShortfall),
			money2(s.AverageWithdrawalPercent),
			money2(s.FirstYearMonthlyNet),
			intToString(s.YearsFunded),
			boolToString(s.Depleted),
			depletionYear,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

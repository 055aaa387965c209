package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/drawdown/internal/domain"
)

// CSVDetailedExporter provides raw annual projection detail per scenario/year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Index", "Year", "BeginningTotalBalance", "SpendingNeed", "ExternalIncome", "NetCashNeed",
		"TaxDeferredWithdrawal", "TaxFreeWithdrawal", "TaxableWithdrawal", "GrossWithdrawal", "TaxesPaid",
		"NetSpendingAvailable", "Shortfall", "Growth", "EndingTaxDeferredBalance", "EndingTaxFreeBalance",
		"EndingTaxableBalance", "EndingTotalBalance", "PercentOfBalanceWithdrawn", "MonthlyNetSpending", "Depleted"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range report.Scenarios {
		for _, yr := range sc.Projection {
			row := []string{
				sc.Name,
				intToString(yr.Index),
				intToString(yr.Year),
				money2(yr.BeginningTotalBalance),
				money2(yr.SpendingNeed),
				money2(yr.ExternalIncome),
				money2(yr.NetCashNeed),
				money2(yr.TaxDeferredWithdrawal),
				money2(yr.TaxFreeWithdrawal),
				money2(yr.TaxableWithdrawal),
				money2(yr.GrossWithdrawal),
				money2(yr.TaxesPaid),
				money2(yr.NetSpendingAvailable),
				money2(yr.Shortfall),
				money2(yr.Growth),
				money2(yr.EndingTaxDeferredBalance),
				money2(yr.EndingTaxFreeBalance),
				money2(yr.EndingTaxableBalance),
				money2(yr.EndingTotalBalance),
				money2(yr.PercentOfBalanceWithdrawn),
				money2(yr.MonthlyNetSpending),
				boolToString(yr.Depleted),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

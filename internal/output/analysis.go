package output

import (
	"sort"

	"github.com/rpgo/drawdown/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName          string
	YearsFunded           int
	FinalBalance          decimal.Decimal
	CumulativeNetSpending decimal.Decimal

	// Difference in cumulative net spending against the first scenario
	NetSpendingChange decimal.Decimal
	PercentageChange  decimal.Decimal
}

// AnalyzeScenarios picks the scenario that stays funded longest, breaking
// ties by the larger final balance and then by name.
func AnalyzeScenarios(report *domain.ProjectionReport) Recommendation {
	if report == nil || len(report.Scenarios) == 0 {
		return Recommendation{}
	}

	ranked := append([]domain.ScenarioOutcome(nil), report.Scenarios...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Summary, ranked[j].Summary
		if a.YearsFunded != b.YearsFunded {
			return a.YearsFunded > b.YearsFunded
		}
		if !a.FinalBalance.Equal(b.FinalBalance) {
			return a.FinalBalance.GreaterThan(b.FinalBalance)
		}
		return ranked[i].Name < ranked[j].Name
	})

	best := ranked[0]
	baseline := report.Scenarios[0].Summary.CumulativeNetSpending
	delta := best.Summary.CumulativeNetSpending.Sub(baseline)
	pct := decimal.Zero
	if !baseline.IsZero() {
		pct = delta.Div(baseline).Mul(decimal.NewFromInt(100))
	}

	return Recommendation{
		ScenarioName:          best.Name,
		YearsFunded:           best.Summary.YearsFunded,
		FinalBalance:          best.Summary.FinalBalance,
		CumulativeNetSpending: best.Summary.CumulativeNetSpending,
		NetSpendingChange:     delta,
		PercentageChange:      pct,
	}
}

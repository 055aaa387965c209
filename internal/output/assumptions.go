package output

import "github.com/rpgo/drawdown/internal/domain"

// DefaultAssumptions lists the modeling rules that hold for every projection.
// Rendered when a report carries no generated assumptions.
var DefaultAssumptions = []string{
	"Withdrawals come from tax-deferred, then tax-free, then taxable accounts",
	"Flat tax rates apply to each withdrawal; tax-free withdrawals are untaxed",
	"Growth is applied once a year to balances remaining after withdrawals",
	"Spending grows with inflation; the one-time amount applies to the first year only",
}

// reportAssumptions returns the assumptions to render for report
func reportAssumptions(report *domain.ProjectionReport) []string {
	if len(report.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return report.Assumptions
}

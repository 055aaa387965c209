package calculation

import (
	"fmt"

	"github.com/rpgo/drawdown/internal/domain"
	"github.com/shopspring/decimal"
)

// SustainableSpendResult is the outcome of the sustainable spending search
type SustainableSpendResult struct {
	MaxInitialYearlySpend decimal.Decimal         `json:"max_initial_yearly_spend"`
	FirstYearMonthlyNet   decimal.Decimal         `json:"first_year_monthly_net"`
	FinalBalance          decimal.Decimal         `json:"final_balance"`
	Iterations            int                     `json:"iterations"`
	Projection            domain.ProjectionResult `json:"projection"`
}

// SustainableSpend finds the largest initial yearly spend (before inflation and
// excluding the one-time amount) that keeps every projected year fully funded.
// The search narrows until the bracket is within tolerance.
func SustainableSpend(params domain.ProjectionParameters, tolerance decimal.Decimal) (*SustainableSpendResult, error) {
	if err := ValidateParameters(params); err != nil {
		return nil, err
	}
	if !tolerance.IsPositive() {
		tolerance = decimal.NewFromInt(1)
	}

	funded := func(spend decimal.Decimal) (domain.ProjectionResult, bool, error) {
		p := params
		p.InitialYearlySpend = spend
		r, err := Project(p)
		if err != nil {
			return nil, false, err
		}
		return r, YearsFunded(r) == len(r), nil
	}

	// Any spend above everything available in year 0 leaves year 0 short
	minSpend := decimal.Zero
	maxSpend := params.TotalStartingBalance().Add(params.AnnualExternalIncome).Add(decimal.NewFromInt(1))

	best, ok, err := funded(minSpend)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no spending level keeps all %d years funded", params.ProjectionYears)
	}

	maxIterations := 100
	iterations := 0
	two := decimal.NewFromInt(2)
	for iterations < maxIterations && maxSpend.Sub(minSpend).GreaterThan(tolerance) {
		iterations++
		mid := minSpend.Add(maxSpend).Div(two)
		r, ok, err := funded(mid)
		if err != nil {
			return nil, err
		}
		if ok {
			minSpend = mid
			best = r
		} else {
			maxSpend = mid
		}
	}

	return &SustainableSpendResult{
		MaxInitialYearlySpend: minSpend,
		FirstYearMonthlyNet:   best[0].MonthlyNetSpending,
		FinalBalance:          FinalBalance(best),
		Iterations:            iterations,
		Projection:            best,
	}, nil
}

// CrossoverResult describes where cumulative net spending of two projections meets
type CrossoverResult struct {
	// Index of the year in which the crossover happens
	YearIndex int `json:"year_index"`
	Year      int `json:"year"`

	// Fraction (0..1) of that year elapsed at the crossover, by linear interpolation
	Fraction decimal.Decimal `json:"fraction_of_year"`

	// Cumulative net spending at the crossover (equal for both projections)
	CumulativeAmount decimal.Decimal `json:"cumulative_amount"`
}

// CumulativeCrossover finds the first year in which cumulative net spending of a
// and b cross. Projections are aligned by index. Returns nil, nil when they never cross.
func CumulativeCrossover(a, b domain.ProjectionResult) (*CrossoverResult, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, fmt.Errorf("one or both projections are empty")
	}

	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	cent := decimal.NewFromFloat(0.01)
	cumA := decimal.Zero
	cumB := decimal.Zero
	for i := 0; i < n; i++ {
		prevDiff := cumA.Sub(cumB)
		cumA = cumA.Add(a[i].NetSpendingAvailable)
		cumB = cumB.Add(b[i].NetSpendingAvailable)
		currDiff := cumA.Sub(cumB)

		// Equal at the first year-end is trivial, not a crossover
		if currDiff.Abs().LessThan(cent) {
			if i == 0 {
				continue
			}
			if prevDiff.Abs().LessThan(cent) {
				continue
			}
			return &CrossoverResult{YearIndex: i, Year: a[i].Year, Fraction: decimal.NewFromInt(1), CumulativeAmount: cumA}, nil
		}

		if i > 0 && prevDiff.Mul(currDiff).IsNegative() {
			// diff(t) = prev + t*(curr - prev); solve diff(t) = 0
			t := prevDiff.Neg().Div(currDiff.Sub(prevDiff))
			if t.IsNegative() {
				t = decimal.Zero
			} else if t.GreaterThan(one) {
				t = one
			}
			at := cumA.Sub(a[i].NetSpendingAvailable).Add(a[i].NetSpendingAvailable.Mul(t))
			return &CrossoverResult{YearIndex: i, Year: a[i].Year, Fraction: t, CumulativeAmount: at}, nil
		}
	}

	return nil, nil
}

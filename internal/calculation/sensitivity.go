package calculation

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rpgo/drawdown/internal/domain"
	"github.com/shopspring/decimal"
)

// sweepSetters maps each sweepable parameter to the field it replaces
var sweepSetters = map[string]func(*domain.ProjectionParameters, decimal.Decimal){
	"annual_return_rate":     func(p *domain.ProjectionParameters, v decimal.Decimal) { p.AnnualReturnRate = v },
	"annual_inflation_rate":  func(p *domain.ProjectionParameters, v decimal.Decimal) { p.AnnualInflationRate = v },
	"effective_tax_rate":     func(p *domain.ProjectionParameters, v decimal.Decimal) { p.EffectiveTaxRate = v },
	"initial_yearly_spend":   func(p *domain.ProjectionParameters, v decimal.Decimal) { p.InitialYearlySpend = v },
	"annual_external_income": func(p *domain.ProjectionParameters, v decimal.Decimal) { p.AnnualExternalIncome = v },
}

// SweepParameters returns the parameter names Sweep accepts
func SweepParameters() []string {
	names := make([]string, 0, len(sweepSetters))
	for name := range sweepSetters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SweepSpec describes a one-dimensional sensitivity sweep
type SweepSpec struct {
	Parameter string          `yaml:"parameter" json:"parameter"`
	Min       decimal.Decimal `yaml:"min" json:"min"`
	Max       decimal.Decimal `yaml:"max" json:"max"`
	Steps     int             `yaml:"steps" json:"steps"`
}

// SweepPoint is one evaluated value of the swept parameter
type SweepPoint struct {
	Value   decimal.Decimal          `json:"value"`
	Summary domain.ProjectionSummary `json:"summary"`
}

// SweepResult holds every point of a sweep in ascending parameter order
type SweepResult struct {
	Parameter string       `json:"parameter"`
	Points    []SweepPoint `json:"points"`

	// Spread of final balances across the sweep
	FinalBalanceLow  decimal.Decimal `json:"final_balance_low"`
	FinalBalanceHigh decimal.Decimal `json:"final_balance_high"`
}

// Values returns the evenly spaced parameter values covered by the sweep
func (s SweepSpec) Values() []decimal.Decimal {
	if s.Steps <= 1 {
		return []decimal.Decimal{s.Min}
	}
	step := s.Max.Sub(s.Min).Div(decimal.NewFromInt(int64(s.Steps - 1)))
	values := make([]decimal.Decimal, s.Steps)
	for i := range values {
		values[i] = s.Min.Add(step.Mul(decimal.NewFromInt(int64(i))))
	}
	values[len(values)-1] = s.Max
	return values
}

// Validate checks the sweep definition itself
func (s SweepSpec) Validate() error {
	if _, ok := sweepSetters[s.Parameter]; !ok {
		return fmt.Errorf("unknown sweep parameter %q (supported: %v)", s.Parameter, SweepParameters())
	}
	if s.Steps < 1 {
		return fmt.Errorf("sweep steps must be at least 1, got %d", s.Steps)
	}
	if s.Max.LessThan(s.Min) {
		return fmt.Errorf("sweep max %s is below min %s", s.Max, s.Min)
	}
	return nil
}

// Sweep projects base once per value of the swept parameter. Points run
// concurrently; each projection is independent so no coordination is needed
// beyond collecting results.
func Sweep(ctx context.Context, base domain.ProjectionParameters, spec SweepSpec) (*SweepResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	set := sweepSetters[spec.Parameter]
	values := spec.Values()
	points := make([]SweepPoint, len(values))
	errs := make([]error, len(values))

	var wg sync.WaitGroup
	for i, v := range values {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(i int, v decimal.Decimal) {
			defer wg.Done()
			p := base
			set(&p, v)
			r, err := Project(p)
			if err != nil {
				errs[i] = fmt.Errorf("sweep point %s=%s: %w", spec.Parameter, v.String(), err)
				return
			}
			points[i] = SweepPoint{Value: v, Summary: Summarize(r)}
		}(i, v)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	result := &SweepResult{Parameter: spec.Parameter, Points: points}
	for i, pt := range points {
		if i == 0 || pt.Summary.FinalBalance.LessThan(result.FinalBalanceLow) {
			result.FinalBalanceLow = pt.Summary.FinalBalance
		}
		if i == 0 || pt.Summary.FinalBalance.GreaterThan(result.FinalBalanceHigh) {
			result.FinalBalanceHigh = pt.Summary.FinalBalance
		}
	}
	return result, nil
}

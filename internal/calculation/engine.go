package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/drawdown/internal/domain"
	"github.com/rpgo/drawdown/pkg/money"
	"github.com/shopspring/decimal"
)

// Project simulates params year by year and returns a freshly allocated result.
// Parameters are validated up front; nothing is computed when validation fails.
func Project(params domain.ProjectionParameters) (domain.ProjectionResult, error) {
	if err := ValidateParameters(params); err != nil {
		return nil, err
	}

	inflationFactor := one.Add(params.AnnualInflationRate)
	drain := params.EffectiveShortfallPolicy() == domain.ShortfallDrain

	acct := accounts{
		taxDeferred: params.StartingTaxDeferredBalance,
		taxFree:     params.StartingTaxFreeBalance,
		taxable:     params.StartingTaxableBalance,
	}
	baseSpend := params.InitialYearlySpend
	income := params.AnnualExternalIncome

	result := make(domain.ProjectionResult, 0, params.ProjectionYears)
	for year := 0; year < params.ProjectionYears; year++ {
		// The one-time amount is added to year 0 only and never compounds
		if year > 0 {
			baseSpend = baseSpend.Mul(inflationFactor)
			if params.IncomeInflationAdjusted {
				income = income.Mul(inflationFactor)
			}
		}
		need := baseSpend
		if year == 0 {
			need = need.Add(params.OneTimeAdditionalSpend)
		}
		netCashNeed := money.FloorZero(need.Sub(income))

		beginning := acct.total()
		if !beginning.IsPositive() {
			result = append(result, depletedYear(year, params.YearLabel(year)))
			continue
		}

		var w withdrawal
		if beginning.GreaterThanOrEqual(netCashNeed) || drain {
			w = acct.withdraw(netCashNeed, params)
		} else {
			// Balances cannot serve the whole need: withdraw nothing this year
			w.unmet = netCashNeed
		}

		gross := w.gross()
		netSpending := gross.Sub(w.taxes).Add(income)
		growth := acct.grow(params.AnnualReturnRate)

		result = append(result, domain.YearRecord{
			Index:                     year,
			Year:                      params.YearLabel(year),
			BeginningTotalBalance:     beginning,
			SpendingNeed:              need,
			ExternalIncome:            income,
			NetCashNeed:               netCashNeed,
			TaxDeferredWithdrawal:     w.taxDeferred,
			TaxFreeWithdrawal:         w.taxFree,
			TaxableWithdrawal:         w.taxable,
			GrossWithdrawal:           gross,
			TaxesPaid:                 w.taxes,
			NetSpendingAvailable:      netSpending,
			Shortfall:                 w.unmet,
			Growth:                    growth,
			EndingTaxDeferredBalance:  acct.taxDeferred,
			EndingTaxFreeBalance:      acct.taxFree,
			EndingTaxableBalance:      acct.taxable,
			EndingTotalBalance:        acct.total(),
			PercentOfBalanceWithdrawn: money.Percent(gross, beginning),
			MonthlyNetSpending:        money.Monthly(netSpending),
		})
	}

	return result, nil
}

// depletedYear is the absorbing zero record emitted once funds are exhausted
func depletedYear(index, year int) domain.YearRecord {
	return domain.YearRecord{
		Index:                     index,
		Year:                      year,
		BeginningTotalBalance:     decimal.Zero,
		SpendingNeed:              decimal.Zero,
		ExternalIncome:            decimal.Zero,
		NetCashNeed:               decimal.Zero,
		TaxDeferredWithdrawal:     decimal.Zero,
		TaxFreeWithdrawal:         decimal.Zero,
		TaxableWithdrawal:         decimal.Zero,
		GrossWithdrawal:           decimal.Zero,
		TaxesPaid:                 decimal.Zero,
		NetSpendingAvailable:      decimal.Zero,
		Shortfall:                 decimal.Zero,
		Growth:                    decimal.Zero,
		EndingTaxDeferredBalance:  decimal.Zero,
		EndingTaxFreeBalance:      decimal.Zero,
		EndingTaxableBalance:      decimal.Zero,
		EndingTotalBalance:        decimal.Zero,
		PercentOfBalanceWithdrawn: decimal.Zero,
		MonthlyNetSpending:        decimal.Zero,
		Depleted:                  true,
	}
}

// Engine runs configured scenarios and assembles reports. It holds no
// projection state, so one Engine may serve concurrent callers.
type Engine struct {
	Logger Logger
}

// NewEngine creates an engine with a no-op logger
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	e.Logger = loggerOrNop(l)
}

// RunScenario projects a single named parameter set
func (e *Engine) RunScenario(ctx context.Context, name string, params domain.ProjectionParameters) (*domain.ScenarioOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	projection, err := Project(params)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", name, err)
	}

	summary := Summarize(projection)
	log := loggerOrNop(e.Logger)
	log.Debugf("scenario %q: %d years, final balance %s, cumulative taxes %s",
		name, len(projection), summary.FinalBalance.StringFixed(2), summary.CumulativeTaxes.StringFixed(2))
	if summary.Depleted {
		log.Warnf("scenario %q: funds exhausted in year %d", name, summary.DepletionYear)
	}

	return &domain.ScenarioOutcome{
		Name:       name,
		Parameters: params,
		Projection: projection,
		Summary:    summary,
	}, nil
}

// RunScenarios projects every scenario in the configuration and returns a report
func (e *Engine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ProjectionReport, error) {
	scenarios := config.ResolvedScenarios()
	outcomes := make([]domain.ScenarioOutcome, 0, len(scenarios))

	for _, scenario := range scenarios {
		outcome, err := e.RunScenario(ctx, scenario.Name, config.ScenarioParameters(scenario))
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed: %w", err)
		}
		outcomes = append(outcomes, *outcome)
	}

	loggerOrNop(e.Logger).Infof("projected %d scenario(s)", len(outcomes))

	return &domain.ProjectionReport{
		ID:          reportIDFunc(),
		GeneratedAt: nowFunc(),
		Scenarios:   outcomes,
		Assumptions: config.Base.Assumptions(),
	}, nil
}

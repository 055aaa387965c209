package calculation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpgo/drawdown/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// singleAccountParams is the zero-income, single-account case: $1M tax-deferred, $40k spend, 13% tax
func singleAccountParams() domain.ProjectionParameters {
	return domain.ProjectionParameters{
		AnnualReturnRate:           decimal.Zero,
		AnnualInflationRate:        decimal.Zero,
		InitialYearlySpend:         dec("40000"),
		EffectiveTaxRate:           dec("0.13"),
		TaxableAccountTaxRate:      dec("0.15"),
		StartingTaxDeferredBalance: dec("1000000"),
		ProjectionYears:            1,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), append([]interface{}{fmt.Sprintf("want %s, got %s", want, got.String())}, msgAndArgs...)...)
}

func TestProject_SingleAccountDeductPolicy(t *testing.T) {
	result, err := Project(singleAccountParams())
	require.NoError(t, err)
	require.Len(t, result, 1)

	y := result[0]
	assert.Equal(t, 0, y.Index)
	assert.Equal(t, 0, y.Year)
	assertDecimal(t, "1000000", y.BeginningTotalBalance)
	assertDecimal(t, "40000", y.GrossWithdrawal)
	assertDecimal(t, "40000", y.TaxDeferredWithdrawal)
	assertDecimal(t, "5200", y.TaxesPaid)
	assertDecimal(t, "34800", y.NetSpendingAvailable)
	assertDecimal(t, "960000", y.EndingTaxDeferredBalance)
	assertDecimal(t, "960000", y.EndingTotalBalance)
	assertDecimal(t, "4", y.PercentOfBalanceWithdrawn)
	assertDecimal(t, "2900", y.MonthlyNetSpending)
	assert.True(t, y.Shortfall.IsZero())
	assert.False(t, y.Depleted)
}

func TestProject_SingleAccountGrossUpPolicy(t *testing.T) {
	params := singleAccountParams()
	params.TaxTreatment = domain.TaxGrossUp

	result, err := Project(params)
	require.NoError(t, err)
	require.Len(t, result, 1)

	y := result[0]
	assert.InDelta(t, 45977.01, y.GrossWithdrawal.InexactFloat64(), 0.01)
	assert.InDelta(t, 5977.01, y.TaxesPaid.InexactFloat64(), 0.01)
	assert.InDelta(t, 40000.00, y.NetSpendingAvailable.InexactFloat64(), 0.000001)
	assert.InDelta(t, 954022.99, y.EndingTaxDeferredBalance.InexactFloat64(), 0.01)
	assert.InDelta(t, 954022.99, y.EndingTotalBalance.InexactFloat64(), 0.01)
	assert.True(t, y.Shortfall.IsZero())
}

func TestProject_InsufficientBalanceSkipsWithdrawal(t *testing.T) {
	params := domain.ProjectionParameters{
		InitialYearlySpend:         dec("50000"),
		EffectiveTaxRate:           dec("0.13"),
		TaxableAccountTaxRate:      dec("0.15"),
		StartingTaxDeferredBalance: dec("10000"),
		ProjectionYears:            5,
	}

	result, err := Project(params)
	require.NoError(t, err)
	require.Len(t, result, 5)

	for _, y := range result {
		assert.True(t, y.GrossWithdrawal.IsZero(), "year %d should not withdraw", y.Index)
		assert.True(t, y.TaxesPaid.IsZero())
		assertDecimal(t, "10000", y.EndingTotalBalance)
		assertDecimal(t, "50000", y.Shortfall)
		assert.False(t, y.Depleted)
	}
}

func TestProject_DrainPolicyEmptiesAccountsThenDepletes(t *testing.T) {
	params := domain.ProjectionParameters{
		InitialYearlySpend:         dec("50000"),
		EffectiveTaxRate:           dec("0.13"),
		TaxableAccountTaxRate:      dec("0.15"),
		StartingTaxDeferredBalance: dec("10000"),
		ProjectionYears:            5,
		ShortfallPolicy:            domain.ShortfallDrain,
	}

	result, err := Project(params)
	require.NoError(t, err)
	require.Len(t, result, 5)

	first := result[0]
	assertDecimal(t, "10000", first.GrossWithdrawal)
	assertDecimal(t, "1300", first.TaxesPaid)
	assertDecimal(t, "8700", first.NetSpendingAvailable)
	assertDecimal(t, "40000", first.Shortfall)
	assert.True(t, first.EndingTotalBalance.IsZero())

	for _, y := range result[1:] {
		assert.True(t, y.Depleted, "year %d should be depleted", y.Index)
		assert.True(t, y.GrossWithdrawal.IsZero())
		assert.True(t, y.NetSpendingAvailable.IsZero())
		assert.True(t, y.EndingTotalBalance.IsZero())
	}
}

func TestProject_ExactExhaustionEntersDepletedState(t *testing.T) {
	params := domain.ProjectionParameters{
		InitialYearlySpend:         dec("10000"),
		StartingTaxDeferredBalance: dec("10000"),
		ProjectionYears:            3,
	}

	result, err := Project(params)
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.True(t, result[0].EndingTotalBalance.IsZero())
	assert.False(t, result[0].Depleted)
	assert.True(t, result[1].Depleted)
	assert.True(t, result[2].Depleted)
	assert.Equal(t, 1, result.DepletionIndex())
}

func TestProject_SkipPolicyCanRecoverWithGrowth(t *testing.T) {
	params := domain.ProjectionParameters{
		AnnualReturnRate:           dec("0.2"),
		InitialYearlySpend:         dec("50000"),
		StartingTaxDeferredBalance: dec("45000"),
		ProjectionYears:            2,
	}

	result, err := Project(params)
	require.NoError(t, err)
	assert.True(t, result[0].GrossWithdrawal.IsZero())
	assertDecimal(t, "54000", result[0].EndingTotalBalance)
	assertDecimal(t, "50000", result[1].GrossWithdrawal)
	assertDecimal(t, "4800", result[1].EndingTotalBalance)
}

func TestProject_WithdrawalOrder(t *testing.T) {
	params := domain.ProjectionParameters{
		InitialYearlySpend:         dec("60000"),
		EffectiveTaxRate:           dec("0.2"),
		TaxableAccountTaxRate:      dec("0.15"),
		StartingTaxDeferredBalance: dec("30000"),
		StartingTaxFreeBalance:     dec("20000"),
		StartingTaxableBalance:     dec("50000"),
		ProjectionYears:            1,
	}

	result, err := Project(params)
	require.NoError(t, err)
	y := result[0]
	assertDecimal(t, "30000", y.TaxDeferredWithdrawal)
	assertDecimal(t, "20000", y.TaxFreeWithdrawal)
	assertDecimal(t, "10000", y.TaxableWithdrawal)
	assertDecimal(t, "60000", y.GrossWithdrawal)
	assertDecimal(t, "7500", y.TaxesPaid)
	assert.True(t, y.EndingTaxDeferredBalance.IsZero())
	assert.True(t, y.EndingTaxFreeBalance.IsZero())
	assertDecimal(t, "40000", y.EndingTaxableBalance)
}

func TestProject_PartialTaxDeferredDrawLeavesRemainder(t *testing.T) {
	// A tax-deferred draw smaller than the need must not be treated as satisfying it
	params := domain.ProjectionParameters{
		InitialYearlySpend:         dec("25000"),
		TaxableAccountTaxRate:      dec("0.15"),
		StartingTaxDeferredBalance: dec("5000"),
		StartingTaxFreeBalance:     dec("100000"),
		ProjectionYears:            1,
	}

	result, err := Project(params)
	require.NoError(t, err)
	assertDecimal(t, "5000", result[0].TaxDeferredWithdrawal)
	assertDecimal(t, "20000", result[0].TaxFreeWithdrawal)
	assertDecimal(t, "25000", result[0].GrossWithdrawal)
}

func TestProject_GrossUpAcrossAccounts(t *testing.T) {
	params := domain.ProjectionParameters{
		InitialYearlySpend:         dec("60000"),
		EffectiveTaxRate:           dec("0.2"),
		TaxableAccountTaxRate:      dec("0.15"),
		StartingTaxDeferredBalance: dec("10000"),
		StartingTaxFreeBalance:     dec("20000"),
		StartingTaxableBalance:     dec("50000"),
		ProjectionYears:            1,
		TaxTreatment:               domain.TaxGrossUp,
	}

	result, err := Project(params)
	require.NoError(t, err)
	y := result[0]
	assertDecimal(t, "10000", y.TaxDeferredWithdrawal)
	assertDecimal(t, "20000", y.TaxFreeWithdrawal)
	assert.InDelta(t, 37647.06, y.TaxableWithdrawal.InexactFloat64(), 0.01)
	assert.InDelta(t, 60000, y.GrossWithdrawal.Sub(y.TaxesPaid).InexactFloat64(), 0.000001)
	assert.True(t, y.Shortfall.IsZero())
}

func TestProject_SpendingInflationAndOneTimeSpend(t *testing.T) {
	params := domain.ProjectionParameters{
		AnnualInflationRate:        dec("0.1"),
		InitialYearlySpend:         dec("10000"),
		OneTimeAdditionalSpend:     dec("5000"),
		StartingTaxDeferredBalance: dec("1000000"),
		ProjectionYears:            3,
	}

	result, err := Project(params)
	require.NoError(t, err)
	assertDecimal(t, "15000", result[0].SpendingNeed)
	assertDecimal(t, "11000", result[1].SpendingNeed, "one-time amount must not compound")
	assertDecimal(t, "12100", result[2].SpendingNeed)
	assertDecimal(t, "12100", result[2].GrossWithdrawal)
}

func TestProject_ExternalIncomeModes(t *testing.T) {
	base := domain.ProjectionParameters{
		AnnualInflationRate:        dec("0.1"),
		InitialYearlySpend:         dec("10000"),
		AnnualExternalIncome:       dec("4000"),
		StartingTaxDeferredBalance: dec("1000000"),
		ProjectionYears:            3,
	}

	t.Run("fixed income", func(t *testing.T) {
		result, err := Project(base)
		require.NoError(t, err)
		assertDecimal(t, "6000", result[0].NetCashNeed)
		assertDecimal(t, "7000", result[1].NetCashNeed)
		assertDecimal(t, "8100", result[2].NetCashNeed)
		assertDecimal(t, "4000", result[2].ExternalIncome)
		assertDecimal(t, "12100", result[2].NetSpendingAvailable)
	})

	t.Run("inflation adjusted income", func(t *testing.T) {
		params := base
		params.IncomeInflationAdjusted = true
		result, err := Project(params)
		require.NoError(t, err)
		assertDecimal(t, "6000", result[0].NetCashNeed)
		assertDecimal(t, "6600", result[1].NetCashNeed)
		assertDecimal(t, "7260", result[2].NetCashNeed)
		assertDecimal(t, "4840", result[2].ExternalIncome)
	})

	t.Run("income above spending", func(t *testing.T) {
		params := base
		params.AnnualExternalIncome = dec("20000")
		result, err := Project(params)
		require.NoError(t, err)
		assert.True(t, result[0].NetCashNeed.IsZero())
		assert.True(t, result[0].GrossWithdrawal.IsZero())
		assertDecimal(t, "20000", result[0].NetSpendingAvailable)
		assertDecimal(t, "1000000", result[0].EndingTotalBalance)
	})
}

func TestProject_GrowthAppliesAfterWithdrawal(t *testing.T) {
	params := domain.ProjectionParameters{
		AnnualReturnRate:           dec("0.05"),
		InitialYearlySpend:         dec("10000"),
		StartingTaxDeferredBalance: dec("100000"),
		StartingTaxFreeBalance:     dec("20000"),
		ProjectionYears:            2,
	}

	result, err := Project(params)
	require.NoError(t, err)
	assertDecimal(t, "94500", result[0].EndingTaxDeferredBalance)
	assertDecimal(t, "21000", result[0].EndingTaxFreeBalance)
	assertDecimal(t, "5500", result[0].Growth)
	assertDecimal(t, "115500", result[1].BeginningTotalBalance)
}

func TestProject_StartYearLabelsRecords(t *testing.T) {
	params := singleAccountParams()
	params.ProjectionYears = 3
	params.StartYear = 2026

	result, err := Project(params)
	require.NoError(t, err)
	assert.Equal(t, []int{2026, 2027, 2028}, []int{result[0].Year, result[1].Year, result[2].Year})
	assert.Equal(t, 2, result[2].Index)
}

func TestProject_InvalidParametersComputeNothing(t *testing.T) {
	params := singleAccountParams()
	params.ProjectionYears = 0

	result, err := Project(params)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrInvalidParameter))
}

// invariantCases covers both policies, growth, income and multi-account mixes
func invariantCases() map[string]domain.ProjectionParameters {
	cases := map[string]domain.ProjectionParameters{
		"steady drawdown": {
			AnnualReturnRate: dec("0.05"), AnnualInflationRate: dec("0.03"),
			InitialYearlySpend: dec("60000"), EffectiveTaxRate: dec("0.22"), TaxableAccountTaxRate: dec("0.15"),
			StartingTaxDeferredBalance: dec("600000"), StartingTaxFreeBalance: dec("150000"), StartingTaxableBalance: dec("250000"),
			ProjectionYears: 40, AnnualExternalIncome: dec("18000"),
		},
		"fast depletion drain gross up": {
			AnnualReturnRate: dec("0.02"), AnnualInflationRate: dec("0.04"),
			InitialYearlySpend: dec("90000"), OneTimeAdditionalSpend: dec("30000"), EffectiveTaxRate: dec("0.3"), TaxableAccountTaxRate: dec("0.15"),
			StartingTaxDeferredBalance: dec("200000"), StartingTaxFreeBalance: dec("50000"), StartingTaxableBalance: dec("75000"),
			ProjectionYears: 25, TaxTreatment: domain.TaxGrossUp, ShortfallPolicy: domain.ShortfallDrain,
		},
		"skip policy with growth": {
			AnnualReturnRate: dec("0.12"), AnnualInflationRate: dec("0.02"),
			InitialYearlySpend: dec("45000"), EffectiveTaxRate: dec("0.1"), TaxableAccountTaxRate: dec("0.15"),
			StartingTaxableBalance: dec("150000"), ProjectionYears: 50,
		},
		"inflation adjusted income": {
			AnnualReturnRate: dec("0.04"), AnnualInflationRate: dec("0.025"),
			InitialYearlySpend: dec("70000"), EffectiveTaxRate: dec("0.18"), TaxableAccountTaxRate: dec("0.15"),
			StartingTaxDeferredBalance: dec("400000"), StartingTaxFreeBalance: dec("100000"),
			ProjectionYears: 35, AnnualExternalIncome: dec("30000"), IncomeInflationAdjusted: true,
			ShortfallPolicy: domain.ShortfallDrain,
		},
	}
	return cases
}

func TestProject_Invariants(t *testing.T) {
	for name, params := range invariantCases() {
		t.Run(name, func(t *testing.T) {
			result, err := Project(params)
			require.NoError(t, err)
			require.Len(t, result, params.ProjectionYears)

			exhausted := false
			for i, y := range result {
				// Non-negativity
				for label, v := range map[string]decimal.Decimal{
					"beginning": y.BeginningTotalBalance, "gross": y.GrossWithdrawal, "taxes": y.TaxesPaid,
					"net": y.NetSpendingAvailable, "td": y.EndingTaxDeferredBalance, "tf": y.EndingTaxFreeBalance,
					"tx": y.EndingTaxableBalance, "total": y.EndingTotalBalance, "shortfall": y.Shortfall,
					"monthly": y.MonthlyNetSpending, "percent": y.PercentOfBalanceWithdrawn,
				} {
					assert.False(t, v.IsNegative(), "year %d %s negative: %s", i, label, v)
				}

				// Carry-forward
				if i > 0 {
					assert.True(t, y.BeginningTotalBalance.Equal(result[i-1].EndingTotalBalance),
						"year %d beginning %s != previous ending %s", i, y.BeginningTotalBalance, result[i-1].EndingTotalBalance)
				}

				// Depletion floor
				if exhausted {
					assert.True(t, y.EndingTotalBalance.IsZero(), "year %d should stay empty", i)
					assert.True(t, y.GrossWithdrawal.IsZero())
					assert.True(t, y.TaxesPaid.IsZero())
					assert.True(t, y.NetSpendingAvailable.IsZero())
				}
				if y.EndingTotalBalance.IsZero() {
					exhausted = true
				}

				// Flat-rate tax is exact
				wantTax := y.TaxDeferredWithdrawal.Mul(params.EffectiveTaxRate).Add(y.TaxableWithdrawal.Mul(params.TaxableAccountTaxRate))
				assert.True(t, y.TaxesPaid.Equal(wantTax), "year %d tax %s != %s", i, y.TaxesPaid, wantTax)

				// Totals agree with their parts
				assert.True(t, y.GrossWithdrawal.Equal(y.TaxDeferredWithdrawal.Add(y.TaxFreeWithdrawal).Add(y.TaxableWithdrawal)))
				assert.True(t, y.EndingTotalBalance.Equal(y.EndingTaxDeferredBalance.Add(y.EndingTaxFreeBalance).Add(y.EndingTaxableBalance)))
			}
		})
	}
}

func TestProject_TaxDeferredDrawnFirst(t *testing.T) {
	for name, params := range invariantCases() {
		t.Run(name, func(t *testing.T) {
			result, err := Project(params)
			require.NoError(t, err)

			prevTD := params.StartingTaxDeferredBalance
			for _, y := range result {
				if prevTD.IsPositive() && y.NetCashNeed.IsPositive() && y.GrossWithdrawal.IsPositive() {
					assert.True(t, y.TaxDeferredWithdrawal.IsPositive(), "year %d skipped tax-deferred", y.Index)
					if y.TaxDeferredWithdrawal.LessThan(prevTD) {
						assert.True(t, y.TaxFreeWithdrawal.IsZero(), "year %d touched tax-free before tax-deferred was empty", y.Index)
						assert.True(t, y.TaxableWithdrawal.IsZero(), "year %d touched taxable before tax-deferred was empty", y.Index)
					}
				}
				prevTD = y.EndingTaxDeferredBalance
			}
		})
	}
}

func TestProject_Idempotent(t *testing.T) {
	for name, params := range invariantCases() {
		t.Run(name, func(t *testing.T) {
			first, err := Project(params)
			require.NoError(t, err)
			second, err := Project(params)
			require.NoError(t, err)
			require.Len(t, second, len(first))
			for i := range first {
				assert.True(t, first[i].EndingTotalBalance.Equal(second[i].EndingTotalBalance))
				assert.True(t, first[i].GrossWithdrawal.Equal(second[i].GrossWithdrawal))
				assert.True(t, first[i].TaxesPaid.Equal(second[i].TaxesPaid))
				assert.True(t, first[i].NetSpendingAvailable.Equal(second[i].NetSpendingAvailable))
				assert.Equal(t, first[i].Depleted, second[i].Depleted)
			}
		})
	}
}

type recordingLogger struct {
	NopLogger
	warnings []string
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func TestEngine_RunScenarios(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	SetNowFunc(func() time.Time { return fixed })
	SetReportIDFunc(func() string { return "report-1" })
	defer SetNowFunc(time.Now)
	defer SetReportIDFunc(uuid.NewString)

	spend := dec("120000")
	drain := domain.ShortfallDrain
	cfg := &domain.Configuration{
		Base: singleAccountParams(),
		Scenarios: []domain.Scenario{
			{Name: "Baseline"},
			{Name: "Lavish", Overrides: domain.ScenarioOverrides{InitialYearlySpend: &spend, ShortfallPolicy: &drain}},
		},
	}
	cfg.Base.ProjectionYears = 10

	engine := NewEngine()
	logger := &recordingLogger{}
	engine.SetLogger(logger)

	report, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "report-1", report.ID)
	assert.Equal(t, fixed, report.GeneratedAt)
	require.Len(t, report.Scenarios, 2)
	assert.Equal(t, "Baseline", report.Scenarios[0].Name)
	assert.Len(t, report.Scenarios[0].Projection, 10)
	assertDecimal(t, "120000", report.Scenarios[1].Parameters.InitialYearlySpend)
	assert.NotEmpty(t, report.Assumptions)

	// 1,000,000 / 120,000 is drained in year 8 and empty from year 9
	assert.True(t, report.Scenarios[1].Summary.Depleted)
	assert.Equal(t, 9, report.Scenarios[1].Summary.DepletionYear)
	assert.False(t, report.Scenarios[0].Summary.Depleted)
	assert.Len(t, logger.warnings, 1)
	assert.Contains(t, logger.warnings[0], "Lavish")
}

func TestEngine_RunScenarioErrors(t *testing.T) {
	engine := NewEngine()

	params := singleAccountParams()
	params.EffectiveTaxRate = dec("0.9")
	_, err := engine.RunScenario(context.Background(), "Greedy tax", params)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidParameter))
	assert.Contains(t, err.Error(), "Greedy tax")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.RunScenario(ctx, "Cancelled", singleAccountParams())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_SetLoggerNil(t *testing.T) {
	engine := NewEngine()
	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}

func TestEngine_ZeroValueRuns(t *testing.T) {
	var engine Engine
	outcome, err := engine.RunScenario(context.Background(), "Bare", singleAccountParams())
	require.NoError(t, err)
	assert.Equal(t, "Bare", outcome.Name)
}

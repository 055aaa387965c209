package integration

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/rpgo/drawdown/internal/calculation"
	"github.com/rpgo/drawdown/internal/config"
	"github.com/rpgo/drawdown/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputGeneration(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)

	engine := calculation.NewEngine()
	results, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)

	console, err := output.Render(results, "console")
	require.NoError(t, err)
	assert.Contains(t, string(console), "Recommended: Baseline")

	dir := t.TempDir()
	for _, format := range []string{"json", "csv", "detailed-csv", "html"} {
		paths, err := output.GenerateReport(results, format, dir)
		require.NoError(t, err, format)
		require.Len(t, paths, 1)
		info, err := os.Stat(paths[0])
		require.NoError(t, err)
		assert.Positive(t, info.Size(), format)
	}
}

func TestBasicCalculations(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)

	results, err := calculation.NewEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)

	for _, scenario := range results.Scenarios {
		first := scenario.Projection[0]
		// deduct mode withdraws exactly the cash need while funds last
		assert.True(t, first.GrossWithdrawal.Equal(first.NetCashNeed), scenario.Name)
		assert.True(t, scenario.Summary.FirstYearMonthlyNet.IsPositive(), scenario.Name)
		assert.True(t, scenario.Summary.CumulativeTaxes.IsPositive(), scenario.Name)
	}
}

func TestSweepAndSustainableSpend(t *testing.T) {
	cfg, err := config.NewInputParser().LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)
	base := cfg.ScenarioParameters(cfg.Scenarios[0])

	sweep, err := calculation.Sweep(context.Background(), base, calculation.SweepSpec{
		Parameter: "initial_yearly_spend",
		Min:       base.InitialYearlySpend,
		Max:       decimal.NewFromInt(120000),
		Steps:     3,
	})
	require.NoError(t, err)
	require.Len(t, sweep.Points, 3)
	assert.True(t, sweep.FinalBalanceHigh.Equal(sweep.Points[0].Summary.FinalBalance))

	csv, err := output.FormatSweep(sweep, "csv")
	require.NoError(t, err)
	assert.Equal(t, 4, len(strings.Split(strings.TrimSpace(string(csv)), "\n")))

	spend, err := calculation.SustainableSpend(base, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.True(t, spend.MaxInitialYearlySpend.GreaterThan(base.InitialYearlySpend))
	assert.Contains(t, output.FormatSustainableSpend(spend, base.ProjectionYears), "funded for 30 years")
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/drawdown/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"plan.yaml":       FormatYAML,
		"plan.YML":        FormatYAML,
		"dir/plan.toml":   FormatTOML,
		"/abs/plan.json":  FormatJSON,
		"plan.backup.yml": FormatYAML,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("plan.ini")
	assert.Error(t, err)
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := writeTemp(t, "plan.yaml", `base:
  annual_return_rate: 0.05
  annual_inflation_rate: 0.03
  initial_yearly_spend: 60000
  effective_tax_rate: 0.2
  starting_tax_deferred_balance: 500000
  starting_tax_free_balance: "100000"
  projection_years: 25
  annual_external_income: 20000
scenarios:
  - name: Baseline
  - name: Lean
    overrides:
      initial_yearly_spend: 45000
      shortfall_policy: drain
`)

	parser := NewInputParser()
	config, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, config.Base.AnnualReturnRate.Equal(decimal.RequireFromString("0.05")))
	assert.True(t, config.Base.StartingTaxFreeBalance.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, 25, config.Base.ProjectionYears)

	// Omitted fields keep their defaults
	assert.True(t, config.Base.TaxableAccountTaxRate.Equal(domain.DefaultTaxableAccountTaxRate))
	assert.Equal(t, domain.TaxDeduct, config.Base.TaxTreatment)

	require.Len(t, config.Scenarios, 2)
	lean := config.ScenarioParameters(config.Scenarios[1])
	assert.True(t, lean.InitialYearlySpend.Equal(decimal.NewFromInt(45000)))
	assert.Equal(t, domain.ShortfallDrain, lean.ShortfallPolicy)
	assert.True(t, lean.AnnualReturnRate.Equal(config.Base.AnnualReturnRate))
}

func TestLoadFromFile_TOML(t *testing.T) {
	path := writeTemp(t, "plan.toml", `[base]
annual_return_rate = 0.06
initial_yearly_spend = 40000
effective_tax_rate = 0.13
starting_tax_deferred_balance = 1000000
projection_years = 20
tax_treatment = "gross_up"

[[scenarios]]
name = "Baseline"

[[scenarios]]
name = "Short Horizon"
[scenarios.overrides]
projection_years = 10

[report]
formats = ["csv", "json"]
output_dir = "reports"
`)

	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, config.Base.AnnualReturnRate.Equal(decimal.RequireFromString("0.06")))
	assert.Equal(t, domain.TaxGrossUp, config.Base.TaxTreatment)
	require.Len(t, config.Scenarios, 2)
	assert.Equal(t, 10, config.ScenarioParameters(config.Scenarios[1]).ProjectionYears)
	assert.Equal(t, []string{"csv", "json"}, config.Report.Formats)
	assert.Equal(t, "reports", config.Report.OutputDir)
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := writeTemp(t, "plan.json", `{
  "base": {
    "initial_yearly_spend": 30000,
    "starting_taxable_balance": "400000",
    "projection_years": 15,
    "start_year": 2027
  }
}`)

	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2027, config.Base.StartYear)
	assert.True(t, config.Base.StartingTaxableBalance.Equal(decimal.NewFromInt(400000)))
	assert.Empty(t, config.Scenarios)
	assert.Equal(t, "Base", config.ResolvedScenarios()[0].Name)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	path := writeTemp(t, "bad.yaml", "base:\n\tinitial_yearly_spend: [not, a, number\n")

	config, err := NewInputParser().LoadFromFile(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_InvalidTOML(t *testing.T) {
	path := writeTemp(t, "bad.toml", "[base\ninitial_yearly_spend = \n")

	_, err := NewInputParser().LoadFromFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestLoadFromFile_UnknownJSONField(t *testing.T) {
	path := writeTemp(t, "bad.json", `{"base": {"initial_yearly_spend": 1, "starting_tax_free_balance": 10, "favourite_colour": "green"}}`)

	_, err := NewInputParser().LoadFromFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON")
}

func TestLoadFromFile_ValidationFailure(t *testing.T) {
	path := writeTemp(t, "invalid.yaml", `base:
  initial_yearly_spend: 40000
  effective_tax_rate: 0.9
  starting_tax_deferred_balance: 100000
`)

	_, err := NewInputParser().LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.True(t, errors.Is(err, domain.ErrInvalidParameter))
}

func TestValidateConfiguration_Success(t *testing.T) {
	parser := NewInputParser()
	assert.NoError(t, parser.ValidateConfiguration(parser.CreateExampleConfiguration()))
}

func TestValidateConfiguration_ScenarioProblems(t *testing.T) {
	parser := NewInputParser()
	badYears := 0

	config := parser.CreateExampleConfiguration()
	config.Scenarios = []domain.Scenario{
		{Name: "Baseline"},
		{Name: "Baseline"},
		{Name: "  "},
		{Name: "Broken", Overrides: domain.ScenarioOverrides{ProjectionYears: &badYears}},
	}

	err := parser.ValidateConfiguration(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate scenario name "Baseline"`)
	assert.Contains(t, err.Error(), "scenario 2: name is required")
	assert.Contains(t, err.Error(), `scenario "Broken": projection_years`)
	assert.True(t, errors.Is(err, domain.ErrInvalidParameter))
}

func TestValidateConfiguration_OverrideCanFixBase(t *testing.T) {
	parser := NewInputParser()
	balance := decimal.NewFromInt(250000)

	config := &domain.Configuration{
		Base:      domain.DefaultParameters(),
		Scenarios: []domain.Scenario{{Name: "Funded", Overrides: domain.ScenarioOverrides{StartingTaxFreeBalance: &balance}}},
	}
	assert.NoError(t, parser.ValidateConfiguration(config))
}

func TestCreateExampleConfiguration(t *testing.T) {
	config := NewInputParser().CreateExampleConfiguration()

	assert.Len(t, config.Scenarios, 4)
	assert.True(t, config.Base.TotalStartingBalance().Equal(decimal.NewFromInt(1250000)))
	assert.Equal(t, "Baseline", config.Scenarios[0].Name)

	_, ok := config.FindScenario("Conservative Returns")
	assert.True(t, ok)
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	original := parser.CreateExampleConfiguration()

	for _, name := range []string{"example.yaml", "example.toml", "example.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, parser.SaveToFile(original, path))

			loaded, err := parser.LoadFromFile(path)
			require.NoError(t, err)
			require.Len(t, loaded.Scenarios, len(original.Scenarios))

			for i, s := range original.Scenarios {
				assert.Equal(t, s.Name, loaded.Scenarios[i].Name)
				want := original.ScenarioParameters(s)
				got := loaded.ScenarioParameters(loaded.Scenarios[i])
				assert.True(t, want.InitialYearlySpend.Equal(got.InitialYearlySpend), s.Name)
				assert.True(t, want.AnnualReturnRate.Equal(got.AnnualReturnRate), s.Name)
				assert.Equal(t, want.TaxTreatment, got.TaxTreatment, s.Name)
				assert.Equal(t, want.ShortfallPolicy, got.ShortfallPolicy, s.Name)
				assert.Equal(t, want.IncomeInflationAdjusted, got.IncomeInflationAdjusted, s.Name)
			}
		})
	}
}

func TestSaveToFile_UnsupportedExtension(t *testing.T) {
	parser := NewInputParser()
	err := parser.SaveToFile(parser.CreateExampleConfiguration(), filepath.Join(t.TempDir(), "plan.xml"))
	assert.Error(t, err)
}

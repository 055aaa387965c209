package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rpgo/drawdown/internal/calculation"
	"github.com/rpgo/drawdown/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Supported configuration file formats
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// FormatFromPath picks the configuration format from a file extension
func FormatFromPath(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported configuration file extension %q (use .yaml, .yml, .toml or .json)", filepath.Ext(filename))
	}
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML, TOML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	format, err := FormatFromPath(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	return ip.Parse(data, format)
}

// Parse decodes and validates configuration data. Fields absent from the data
// keep the values of domain.DefaultParameters.
func (ip *InputParser) Parse(data []byte, format string) (*domain.Configuration, error) {
	config := domain.Configuration{Base: domain.DefaultParameters()}

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &config); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration format %q", format)
	}

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration. Every scenario is
// resolved against the base and checked; all problems are returned together.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	var errs []error
	seen := make(map[string]bool)

	for i, scenario := range config.ResolvedScenarios() {
		if strings.TrimSpace(scenario.Name) == "" {
			errs = append(errs, fmt.Errorf("scenario %d: name is required", i))
			continue
		}
		if seen[scenario.Name] {
			errs = append(errs, fmt.Errorf("duplicate scenario name %q", scenario.Name))
			continue
		}
		seen[scenario.Name] = true

		if err := calculation.ValidateParameters(config.ScenarioParameters(scenario)); err != nil {
			errs = append(errs, fmt.Errorf("scenario %q: %w", scenario.Name, err))
		}
	}

	return errors.Join(errs...)
}

// SaveToFile writes config in the format implied by the file extension
func (ip *InputParser) SaveToFile(config *domain.Configuration, filename string) error {
	format, err := FormatFromPath(filename)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(config); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(config); err != nil {
			return fmt.Errorf("failed to encode TOML: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(config); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	higherSpend := decimal.NewFromInt(85000)
	lowReturn := decimal.NewFromFloat(0.035)
	grossUp := domain.TaxGrossUp
	drain := domain.ShortfallDrain
	indexedIncome := true

	base := domain.DefaultParameters()
	base.AnnualReturnRate = decimal.NewFromFloat(0.055)
	base.AnnualInflationRate = decimal.NewFromFloat(0.025)
	base.InitialYearlySpend = decimal.NewFromInt(70000)
	base.OneTimeAdditionalSpend = decimal.NewFromInt(25000) // new roof in the first year
	base.EffectiveTaxRate = decimal.NewFromFloat(0.18)
	base.StartingTaxDeferredBalance = decimal.NewFromInt(850000)
	base.StartingTaxFreeBalance = decimal.NewFromInt(150000)
	base.StartingTaxableBalance = decimal.NewFromInt(250000)
	base.AnnualExternalIncome = decimal.NewFromInt(24000)
	base.ProjectionYears = 30

	return &domain.Configuration{
		Base: base,
		Scenarios: []domain.Scenario{
			{Name: "Baseline"},
			{
				Name: "Higher Spending",
				Overrides: domain.ScenarioOverrides{
					InitialYearlySpend: &higherSpend,
					ShortfallPolicy:    &drain,
				},
			},
			{
				Name: "Conservative Returns",
				Overrides: domain.ScenarioOverrides{
					AnnualReturnRate: &lowReturn,
				},
			},
			{
				Name: "Gross-Up Taxes, Indexed Income",
				Overrides: domain.ScenarioOverrides{
					TaxTreatment:            &grossUp,
					IncomeInflationAdjusted: &indexedIncome,
				},
			},
		},
		Report: domain.ReportSettings{
			Formats: []string{"console"},
		},
	}
}

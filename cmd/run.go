package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/drawdown/internal/config"
	"github.com/rpgo/drawdown/internal/domain"
)

var flagScenario string

var runCmd = &cobra.Command{
	Use:   "run <config-file>",
	Short: "Project every scenario in a YAML, TOML or JSON configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&flagScenario, "scenario", "s", "", "Only project the named scenario")
	runCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the run summary in the history database")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(args[0], flagScenario)
	if err != nil {
		return err
	}
	report, err := newEngine(cmd).RunScenarios(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if err := emitReport(cmd, report, reportFormats(cmd, cfg.Report), reportDir(cmd, cfg.Report)); err != nil {
		return err
	}
	return recordRun(cmd, report, args[0])
}

// loadConfiguration reads and validates a configuration file, optionally
// narrowing it to a single scenario.
func loadConfiguration(path, scenario string) (*domain.Configuration, error) {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if scenario == "" {
		return cfg, nil
	}
	s, ok := cfg.FindScenario(scenario)
	if !ok {
		names := make([]string, 0, len(cfg.ResolvedScenarios()))
		for _, r := range cfg.ResolvedScenarios() {
			names = append(names, r.Name)
		}
		return nil, fmt.Errorf("scenario %q not found in %s (available: %v)", scenario, path, names)
	}
	cfg.Scenarios = []domain.Scenario{s}
	return cfg, nil
}

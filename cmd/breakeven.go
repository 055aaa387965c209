package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/drawdown/internal/calculation"
	"github.com/rpgo/drawdown/internal/output"
	"github.com/rpgo/drawdown/pkg/money"
)

var breakevenTolerance string

var breakevenCmd = &cobra.Command{
	Use:   "breakeven <config-file>",
	Short: "Find the largest first-year spend every scenario year can fund",
	Args:  cobra.ExactArgs(1),
	RunE:  runBreakeven,
}

func init() {
	breakevenCmd.Flags().StringVar(&breakevenTolerance, "tolerance", "1", "Search precision in currency units")
	breakevenCmd.Flags().StringVarP(&flagScenario, "scenario", "s", "", "Scenario to solve (defaults to the first)")
	rootCmd.AddCommand(breakevenCmd)
}

func runBreakeven(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(args[0], flagScenario)
	if err != nil {
		return err
	}
	tolerance, err := money.ParseAmount(breakevenTolerance)
	if err != nil {
		return fmt.Errorf("--tolerance: %w", err)
	}
	params := cfg.ScenarioParameters(cfg.ResolvedScenarios()[0])
	result, err := calculation.SustainableSpend(params, tolerance)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), output.FormatSustainableSpend(result, params.ProjectionYears))
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/drawdown/internal/calculation"
	"github.com/rpgo/drawdown/internal/output"
	"github.com/rpgo/drawdown/pkg/money"
)

var (
	sweepParameter string
	sweepMin       string
	sweepMax       string
	sweepSteps     int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep <config-file>",
	Short: "Vary one parameter across a range and compare the outcomes",
	Long: fmt.Sprintf("Re-project one scenario for evenly spaced values of a single parameter.\nSupported parameters: %v",
		calculation.SweepParameters()),
	Args: cobra.ExactArgs(1),
	RunE: runSweep,
}

func init() {
	f := sweepCmd.Flags()
	f.StringVarP(&sweepParameter, "parameter", "p", "annual_return_rate", "Parameter to vary")
	f.StringVar(&sweepMin, "min", "0.03", "Lowest value (rates accept 3%)")
	f.StringVar(&sweepMax, "max", "0.07", "Highest value")
	f.IntVar(&sweepSteps, "steps", 5, "Number of evenly spaced values")
	f.StringVarP(&flagScenario, "scenario", "s", "", "Scenario to sweep (defaults to the first)")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(args[0], flagScenario)
	if err != nil {
		return err
	}
	parse := money.ParseAmount
	if isRateParameter(sweepParameter) {
		parse = money.ParseRate
	}
	lo, err := parse(sweepMin)
	if err != nil {
		return fmt.Errorf("--min: %w", err)
	}
	hi, err := parse(sweepMax)
	if err != nil {
		return fmt.Errorf("--max: %w", err)
	}

	base := cfg.ScenarioParameters(cfg.ResolvedScenarios()[0])
	result, err := calculation.Sweep(cmd.Context(), base, calculation.SweepSpec{
		Parameter: sweepParameter,
		Min:       lo,
		Max:       hi,
		Steps:     sweepSteps,
	})
	if err != nil {
		return err
	}

	format := "console"
	if formats := splitFormats(flagFormat); len(formats) > 0 {
		format = formats[0]
	}
	data, err := output.FormatSweep(result, format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func isRateParameter(name string) bool {
	switch name {
	case "annual_return_rate", "annual_inflation_rate", "effective_tax_rate":
		return true
	}
	return false
}

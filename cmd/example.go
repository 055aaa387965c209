package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/drawdown/internal/config"
)

var exampleCmd = &cobra.Command{
	Use:   "example [path]",
	Short: "Write an example configuration (format chosen by extension)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExample,
}

func init() {
	rootCmd.AddCommand(exampleCmd)
}

func runExample(cmd *cobra.Command, args []string) error {
	path := "example_config.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	parser := config.NewInputParser()
	if err := parser.SaveToFile(parser.CreateExampleConfiguration(), path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", path)
	return nil
}

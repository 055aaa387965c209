package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/drawdown/internal/domain"
	"github.com/rpgo/drawdown/internal/output"
	"github.com/rpgo/drawdown/internal/store"
)

// emitReport prints terminal formats to stdout and writes the rest to dir
func emitReport(cmd *cobra.Command, report *domain.ProjectionReport, formats []string, dir string) error {
	if len(formats) == 0 {
		formats = []string{"console"}
	}
	if err := output.ValidateFormatNames(formats); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, format := range formats {
		switch name := output.NormalizeFormatName(format); name {
		case "console", "console-verbose":
			data, err := output.Render(report, name)
			if err != nil {
				return err
			}
			if _, err := out.Write(data); err != nil {
				return err
			}
		default:
			paths, err := output.GenerateReport(report, name, dir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintf(out, "Report written: %s\n", p)
			}
		}
	}
	return nil
}

// reportFormats picks --format when given, then the configuration's report
// settings, then DRAWDOWN_FORMAT or the flag default.
func reportFormats(cmd *cobra.Command, settings domain.ReportSettings) []string {
	if !cmd.Flags().Changed("format") && len(settings.Formats) > 0 {
		return settings.Formats
	}
	return splitFormats(flagFormat)
}

// reportDir resolves the output directory the same way as reportFormats
func reportDir(cmd *cobra.Command, settings domain.ReportSettings) string {
	if !cmd.Flags().Changed("output-dir") && settings.OutputDir != "" {
		return settings.OutputDir
	}
	return flagOutputDir
}

// recordRun stores the report in the history database when --record is set
func recordRun(cmd *cobra.Command, report *domain.ProjectionReport, source string) error {
	if !flagRecord {
		return nil
	}
	history, err := store.Open(flagHistory)
	if err != nil {
		return err
	}
	defer func() { _ = history.Close() }()

	if err := history.SaveReport(report, source); err != nil {
		return fmt.Errorf("recording run %s: %w", report.ID, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Recorded run %s in %s\n", report.ID, flagHistory)
	return nil
}

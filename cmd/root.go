package cmd

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rpgo/drawdown/internal/calculation"
	"github.com/rpgo/drawdown/internal/store"
)

// Environment variables consulted when the matching flag is not set
const (
	envFormat    = "DRAWDOWN_FORMAT"
	envOutputDir = "DRAWDOWN_OUTPUT_DIR"
	envHistory   = "DRAWDOWN_HISTORY"
	envFile      = ".env"
)

var (
	flagVerbose   bool
	flagFormat    string
	flagOutputDir string
	flagEnvFile   string
	flagHistory   string
	flagRecord    bool
)

var rootCmd = &cobra.Command{
	Use:   "drawdown",
	Short: "Retirement drawdown projection engine",
	Long: "Project year-by-year withdrawals from tax-deferred, tax-free and taxable accounts,\n" +
		"compare scenarios and find the spending level a portfolio can sustain.",
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvironment,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log engine progress to stderr")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "console", "Report format(s), comma separated (console, console-verbose, csv, detailed-csv, html, json, all)")
	rootCmd.PersistentFlags().StringVarP(&flagOutputDir, "output-dir", "o", "reports", "Directory for file reports")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", envFile, "Dotenv file with DRAWDOWN_* defaults")
	rootCmd.PersistentFlags().StringVar(&flagHistory, "history", store.DefaultPath(), "SQLite run history database")
}

// loadEnvironment reads the dotenv file, if present, and lets DRAWDOWN_* variables
// fill in flags the user did not pass explicitly.
func loadEnvironment(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(flagEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	flags := cmd.Flags()
	if v := strings.TrimSpace(os.Getenv(envFormat)); v != "" && !flags.Changed("format") {
		flagFormat = v
	}
	if v := strings.TrimSpace(os.Getenv(envOutputDir)); v != "" && !flags.Changed("output-dir") {
		flagOutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv(envHistory)); v != "" && !flags.Changed("history") {
		flagHistory = v
	}
	return nil
}

// newEngine builds an engine that logs to stderr when --verbose is set
func newEngine(cmd *cobra.Command) *calculation.Engine {
	engine := calculation.NewEngine()
	engine.SetLogger(newStderrLogger(cmd.ErrOrStderr(), flagVerbose))
	return engine
}

// splitFormats turns "console, csv" into ["console", "csv"]
func splitFormats(value string) []string {
	var formats []string
	for _, f := range strings.Split(value, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

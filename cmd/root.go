// =============================================================================
// PO Payment Dashboard - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (podash)
//   ├── reportCmd  (podash report)
//   ├── exportCmd  (podash export)
//   ├── serveCmd   (podash serve)
//   └── versionCmd (podash version)
//
// The root command owns the global flags (--config, --verbose), loads the
// configuration through viper and installs the global zap logger before any
// subcommand runs.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/po-payment-dashboard/internal/config"
)

// =============================================================================
// GLOBAL STATE
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose forces debug logging when set to true.
var verbose bool

// cfg is the loaded application configuration, available to all commands
// after PersistentPreRunE.
var cfg *config.Config

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "podash",
	Short: "PO Payment Dashboard - filter, summarize and export purchase-order payment status",
	Long: `PO Payment Dashboard loads a purchase-order workbook, derives a payment
status for every line item from its GR and IR quantities, filters the rows by
text and date criteria, and reports two monetary totals over the result.

Key Features:
  - Four-way payment status derivation from GR/IR quantities
  - Case-insensitive substring and keyword filters, inclusive date range
  - Actual vs. pending payment totals in the reporting currency
  - Lossless CSV export of the filtered view (PO_Report.csv)
  - HTTP dashboard API with a TTL-cached record set

Example Usage:
  podash report --mr MR-102 --short-text "antenna cable"
  podash export --date-from 2024-01-01 --date-to 2024-06-30
  podash serve --port 8080`,

	PersistentPreRunE: initialize,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// initialize loads the configuration and installs the global logger. It
// runs before every subcommand.
func initialize(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c

	logger, err := cfg.BuildLogger(verbose)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)

	return nil
}

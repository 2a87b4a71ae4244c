// =============================================================================
// PO Payment Dashboard - Main Entry Point
// =============================================================================
//
// This is the main entry point for the PO Payment Dashboard CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   podash report        - Print the filtered purchase-order table and totals
//   podash export        - Export the filtered table as PO_Report.csv
//   podash serve         - Start the HTTP dashboard API
//   podash version       - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/po-payment-dashboard/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}

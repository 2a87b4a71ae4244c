// =============================================================================
// PO Payment Dashboard - Report Command
// =============================================================================
//
// This file defines the 'report' command, which runs the pipeline once and
// prints the filtered table with the two payment totals.
//
// COMMAND USAGE:
//   podash report [filter flags]
//
// PIPELINE:
//   1. Load the workbook (sheet MasterData) into typed, classified records
//   2. Apply the filter criteria from flags or a criteria file
//   3. Print the surviving rows, visible columns only
//   4. Print the actual and pending payment totals
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/po-payment-dashboard/internal/pipeline"
	"github.com/ginjaninja78/po-payment-dashboard/internal/summary"
	"github.com/ginjaninja78/po-payment-dashboard/internal/types"
)

// reportCmd represents the 'report' command.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the filtered purchase-order table and payment totals",
	Long: `The report command loads the purchase-order workbook, derives the payment
status of every line item, applies the given filter criteria and prints the
result as a table followed by the two payment totals.

An empty result is not an error: the table prints header-only and both
totals are 0.00.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport()
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	addCriteriaFlags(reportCmd)
}

// runReport executes one pipeline run and renders it to stdout.
func runReport() error {
	criteria, err := buildCriteria()
	if err != nil {
		return err
	}

	table, err := loadTable()
	if err != nil {
		return err
	}

	result := pipeline.Run(table, criteria)

	printTable(result.Table, result.Filtered)
	printSummary(result)
	return nil
}

// printTable renders the visible columns of the filtered rows.
func printTable(table *types.Table, records []types.Record) {
	columns := table.VisibleColumns()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(columns, "\t"))

	cells := make([]string, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			cells[i] = rec.DisplayValue(col)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
}

// printSummary renders the run totals and statistics.
func printSummary(result *pipeline.Result) {
	fmt.Println()
	fmt.Printf("%s: %s\n", summary.ActualLabel, summary.FormatCurrency(result.Summary.ActualPaymentTotal))
	fmt.Printf("%s: %s\n", summary.PendingLabel, summary.FormatCurrency(result.Summary.PendingPaymentTotal))

	if len(result.MatchedKeywords) > 0 {
		fmt.Printf("Matched keywords: %s\n", strings.Join(result.MatchedKeywords, ", "))
	}

	fmt.Printf("\nRows: %d of %d (elapsed %s)\n",
		result.Stats.RowsFiltered, result.Stats.RowsLoaded, result.Stats.Elapsed)
}

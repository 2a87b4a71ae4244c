// =============================================================================
// PO Payment Dashboard - Export Command
// =============================================================================
//
// This file defines the 'export' command, which runs the pipeline once and
// writes the filtered table as a CSV artifact (PO_Report.csv by default).
//
// COMMAND USAGE:
//   podash export [filter flags] [--output path] [--archive]
//
// EXPORT BEHAVIOR:
//   - The export carries every display column, hidden ones included, and
//     keeps raw numeric precision. Display rounding never reaches the file.
//   - --archive additionally copies the artifact into the archive directory
//     under a collision-free name.
//   - Rows excluded from the totals (absent price or exchange rate) are
//     listed in an error log next to the artifact, so the gap between the
//     table and the totals is auditable.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/po-payment-dashboard/internal/csvexport"
	"github.com/ginjaninja78/po-payment-dashboard/internal/pipeline"
	"github.com/ginjaninja78/po-payment-dashboard/internal/summary"
	"github.com/ginjaninja78/po-payment-dashboard/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// exportOutput overrides the output path for the artifact.
var exportOutput string

// exportArchive also copies the artifact into the archive directory.
var exportArchive bool

// =============================================================================
// EXPORT COMMAND DEFINITION
// =============================================================================

// exportCmd represents the 'export' command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered purchase-order table as CSV",
	Long: `The export command runs the same pipeline as 'report' and serializes the
filtered rows as delimited text, one row per record, header first, in display
column order with the derived Payment Status after Purchasing Document.

The export is lossless: numeric cells keep their full source precision and
no row is added, dropped or reordered relative to the filtered view.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport()
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addCriteriaFlags(exportCmd)

	exportCmd.Flags().StringVarP(
		&exportOutput,
		"output",
		"o",
		"",
		"Output path for the CSV artifact (default <export.dir>/<export.filename>)",
	)

	exportCmd.Flags().BoolVar(
		&exportArchive,
		"archive",
		false,
		"Also copy the artifact into the archive directory",
	)
}

// =============================================================================
// MAIN EXPORT FUNCTION
// =============================================================================

// runExport executes one pipeline run and writes the artifact.
func runExport() error {
	criteria, err := buildCriteria()
	if err != nil {
		return err
	}

	table, err := loadTable()
	if err != nil {
		return err
	}

	result := pipeline.Run(table, criteria)

	outputPath := exportOutput
	if outputPath == "" {
		if err := utils.EnsureDir(cfg.Export.Dir); err != nil {
			return err
		}
		outputPath = filepath.Join(cfg.Export.Dir, cfg.Export.Filename)
	}

	if err := csvexport.WriteFile(outputPath, result.Table, result.Filtered); err != nil {
		return err
	}

	fmt.Printf("Exported %d row(s) to %s\n", len(result.Filtered), outputPath)
	fmt.Printf("%s: %s\n", summary.ActualLabel, summary.FormatCurrency(result.Summary.ActualPaymentTotal))
	fmt.Printf("%s: %s\n", summary.PendingLabel, summary.FormatCurrency(result.Summary.PendingPaymentTotal))

	if err := writeSkippedLog(result, filepath.Dir(outputPath)); err != nil {
		// The artifact itself is fine; just report the log failure.
		zap.L().Warn("could not write skipped-row log", zap.Error(err))
	}

	if exportArchive {
		if err := archiveArtifact(outputPath); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// writeSkippedLog records the rows the aggregator excluded because total
// price or exchange rate failed to coerce.
func writeSkippedLog(result *pipeline.Result, dir string) error {
	if result.Summary.SkippedRows == 0 {
		return nil
	}

	var lines []string
	for _, rec := range result.Filtered {
		if rec.TotalPrice == nil || rec.ExchangeRate == nil {
			lines = append(lines, fmt.Sprintf(
				"row %d: excluded from totals (total price or exchange rate absent)",
				rec.RowNumber,
			))
		}
	}

	path, err := utils.WriteErrorLog(dir, lines)
	if err != nil {
		return err
	}

	fmt.Printf("%d row(s) excluded from totals, see %s\n", len(lines), path)
	return nil
}

// archiveArtifact copies the export into the archive directory under a
// timestamped, collision-free name.
func archiveArtifact(outputPath string) error {
	if err := utils.EnsureDir(cfg.Export.ArchiveDir); err != nil {
		return err
	}

	name := utils.ArtifactName("PO_Report", ".csv")
	archivePath := filepath.Join(cfg.Export.ArchiveDir, name)

	if err := utils.CopyFile(outputPath, archivePath); err != nil {
		return err
	}

	fmt.Printf("Archived copy: %s\n", archivePath)
	return nil
}

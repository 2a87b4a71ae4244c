// =============================================================================
// PO Payment Dashboard - Row Loader
// =============================================================================
//
// This module turns the raw MasterData sheet into a typed, classified record
// set. Every cell is read as text; typed fields are coerced with
// absent-on-failure semantics (see internal/coerce).
//
// LOAD CONTRACT:
//   - The GR Qty and IR Qty columns are required. If either is missing the
//     whole load fails with a DataFormatError: without them no row can be
//     classified.
//   - Any per-cell coercion failure affects that record only. The record is
//     kept, the failing field becomes absent, and the load continues.
//   - The loader never mutates its source and produces a fresh Table on
//     every call. Caching, if any, belongs to the caller.
//
// SOURCES:
//   - XLSX workbooks via excelize (the primary source).
//   - CSV extracts through the csvexport reader, so a previously exported
//     report loads through the same contract.
//
// =============================================================================

package loader

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ginjaninja78/po-payment-dashboard/internal/classifier"
	"github.com/ginjaninja78/po-payment-dashboard/internal/coerce"
	"github.com/ginjaninja78/po-payment-dashboard/internal/csvexport"
	"github.com/ginjaninja78/po-payment-dashboard/internal/types"
)

// DefaultSheet is the workbook sheet the dashboard consumes.
const DefaultSheet = "MasterData"

// =============================================================================
// ERRORS
// =============================================================================

// DataFormatError reports a source that cannot be interpreted as the
// expected schema. It is fatal to the run: no records are produced.
type DataFormatError struct {
	// Source identifies the offending file or sheet.
	Source string

	// Reason describes what was wrong with the schema.
	Reason string
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("data format error in %s: %s", e.Source, e.Reason)
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a load.
type Options struct {
	// Sheet is the workbook sheet to read. Empty means DefaultSheet.
	Sheet string
}

func (o Options) sheet() string {
	if o.Sheet == "" {
		return DefaultSheet
	}
	return o.Sheet
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads an XLSX workbook and returns the typed record set from its
// MasterData sheet (or the sheet named in opts).
func Load(path string, opts Options) (*types.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, eris.Wrap(err, "loader: source unreachable")
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "loader: open workbook")
	}
	defer f.Close()

	sheet := opts.sheet()
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &DataFormatError{
			Source: path,
			Reason: fmt.Sprintf("sheet %q not readable: %v", sheet, err),
		}
	}

	table, err := FromRows(fmt.Sprintf("%s#%s", path, sheet), rows)
	if err != nil {
		return nil, err
	}

	zap.L().Info("loaded workbook",
		zap.String("source", path),
		zap.String("sheet", sheet),
		zap.Int("rows", len(table.Records)),
	)
	return table, nil
}

// LoadCSV reads a delimited-text source with the same column schema. The
// reader is the inverse of the export serializer, which gives the export
// round-trip property a real code path.
func LoadCSV(path string) (*types.Table, error) {
	rows, err := csvexport.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "loader: read csv source")
	}
	return FromRows(path, rows)
}

// FromRows builds a Table from raw rows where the first row carries the
// column headers. This is the single place records are constructed; both
// source formats and the tests funnel through it.
func FromRows(source string, rows [][]string) (*types.Table, error) {
	if len(rows) == 0 {
		return nil, &DataFormatError{Source: source, Reason: "source is empty"}
	}

	headers := cleanHeaders(rows[0])

	if missing := missingRequired(headers); len(missing) > 0 {
		return nil, &DataFormatError{
			Source: source,
			Reason: fmt.Sprintf("required columns missing: %s", strings.Join(missing, ", ")),
		}
	}

	records := make([]types.Record, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}
		records = append(records, buildRecord(headers, row, i+1))
	}

	return &types.Table{
		Headers:  headers,
		Records:  records,
		Source:   source,
		LoadedAt: time.Now(),
	}, nil
}

// buildRecord maps one raw row onto a typed Record and derives its payment
// status. Cells beyond the header width are dropped; short rows read as
// empty cells.
func buildRecord(headers []string, row []string, rowNumber int) types.Record {
	fields := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(row) {
			fields[h] = strings.TrimSpace(row[i])
		} else {
			fields[h] = ""
		}
	}

	rec := types.Record{
		Fields:         fields,
		GRQty:          coerce.Quantity(fields[types.ColGRQty]),
		IRQty:          coerce.Quantity(fields[types.ColIRQty]),
		POReleasedDate: coerce.Date(fields[types.ColPOReleasedDate]),
		NetPrice:       coerce.Decimal(fields[types.ColNetPrice]),
		TotalPrice:     coerce.Decimal(fields[types.ColTotalPrice]),
		ExchangeRate:   coerce.Decimal(fields[types.ColExchangeRate]),
		RowNumber:      rowNumber,
	}
	rec.PaymentStatus = classifier.Classify(rec.GRQty, rec.IRQty)
	return rec
}

// missingRequired returns the required columns absent from the headers.
// Only the two quantity columns are required; every other field degrades to
// absent values per record.
func missingRequired(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	var missing []string
	for _, col := range []string{types.ColGRQty, types.ColIRQty} {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// =============================================================================
// HELPERS
// =============================================================================

// cleanHeaders trims header cells and names blank ones by position so every
// column stays addressable.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = h
	}
	return cleaned
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

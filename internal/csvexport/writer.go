// =============================================================================
// PO Payment Dashboard - Export Serializer
// =============================================================================
//
// This module renders a filtered record set as flat delimited text: one
// header row with the display column names, then one row per record in the
// exact order the records were given. Nothing is added, dropped or
// reordered.
//
// EXPORT SEMANTICS:
//   - The derived Payment Status column appears at its display position,
//     immediately after Purchasing Document.
//   - Source cells are written as their raw text, so numeric fields keep
//     full precision. Display-only rounding never reaches an export.
//   - An empty record set produces a header-only file; that is a valid
//     terminal state, not an error.
//
// =============================================================================

package csvexport

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/ginjaninja78/po-payment-dashboard/internal/types"
)

// DefaultFilename is the artifact name offered to download sinks.
const DefaultFilename = "PO_Report.csv"

// Write serializes records against the table's display column order.
// The records argument is usually a filtered subset of table.Records; the
// table itself only contributes the column order.
func Write(w io.Writer, table *types.Table, records []types.Record) error {
	columns := table.DisplayColumns()

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return eris.Wrap(err, "csvexport: write header")
	}

	row := make([]string, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			row[i] = rec.Value(col)
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "csvexport: write row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "csvexport: flush")
}

// WriteFile serializes records to a file, creating or truncating it.
func WriteFile(path string, table *types.Table, records []types.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "csvexport: create output file")
	}

	if err := Write(f, table, records); err != nil {
		f.Close()
		return err
	}
	return eris.Wrap(f.Close(), "csvexport: close output file")
}

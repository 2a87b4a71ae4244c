// =============================================================================
// PO Payment Dashboard - Delimited Text Reader
// =============================================================================
//
// The inverse of the writer: reads delimited text back into raw rows with
// the header row first, ready for the loader's record builder. This is what
// makes an exported report loadable again and what the round-trip tests
// exercise.
//
// =============================================================================

package csvexport

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// Read parses delimited text into raw rows, header row included.
func Read(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(bufio.NewReader(r))

	// Tolerate ragged rows and loosely quoted cells; the loader treats
	// short rows as trailing empty cells.
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "csvexport: read")
	}
	return rows, nil
}

// ReadFile parses a delimited-text file into raw rows.
func ReadFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "csvexport: open file")
	}
	defer f.Close()

	return Read(f)
}

// =============================================================================
// PO Payment Dashboard - Field Coercion
// =============================================================================
//
// This module turns raw cell text into typed values with absent-on-failure
// semantics. A cell that does not coerce is never an error: quantities
// become NaN, money, rates and dates become nil, and the affected record
// stays in the set. Downstream stages exclude absent fields from any
// computation that requires them.
//
// COERCION RULES:
//   - Numbers accept thousands separators and surrounding whitespace.
//   - Dates are parsed leniently against a list of common layouts, plus
//     Excel serial numbers (unformatted date cells read from a workbook
//     come back as serials).
//
// =============================================================================

package coerce

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. First match wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"02.01.2006",
	"02-Jan-2006",
	"2-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
}

// excelEpoch is day zero of the 1900 date system used by XLSX workbooks.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Quantity coerces a quantity cell to a float. Failure yields NaN rather
// than an error so the classifier fallthrough applies.
func Quantity(s string) float64 {
	v, ok := parseFloat(s)
	if !ok {
		return math.NaN()
	}
	return v
}

// Decimal coerces a monetary amount or exchange-rate cell. Failure yields
// nil; the record is then excluded from aggregation, not zeroed.
func Decimal(s string) *float64 {
	v, ok := parseFloat(s)
	if !ok {
		return nil
	}
	return &v
}

// Date coerces a date cell. It tries the known layouts first and falls back
// to interpreting a bare number as an Excel serial date. Failure yields nil
// for the affected record only, never a load-wide failure.
func Date(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &t
		}
	}

	// Excel serial fallback. Serial 1 is 1900-01-01; anything outside a
	// sane window is treated as not-a-date.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial > 0 && serial < 300000 {
			t := excelEpoch.AddDate(0, 0, int(serial))
			return &t
		}
	}

	return nil
}

// parseFloat handles thousands separators and whitespace before delegating
// to strconv. It rejects empty cells.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

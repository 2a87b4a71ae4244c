// =============================================================================
// PO Payment Dashboard - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - loader
//   - classifier
//   - filter
//   - summary
//   - csvexport
//   - pipeline
//
// =============================================================================

package types

import (
	"math"
	"strconv"
	"time"
)

// =============================================================================
// COLUMN NAMES
// =============================================================================
// Canonical column headers as they appear in the MasterData sheet.
// The loader matches these headers verbatim after whitespace trimming.

const (
	ColMR                 = "MR"
	ColNetworkNumber      = "Network Number"
	ColNetworkName        = "Network Name"
	ColPurchasingDocument = "Purchasing Document"
	ColHWMDS              = "HWMDS"
	ColShortText          = "Short Text"
	ColGRQty              = "GR Qty"
	ColIRQty              = "IR Qty"
	ColPOReleasedDate     = "PO Released Date"
	ColNetPrice           = "Net Price"
	ColTotalPrice         = "Total Line Item Price"
	ColExchangeRate       = "Exchange Rate"

	// ColPaymentStatus is the derived column. It is never read from the
	// source; the loader recomputes it from GR Qty and IR Qty on every load.
	ColPaymentStatus = "Payment Status"
)

// HiddenColumns lists columns suppressed from interactive display surfaces
// (report table, dashboard API). They stay in every export without exception.
var HiddenColumns = []string{
	"Shopping Cart",
	"REMOTE/INDOOR",
	"Vendor No",
	"GR/IR Mismatch",
	"IR Document No.",
	"Invoice Date.",
	"Invoice Due Date.",
}

// =============================================================================
// PAYMENT STATUS
// =============================================================================

// PaymentStatus is the derived payment category of a purchase-order line.
type PaymentStatus string

const (
	// StatusPaid means goods receipt and invoice receipt quantities match
	// and goods were actually received.
	StatusPaid PaymentStatus = "Paid"

	// StatusNotStarted means neither goods nor invoices have been received.
	StatusNotStarted PaymentStatus = "Not Started"

	// StatusPendingGoodsReceipt means less goods quantity than invoice
	// quantity has been booked; delivery is still outstanding.
	StatusPendingGoodsReceipt PaymentStatus = "Pending Goods Receipt"

	// StatusPendingSupplierInvoice means goods arrived but the supplier
	// invoice is still outstanding.
	StatusPendingSupplierInvoice PaymentStatus = "Pending Supplier Invoice"
)

// =============================================================================
// RECORD
// =============================================================================

// Record represents a single purchase-order line item.
//
// Fields holds every source cell as raw text, keyed by column header. The
// typed fields below are coerced copies of the cells the pipeline computes
// with. A coercion failure leaves the typed field absent (NaN for
// quantities, nil for money, rate and date); the raw cell is kept untouched
// so exports stay lossless.
type Record struct {
	// Fields contains the raw cell text for every source column.
	Fields map[string]string

	// GRQty is the goods-receipt quantity. NaN when the cell failed to
	// coerce to a number.
	GRQty float64

	// IRQty is the invoice-receipt quantity. NaN when the cell failed to
	// coerce to a number.
	IRQty float64

	// POReleasedDate is the parsed release date, nil when absent or
	// unparsable.
	POReleasedDate *time.Time

	// NetPrice and TotalPrice are the coerced monetary amounts, nil when
	// absent or unparsable.
	NetPrice   *float64
	TotalPrice *float64

	// ExchangeRate converts the line's native currency amount into the
	// reporting currency, nil when absent or unparsable.
	ExchangeRate *float64

	// PaymentStatus is derived from GRQty and IRQty at load time.
	PaymentStatus PaymentStatus

	// RowNumber is the 1-based row number in the source sheet, kept for
	// error reporting.
	RowNumber int
}

// Field returns the raw text of a source column, or "" when the column is
// absent. Absent values never match a substring filter.
func (r Record) Field(name string) string {
	return r.Fields[name]
}

// Value returns the cell text used for export. Source columns come back as
// raw text (full precision); the derived Payment Status column comes from
// the classifier, never from the source.
func (r Record) Value(col string) string {
	if col == ColPaymentStatus {
		return string(r.PaymentStatus)
	}
	return r.Fields[col]
}

// DisplayValue returns the cell text used for interactive display. Monetary
// columns are rounded to two fractional digits when they coerced cleanly;
// everything else is the raw cell text.
func (r Record) DisplayValue(col string) string {
	switch col {
	case ColPaymentStatus:
		return string(r.PaymentStatus)
	case ColNetPrice:
		if r.NetPrice != nil {
			return strconv.FormatFloat(math.Round(*r.NetPrice*100)/100, 'f', 2, 64)
		}
	case ColTotalPrice:
		if r.TotalPrice != nil {
			return strconv.FormatFloat(math.Round(*r.TotalPrice*100)/100, 'f', 2, 64)
		}
	}
	return r.Fields[col]
}

// =============================================================================
// TABLE
// =============================================================================

// Table is one loaded record set plus the column order of its source.
// A table is immutable once loaded; a re-load replaces the whole value.
type Table struct {
	// Headers is the source column order. The derived Payment Status
	// column is not part of it.
	Headers []string

	// Records are the typed, classified rows in source order.
	Records []Record

	// Source identifies where the table was loaded from.
	Source string

	// LoadedAt is the fetch timestamp, used by the TTL cache.
	LoadedAt time.Time
}

// DisplayColumns returns the presentation column order: the source columns
// with the derived Payment Status inserted immediately after Purchasing
// Document. When the source has no Purchasing Document column the status is
// appended at the end. A stray Payment Status column in the source is
// dropped so the derived value can never desynchronize from the quantities.
func (t *Table) DisplayColumns() []string {
	cols := make([]string, 0, len(t.Headers)+1)
	inserted := false
	for _, h := range t.Headers {
		if h == ColPaymentStatus {
			continue
		}
		cols = append(cols, h)
		if h == ColPurchasingDocument {
			cols = append(cols, ColPaymentStatus)
			inserted = true
		}
	}
	if !inserted {
		cols = append(cols, ColPaymentStatus)
	}
	return cols
}

// VisibleColumns returns DisplayColumns minus the hidden-column list. This
// is a display hint only; exports always carry every display column.
func (t *Table) VisibleColumns() []string {
	hidden := make(map[string]bool, len(HiddenColumns))
	for _, h := range HiddenColumns {
		hidden[h] = true
	}

	var cols []string
	for _, c := range t.DisplayColumns() {
		if !hidden[c] {
			cols = append(cols, c)
		}
	}
	return cols
}

// =============================================================================
// FILTER CRITERIA
// =============================================================================

// Criteria is the immutable filter configuration for one pipeline run.
// Every field is independently optional; the zero value means "no
// constraint". Present options combine by logical AND.
type Criteria struct {
	// Substring filters, matched case-insensitively against the
	// corresponding text column. An absent cell never matches.
	MR                 string `yaml:"mr"`
	NetworkNumber      string `yaml:"network_number"`
	NetworkName        string `yaml:"network_name"`
	PurchasingDocument string `yaml:"po_document"`
	HWMDS              string `yaml:"hwmds"`

	// ShortTextKeywords is split on whitespace; a row matches when its
	// Short Text contains any one keyword (OR across keywords).
	ShortTextKeywords string `yaml:"short_text_keywords"`

	// DateFrom and DateTo bound PO Released Date inclusively. Rows with an
	// absent date are excluded once either bound is set.
	DateFrom *time.Time `yaml:"-"`
	DateTo   *time.Time `yaml:"-"`
}

// IsZero reports whether no filter option is active.
func (c Criteria) IsZero() bool {
	return c.MR == "" && c.NetworkNumber == "" && c.NetworkName == "" &&
		c.PurchasingDocument == "" && c.HWMDS == "" &&
		c.ShortTextKeywords == "" && c.DateFrom == nil && c.DateTo == nil
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary holds the two aggregate monetary totals over a filtered record
// set. Totals are zero, not an error, when nothing qualifies.
type Summary struct {
	// ActualPaymentTotal is the sum of total price times exchange rate over
	// rows whose status is Paid.
	ActualPaymentTotal float64

	// PendingPaymentTotal is the same sum over every other eligible row.
	PendingPaymentTotal float64

	// EligibleRows counts rows that entered either total.
	EligibleRows int

	// SkippedRows counts rows excluded because total price or exchange
	// rate was absent.
	SkippedRows int
}

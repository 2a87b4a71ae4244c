// =============================================================================
// PO Payment Dashboard - Summary Aggregator
// =============================================================================
//
// Computes the two monetary totals shown under the filtered table. Each
// eligible row contributes its line value, total line item price times
// exchange rate, to exactly one total depending on its payment status.
//
// ELIGIBILITY:
//   A row enters the totals only when total price, exchange rate and
//   payment status are all present. An absent field means the row's
//   contribution is undefined, so the row is skipped, never counted as
//   zero.
//
// =============================================================================

package summary

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ginjaninja78/po-payment-dashboard/internal/types"
)

// Labels used by the presentation sinks.
const (
	ActualLabel  = "Actual Payment (Paid)"
	PendingLabel = "Pending Payment (Unpaid)"
)

// printer renders currency amounts with locale-aware digit grouping.
var printer = message.NewPrinter(language.English)

// Summarize computes the paid and unpaid totals over a filtered record
// set. Both totals are 0 when no row qualifies; that is a valid result,
// not an error. Summarize is additive: disjoint sets summarize to the
// elementwise sum of their summaries.
func Summarize(records []types.Record) types.Summary {
	var s types.Summary

	for _, rec := range records {
		if rec.TotalPrice == nil || rec.ExchangeRate == nil || rec.PaymentStatus == "" {
			s.SkippedRows++
			continue
		}

		lineValue := *rec.TotalPrice * *rec.ExchangeRate
		if rec.PaymentStatus == types.StatusPaid {
			s.ActualPaymentTotal += lineValue
		} else {
			s.PendingPaymentTotal += lineValue
		}
		s.EligibleRows++
	}

	return s
}

// FormatCurrency renders an amount with thousands separators and two
// decimal places, e.g. 1234567.891 -> "1,234,567.89".
func FormatCurrency(v float64) string {
	return printer.Sprintf("%.2f", v)
}

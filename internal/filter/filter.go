// =============================================================================
// PO Payment Dashboard - Filter Engine
// =============================================================================
//
// This module selects the rows a user wants to see. Filtering is a pure,
// order-preserving subsequence selection: the output rows keep their
// relative order from the input and no record is ever mutated.
//
// FILTER COMPOSITION:
//   - Every active option must hold for a row to survive (logical AND).
//   - Substring options match case-insensitively; a row with an absent or
//     empty cell never matches an active substring option.
//   - Short Text keywords are split on whitespace and combined with OR: one
//     matching keyword keeps the row.
//   - The date range is inclusive on both ends; once either bound is set,
//     rows without a parsed PO Released Date are excluded.
//
// Re-running the engine on its own output with the same criteria returns
// the identical set (idempotence), because every predicate depends only on
// the row itself.
//
// =============================================================================

package filter

import (
	"strings"
	"time"

	"github.com/ginjaninja78/po-payment-dashboard/internal/types"
)

// Apply returns the subsequence of records satisfying every active option
// in the criteria. A zero criteria returns all records (as a new slice).
func Apply(records []types.Record, c types.Criteria) []types.Record {
	keywords := Keywords(c.ShortTextKeywords)

	filtered := make([]types.Record, 0, len(records))
	for _, rec := range records {
		if matches(rec, c, keywords) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// matches evaluates the conjunction of active options against one record.
func matches(rec types.Record, c types.Criteria, keywords []string) bool {
	if !containsFold(rec.Field(types.ColMR), c.MR) {
		return false
	}
	if !containsFold(rec.Field(types.ColNetworkNumber), c.NetworkNumber) {
		return false
	}
	if !containsFold(rec.Field(types.ColNetworkName), c.NetworkName) {
		return false
	}
	if !containsFold(rec.Field(types.ColPurchasingDocument), c.PurchasingDocument) {
		return false
	}
	if !containsFold(rec.Field(types.ColHWMDS), c.HWMDS) {
		return false
	}
	if len(keywords) > 0 && len(MatchKeywords(rec.Field(types.ColShortText), keywords)) == 0 {
		return false
	}
	if !withinRange(rec.POReleasedDate, c.DateFrom, c.DateTo) {
		return false
	}
	return true
}

// containsFold reports whether value contains needle case-insensitively.
// An empty needle means the option is inactive and always passes; an empty
// value never matches an active needle.
func containsFold(value, needle string) bool {
	if needle == "" {
		return true
	}
	if value == "" {
		return false
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(needle))
}

// withinRange checks the inclusive [from, to] bound. With no bounds set
// every row passes, including rows without a date.
func withinRange(date, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if date == nil {
		return false
	}
	if from != nil && date.Before(*from) {
		return false
	}
	if to != nil && date.After(*to) {
		return false
	}
	return true
}

// Keywords splits a keyword option on whitespace. Empty input yields nil,
// meaning the option is inactive.
func Keywords(s string) []string {
	return strings.Fields(s)
}

// MatchKeywords returns the keywords that occur in the given text,
// case-insensitively. Presentation layers use this to highlight matches;
// the engine itself only cares whether the result is non-empty.
func MatchKeywords(text string, keywords []string) []string {
	if text == "" || len(keywords) == 0 {
		return nil
	}

	lower := strings.ToLower(text)
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}

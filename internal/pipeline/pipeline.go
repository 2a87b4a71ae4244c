// =============================================================================
// PO Payment Dashboard - Pipeline Orchestrator
// =============================================================================
//
// This module runs the derive -> filter -> aggregate pipeline over a loaded
// table. Each user interaction triggers one full, synchronous run: there is
// no incremental recomputation and no background work. The table is treated
// as read-only for the duration of the run; every stage produces a new row
// set.
//
// PIPELINE STEPS:
//   1. Filter the classified records with the run's criteria
//   2. Aggregate the filtered rows into the two payment totals
//   3. Hand the filtered rows to the presentation or export sink
//
// Classification already happened at load time (it is a pure function of
// the quantity fields, recomputed on every load), so a run never needs the
// source again. A run either completes or fails atomically before
// producing output.
//
// =============================================================================

package pipeline

import (
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/po-payment-dashboard/internal/filter"
	"github.com/ginjaninja78/po-payment-dashboard/internal/summary"
	"github.com/ginjaninja78/po-payment-dashboard/internal/types"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of one pipeline run.
type Result struct {
	// Table is the source table the run consumed (for column order).
	Table *types.Table

	// Filtered is the order-preserving subsequence that survived the
	// criteria.
	Filtered []types.Record

	// Summary holds the two aggregate totals over Filtered.
	Summary types.Summary

	// MatchedKeywords are the Short Text keywords that matched at least
	// one surviving row, for highlight hints in presentation layers.
	MatchedKeywords []string

	// Stats contains run statistics.
	Stats Stats
}

// Stats contains statistics about one run.
type Stats struct {
	// RowsLoaded is the size of the full record set.
	RowsLoaded int

	// RowsFiltered is the size of the surviving subset.
	RowsFiltered int

	// Elapsed is the run duration.
	Elapsed time.Duration
}

// =============================================================================
// RUN
// =============================================================================

// Run executes one filter-and-aggregate pass over the table.
func Run(table *types.Table, criteria types.Criteria) *Result {
	start := time.Now()

	filtered := filter.Apply(table.Records, criteria)
	agg := summary.Summarize(filtered)

	result := &Result{
		Table:           table,
		Filtered:        filtered,
		Summary:         agg,
		MatchedKeywords: matchedKeywords(filtered, criteria),
		Stats: Stats{
			RowsLoaded:   len(table.Records),
			RowsFiltered: len(filtered),
			Elapsed:      time.Since(start),
		},
	}

	zap.L().Debug("pipeline run complete",
		zap.Int("rows_loaded", result.Stats.RowsLoaded),
		zap.Int("rows_filtered", result.Stats.RowsFiltered),
		zap.Duration("elapsed", result.Stats.Elapsed),
	)
	return result
}

// matchedKeywords collects the distinct keywords that hit at least one
// surviving row, preserving the order the user typed them in.
func matchedKeywords(records []types.Record, criteria types.Criteria) []string {
	keywords := filter.Keywords(criteria.ShortTextKeywords)
	if len(keywords) == 0 {
		return nil
	}

	hit := make(map[string]bool)
	for _, rec := range records {
		for _, kw := range filter.MatchKeywords(rec.Field(types.ColShortText), keywords) {
			hit[kw] = true
		}
	}

	var matched []string
	for _, kw := range keywords {
		if hit[kw] {
			matched = append(matched, kw)
		}
	}
	return matched
}

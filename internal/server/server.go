// =============================================================================
// PO Payment Dashboard - Dashboard API Server
// =============================================================================
//
// A thin HTTP presentation sink over the pipeline. Every request triggers
// one full pipeline run against the cached table; the filter criteria come
// from query parameters, absent parameters meaning "no constraint".
//
// ROUTES:
//   GET  /healthz      - liveness probe
//   GET  /api/report   - filtered rows plus column order and visibility hints
//   GET  /api/summary  - the two labeled payment totals
//   GET  /export       - the filtered table as a CSV download (PO_Report.csv)
//   POST /api/reload   - drop the cached table so the next request reloads
//
// The server renders no HTML and no cell markup; it only supplies the
// ordered rows, the visible-column hints and the matched keyword list that
// a grid front end needs.
//
// =============================================================================

package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ginjaninja78/po-payment-dashboard/internal/cache"
	"github.com/ginjaninja78/po-payment-dashboard/internal/csvexport"
	"github.com/ginjaninja78/po-payment-dashboard/internal/filter"
	"github.com/ginjaninja78/po-payment-dashboard/internal/pipeline"
	"github.com/ginjaninja78/po-payment-dashboard/internal/summary"
	"github.com/ginjaninja78/po-payment-dashboard/internal/types"
)

// Server serves the dashboard API over a cached table.
type Server struct {
	tables *cache.TableCache
}

// New creates a Server backed by the given table cache.
func New(tables *cache.TableCache) *Server {
	return &Server{tables: tables}
}

// Routes builds the chi router with the dashboard endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/report", s.handleReport)
	r.Get("/api/summary", s.handleSummary)
	r.Get("/export", s.handleExport)
	r.Post("/api/reload", s.handleReload)

	return r
}

// =============================================================================
// RESPONSE SHAPES
// =============================================================================

// reportResponse carries the filtered rows with the presentation hints the
// grid needs: full display column order, the visible subset, and which
// Short Text keywords matched.
type reportResponse struct {
	Columns         []string   `json:"columns"`
	VisibleColumns  []string   `json:"visible_columns"`
	Rows            [][]string `json:"rows"`
	MatchedKeywords []string   `json:"matched_keywords,omitempty"`
	Count           int        `json:"count"`
}

type summaryResponse struct {
	ActualLabel      string  `json:"actual_label"`
	ActualPayment    float64 `json:"actual_payment"`
	ActualFormatted  string  `json:"actual_formatted"`
	PendingLabel     string  `json:"pending_label"`
	PendingPayment   float64 `json:"pending_payment"`
	PendingFormatted string  `json:"pending_formatted"`
	EligibleRows     int     `json:"eligible_rows"`
	SkippedRows      int     `json:"skipped_rows"`
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	result, ok := s.run(w, r)
	if !ok {
		return
	}

	columns := result.Table.DisplayColumns()
	rows := make([][]string, len(result.Filtered))
	for i, rec := range result.Filtered {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = rec.DisplayValue(col)
		}
		rows[i] = row
	}

	writeJSON(w, http.StatusOK, reportResponse{
		Columns:         columns,
		VisibleColumns:  result.Table.VisibleColumns(),
		Rows:            rows,
		MatchedKeywords: result.MatchedKeywords,
		Count:           len(rows),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	result, ok := s.run(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		ActualLabel:      summary.ActualLabel,
		ActualPayment:    result.Summary.ActualPaymentTotal,
		ActualFormatted:  summary.FormatCurrency(result.Summary.ActualPaymentTotal),
		PendingLabel:     summary.PendingLabel,
		PendingPayment:   result.Summary.PendingPaymentTotal,
		PendingFormatted: summary.FormatCurrency(result.Summary.PendingPaymentTotal),
		EligibleRows:     result.Summary.EligibleRows,
		SkippedRows:      result.Summary.SkippedRows,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	result, ok := s.run(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", csvexport.DefaultFilename))

	if err := csvexport.Write(w, result.Table, result.Filtered); err != nil {
		// Headers are gone at this point; all we can do is log.
		zap.L().Error("export stream failed", zap.Error(err))
	}
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.tables.Invalidate()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloading"})
}

// run loads the table and executes one pipeline pass for the request. On
// failure it writes the error response itself and returns ok=false.
func (s *Server) run(w http.ResponseWriter, r *http.Request) (*pipeline.Result, bool) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}

	table, err := s.tables.Get()
	if err != nil {
		zap.L().Error("table load failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err)
		return nil, false
	}

	return pipeline.Run(table, criteria), true
}

// criteriaFromQuery maps query parameters onto a Criteria value. Malformed
// dates are a client error, not a silent no-constraint.
func criteriaFromQuery(r *http.Request) (types.Criteria, error) {
	q := r.URL.Query()

	c := types.Criteria{
		MR:                 q.Get("mr"),
		NetworkNumber:      q.Get("network_number"),
		NetworkName:        q.Get("network_name"),
		PurchasingDocument: q.Get("po_document"),
		HWMDS:              q.Get("hwmds"),
		ShortTextKeywords:  q.Get("short_text_keywords"),
	}

	var err error
	if c.DateFrom, err = filter.ParseDate(q.Get("date_from")); err != nil {
		return c, err
	}
	if c.DateTo, err = filter.ParseDate(q.Get("date_to")); err != nil {
		return c, err
	}
	return c, nil
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Error("response encode failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

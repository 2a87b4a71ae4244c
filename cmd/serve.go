// =============================================================================
// PO Payment Dashboard - Serve Command
// =============================================================================
//
// This file defines the 'serve' command, which exposes the pipeline over
// HTTP for a grid front end. The record set is held in a single-slot TTL
// cache: requests inside the interval reuse the loaded table, the first
// request after expiry reloads it whole.
//
// COMMAND USAGE:
//   podash serve [--port 8080]
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/po-payment-dashboard/internal/cache"
	"github.com/ginjaninja78/po-payment-dashboard/internal/server"
	"github.com/ginjaninja78/po-payment-dashboard/internal/types"
)

// servePort overrides the configured server port.
var servePort int

// serveCmd represents the 'serve' command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP dashboard API",
	Long: `The serve command starts an HTTP API over the purchase-order pipeline.
Filter criteria arrive as query parameters; every request triggers one full
filter-and-aggregate run against the cached record set.

The table is reloaded at most once per cache TTL (cache.ttl). POST
/api/reload drops the slot early, for example after the workbook changed.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Server port (default from config)")
	serveCmd.Flags().StringVar(&flagSource, "source", "", "Path to the PO workbook (overrides source.path from config)")
}

// runServe builds the cached loader and serves until interrupted.
func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tables := cache.New(cfg.Cache.TTL, func() (*types.Table, error) {
		return loadTable()
	})

	// Fail fast on an unreachable source instead of at first request.
	if _, err := tables.Get(); err != nil {
		return err
	}

	port := servePort
	if port == 0 {
		port = cfg.Server.Port
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, port),
		Handler:           server.New(tables).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server",
		zap.String("addr", srv.Addr),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}
	return nil
}

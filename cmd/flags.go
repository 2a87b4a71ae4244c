// =============================================================================
// PO Payment Dashboard - Shared Filter Flags
// =============================================================================
//
// The report and export commands accept the same filter criteria. This file
// registers those flags and turns them into one immutable Criteria value
// per run. A --criteria-file is read first; flags given alongside it
// override the file's values.
//
// =============================================================================

package cmd

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/po-payment-dashboard/internal/filter"
	"github.com/ginjaninja78/po-payment-dashboard/internal/loader"
	"github.com/ginjaninja78/po-payment-dashboard/internal/types"
)

// =============================================================================
// CRITERIA FLAGS
// =============================================================================

var (
	flagMR            string
	flagNetworkNumber string
	flagNetworkName   string
	flagPODocument    string
	flagHWMDS         string
	flagShortText     string
	flagDateFrom      string
	flagDateTo        string
	flagCriteriaFile  string

	// flagSource overrides the configured workbook path.
	flagSource string
)

// addCriteriaFlags registers the filter options on a command.
func addCriteriaFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagMR, "mr", "", "Keep rows whose MR contains this text")
	cmd.Flags().StringVar(&flagNetworkNumber, "network-number", "", "Keep rows whose Network Number contains this text")
	cmd.Flags().StringVar(&flagNetworkName, "network-name", "", "Keep rows whose Network Name contains this text")
	cmd.Flags().StringVar(&flagPODocument, "po-document", "", "Keep rows whose Purchasing Document contains this text")
	cmd.Flags().StringVar(&flagHWMDS, "hwmds", "", "Keep rows whose HWMDS contains this text")
	cmd.Flags().StringVar(&flagShortText, "short-text", "", "Whitespace-separated keywords; keep rows whose Short Text contains any of them")
	cmd.Flags().StringVar(&flagDateFrom, "date-from", "", "Keep rows released on or after this date (e.g. 2024-01-01)")
	cmd.Flags().StringVar(&flagDateTo, "date-to", "", "Keep rows released on or before this date")
	cmd.Flags().StringVar(&flagCriteriaFile, "criteria-file", "", "Path to a YAML criteria file; flags override its values")
	cmd.Flags().StringVar(&flagSource, "source", "", "Path to the PO workbook (overrides source.path from config)")
}

// buildCriteria assembles the run's criteria from file and flags.
func buildCriteria() (types.Criteria, error) {
	var c types.Criteria
	var err error

	if flagCriteriaFile != "" {
		c, err = filter.LoadCriteriaFile(flagCriteriaFile)
		if err != nil {
			return c, err
		}
	}

	if flagMR != "" {
		c.MR = flagMR
	}
	if flagNetworkNumber != "" {
		c.NetworkNumber = flagNetworkNumber
	}
	if flagNetworkName != "" {
		c.NetworkName = flagNetworkName
	}
	if flagPODocument != "" {
		c.PurchasingDocument = flagPODocument
	}
	if flagHWMDS != "" {
		c.HWMDS = flagHWMDS
	}
	if flagShortText != "" {
		c.ShortTextKeywords = flagShortText
	}

	if flagDateFrom != "" {
		if c.DateFrom, err = filter.ParseDate(flagDateFrom); err != nil {
			return c, err
		}
	}
	if flagDateTo != "" {
		if c.DateTo, err = filter.ParseDate(flagDateTo); err != nil {
			return c, err
		}
	}
	return c, nil
}

// =============================================================================
// SOURCE LOADING
// =============================================================================

// loadTable loads the configured source. A .csv extension switches to the
// delimited-text reader; anything else is treated as an XLSX workbook.
func loadTable() (*types.Table, error) {
	path := cfg.Source.Path
	if flagSource != "" {
		path = flagSource
	}
	if path == "" {
		return nil, errNoSource
	}

	if isCSV(path) {
		return loader.LoadCSV(path)
	}
	return loader.Load(path, loader.Options{Sheet: cfg.Source.Sheet})
}

// errNoSource is returned when neither --source nor source.path names a
// workbook.
var errNoSource = eris.New("no source configured: set source.path or pass --source")

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

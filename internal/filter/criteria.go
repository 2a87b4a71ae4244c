// =============================================================================
// PO Payment Dashboard - Criteria Files
// =============================================================================
//
// Criteria can be written down as a small YAML document and passed to the
// report and export commands with --criteria-file. Flags given alongside a
// file override the file's values.
//
// FILE FORMAT:
//   mr: "MR-10"
//   network_name: "north"
//   short_text_keywords: "antenna cable"
//   date_from: "2024-01-01"
//   date_to: "2024-06-30"
//
// =============================================================================

package filter

import (
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/po-payment-dashboard/internal/coerce"
	"github.com/ginjaninja78/po-payment-dashboard/internal/types"
)

// criteriaFile mirrors Criteria with dates as text, since YAML carries them
// as strings in whatever format the user typed.
type criteriaFile struct {
	MR                 string `yaml:"mr"`
	NetworkNumber      string `yaml:"network_number"`
	NetworkName        string `yaml:"network_name"`
	PurchasingDocument string `yaml:"po_document"`
	HWMDS              string `yaml:"hwmds"`
	ShortTextKeywords  string `yaml:"short_text_keywords"`
	DateFrom           string `yaml:"date_from"`
	DateTo             string `yaml:"date_to"`
}

// LoadCriteriaFile reads a YAML criteria document. Unlike source cells,
// criteria dates are user input for this very run, so an unparsable date is
// an error rather than a silent no-constraint.
func LoadCriteriaFile(path string) (types.Criteria, error) {
	var c types.Criteria

	data, err := os.ReadFile(path)
	if err != nil {
		return c, eris.Wrap(err, "filter: read criteria file")
	}

	var cf criteriaFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return c, eris.Wrap(err, "filter: parse criteria file")
	}

	c.MR = cf.MR
	c.NetworkNumber = cf.NetworkNumber
	c.NetworkName = cf.NetworkName
	c.PurchasingDocument = cf.PurchasingDocument
	c.HWMDS = cf.HWMDS
	c.ShortTextKeywords = cf.ShortTextKeywords

	if c.DateFrom, err = parseCriteriaDate(cf.DateFrom); err != nil {
		return c, err
	}
	if c.DateTo, err = parseCriteriaDate(cf.DateTo); err != nil {
		return c, err
	}
	return c, nil
}

// ParseDate turns user-supplied date text into a bound for the date-range
// option. Empty input means no bound.
func ParseDate(s string) (*time.Time, error) {
	return parseCriteriaDate(s)
}

func parseCriteriaDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d := coerce.Date(s)
	if d == nil {
		return nil, eris.New(fmt.Sprintf("filter: unparsable date %q", s))
	}
	return d, nil
}

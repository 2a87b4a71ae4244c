package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fp(v float64) *float64 { return &v }

func TestDisplayColumns_InsertsStatusAfterPurchasingDocument(t *testing.T) {
	table := &Table{Headers: []string{ColMR, ColPurchasingDocument, ColShortText}}

	assert.Equal(t,
		[]string{ColMR, ColPurchasingDocument, ColPaymentStatus, ColShortText},
		table.DisplayColumns(),
	)
}

func TestDisplayColumns_AppendsStatusWithoutAnchorColumn(t *testing.T) {
	table := &Table{Headers: []string{ColMR, ColShortText}}

	assert.Equal(t,
		[]string{ColMR, ColShortText, ColPaymentStatus},
		table.DisplayColumns(),
	)
}

func TestDisplayColumns_DropsStraySourceStatusColumn(t *testing.T) {
	table := &Table{Headers: []string{ColMR, ColPaymentStatus, ColPurchasingDocument}}

	assert.Equal(t,
		[]string{ColMR, ColPurchasingDocument, ColPaymentStatus},
		table.DisplayColumns(),
	)
}

func TestVisibleColumns_SuppressesHiddenColumns(t *testing.T) {
	table := &Table{Headers: []string{ColMR, "Vendor No", ColPurchasingDocument, "Shopping Cart"}}

	visible := table.VisibleColumns()

	assert.Equal(t, []string{ColMR, ColPurchasingDocument, ColPaymentStatus}, visible)
	// The hidden columns still appear in the export order.
	assert.Contains(t, table.DisplayColumns(), "Vendor No")
}

func TestRecordValue_StatusComesFromClassificationOnly(t *testing.T) {
	rec := Record{
		Fields:        map[string]string{ColPaymentStatus: "Stale", ColMR: "MR-1"},
		PaymentStatus: StatusPaid,
	}

	assert.Equal(t, "Paid", rec.Value(ColPaymentStatus))
	assert.Equal(t, "MR-1", rec.Value(ColMR))
}

func TestDisplayValue_RoundsMonetaryColumnsOnly(t *testing.T) {
	rec := Record{
		Fields: map[string]string{
			ColNetPrice:   "10.567",
			ColTotalPrice: "99.994",
			ColGRQty:      "3.333",
		},
		NetPrice:   fp(10.567),
		TotalPrice: fp(99.994),
	}

	assert.Equal(t, "10.57", rec.DisplayValue(ColNetPrice))
	assert.Equal(t, "99.99", rec.DisplayValue(ColTotalPrice))
	assert.Equal(t, "3.333", rec.DisplayValue(ColGRQty))
	// Raw cells stay untouched for export.
	assert.Equal(t, "10.567", rec.Value(ColNetPrice))
}

func TestDisplayValue_UncoercedMoneyShowsRawCell(t *testing.T) {
	rec := Record{Fields: map[string]string{ColNetPrice: "n/a"}}
	assert.Equal(t, "n/a", rec.DisplayValue(ColNetPrice))
}

func TestCriteriaIsZero(t *testing.T) {
	assert.True(t, Criteria{}.IsZero())
	assert.False(t, Criteria{MR: "x"}.IsZero())
	assert.False(t, Criteria{ShortTextKeywords: "antenna"}.IsZero())
}

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/po-payment-dashboard/internal/types"
)

func f(v float64) *float64 { return &v }

func testTable() *types.Table {
	return &types.Table{
		Headers: []string{types.ColMR, types.ColShortText},
		Records: []types.Record{
			{
				Fields:        map[string]string{types.ColMR: "MR-1", types.ColShortText: "Remote Antenna Unit"},
				PaymentStatus: types.StatusPaid,
				TotalPrice:    f(100),
				ExchangeRate:  f(1),
			},
			{
				Fields:        map[string]string{types.ColMR: "MR-2", types.ColShortText: "Power Cable"},
				PaymentStatus: types.StatusPendingGoodsReceipt,
				TotalPrice:    f(50),
				ExchangeRate:  f(1),
			},
			{
				Fields:        map[string]string{types.ColMR: "MR-3", types.ColShortText: "Mounting Bracket"},
				PaymentStatus: types.StatusNotStarted,
				TotalPrice:    f(25),
				ExchangeRate:  f(1),
			},
		},
	}
}

func TestRun_NoCriteria(t *testing.T) {
	table := testTable()

	result := Run(table, types.Criteria{})

	require.Len(t, result.Filtered, 3)
	assert.Equal(t, 3, result.Stats.RowsLoaded)
	assert.Equal(t, 3, result.Stats.RowsFiltered)
	assert.InDelta(t, 100, result.Summary.ActualPaymentTotal, 1e-9)
	assert.InDelta(t, 75, result.Summary.PendingPaymentTotal, 1e-9)
	assert.Nil(t, result.MatchedKeywords)
}

func TestRun_FilterNarrowsTotals(t *testing.T) {
	table := testTable()

	result := Run(table, types.Criteria{MR: "MR-2"})

	require.Len(t, result.Filtered, 1)
	assert.Equal(t, "MR-2", result.Filtered[0].Field(types.ColMR))
	assert.Zero(t, result.Summary.ActualPaymentTotal)
	assert.InDelta(t, 50, result.Summary.PendingPaymentTotal, 1e-9)
}

func TestRun_EmptyResultIsValid(t *testing.T) {
	table := testTable()

	result := Run(table, types.Criteria{MR: "no-such-mr"})

	assert.Empty(t, result.Filtered)
	assert.Zero(t, result.Summary.ActualPaymentTotal)
	assert.Zero(t, result.Summary.PendingPaymentTotal)
	assert.Equal(t, 0, result.Stats.RowsFiltered)
}

func TestRun_DoesNotMutateTable(t *testing.T) {
	table := testTable()

	Run(table, types.Criteria{MR: "MR-1"})

	assert.Len(t, table.Records, 3)
	assert.Equal(t, "MR-2", table.Records[1].Field(types.ColMR))
}

func TestRun_MatchedKeywordsPreserveInputOrder(t *testing.T) {
	table := testTable()

	result := Run(table, types.Criteria{ShortTextKeywords: "cable antenna turbine"})

	// "turbine" hit nothing; the others report in the typed order.
	assert.Equal(t, []string{"cable", "antenna"}, result.MatchedKeywords)
}

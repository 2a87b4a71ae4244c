package loader

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/po-payment-dashboard/internal/types"
)

var fixtureHeaders = []interface{}{
	types.ColMR,
	types.ColPurchasingDocument,
	types.ColShortText,
	types.ColGRQty,
	types.ColIRQty,
	types.ColPOReleasedDate,
	types.ColTotalPrice,
	types.ColExchangeRate,
}

// writeWorkbook builds a minimal MasterData workbook in a temp directory.
func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "master.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestLoad_ClassifiesAndCoercesRows(t *testing.T) {
	path := writeWorkbook(t, DefaultSheet, [][]interface{}{
		fixtureHeaders,
		{"MR-1", "4500000001", "Remote Antenna Unit", "10", "10", "2024-03-15", "1000.555", "1"},
		{"MR-2", "4500000002", "Power Cable", "0", "0", "2024-04-01", "250.5", "3.6725"},
		{"MR-3", "4500000003", "Mounting Bracket", "2", "5", "", "80", "1"},
	})

	table, err := Load(path, Options{})
	require.NoError(t, err)
	require.Len(t, table.Records, 3)

	first := table.Records[0]
	assert.Equal(t, types.StatusPaid, first.PaymentStatus)
	assert.Equal(t, 2, first.RowNumber)
	require.NotNil(t, first.POReleasedDate)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *first.POReleasedDate)
	require.NotNil(t, first.TotalPrice)
	assert.InDelta(t, 1000.555, *first.TotalPrice, 1e-9)
	// The raw cell keeps full precision for export.
	assert.Equal(t, "1000.555", first.Field(types.ColTotalPrice))

	assert.Equal(t, types.StatusNotStarted, table.Records[1].PaymentStatus)

	third := table.Records[2]
	assert.Equal(t, types.StatusPendingGoodsReceipt, third.PaymentStatus)
	assert.Nil(t, third.POReleasedDate)
}

func TestLoad_MissingQuantityColumnFailsWholeLoad(t *testing.T) {
	path := writeWorkbook(t, DefaultSheet, [][]interface{}{
		{types.ColMR, types.ColIRQty},
		{"MR-1", "10"},
	})

	_, err := Load(path, Options{})
	require.Error(t, err)

	var dfe *DataFormatError
	require.ErrorAs(t, err, &dfe)
	assert.Contains(t, dfe.Reason, types.ColGRQty)
}

func TestLoad_MissingSheetIsDataFormatError(t *testing.T) {
	path := writeWorkbook(t, "OtherSheet", [][]interface{}{fixtureHeaders})

	_, err := Load(path, Options{})
	require.Error(t, err)

	var dfe *DataFormatError
	assert.ErrorAs(t, err, &dfe)
}

func TestLoad_UnreachableSource(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.xlsx"), Options{})
	assert.Error(t, err)
}

func TestFromRows_BadCellsDegradeToAbsentValues(t *testing.T) {
	table, err := FromRows("test", [][]string{
		{types.ColGRQty, types.ColIRQty, types.ColPOReleasedDate, types.ColTotalPrice},
		{"abc", "5", "not-a-date", "n/a"},
	})
	require.NoError(t, err)
	require.Len(t, table.Records, 1)

	rec := table.Records[0]
	assert.True(t, math.IsNaN(rec.GRQty))
	assert.Nil(t, rec.POReleasedDate)
	assert.Nil(t, rec.TotalPrice)
	// Unknown quantities fall through to the invoice-pending branch.
	assert.Equal(t, types.StatusPendingSupplierInvoice, rec.PaymentStatus)
	// The raw cells survive untouched.
	assert.Equal(t, "abc", rec.Field(types.ColGRQty))
}

func TestFromRows_EmptySourceFails(t *testing.T) {
	_, err := FromRows("test", nil)

	var dfe *DataFormatError
	require.ErrorAs(t, err, &dfe)
	assert.Contains(t, dfe.Reason, "empty")
}

func TestFromRows_SkipsBlankRowsAndKeepsRowNumbers(t *testing.T) {
	table, err := FromRows("test", [][]string{
		{types.ColGRQty, types.ColIRQty},
		{"1", "1"},
		{"", ""},
		{"2", "2"},
	})
	require.NoError(t, err)
	require.Len(t, table.Records, 2)
	assert.Equal(t, 2, table.Records[0].RowNumber)
	assert.Equal(t, 4, table.Records[1].RowNumber)
}

func TestFromRows_BlankHeadersGetPositionalNames(t *testing.T) {
	table, err := FromRows("test", [][]string{
		{types.ColGRQty, "", types.ColIRQty},
		{"1", "note", "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{types.ColGRQty, "Column_2", types.ColIRQty}, table.Headers)
	assert.Equal(t, "note", table.Records[0].Field("Column_2"))
}

func TestFromRows_ShortRowsReadAsEmptyCells(t *testing.T) {
	table, err := FromRows("test", [][]string{
		{types.ColGRQty, types.ColIRQty, types.ColShortText},
		{"3", "3"},
	})
	require.NoError(t, err)
	assert.Equal(t, "", table.Records[0].Field(types.ColShortText))
	assert.Equal(t, types.StatusPaid, table.Records[0].PaymentStatus)
}

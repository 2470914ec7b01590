package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/PharmGest-api/internal/application/dto"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseBatchRows_AliasEnEspañol(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Código", "Lote", "Cantidad", "Fecha de vencimiento"},
		{"IBU-600", "L-001", 100, "2027-03-10"},
		{"", "", "", ""},
		{"AMX", "L-002", "5", "15/08/2026"},
	})

	rows, err := ParseBatchRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "IBU-600", rows[0].SKU)
	assert.Equal(t, "L-001", rows[0].BatchCode)
	assert.Equal(t, 100, rows[0].Quantity)
	assert.Equal(t, time.Date(2027, 3, 10, 0, 0, 0, 0, time.UTC), rows[0].ExpiryDate)
	assert.Equal(t, 4, rows[1].Row)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), rows[1].ExpiryDate)
}

func TestParseBatchRows_Errores(t *testing.T) {
	_, err := ParseBatchRows(workbook(t, [][]any{{"sku", "quantity"}, {"A", 1}}))
	assert.ErrorContains(t, err, "missing required column")

	_, err = ParseBatchRows(workbook(t, [][]any{
		{"sku", "batch_code", "quantity", "expiry_date"},
		{"A", "L", "1.5", "2027-01-01"},
	}))
	assert.ErrorContains(t, err, "invalid quantity")

	_, err = ParseBatchRows(bytes.NewBufferString("no es un xlsx"))
	assert.Error(t, err)
}

func TestParseDate_SerialExcel(t *testing.T) {
	got, err := parseDate("46091")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestWriteSalesHistory(t *testing.T) {
	history := &dto.SaleHistoryResponse{
		Items: []dto.SaleSummaryResponse{{
			InvoiceNumber: "000001",
			Date:          time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
			CashierName:   "vendedor",
			PaymentMethod: "EFECTIVO",
			ItemsSummary:  "Aspirina x2",
			Total:         decimal.NewFromInt(20),
			Profit:        decimal.NewFromInt(8),
		}},
		TotalSold:   decimal.NewFromInt(20),
		TotalProfit: decimal.NewFromInt(8),
		SaleCount:   1,
	}
	out, err := WriteSalesHistory(history)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(salesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Factura", rows[0][0])
	assert.Equal(t, "000001", rows[1][0])
	assert.Equal(t, "TOTAL", rows[2][0])
}

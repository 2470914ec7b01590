package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/PharmGest-api/internal/application/dto"
)

const salesSheet = "Ventas"

var salesHeader = []any{"Factura", "Fecha", "Cajero", "Pago", "Artículos", "Total", "Ganancia"}

// WriteSalesHistory arma el libro del historial: una fila por venta y una fila de totales.
func WriteSalesHistory(history *dto.SaleHistoryResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(salesSheet, "A1", &salesHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("money style: %w", err)
	}
	if err := f.SetCellStyle(salesSheet, "A1", "G1", bold); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	rowIdx := 2
	for _, s := range history.Items {
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		values := []any{
			s.InvoiceNumber,
			s.Date.Format("2006-01-02 15:04"),
			s.CashierName,
			s.PaymentMethod,
			s.ItemsSummary,
			s.Total.InexactFloat64(),
			s.Profit.InexactFloat64(),
		}
		if err := f.SetSheetRow(salesSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", rowIdx, err)
		}
		rowIdx++
	}

	totalCell, _ := excelize.CoordinatesToCellName(1, rowIdx)
	totals := []any{"TOTAL", "", "", "", fmt.Sprintf("%d ventas", history.SaleCount),
		history.TotalSold.InexactFloat64(), history.TotalProfit.InexactFloat64()}
	if err := f.SetSheetRow(salesSheet, totalCell, &totals); err != nil {
		return nil, fmt.Errorf("write totals: %w", err)
	}
	endCell, _ := excelize.CoordinatesToCellName(7, rowIdx)
	startTotal, _ := excelize.CoordinatesToCellName(1, rowIdx)
	if err := f.SetCellStyle(salesSheet, startTotal, endCell, bold); err != nil {
		return nil, fmt.Errorf("apply totals style: %w", err)
	}
	if rowIdx > 2 {
		lastData, _ := excelize.CoordinatesToCellName(7, rowIdx-1)
		if err := f.SetCellStyle(salesSheet, "F2", lastData, money); err != nil {
			return nil, fmt.Errorf("apply money style: %w", err)
		}
	}
	_ = f.SetColWidth(salesSheet, "B", "B", 18)
	_ = f.SetColWidth(salesSheet, "E", "E", 50)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

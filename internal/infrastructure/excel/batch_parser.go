// Package excel lee y escribe planillas .xlsx (importación de lotes, reporte de ventas).
package excel

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/PharmGest-api/internal/application/dto"
)

var headerAliases = map[string]string{
	"sku":                  "sku",
	"codigo":               "sku",
	"código":               "sku",
	"codigo producto":      "sku",
	"código producto":      "sku",
	"batch code":           "batch_code",
	"batch":                "batch_code",
	"lote":                 "batch_code",
	"codigo lote":          "batch_code",
	"código lote":          "batch_code",
	"numero lote":          "batch_code",
	"número lote":          "batch_code",
	"quantity":             "quantity",
	"qty":                  "quantity",
	"cantidad":             "quantity",
	"expiry date":          "expiry_date",
	"expiry":               "expiry_date",
	"vencimiento":          "expiry_date",
	"fecha vencimiento":    "expiry_date",
	"fecha de vencimiento": "expiry_date",
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "2006/01/02", "01-02-06", "2/1/2006"}

// ParseBatchRows lee la primera hoja: columnas sku, batch_code, quantity, expiry_date
// (con alias en español). Las filas sin SKU se ignoran; un valor inválido corta la lectura.
func ParseBatchRows(reader io.Reader) ([]dto.BatchImportRow, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("open excel file: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("excel file is empty")
	}

	colMap := mapColumns(rows[0])
	for _, required := range []string{"sku", "batch_code", "quantity", "expiry_date"} {
		if _, ok := colMap[required]; !ok {
			return nil, fmt.Errorf("missing required column: %s", required)
		}
	}

	result := make([]dto.BatchImportRow, 0, len(rows)-1)
	for index := 1; index < len(rows); index++ {
		cells := rows[index]
		sku := strings.TrimSpace(readCell(cells, colMap["sku"]))
		if sku == "" {
			continue
		}
		qty, err := parseInt(readCell(cells, colMap["quantity"]))
		if err != nil {
			return nil, fmt.Errorf("row %d invalid quantity: %w", index+1, err)
		}
		expiry, err := parseDate(readCell(cells, colMap["expiry_date"]))
		if err != nil {
			return nil, fmt.Errorf("row %d invalid expiry_date: %w", index+1, err)
		}
		result = append(result, dto.BatchImportRow{
			Row:        index + 1,
			SKU:        sku,
			BatchCode:  strings.TrimSpace(readCell(cells, colMap["batch_code"])),
			Quantity:   qty,
			ExpiryDate: expiry,
		})
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("excel file has no valid data rows")
	}
	return result, nil
}

func mapColumns(header []string) map[string]int {
	mapped := make(map[string]int)
	for idx, col := range header {
		normalized := normalizeHeader(col)
		if normalized == "" {
			continue
		}
		canonical, ok := headerAliases[normalized]
		if !ok {
			continue
		}
		if _, exists := mapped[canonical]; !exists {
			mapped[canonical] = idx
		}
	}
	return mapped
}

func normalizeHeader(raw string) string {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "\ufeff")
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, "_", " ")
	value = strings.Join(strings.Fields(value), " ")
	return value
}

func readCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseInt(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("value is empty")
	}
	asFloat, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if math.Mod(asFloat, 1) != 0 {
		return 0, fmt.Errorf("must be an integer")
	}
	return int(asFloat), nil
}

// parseDate acepta texto en los formatos usuales o el número de serie de Excel.
func parseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("value is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

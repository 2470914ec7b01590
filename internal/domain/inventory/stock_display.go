package inventory

import "fmt"

// StockLevel semáforo de stock del listado de inventario.
type StockLevel string

const (
	StockCritical StockLevel = "CRITICO"
	StockLow      StockLevel = "BAJO"
	StockNormal   StockLevel = "NORMAL"
)

// FormatStock texto de stock: "N Unid." o "C Cajas / S Sueltas" para fraccionables.
func FormatStock(total int, isFractionable bool, unitsPerBox int) string {
	if !isFractionable || unitsPerBox <= 1 {
		return fmt.Sprintf("%d Unid.", total)
	}
	return fmt.Sprintf("%d Cajas / %d Sueltas", total/unitsPerBox, total%unitsPerBox)
}

// ClassifyStock aplica los umbrales (inclusive) de stock crítico y bajo.
func ClassifyStock(total, critical, low int) StockLevel {
	switch {
	case total <= critical:
		return StockCritical
	case total <= low:
		return StockLow
	default:
		return StockNormal
	}
}

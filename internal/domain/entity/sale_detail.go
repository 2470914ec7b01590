package entity

import "github.com/shopspring/decimal"

// SaleDetail es una línea de venta. ProductID es una referencia débil:
// el producto puede haberse eliminado después.
type SaleDetail struct {
	ID        string
	SaleID    string
	LineNo    int // orden del carrito
	ProductID string
	Quantity  int // en cajas si IsBoxSale, si no en unidades sueltas
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	IsBoxSale bool
}

package inventory

import (
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LinePrice precio cobrado por unidad vendida (caja o unidad suelta).
func LinePrice(p *entity.Product, isBoxSale bool) decimal.Decimal {
	if !p.IsFractionable {
		return p.Price
	}
	if isBoxSale {
		return p.BoxPrice
	}
	return p.UnitPrice
}

// UnitsToDeduct convierte la cantidad vendida a unidades base.
func UnitsToDeduct(p *entity.Product, quantity int, isBoxSale bool) int {
	if isBoxSale && p.IsFractionable {
		return quantity * max(p.UnitsPerBox, 1)
	}
	return quantity
}

// MaxSellable cantidad máxima que puede pedirse en el modo indicado.
func MaxSellable(p *entity.Product, isBoxSale bool) int {
	if isBoxSale && p.IsFractionable && p.UnitsPerBox > 0 {
		return p.TotalStock / p.UnitsPerBox
	}
	return p.TotalStock
}

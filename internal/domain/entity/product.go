package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible de la farmacia.
// TotalStock está en unidades base; una vez que existen lotes es la suma de su stock.
type Product struct {
	ID             string
	SKU            string // único
	Name           string
	CategoryID     string          // vacío si no tiene categoría
	Price          decimal.Decimal // precio plano (productos no fraccionables)
	BoxPrice       decimal.Decimal
	UnitPrice      decimal.Decimal
	Cost           decimal.Decimal // costo de compra por caja; cero = no configurado
	TotalStock     int
	IsFractionable bool
	UnitsPerBox    int // >= 1; 1 si no es fraccionable
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NormalizeUnits fuerza UnitsPerBox a 1 cuando el producto no se vende fraccionado.
func (p *Product) NormalizeUnits() {
	if !p.IsFractionable || p.UnitsPerBox < 1 {
		p.UnitsPerBox = 1
	}
}

package inventory

import (
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LineProfit ganancia estimada de una línea.
// CostConfigured=false significa "costo sin configurar": Profit es 0 pero no es
// una venta sin margen. ProductRemoved indica que el producto ya no existe.
type LineProfit struct {
	Profit         decimal.Decimal
	CostConfigured bool
	ProductRemoved bool
}

// EstimateLineProfit aplica el prorrateo del costo por caja:
// venta por caja usa el costo completo, venta por unidad de un fraccionable
// usa cost/units_per_box. product nil = producto eliminado.
func EstimateLineProfit(d *entity.SaleDetail, product *entity.Product) LineProfit {
	if product == nil {
		return LineProfit{Profit: decimal.Zero, ProductRemoved: true}
	}
	if product.Cost.IsZero() {
		return LineProfit{Profit: decimal.Zero}
	}
	costApplicable := product.Cost
	if !d.IsBoxSale && product.IsFractionable && product.UnitsPerBox > 0 {
		costApplicable = product.Cost.Div(decimal.NewFromInt(int64(product.UnitsPerBox)))
	}
	profit := d.UnitPrice.Sub(costApplicable).Mul(decimal.NewFromInt(int64(d.Quantity))).Round(2)
	return LineProfit{Profit: profit, CostConfigured: true}
}

// SaleProfit ganancia agregada de una venta.
type SaleProfit struct {
	Total               decimal.Decimal
	Lines               []LineProfit
	HasUnconfiguredCost bool
	HasRemovedProducts  bool
}

// EstimateProfit suma las líneas de una venta usando el producto aún vinculado.
func EstimateProfit(details []*entity.SaleDetail, products map[string]*entity.Product) SaleProfit {
	out := SaleProfit{Total: decimal.Zero, Lines: make([]LineProfit, 0, len(details))}
	for _, d := range details {
		lp := EstimateLineProfit(d, products[d.ProductID])
		switch {
		case lp.ProductRemoved:
			out.HasRemovedProducts = true
		case !lp.CostConfigured:
			out.HasUnconfiguredCost = true
		}
		out.Total = out.Total.Add(lp.Profit)
		out.Lines = append(out.Lines, lp)
	}
	return out
}

// ProfitTone guía de color para mostrar la ganancia.
type ProfitTone string

const (
	ToneGain         ProfitTone = "positive"
	ToneLoss         ProfitTone = "negative"
	ToneUnconfigured ProfitTone = "unconfigured"
	ToneZero         ProfitTone = "zero"
)

// Tone distingue un cero por costo faltante de un margen cero real.
func (s SaleProfit) Tone() ProfitTone {
	switch {
	case s.Total.IsPositive():
		return ToneGain
	case s.Total.IsNegative():
		return ToneLoss
	case s.HasUnconfiguredCost || s.HasRemovedProducts:
		return ToneUnconfigured
	default:
		return ToneZero
	}
}

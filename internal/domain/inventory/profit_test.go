package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/inventory"
)

func fraccionable() *entity.Product {
	return &entity.Product{
		ID:             "p1",
		Name:           "Amoxicilina 500mg",
		Price:          decimal.NewFromInt(200),
		BoxPrice:       decimal.NewFromInt(200),
		UnitPrice:      decimal.NewFromInt(25),
		Cost:           decimal.NewFromInt(100),
		IsFractionable: true,
		UnitsPerBox:    10,
	}
}

func TestEstimateLineProfit(t *testing.T) {
	p := fraccionable()

	t.Run("venta por unidad prorratea el costo por caja", func(t *testing.T) {
		d := &entity.SaleDetail{ProductID: "p1", Quantity: 3, UnitPrice: decimal.NewFromInt(25)}
		lp := inventory.EstimateLineProfit(d, p)
		assert.True(t, lp.CostConfigured)
		assert.True(t, decimal.NewFromInt(45).Equal(lp.Profit), lp.Profit.String())
	})

	t.Run("venta por caja usa el costo completo", func(t *testing.T) {
		d := &entity.SaleDetail{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(200), IsBoxSale: true}
		lp := inventory.EstimateLineProfit(d, p)
		assert.True(t, decimal.NewFromInt(200).Equal(lp.Profit), lp.Profit.String())
	})

	t.Run("costo cero es costo sin configurar", func(t *testing.T) {
		sinCosto := fraccionable()
		sinCosto.Cost = decimal.Zero
		d := &entity.SaleDetail{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(25)}
		lp := inventory.EstimateLineProfit(d, sinCosto)
		assert.False(t, lp.CostConfigured)
		assert.True(t, lp.Profit.IsZero())
	})

	t.Run("producto eliminado", func(t *testing.T) {
		d := &entity.SaleDetail{ProductID: "borrado", Quantity: 1, UnitPrice: decimal.NewFromInt(25)}
		lp := inventory.EstimateLineProfit(d, nil)
		assert.True(t, lp.ProductRemoved)
		assert.True(t, lp.Profit.IsZero())
	})
}

func TestEstimateProfit_Tone(t *testing.T) {
	p := fraccionable()
	products := map[string]*entity.Product{"p1": p}

	ganancia := inventory.EstimateProfit([]*entity.SaleDetail{
		{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(25)},
	}, products)
	assert.Equal(t, inventory.ToneGain, ganancia.Tone())

	perdida := inventory.EstimateProfit([]*entity.SaleDetail{
		{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
	}, products)
	assert.Equal(t, inventory.ToneLoss, perdida.Tone())

	sinDatos := inventory.EstimateProfit([]*entity.SaleDetail{
		{ProductID: "otro", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
	}, products)
	assert.True(t, sinDatos.HasRemovedProducts)
	assert.Equal(t, inventory.ToneUnconfigured, sinDatos.Tone())

	neutro := inventory.EstimateProfit([]*entity.SaleDetail{
		{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
	}, products)
	assert.Equal(t, inventory.ToneZero, neutro.Tone())
}

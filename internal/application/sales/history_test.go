package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PharmGest-api/internal/application/dto"
	"github.com/jhoicas/PharmGest-api/internal/application/sales"
	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/inventory"
)

func TestHistory_GananciaYTarjetas(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	amx := f.product(t, entity.Product{
		SKU: "AMX", Name: "Amoxicilina", IsFractionable: true, UnitsPerBox: 10,
		BoxPrice: decimal.NewFromInt(200), UnitPrice: decimal.NewFromInt(25), Cost: decimal.NewFromInt(100),
	})
	gasa := f.product(t, entity.Product{SKU: "GASA", Name: "Gasa", Price: decimal.NewFromInt(5), TotalStock: 10})
	f.batch(t, "l1", amx.ID, 100, 90)

	_, err := f.uc.Settle(ctx, dto.SettleSaleRequest{Lines: []dto.CartLineRequest{
		{ProductID: amx.ID, Quantity: 3},                  // (25-10)*3 = 45
		{ProductID: amx.ID, Quantity: 1, IsBoxSale: true}, // 200-100 = 100
	}})
	require.NoError(t, err)
	second, err := f.uc.Settle(ctx, dto.SettleSaleRequest{Lines: []dto.CartLineRequest{
		{ProductID: gasa.ID, Quantity: 2}, // sin costo
	}})
	require.NoError(t, err)

	h := sales.NewHistoryUseCase(f.store.SaleRepository(), f.store.ProductRepository())
	resp, err := h.List(ctx, dto.SaleHistoryFilter{})
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.SaleCount)
	assert.True(t, decimal.NewFromInt(285).Equal(resp.TotalSold), resp.TotalSold.String())
	assert.True(t, decimal.NewFromInt(145).Equal(resp.TotalProfit), resp.TotalProfit.String())

	// más reciente primero (misma fecha: mayor número)
	assert.Equal(t, second.SaleID, resp.Items[0].SaleID)
	assert.Equal(t, string(inventory.ToneUnconfigured), resp.Items[0].ProfitTone)
	assert.Equal(t, string(inventory.ToneGain), resp.Items[1].ProfitTone)
	assert.Equal(t, "Amoxicilina (UNIDAD) x3, Amoxicilina (CAJA) x1", resp.Items[1].ItemsSummary)
}

func TestHistory_ProductoEliminado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, entity.Product{SKU: "A", Name: "Aspirina", Price: decimal.NewFromInt(10), Cost: decimal.NewFromInt(4)})
	f.batch(t, "a1", p.ID, 5, 30)

	r, err := f.uc.Settle(ctx, dto.SettleSaleRequest{Lines: []dto.CartLineRequest{{ProductID: p.ID, Quantity: 1}}})
	require.NoError(t, err)
	require.NoError(t, f.store.ProductRepository().Delete(ctx, p.ID))

	h := sales.NewHistoryUseCase(f.store.SaleRepository(), f.store.ProductRepository())
	got, err := h.Get(ctx, r.SaleID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, sales.RemovedProductName, got.Lines[0].Description)
	assert.True(t, got.Profit.IsZero())

	_, err = h.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PharmGest-api/internal/application/dto"
	appinventory "github.com/jhoicas/PharmGest-api/internal/application/inventory"
	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/infrastructure/memory"
)

var hoy = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func fecha(dias int) string { return hoy.AddDate(0, 0, dias).Format(appinventory.DateLayout) }

func newBatchUseCase(t *testing.T) (*appinventory.BatchUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := appinventory.NewBatchUseCase(memory.NewTxRunner(store), store.ProductRepository(), store.BatchRepository(), 90, zerolog.Nop())
	uc.SetClock(func() time.Time { return hoy })
	return uc, store
}

func seedProduct(t *testing.T, store *memory.Store, p entity.Product) *entity.Product {
	t.Helper()
	if p.ID == "" {
		p.ID = p.SKU
	}
	p.NormalizeUnits()
	require.NoError(t, store.ProductRepository().Create(context.Background(), &p))
	return &p
}

func stockOf(t *testing.T, store *memory.Store, id string) int {
	t.Helper()
	p, err := store.ProductRepository().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.TotalStock
}

func TestAddBatch_RecalculaStock(t *testing.T) {
	ctx := context.Background()
	uc, store := newBatchUseCase(t)
	p := seedProduct(t, store, entity.Product{SKU: "IBU-600", Name: "Ibuprofeno 600mg", Price: decimal.NewFromInt(250)})

	_, err := uc.AddBatch(ctx, p.ID, dto.AddBatchRequest{BatchCode: "L-BUENO-001", ExpiryDate: fecha(365), Quantity: 100})
	require.NoError(t, err)
	_, err = uc.AddBatch(ctx, p.ID, dto.AddBatchRequest{BatchCode: "L-URGENTE-99", ExpiryDate: fecha(1), Quantity: 50})
	require.NoError(t, err)

	assert.Equal(t, 150, stockOf(t, store, p.ID))
}

func TestAddBatch_FraccionableGuardaUnidades(t *testing.T) {
	ctx := context.Background()
	uc, store := newBatchUseCase(t)
	p := seedProduct(t, store, entity.Product{SKU: "AMX", Name: "Amoxicilina", IsFractionable: true, UnitsPerBox: 10})

	b, err := uc.AddBatch(ctx, p.ID, dto.AddBatchRequest{BatchCode: "L1", ExpiryDate: fecha(200), Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 30, b.Stock)
	assert.Equal(t, 30, stockOf(t, store, p.ID))
	assert.Equal(t, hoy, b.EntryDate)
}

func TestAddBatch_CostoPromedio(t *testing.T) {
	ctx := context.Background()
	uc, store := newBatchUseCase(t)
	p := seedProduct(t, store, entity.Product{SKU: "AMX", Name: "Amoxicilina", IsFractionable: true, UnitsPerBox: 10})

	c100 := decimal.NewFromInt(100)
	_, err := uc.AddBatch(ctx, p.ID, dto.AddBatchRequest{BatchCode: "L1", ExpiryDate: fecha(200), Quantity: 2, BoxCost: &c100})
	require.NoError(t, err)
	c140 := decimal.NewFromInt(140)
	_, err = uc.AddBatch(ctx, p.ID, dto.AddBatchRequest{BatchCode: "L2", ExpiryDate: fecha(300), Quantity: 2, BoxCost: &c140})
	require.NoError(t, err)

	got, err := store.ProductRepository().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(120).Equal(got.Cost), got.Cost.String())
}

func TestAddBatch_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc, store := newBatchUseCase(t)
	p := seedProduct(t, store, entity.Product{SKU: "X", Name: "X"})

	cases := []struct {
		name string
		id   string
		in   dto.AddBatchRequest
		err  error
	}{
		{"sin código", p.ID, dto.AddBatchRequest{ExpiryDate: fecha(10), Quantity: 1}, domain.ErrInvalidInput},
		{"cantidad cero", p.ID, dto.AddBatchRequest{BatchCode: "L", ExpiryDate: fecha(10)}, domain.ErrInvalidInput},
		{"fecha inválida", p.ID, dto.AddBatchRequest{BatchCode: "L", ExpiryDate: "10/03/2026", Quantity: 1}, domain.ErrInvalidInput},
		{"producto inexistente", "nope", dto.AddBatchRequest{BatchCode: "L", ExpiryDate: fecha(10), Quantity: 1}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.AddBatch(ctx, tc.id, tc.in)
			assert.ErrorIs(t, err, tc.err)
		})
	}
	assert.Equal(t, 0, stockOf(t, store, p.ID))
}

func TestDeleteBatch(t *testing.T) {
	ctx := context.Background()
	uc, store := newBatchUseCase(t)
	p := seedProduct(t, store, entity.Product{SKU: "X", Name: "X"})

	b1, err := uc.AddBatch(ctx, p.ID, dto.AddBatchRequest{BatchCode: "A", ExpiryDate: fecha(10), Quantity: 5})
	require.NoError(t, err)
	_, err = uc.AddBatch(ctx, p.ID, dto.AddBatchRequest{BatchCode: "B", ExpiryDate: fecha(20), Quantity: 7})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteBatch(ctx, b1.ID))
	assert.Equal(t, 7, stockOf(t, store, p.ID))

	assert.ErrorIs(t, uc.DeleteBatch(ctx, b1.ID), domain.ErrNotFound)
}

func TestManualStock_ReemplazadoPorLotes(t *testing.T) {
	ctx := context.Background()
	uc, store := newBatchUseCase(t)
	p := seedProduct(t, store, entity.Product{SKU: "X", Name: "X", TotalStock: 40})

	_, err := uc.AddBatch(ctx, p.ID, dto.AddBatchRequest{BatchCode: "A", ExpiryDate: fecha(10), Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, stockOf(t, store, p.ID), "con lotes el stock es la suma de lotes")
}

func TestListBatches_OrdenFEFOySemaforo(t *testing.T) {
	ctx := context.Background()
	uc, store := newBatchUseCase(t)
	p := seedProduct(t, store, entity.Product{SKU: "AMX", Name: "Amoxicilina", IsFractionable: true, UnitsPerBox: 10})

	for _, in := range []dto.AddBatchRequest{
		{BatchCode: "OK", ExpiryDate: fecha(365), Quantity: 1},
		{BatchCode: "VENCIDO", ExpiryDate: fecha(-2), Quantity: 1},
		{BatchCode: "PRONTO", ExpiryDate: fecha(30), Quantity: 1},
	} {
		_, err := uc.AddBatch(ctx, p.ID, in)
		require.NoError(t, err)
	}

	resp, err := uc.ListBatches(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, resp.Batches, 3)
	assert.Equal(t, "VENCIDO", resp.Batches[0].BatchCode)
	assert.Equal(t, "EXPIRED", resp.Batches[0].Tier)
	assert.Equal(t, -2, resp.Batches[0].DaysLeft)
	assert.Equal(t, "PRONTO", resp.Batches[1].BatchCode)
	assert.Equal(t, "WARNING", resp.Batches[1].Tier)
	assert.Equal(t, "OK", resp.Batches[2].Tier)
	assert.Equal(t, "3 Cajas / 0 Sueltas", resp.StockDisplay)

	_, err = uc.ListBatches(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpiringBatches(t *testing.T) {
	ctx := context.Background()
	uc, store := newBatchUseCase(t)
	p := seedProduct(t, store, entity.Product{SKU: "IBU-600", Name: "Ibuprofeno"})

	_, err := uc.AddBatch(ctx, p.ID, dto.AddBatchRequest{BatchCode: "LEJOS", ExpiryDate: fecha(365), Quantity: 10})
	require.NoError(t, err)
	_, err = uc.AddBatch(ctx, p.ID, dto.AddBatchRequest{BatchCode: "URGENTE", ExpiryDate: fecha(1), Quantity: 10})
	require.NoError(t, err)

	list, err := uc.ExpiringBatches(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "URGENTE", list[0].BatchCode)
	assert.Equal(t, "IBU-600", list[0].ProductSKU)
	assert.Equal(t, "WARNING", list[0].Tier)
}

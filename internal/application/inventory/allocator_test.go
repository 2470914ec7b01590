package inventory_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/PharmGest-api/internal/application/inventory"
	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/infrastructure/memory"
)

func seedBatch(t *testing.T, store *memory.Store, id, productID string, stock, dias int) {
	t.Helper()
	require.NoError(t, store.BatchRepository().Create(context.Background(), &entity.ProductBatch{
		ID: id, ProductID: productID, BatchCode: id, Stock: stock,
		ExpiryDate: hoy.AddDate(0, 0, dias), EntryDate: hoy,
	}))
}

func TestAllocator_Deduct(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	p := seedProduct(t, store, entity.Product{SKU: "IBU", Name: "Ibuprofeno"})
	seedBatch(t, store, "bueno", p.ID, 100, 365)
	seedBatch(t, store, "urgente", p.ID, 50, 1)

	alloc := appinventory.NewAllocator(zerolog.Nop())
	repos := appinventory.Repos{Products: store.ProductRepository(), Batches: store.BatchRepository(), Sales: store.SaleRepository()}

	res, err := alloc.Deduct(ctx, repos, p.ID, 60)
	require.NoError(t, err)
	assert.True(t, res.Fulfilled())

	urgente, _ := store.BatchRepository().GetByID(ctx, "urgente")
	bueno, _ := store.BatchRepository().GetByID(ctx, "bueno")
	assert.Equal(t, 0, urgente.Stock)
	assert.Equal(t, 90, bueno.Stock)

	total, err := appinventory.RecomputeTotalStock(ctx, repos, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, total)
	assert.Equal(t, 90, stockOf(t, store, p.ID))

	_, err = alloc.Deduct(ctx, repos, p.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAllocator_SubAsignacion(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	p := seedProduct(t, store, entity.Product{SKU: "IBU", Name: "Ibuprofeno"})
	seedBatch(t, store, "a", p.ID, 3, 10)

	alloc := appinventory.NewAllocator(zerolog.Nop())
	repos := appinventory.Repos{Products: store.ProductRepository(), Batches: store.BatchRepository(), Sales: store.SaleRepository()}

	res, err := alloc.Deduct(ctx, repos, p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Allocated)
	assert.Equal(t, 2, res.Remaining)
}

func TestAllocator_ConsumeSinLotes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	p := seedProduct(t, store, entity.Product{SKU: "GASA", Name: "Gasa", TotalStock: 12})

	alloc := appinventory.NewAllocator(zerolog.Nop())
	repos := appinventory.Repos{Products: store.ProductRepository(), Batches: store.BatchRepository(), Sales: store.SaleRepository()}

	left, err := alloc.Consume(ctx, repos, p, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, left)
	assert.Equal(t, 7, stockOf(t, store, p.ID))
}

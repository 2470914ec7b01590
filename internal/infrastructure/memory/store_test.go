package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PharmGest-api/internal/application/inventory"
	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/repository"
	"github.com/jhoicas/PharmGest-api/internal/infrastructure/memory"
)

func TestTxRunner_RollbackRestauraDatos(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.ProductRepository().Create(ctx, &entity.Product{ID: "p1", SKU: "A", Name: "A", TotalStock: 10, UnitsPerBox: 1}))

	boom := errors.New("boom")
	err := memory.NewTxRunner(store).Run(ctx, func(repos inventory.Repos) error {
		require.NoError(t, repos.Products.UpdateTotalStock(ctx, "p1", 3))
		require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{ID: "s1", Date: time.Now()}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := store.ProductRepository().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.TotalStock)
	s, err := store.SaleRepository().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestTxRunner_RollbackNoPisaEscriturasSueltas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := store.ProductRepository()
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", SKU: "A", Name: "A", TotalStock: 10, UnitsPerBox: 1}))

	boom := errors.New("venta fallida")
	started, release := make(chan struct{}), make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- memory.NewTxRunner(store).Run(ctx, func(repos inventory.Repos) error {
			if err := repos.Products.UpdateTotalStock(ctx, "p1", 3); err != nil {
				return err
			}
			close(started)
			<-release
			return boom
		})
	}()
	<-started

	created := make(chan error, 1)
	go func() {
		created <- products.Create(ctx, &entity.Product{ID: "p2", SKU: "B", Name: "B", UnitsPerBox: 1})
	}()
	select {
	case err := <-created:
		t.Fatalf("la escritura no esperó a la transacción: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.ErrorIs(t, <-txDone, boom)
	require.NoError(t, <-created)

	p1, err := products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p1.TotalStock)
	p2, err := products.GetByID(ctx, "p2")
	require.NoError(t, err)
	require.NotNil(t, p2, "el producto creado durante el rollback sobrevive")
}

func TestProductRepo_SearchSinAcentosNiMayusculas(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().ProductRepository()
	for _, p := range []entity.Product{
		{ID: "1", SKU: "ACE-500", Name: "Acetaminofén 500mg"},
		{ID: "2", SKU: "IBU-600", Name: "Ibuprofeno 600mg"},
		{ID: "3", SKU: "AMOX", Name: "Amoxicilina"},
	} {
		p := p
		p.UnitsPerBox = 1
		require.NoError(t, repo.Create(ctx, &p))
	}

	got, err := repo.Search(ctx, "ACETAMINOFEN", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	got, err = repo.Search(ctx, "ibu-6", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = repo.Search(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Acetaminofén 500mg", got[0].Name)
}

func TestProductRepo_SKUDuplicadoYBorradoEnCascada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := store.ProductRepository()
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", SKU: "IBU-600", Name: "Ibu", UnitsPerBox: 1}))

	err := products.Create(ctx, &entity.Product{ID: "p2", SKU: "ibu-600", Name: "Otro", UnitsPerBox: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, store.BatchRepository().Create(ctx, &entity.ProductBatch{ID: "b1", ProductID: "p1", Stock: 5, ExpiryDate: time.Now()}))
	require.NoError(t, products.Delete(ctx, "p1"))
	b, err := store.BatchRepository().GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Nil(t, b)
	assert.ErrorIs(t, products.Delete(ctx, "p1"), domain.ErrNotFound)
}

func TestSaleRepo_ListMasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().SaleRepository()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &entity.Sale{ID: id, Date: base.AddDate(0, 0, i)}))
	}

	from := base.AddDate(0, 0, 1)
	got, err := repo.List(ctx, repository.SaleFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, int64(3), got[0].Number)
	assert.Equal(t, "b", got[1].ID)
}

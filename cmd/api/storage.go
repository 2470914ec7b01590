package main

import (
	"context"

	"github.com/jhoicas/PharmGest-api/internal/application/inventory"
	"github.com/jhoicas/PharmGest-api/internal/domain/repository"
	"github.com/jhoicas/PharmGest-api/internal/infrastructure/memory"
	"github.com/jhoicas/PharmGest-api/internal/infrastructure/postgres"
	"github.com/jhoicas/PharmGest-api/pkg/config"
)

// storage agrupa los adaptadores de persistencia según DB_DRIVER.
type storage struct {
	tx         inventory.TxRunner
	products   repository.ProductRepository
	batches    repository.BatchRepository
	sales      repository.SaleRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	close      func()
}

func openStorage(ctx context.Context, cfg config.DBConfig) (*storage, error) {
	if cfg.Driver == config.DriverMemory {
		store := memory.NewStore()
		return &storage{
			tx:         memory.NewTxRunner(store),
			products:   store.ProductRepository(),
			batches:    store.BatchRepository(),
			sales:      store.SaleRepository(),
			users:      store.UserRepository(),
			categories: store.CategoryRepository(),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := postgres.RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &storage{
		tx:         postgres.NewTxRunner(pool),
		products:   postgres.NewProductRepository(pool),
		batches:    postgres.NewBatchRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		users:      postgres.NewUserRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		close:      pool.Close,
	}, nil
}

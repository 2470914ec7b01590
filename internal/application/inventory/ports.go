package inventory

import (
	"context"

	"github.com/jhoicas/PharmGest-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Products repository.ProductRepository
	Batches  repository.BatchRepository
	Sales    repository.SaleRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback de todo; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para ProductBatch.
// Los listados vuelven en orden FEFO: expiry_date, entry_date, id ascendentes.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.ProductBatch) error
	GetByID(ctx context.Context, id string) (*entity.ProductBatch, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.ProductBatch, error)
	// ListAvailableForUpdate devuelve los lotes con stock > 0 y los bloquea.
	ListAvailableForUpdate(ctx context.Context, productID string) ([]*entity.ProductBatch, error)
	// ListExpiringBefore devuelve lotes con stock > 0 que vencen antes de limit.
	ListExpiringBefore(ctx context.Context, limit time.Time) ([]*entity.ProductBatch, error)
	UpdateStock(ctx context.Context, batchID string, stock int) error
	Delete(ctx context.Context, id string) error
}

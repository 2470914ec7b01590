package repository

import (
	"context"

	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	// Update no modifica TotalStock (ver UpdateTotalStock).
	Update(ctx context.Context, product *entity.Product) error
	UpdateTotalStock(ctx context.Context, productID string, total int) error
	UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error
	// Search busca por nombre o SKU sin distinguir mayúsculas; query vacío lista todo.
	Search(ctx context.Context, query string, limit int) ([]*entity.Product, error)
	// Delete elimina el producto y sus lotes en cascada.
	Delete(ctx context.Context, id string) error
}

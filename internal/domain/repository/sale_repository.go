package repository

import (
	"context"
	"time"

	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
)

// SaleFilter filtra el historial de ventas. Fechas nil = sin límite.
type SaleFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// SaleRepository define el puerto de persistencia para Sale y sus detalles.
type SaleRepository interface {
	// Create persiste la cabecera y asigna Number.
	Create(ctx context.Context, sale *entity.Sale) error
	CreateDetail(ctx context.Context, detail *entity.SaleDetail) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetDetailsBySaleID(ctx context.Context, saleID string) ([]*entity.SaleDetail, error)
	// List devuelve las ventas más recientes primero.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
	ListDetailsBySaleIDs(ctx context.Context, saleIDs []string) (map[string][]*entity.SaleDetail, error)
}

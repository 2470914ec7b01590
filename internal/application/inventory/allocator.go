package inventory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/inventory"
)

// Allocator descuenta unidades de los lotes de un producto en orden FEFO.
type Allocator struct {
	log zerolog.Logger
}

// NewAllocator construye el asignador.
func NewAllocator(log zerolog.Logger) *Allocator {
	return &Allocator{log: log.With().Str("component", "fefo_allocator").Logger()}
}

// Deduct bloquea los lotes con stock, aplica el plan FEFO y persiste cada lote tocado.
// No valida que el stock alcance (lo hace quien llama); si queda remanente se registra
// una advertencia y se devuelve en la Allocation.
func (a *Allocator) Deduct(ctx context.Context, repos Repos, productID string, units int) (inventory.Allocation, error) {
	if units <= 0 {
		return inventory.Allocation{}, domain.ErrInvalidInput
	}
	batches, err := repos.Batches.ListAvailableForUpdate(ctx, productID)
	if err != nil {
		return inventory.Allocation{}, fmt.Errorf("lock batches: %w", err)
	}

	alloc := inventory.PlanFEFO(batches, units)
	for _, d := range alloc.Deductions {
		if err := repos.Batches.UpdateStock(ctx, d.BatchID, d.After); err != nil {
			return inventory.Allocation{}, fmt.Errorf("update batch %s: %w", d.BatchID, err)
		}
	}

	if !alloc.Fulfilled() {
		a.log.Warn().
			Str("product_id", productID).
			Int("requested", alloc.Requested).
			Int("allocated", alloc.Allocated).
			Int("remaining", alloc.Remaining).
			Msg("lotes insuficientes para cubrir la cantidad; stock total y lotes desalineados")
	}
	return alloc, nil
}

// Consume descuenta unidades vendidas de un producto y devuelve su nuevo stock total.
// Con lotes: FEFO + recálculo desde los lotes. Sin lotes el stock es manual y se resta
// directamente (recalcular desde cero lotes lo dejaría en 0).
func (a *Allocator) Consume(ctx context.Context, repos Repos, product *entity.Product, units int) (int, error) {
	if units <= 0 {
		return 0, domain.ErrInvalidInput
	}
	batches, err := repos.Batches.ListByProduct(ctx, product.ID)
	if err != nil {
		return 0, fmt.Errorf("list batches: %w", err)
	}
	if len(batches) == 0 {
		remaining := max(product.TotalStock-units, 0)
		if err := repos.Products.UpdateTotalStock(ctx, product.ID, remaining); err != nil {
			return 0, fmt.Errorf("update total stock: %w", err)
		}
		return remaining, nil
	}
	if _, err := a.Deduct(ctx, repos, product.ID, units); err != nil {
		return 0, err
	}
	return RecomputeTotalStock(ctx, repos, product.ID)
}

package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/PharmGest-api/internal/domain/inventory"
)

// RecomputeTotalStock recalcula Product.TotalStock como la suma del stock de sus lotes
// y lo persiste con los repositorios de la transacción en curso. Es idempotente.
func RecomputeTotalStock(ctx context.Context, repos Repos, productID string) (int, error) {
	batches, err := repos.Batches.ListByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("list batches: %w", err)
	}
	total := inventory.SumBatchStock(batches)
	if err := repos.Products.UpdateTotalStock(ctx, productID, total); err != nil {
		return 0, fmt.Errorf("update total stock: %w", err)
	}
	return total, nil
}

package inventory

import "github.com/jhoicas/PharmGest-api/internal/domain/entity"

// SumBatchStock suma el stock de los lotes. Es la única fuente de verdad del
// stock total de un producto que tiene lotes.
func SumBatchStock(batches []*entity.ProductBatch) int {
	total := 0
	for _, b := range batches {
		if b.Stock > 0 {
			total += b.Stock
		}
	}
	return total
}

package inventory

import (
	"sort"

	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
)

// BatchDeduction es el descuento planificado sobre un lote.
type BatchDeduction struct {
	BatchID   string
	BatchCode string
	Before    int
	Deducted  int
	After     int
}

// Allocation resultado de repartir una cantidad entre lotes.
// Remaining > 0 significa que los lotes no alcanzaron (sub-asignación).
type Allocation struct {
	Requested  int
	Allocated  int
	Remaining  int
	Deductions []BatchDeduction
}

// Fulfilled indica si se asignó toda la cantidad pedida.
func (a Allocation) Fulfilled() bool { return a.Remaining == 0 }

// SortFEFO ordena in-place por vencimiento ascendente; empates por fecha de
// entrada y luego por ID para que el orden sea determinista.
func SortFEFO(batches []*entity.ProductBatch) {
	sort.SliceStable(batches, func(i, j int) bool {
		a, b := batches[i], batches[j]
		if !a.ExpiryDate.Equal(b.ExpiryDate) {
			return a.ExpiryDate.Before(b.ExpiryDate)
		}
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.Before(b.EntryDate)
		}
		return a.ID < b.ID
	})
}

// PlanFEFO reparte quantity (unidades base) entre los lotes con stock, primero el
// que vence antes. Los lotes vencidos NO se excluyen: el vencimiento es informativo.
// No modifica los lotes recibidos.
func PlanFEFO(batches []*entity.ProductBatch, quantity int) Allocation {
	alloc := Allocation{Requested: quantity, Remaining: quantity}
	if quantity <= 0 {
		alloc.Remaining = 0
		return alloc
	}

	ordered := make([]*entity.ProductBatch, 0, len(batches))
	for _, b := range batches {
		if b.Stock > 0 {
			ordered = append(ordered, b)
		}
	}
	SortFEFO(ordered)

	for _, b := range ordered {
		if alloc.Remaining == 0 {
			break
		}
		take := min(b.Stock, alloc.Remaining)
		alloc.Deductions = append(alloc.Deductions, BatchDeduction{
			BatchID:   b.ID,
			BatchCode: b.BatchCode,
			Before:    b.Stock,
			Deducted:  take,
			After:     b.Stock - take,
		})
		alloc.Allocated += take
		alloc.Remaining -= take
	}
	return alloc
}

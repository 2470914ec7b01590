package memory

import (
	"context"
	"time"

	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/inventory"
	"github.com/jhoicas/PharmGest-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación en memoria de BatchRepository.
type BatchRepo struct {
	s  *Store
	tx bool // atado a TxRunner.Run
}

func (r *BatchRepo) Create(_ context.Context, batch *entity.ProductBatch) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.data.products[batch.ProductID]; !ok {
		return domain.ErrNotFound
	}
	c := *batch
	r.s.data.batches[batch.ID] = &c
	return nil
}

func (r *BatchRepo) GetByID(_ context.Context, id string) (*entity.ProductBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.data.batches[id]
	if !ok {
		return nil, nil
	}
	c := *b
	return &c, nil
}

func (r *BatchRepo) ListByProduct(_ context.Context, productID string) ([]*entity.ProductBatch, error) {
	return r.filter(func(b *entity.ProductBatch) bool { return b.ProductID == productID }), nil
}

func (r *BatchRepo) ListAvailableForUpdate(_ context.Context, productID string) ([]*entity.ProductBatch, error) {
	return r.filter(func(b *entity.ProductBatch) bool { return b.ProductID == productID && b.Stock > 0 }), nil
}

func (r *BatchRepo) ListExpiringBefore(_ context.Context, limit time.Time) ([]*entity.ProductBatch, error) {
	return r.filter(func(b *entity.ProductBatch) bool { return b.Stock > 0 && b.ExpiryDate.Before(limit) }), nil
}

func (r *BatchRepo) UpdateStock(_ context.Context, batchID string, stock int) error {
	defer r.s.lockWrite(r.tx)()
	b, ok := r.s.data.batches[batchID]
	if !ok {
		return domain.ErrNotFound
	}
	b.Stock = stock
	return nil
}

func (r *BatchRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.data.batches[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.data.batches, id)
	return nil
}

func (r *BatchRepo) filter(keep func(*entity.ProductBatch) bool) []*entity.ProductBatch {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.ProductBatch, 0)
	for _, b := range r.s.data.batches {
		if keep(b) {
			c := *b
			out = append(out, &c)
		}
	}
	inventory.SortFEFO(out)
	return out
}

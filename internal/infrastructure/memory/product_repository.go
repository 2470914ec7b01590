package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s  *Store
	tx bool // atado a TxRunner.Run
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	defer r.s.lockWrite(r.tx)()
	for _, p := range r.s.data.products {
		if strings.EqualFold(p.SKU, product.SKU) {
			return domain.ErrDuplicateSKU
		}
	}
	c := *product
	r.s.data.products[product.ID] = &c
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

// GetByIDForUpdate en memoria equivale a GetByID: TxRunner ya serializa las transacciones.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.data.products {
		if strings.EqualFold(p.SKU, sku) {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.data.products[id]; ok {
			c := *p
			out[id] = &c
		}
	}
	return out, nil
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	defer r.s.lockWrite(r.tx)()
	cur, ok := r.s.data.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, p := range r.s.data.products {
		if id != product.ID && strings.EqualFold(p.SKU, product.SKU) {
			return domain.ErrDuplicateSKU
		}
	}
	c := *product
	c.TotalStock = cur.TotalStock
	c.CreatedAt = cur.CreatedAt
	r.s.data.products[product.ID] = &c
	return nil
}

func (r *ProductRepo) UpdateTotalStock(_ context.Context, productID string, total int) error {
	defer r.s.lockWrite(r.tx)()
	p, ok := r.s.data.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.TotalStock = total
	p.UpdatedAt = time.Now()
	return nil
}

func (r *ProductRepo) UpdateCost(_ context.Context, productID string, cost decimal.Decimal) error {
	defer r.s.lockWrite(r.tx)()
	p, ok := r.s.data.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Cost = cost
	p.UpdatedAt = time.Now()
	return nil
}

// Search compara sin mayúsculas ni tildes contra nombre y SKU; ordena por nombre.
func (r *ProductRepo) Search(_ context.Context, query string, limit int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q := fold(query)
	out := make([]*entity.Product, 0)
	for _, p := range r.s.data.products {
		if q == "" || strings.Contains(fold(p.Name), q) || strings.Contains(fold(p.SKU), q) {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete borra el producto y sus lotes; los detalles de venta conservan el id huérfano.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.data.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.data.products, id)
	for bid, b := range r.s.data.batches {
		if b.ProductID == id {
			delete(r.s.data.batches, bid)
		}
	}
	return nil
}

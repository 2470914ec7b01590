package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación en memoria de SaleRepository.
type SaleRepo struct {
	s  *Store
	tx bool // atado a TxRunner.Run
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	defer r.s.lockWrite(r.tx)()
	r.s.data.saleSeq++
	sale.Number = r.s.data.saleSeq
	c := *sale
	r.s.data.sales[sale.ID] = &c
	return nil
}

func (r *SaleRepo) CreateDetail(_ context.Context, detail *entity.SaleDetail) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.data.sales[detail.SaleID]; !ok {
		return domain.ErrNotFound
	}
	c := *detail
	r.s.data.details[detail.SaleID] = append(r.s.data.details[detail.SaleID], &c)
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.data.sales[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r *SaleRepo) GetDetailsBySaleID(_ context.Context, saleID string) ([]*entity.SaleDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.detailsOf(saleID), nil
}

// List devuelve las ventas más recientes primero (fecha y luego número).
func (r *SaleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Sale, 0, len(r.s.data.sales))
	for _, s := range r.s.data.sales {
		if f.From != nil && s.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && s.Date.After(*f.To) {
			continue
		}
		c := *s
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Number > out[j].Number
	})
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []*entity.Sale{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *SaleRepo) ListDetailsBySaleIDs(_ context.Context, saleIDs []string) (map[string][]*entity.SaleDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string][]*entity.SaleDetail, len(saleIDs))
	for _, id := range saleIDs {
		out[id] = r.detailsOf(id)
	}
	return out, nil
}

func (r *SaleRepo) detailsOf(saleID string) []*entity.SaleDetail {
	src := r.s.data.details[saleID]
	out := make([]*entity.SaleDetail, 0, len(src))
	for _, d := range src {
		c := *d
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LineNo < out[j].LineNo })
	return out
}

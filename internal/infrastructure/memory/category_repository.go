package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	s  *Store
	tx bool // atado a TxRunner.Run
}

func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	defer r.s.lockWrite(r.tx)()
	for _, c := range r.s.data.categories {
		if strings.EqualFold(c.Name, category.Name) {
			return domain.ErrDuplicate
		}
	}
	c := *category
	r.s.data.categories[category.ID] = &c
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.s.data.categories))
	for _, c := range r.s.data.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

package memory

import (
	"context"

	"github.com/jhoicas/PharmGest-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones y restaura la foto previa si fn falla.
// Las escrituras fuera de Run esperan a que la transacción termine (ver Store.lockWrite).
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos del store y hace Rollback (restaurar foto) ante error.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.Lock()
	before := r.s.data.snapshot()
	r.s.mu.Unlock()

	err := fn(inventory.Repos{
		Products: &ProductRepo{s: r.s, tx: true},
		Batches:  &BatchRepo{s: r.s, tx: true},
		Sales:    &SaleRepo{s: r.s, tx: true},
	})
	if err != nil {
		r.s.mu.Lock()
		r.s.data = before
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// Package memory implementa los puertos de persistencia en memoria.
// Se usa con DB_DRIVER=memory (demo sin PostgreSQL) y en los tests de casos de uso.
package memory

import (
	"maps"
	"sync"

	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
)

// Store mantiene todas las tablas en memoria. Los datos se guardan como copias:
// nada de lo que devuelven los repositorios apunta al estado interno.
// mu protege data; txMu serializa transacciones y escrituras sueltas, así un
// Rollback (restaurar la foto) nunca pisa una escritura ajena a la transacción.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	data tables
}

// lockWrite toma los locks de una escritura. Fuera de una transacción espera a que
// termine la que esté en curso.
func (s *Store) lockWrite(inTx bool) (unlock func()) {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

type tables struct {
	products   map[string]*entity.Product
	batches    map[string]*entity.ProductBatch
	sales      map[string]*entity.Sale
	details    map[string][]*entity.SaleDetail
	users      map[string]*entity.User
	categories map[string]*entity.Category
	saleSeq    int64
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: tables{
		products:   map[string]*entity.Product{},
		batches:    map[string]*entity.ProductBatch{},
		sales:      map[string]*entity.Sale{},
		details:    map[string][]*entity.SaleDetail{},
		users:      map[string]*entity.User{},
		categories: map[string]*entity.Category{},
	}}
}

// snapshot copia profunda del estado, usada para Rollback.
func (t tables) snapshot() tables {
	out := tables{
		products:   make(map[string]*entity.Product, len(t.products)),
		batches:    make(map[string]*entity.ProductBatch, len(t.batches)),
		sales:      make(map[string]*entity.Sale, len(t.sales)),
		details:    make(map[string][]*entity.SaleDetail, len(t.details)),
		users:      maps.Clone(t.users),
		categories: maps.Clone(t.categories),
		saleSeq:    t.saleSeq,
	}
	for k, v := range t.products {
		c := *v
		out.products[k] = &c
	}
	for k, v := range t.batches {
		c := *v
		out.batches[k] = &c
	}
	for k, v := range t.sales {
		c := *v
		out.sales[k] = &c
	}
	for k, v := range t.details {
		out.details[k] = append([]*entity.SaleDetail(nil), v...)
	}
	return out
}

// ProductRepository repositorio de productos sobre el store.
func (s *Store) ProductRepository() *ProductRepo { return &ProductRepo{s: s} }

// BatchRepository repositorio de lotes sobre el store.
func (s *Store) BatchRepository() *BatchRepo { return &BatchRepo{s: s} }

// SaleRepository repositorio de ventas sobre el store.
func (s *Store) SaleRepository() *SaleRepo { return &SaleRepo{s: s} }

// UserRepository repositorio de usuarios sobre el store.
func (s *Store) UserRepository() *UserRepo { return &UserRepo{s: s} }

// CategoryRepository repositorio de categorías sobre el store.
func (s *Store) CategoryRepository() *CategoryRepo { return &CategoryRepo{s: s} }

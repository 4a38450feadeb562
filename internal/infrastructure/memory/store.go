// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORAGE_DRIVER=memory (demos locales) y en los tests de casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

type slaughterRow struct {
	entity.Slaughter
	lotIDs []string
}

type orderRow struct {
	entity.Order
	items []entity.OrderItem
}

// state contiene todas las tablas; se copia completo para hacer rollback.
type state struct {
	products   map[string]entity.Product
	slaughters map[string]slaughterRow
	lots       map[string]entity.InventoryLot
	orders     map[string]orderRow
	invoices   map[string]entity.Invoice
	sequences  map[int]int64
}

func newState() *state {
	return &state{
		products:   make(map[string]entity.Product),
		slaughters: make(map[string]slaughterRow),
		lots:       make(map[string]entity.InventoryLot),
		orders:     make(map[string]orderRow),
		invoices:   make(map[string]entity.Invoice),
		sequences:  make(map[int]int64),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.slaughters {
		v.lotIDs = append([]string(nil), v.lotIDs...)
		c.slaughters[k] = v
	}
	for k, v := range s.lots {
		c.lots[k] = v
	}
	for k, v := range s.orders {
		v.items = append([]entity.OrderItem(nil), v.items...)
		c.orders[k] = v
	}
	for k, v := range s.invoices {
		c.invoices[k] = v
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	return c
}

// Store base de datos en memoria. Una sola exclusión mutua serializa lecturas, escrituras y transacciones.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Repos devuelve repositorios que toman el lock en cada operación.
func (s *Store) Repos() repository.Repos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) repository.Repos {
	return repository.Repos{
		Products:   &ProductRepo{db: s, inTx: inTx},
		Slaughters: &SlaughterRepo{db: s, inTx: inTx},
		Lots:       &LotRepo{db: s, inTx: inTx},
		Orders:     &OrderRepo{db: s, inTx: inTx},
		Invoices:   &InvoiceRepo{db: s, inTx: inTx},
		Sequences:  &SequenceRepo{db: s, inTx: inTx},
	}
}

// Run ejecuta fn con el store bloqueado. Si fn falla se restaura la copia previa.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(s.repos(true)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// with ejecuta fn sobre el estado, tomando el lock salvo dentro de una transacción (ya lo tiene Run).
func (s *Store) with(inTx bool, fn func(st *state) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.st)
}

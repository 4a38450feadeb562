package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository         = (*InvoiceRepo)(nil)
	_ repository.InvoiceSequenceRepository = (*SequenceRepo)(nil)
)

// InvoiceRepo facturas en memoria. Emula los UNIQUE de invoice_number y order_id.
type InvoiceRepo struct {
	db   *Store
	inTx bool
}

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	return r.db.with(r.inTx, func(st *state) error {
		for _, other := range st.invoices {
			if other.ID == inv.ID || other.InvoiceNumber == inv.InvoiceNumber || other.OrderID == inv.OrderID {
				return domain.ErrDuplicate
			}
		}
		if _, ok := st.orders[inv.OrderID]; !ok {
			return domain.NewValidationError("order_id", "el pedido no existe")
		}
		st.invoices[inv.ID] = copyInvoice(inv)
		return nil
	})
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	return r.find(func(inv *entity.Invoice) bool { return inv.ID == id })
}

func (r *InvoiceRepo) GetByNumber(_ context.Context, number string) (*entity.Invoice, error) {
	return r.find(func(inv *entity.Invoice) bool { return inv.InvoiceNumber == number })
}

func (r *InvoiceRepo) GetByOrderID(_ context.Context, orderID string) (*entity.Invoice, error) {
	return r.find(func(inv *entity.Invoice) bool { return inv.OrderID == orderID })
}

func (r *InvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	return r.db.with(r.inTx, func(st *state) error {
		cur, ok := st.invoices[inv.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := copyInvoice(inv)
		next.InvoiceNumber = cur.InvoiceNumber
		next.OrderID = cur.OrderID
		next.Sequence = cur.Sequence
		next.CreatedAt = cur.CreatedAt
		st.invoices[inv.ID] = next
		return nil
	})
}

func (r *InvoiceRepo) Delete(_ context.Context, id string) error {
	return r.db.with(r.inTx, func(st *state) error {
		if _, ok := st.invoices[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.invoices, id)
		return nil
	})
}

func (r *InvoiceRepo) List(_ context.Context) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	err := r.db.with(r.inTx, func(st *state) error {
		for _, inv := range st.invoices {
			inv := copyInvoice(&inv)
			list = append(list, &inv)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].IssueDate.Equal(list[j].IssueDate) {
			return list[i].IssueDate.After(list[j].IssueDate)
		}
		return list[i].InvoiceNumber > list[j].InvoiceNumber
	})
	return list, err
}

func (r *InvoiceRepo) MarkOverdue(_ context.Context, asOf time.Time) (int64, error) {
	var n int64
	err := r.db.with(r.inTx, func(st *state) error {
		for id, inv := range st.invoices {
			if inv.IsOverdue(asOf) {
				inv.Status = entity.InvoiceStatusOverdue
				inv.UpdatedAt = asOf
				st.invoices[id] = inv
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *InvoiceRepo) find(match func(*entity.Invoice) bool) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.db.with(r.inTx, func(st *state) error {
		for _, inv := range st.invoices {
			if match(&inv) {
				c := copyInvoice(&inv)
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func copyInvoice(inv *entity.Invoice) entity.Invoice {
	c := *inv
	if inv.DueDate != nil {
		due := *inv.DueDate
		c.DueDate = &due
	}
	return c
}

// SequenceRepo consecutivo anual de facturas en memoria.
type SequenceRepo struct {
	db   *Store
	inTx bool
}

func (r *SequenceRepo) Next(_ context.Context, year int) (int64, error) {
	var next int64
	err := r.db.with(r.inTx, func(st *state) error {
		st.sequences[year]++
		next = st.sequences[year]
		return nil
	})
	return next, err
}

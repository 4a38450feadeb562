package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos y líneas en memoria.
type OrderRepo struct {
	db   *Store
	inTx bool
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.db.with(r.inTx, func(st *state) error {
		if _, ok := st.orders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		st.orders[o.ID] = toOrderRow(o)
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.db.with(r.inTx, func(st *state) error {
		if row, ok := st.orders[id]; ok {
			out = fromOrderRow(st, row)
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) Update(_ context.Context, o *entity.Order) error {
	return r.db.with(r.inTx, func(st *state) error {
		cur, ok := st.orders[o.ID]
		if !ok {
			return domain.ErrNotFound
		}
		row := toOrderRow(o)
		row.CreatedAt = cur.CreatedAt
		st.orders[o.ID] = row
		return nil
	})
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.db.with(r.inTx, func(st *state) error {
		row, ok := st.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		row.Status = status
		st.orders[id] = row
		return nil
	})
}

func (r *OrderRepo) Delete(_ context.Context, id string) error {
	return r.db.with(r.inTx, func(st *state) error {
		if _, ok := st.orders[id]; !ok {
			return domain.ErrNotFound
		}
		for _, inv := range st.invoices {
			if inv.OrderID == id {
				return domain.ErrConflict
			}
		}
		delete(st.orders, id)
		return nil
	})
}

func (r *OrderRepo) List(_ context.Context) ([]*entity.Order, error) {
	return r.filter(func(*entity.Order) bool { return true })
}

func (r *OrderRepo) SearchByCustomerName(_ context.Context, name string) ([]*entity.Order, error) {
	needle := strings.ToLower(name)
	return r.filter(func(o *entity.Order) bool {
		return strings.Contains(strings.ToLower(o.CustomerName), needle)
	})
}

func (r *OrderRepo) ListByStatus(_ context.Context, status string) ([]*entity.Order, error) {
	return r.filter(func(o *entity.Order) bool { return o.Status == status })
}

func (r *OrderRepo) filter(keep func(*entity.Order) bool) ([]*entity.Order, error) {
	var list []*entity.Order
	err := r.db.with(r.inTx, func(st *state) error {
		for _, row := range st.orders {
			if o := fromOrderRow(st, row); keep(o) {
				list = append(list, o)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].OrderDate.Equal(list[j].OrderDate) {
			return list[i].OrderDate.After(list[j].OrderDate)
		}
		return list[i].ID < list[j].ID
	})
	return list, err
}

func toOrderRow(o *entity.Order) orderRow {
	row := orderRow{Order: *o}
	row.Items = nil
	row.items = make([]entity.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		item := *it
		item.OrderID = o.ID
		item.ItemName = ""
		row.items = append(row.items, item)
	}
	return row
}

// fromOrderRow reconstruye el pedido resolviendo el nombre de cada línea (lote -> producto, o producto).
func fromOrderRow(st *state, row orderRow) *entity.Order {
	o := row.Order
	o.Items = make([]*entity.OrderItem, 0, len(row.items))
	for _, it := range row.items {
		it := it
		productID := it.ProductID
		if l, ok := st.lots[it.LotID]; ok && it.LotID != "" {
			productID = l.ProductID
		}
		if p, ok := st.products[productID]; ok {
			it.ItemName = p.Name
		}
		o.Items = append(o.Items, &it)
	}
	return &o
}

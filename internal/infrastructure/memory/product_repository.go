package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	db   *Store
	inTx bool
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.db.with(r.inTx, func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.db.with(r.inTx, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// Update no modifica cantidad manual ni modo de stock.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.db.with(r.inTx, func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Name = p.Name
		cur.Description = p.Description
		cur.Price = p.Price
		cur.ImageURL = p.ImageURL
		cur.MeatCutType = p.MeatCutType
		cur.UpdatedAt = p.UpdatedAt
		st.products[p.ID] = cur
		return nil
	})
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.db.with(r.inTx, func(st *state) error {
		for _, l := range st.lots {
			if l.ProductID == id {
				return domain.ErrConflict
			}
		}
		delete(st.products, id)
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	return r.filter(func(*entity.Product) bool { return true })
}

func (r *ProductRepo) SearchByName(_ context.Context, name string) ([]*entity.Product, error) {
	needle := strings.ToLower(name)
	return r.filter(func(p *entity.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	})
}

func (r *ProductRepo) filter(keep func(*entity.Product) bool) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.db.with(r.inTx, func(st *state) error {
		for _, p := range st.products {
			p := p
			if keep(&p) {
				list = append(list, &p)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, err
}

func (r *ProductRepo) AdjustManualQuantity(_ context.Context, id string, delta decimal.Decimal) error {
	return r.db.with(r.inTx, func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.ManualQuantity = decimal.Max(p.ManualQuantity.Add(delta), decimal.Zero)
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) SetManualQuantity(_ context.Context, id string, qty decimal.Decimal) error {
	return r.db.with(r.inTx, func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.ManualQuantity = qty
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) MarkLotBacked(_ context.Context, id string) error {
	return r.db.with(r.inTx, func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.StockMode = entity.StockModeLot
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) DeleteAll(_ context.Context) error {
	return r.db.with(r.inTx, func(st *state) error {
		if len(st.lots) > 0 {
			return domain.ErrConflict
		}
		st.products = make(map[string]entity.Product)
		return nil
	})
}

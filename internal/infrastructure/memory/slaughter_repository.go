package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
)

var _ repository.SlaughterRepository = (*SlaughterRepo)(nil)

// SlaughterRepo faenas y sus lotes en memoria.
type SlaughterRepo struct {
	db   *Store
	inTx bool
}

func (r *SlaughterRepo) Create(_ context.Context, s *entity.Slaughter) error {
	return r.db.with(r.inTx, func(st *state) error {
		if _, ok := st.slaughters[s.ID]; ok {
			return domain.ErrDuplicate
		}
		if err := checkLotProducts(st, s.Lots); err != nil {
			return err
		}
		st.slaughters[s.ID] = slaughterRow{Slaughter: header(s), lotIDs: putLots(st, s)}
		return nil
	})
}

func (r *SlaughterRepo) GetByID(_ context.Context, id string) (*entity.Slaughter, error) {
	var out *entity.Slaughter
	err := r.db.with(r.inTx, func(st *state) error {
		if row, ok := st.slaughters[id]; ok {
			out = hydrate(st, row)
		}
		return nil
	})
	return out, err
}

func (r *SlaughterRepo) Update(_ context.Context, s *entity.Slaughter) error {
	return r.db.with(r.inTx, func(st *state) error {
		row, ok := st.slaughters[s.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkLotProducts(st, s.Lots); err != nil {
			return err
		}
		for _, id := range row.lotIDs {
			delete(st.lots, id)
			unlinkOrderItems(st, id)
		}
		h := header(s)
		h.CreatedAt = row.CreatedAt
		st.slaughters[s.ID] = slaughterRow{Slaughter: h, lotIDs: putLots(st, s)}
		return nil
	})
}

func (r *SlaughterRepo) Delete(_ context.Context, id string) error {
	return r.db.with(r.inTx, func(st *state) error {
		row, ok := st.slaughters[id]
		if !ok {
			return domain.ErrNotFound
		}
		for _, lotID := range row.lotIDs {
			delete(st.lots, lotID)
			unlinkOrderItems(st, lotID)
		}
		delete(st.slaughters, id)
		return nil
	})
}

func (r *SlaughterRepo) List(_ context.Context) ([]*entity.Slaughter, error) {
	return r.filter(func(*entity.Slaughter) bool { return true })
}

func (r *SlaughterRepo) SearchByCowTag(_ context.Context, tag string) ([]*entity.Slaughter, error) {
	needle := strings.ToLower(tag)
	return r.filter(func(s *entity.Slaughter) bool {
		return strings.Contains(strings.ToLower(s.CowTag), needle)
	})
}

func (r *SlaughterRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]*entity.Slaughter, error) {
	return r.filter(func(s *entity.Slaughter) bool {
		return !s.SlaughterDate.Before(from) && !s.SlaughterDate.After(to)
	})
}

func (r *SlaughterRepo) filter(keep func(*entity.Slaughter) bool) ([]*entity.Slaughter, error) {
	var list []*entity.Slaughter
	err := r.db.with(r.inTx, func(st *state) error {
		for _, row := range st.slaughters {
			if s := hydrate(st, row); keep(s) {
				list = append(list, s)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].SlaughterDate.Equal(list[j].SlaughterDate) {
			return list[i].SlaughterDate.After(list[j].SlaughterDate)
		}
		return list[i].ID < list[j].ID
	})
	return list, err
}

func header(s *entity.Slaughter) entity.Slaughter {
	h := *s
	h.Lots = nil
	return h
}

// putLots guarda los lotes de la faena y devuelve sus IDs en orden.
func putLots(st *state, s *entity.Slaughter) []string {
	ids := make([]string, 0, len(s.Lots))
	for _, l := range s.Lots {
		lot := *l
		lot.SlaughterID = s.ID
		st.lots[lot.ID] = lot
		ids = append(ids, lot.ID)
	}
	return ids
}

func hydrate(st *state, row slaughterRow) *entity.Slaughter {
	s := row.Slaughter
	s.Lots = make([]*entity.InventoryLot, 0, len(row.lotIDs))
	for _, id := range row.lotIDs {
		if l, ok := st.lots[id]; ok {
			l := l
			s.Lots = append(s.Lots, &l)
		}
	}
	return &s
}

// checkLotProducts emula la FK meat_cuts.product_id.
func checkLotProducts(st *state, lots []*entity.InventoryLot) error {
	for _, l := range lots {
		if _, ok := st.products[l.ProductID]; !ok {
			return domain.NewValidationError("product_id", "el producto "+l.ProductID+" no existe")
		}
	}
	return nil
}

// unlinkOrderItems emula ON DELETE SET NULL de order_items.meat_cut_id.
func unlinkOrderItems(st *state, lotID string) {
	for id, row := range st.orders {
		changed := false
		for i := range row.items {
			if row.items[i].LotID == lotID {
				row.items[i].LotID = ""
				changed = true
			}
		}
		if changed {
			st.orders[id] = row
		}
	}
}

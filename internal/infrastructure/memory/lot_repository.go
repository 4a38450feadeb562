package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo lotes de inventario en memoria.
type LotRepo struct {
	db   *Store
	inTx bool
}

func (r *LotRepo) GetByID(_ context.Context, id string) (*entity.InventoryLot, error) {
	var out *entity.InventoryLot
	err := r.db.with(r.inTx, func(st *state) error {
		if l, ok := st.lots[id]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

// GetForUpdate igual que GetByID: dentro de Run el store ya está bloqueado.
func (r *LotRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryLot, error) {
	return r.GetByID(ctx, id)
}

func (r *LotRepo) UpdateAvailableWeight(_ context.Context, id string, available decimal.Decimal) error {
	return r.db.with(r.inTx, func(st *state) error {
		l, ok := st.lots[id]
		if !ok {
			return domain.ErrNotFound
		}
		if available.IsNegative() || available.GreaterThan(l.TotalWeight) {
			return domain.NewValidationError("available_weight", "fuera del rango [0, peso total]")
		}
		l.AvailableWeight = available
		st.lots[id] = l
		return nil
	})
}

func (r *LotRepo) List(_ context.Context) ([]*entity.InventoryLot, error) {
	return r.filter(func(*entity.InventoryLot) bool { return true })
}

func (r *LotRepo) ListAvailable(_ context.Context) ([]*entity.InventoryLot, error) {
	return r.filter(func(l *entity.InventoryLot) bool { return l.AvailableWeight.IsPositive() })
}

func (r *LotRepo) ListBySlaughter(_ context.Context, slaughterID string) ([]*entity.InventoryLot, error) {
	var list []*entity.InventoryLot
	err := r.db.with(r.inTx, func(st *state) error {
		row, ok := st.slaughters[slaughterID]
		if !ok {
			return nil
		}
		list = hydrate(st, row).Lots
		return nil
	})
	return list, err
}

func (r *LotRepo) ListByProduct(_ context.Context, productID string) ([]*entity.InventoryLot, error) {
	return r.filter(func(l *entity.InventoryLot) bool { return l.ProductID == productID })
}

func (r *LotRepo) SearchByProductAndMinWeight(_ context.Context, productID string, minWeight decimal.Decimal) ([]*entity.InventoryLot, error) {
	return r.filter(func(l *entity.InventoryLot) bool {
		return l.ProductID == productID && l.AvailableWeight.GreaterThanOrEqual(minWeight)
	})
}

func (r *LotRepo) ListAvailabilityByProduct(_ context.Context, productID string) ([]*entity.LotAvailability, error) {
	var list []*entity.LotAvailability
	err := r.db.with(r.inTx, func(st *state) error {
		for _, l := range sortedLots(st, func(l *entity.InventoryLot) bool {
			return l.ProductID == productID && l.AvailableWeight.IsPositive()
		}) {
			s := st.slaughters[l.SlaughterID]
			list = append(list, &entity.LotAvailability{
				LotID:              l.ID,
				CowTag:             s.CowTag,
				CowID:              s.CowID,
				SlaughterDate:      s.SlaughterDate,
				AvailableWeight:    l.AvailableWeight,
				TotalWeight:        l.TotalWeight,
				PricePerUnitWeight: l.PricePerUnitWeight,
				ProductName:        st.products[l.ProductID].Name,
			})
		}
		return nil
	})
	return list, err
}

func (r *LotRepo) filter(keep func(*entity.InventoryLot) bool) ([]*entity.InventoryLot, error) {
	var list []*entity.InventoryLot
	err := r.db.with(r.inTx, func(st *state) error {
		list = sortedLots(st, keep)
		return nil
	})
	return list, err
}

// sortedLots faena más reciente primero; a igual fecha, por ID.
func sortedLots(st *state, keep func(*entity.InventoryLot) bool) []*entity.InventoryLot {
	var list []*entity.InventoryLot
	for _, l := range st.lots {
		l := l
		if keep(&l) {
			list = append(list, &l)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		di, dj := st.slaughters[list[i].SlaughterID].SlaughterDate, st.slaughters[list[j].SlaughterID].SlaughterDate
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

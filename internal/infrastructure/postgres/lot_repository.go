package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.LotRepository = (*LotRepo)(nil)

const lotColumns = `mc.id, mc.slaughter_id, mc.product_id, mc.total_weight, mc.available_weight, mc.price_per_kg`

// LotRepo acceso a meat_cuts (lotes de inventario).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(ctx context.Context, id string) (*entity.InventoryLot, error) {
	return r.get(ctx, `SELECT `+lotColumns+` FROM meat_cuts mc WHERE mc.id = $1`, id)
}

// GetForUpdate obtiene el lote bloqueando la fila (SELECT ... FOR UPDATE). Requiere tx.
func (r *LotRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryLot, error) {
	return r.get(ctx, `SELECT `+lotColumns+` FROM meat_cuts mc WHERE mc.id = $1 FOR UPDATE`, id)
}

// UpdateAvailableWeight persiste el nuevo peso disponible. El CHECK de la tabla garantiza 0 <= disponible <= total.
func (r *LotRepo) UpdateAvailableWeight(ctx context.Context, id string, available decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE meat_cuts SET available_weight = $2 WHERE id = $1`, id, available)
	if err != nil {
		return fmt.Errorf("update meat cut available weight: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todos los lotes, faena más reciente primero.
func (r *LotRepo) List(ctx context.Context) ([]*entity.InventoryLot, error) {
	return r.list(ctx, `SELECT `+lotColumns+` FROM meat_cuts mc JOIN slaughters s ON s.id = mc.slaughter_id
		ORDER BY s.slaughter_date DESC, mc.id`)
}

// ListAvailable lotes con peso disponible.
func (r *LotRepo) ListAvailable(ctx context.Context) ([]*entity.InventoryLot, error) {
	return r.list(ctx, `SELECT `+lotColumns+` FROM meat_cuts mc JOIN slaughters s ON s.id = mc.slaughter_id
		WHERE mc.available_weight > 0 ORDER BY s.slaughter_date DESC, mc.id`)
}

// ListBySlaughter lotes de una faena en su orden original.
func (r *LotRepo) ListBySlaughter(ctx context.Context, slaughterID string) ([]*entity.InventoryLot, error) {
	return r.list(ctx, `SELECT `+lotColumns+` FROM meat_cuts mc WHERE mc.slaughter_id = $1 ORDER BY mc.position, mc.id`, slaughterID)
}

// ListByProduct lotes de un producto.
func (r *LotRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryLot, error) {
	return r.list(ctx, `SELECT `+lotColumns+` FROM meat_cuts mc JOIN slaughters s ON s.id = mc.slaughter_id
		WHERE mc.product_id = $1 ORDER BY s.slaughter_date DESC, mc.id`, productID)
}

// SearchByProductAndMinWeight lotes del producto con al menos minWeight disponible.
func (r *LotRepo) SearchByProductAndMinWeight(ctx context.Context, productID string, minWeight decimal.Decimal) ([]*entity.InventoryLot, error) {
	return r.list(ctx, `SELECT `+lotColumns+` FROM meat_cuts mc JOIN slaughters s ON s.id = mc.slaughter_id
		WHERE mc.product_id = $1 AND mc.available_weight >= $2 ORDER BY s.slaughter_date DESC, mc.id`, productID, minWeight)
}

// ListAvailabilityByProduct disponibilidad por lote con datos de faena y nombre del producto.
func (r *LotRepo) ListAvailabilityByProduct(ctx context.Context, productID string) ([]*entity.LotAvailability, error) {
	query := `
		SELECT mc.id, s.cow_tag, COALESCE(s.cow_id, ''), s.slaughter_date, mc.available_weight, mc.total_weight, mc.price_per_kg, p.name
		FROM meat_cuts mc
		JOIN slaughters s ON s.id = mc.slaughter_id
		JOIN products p ON p.id = mc.product_id
		WHERE mc.product_id = $1 AND mc.available_weight > 0
		ORDER BY s.slaughter_date DESC, mc.id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	defer rows.Close()
	var list []*entity.LotAvailability
	for rows.Next() {
		var a entity.LotAvailability
		if err := rows.Scan(&a.LotID, &a.CowTag, &a.CowID, &a.SlaughterDate, &a.AvailableWeight,
			&a.TotalWeight, &a.PricePerUnitWeight, &a.ProductName); err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *LotRepo) get(ctx context.Context, query string, id string) (*entity.InventoryLot, error) {
	l, err := scanLot(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meat cut: %w", err)
	}
	return l, nil
}

func (r *LotRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryLot, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meat cuts: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meat cut: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanLot(row pgx.Row) (*entity.InventoryLot, error) {
	var l entity.InventoryLot
	if err := row.Scan(&l.ID, &l.SlaughterID, &l.ProductID, &l.TotalWeight, &l.AvailableWeight, &l.PricePerUnitWeight); err != nil {
		return nil, err
	}
	return &l, nil
}

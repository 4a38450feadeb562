package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
)

var _ repository.SlaughterRepository = (*SlaughterRepo)(nil)

const slaughterColumns = `id, cow_tag, COALESCE(cow_id, ''), slaughter_date, total_weight, COALESCE(notes, ''), created_at, updated_at`

// SlaughterRepo persiste faenas y sus lotes (meat_cuts). Usar con tx para que cabecera y lotes sean atómicos.
type SlaughterRepo struct {
	q Querier
}

// NewSlaughterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSlaughterRepository(q Querier) *SlaughterRepo {
	return &SlaughterRepo{q: q}
}

// Create inserta la faena y sus lotes.
func (r *SlaughterRepo) Create(ctx context.Context, s *entity.Slaughter) error {
	query := `
		INSERT INTO slaughters (id, cow_tag, cow_id, slaughter_date, total_weight, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CowTag, nullIfEmpty(s.CowID), s.SlaughterDate, s.TotalWeight, nullIfEmpty(s.Notes), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert slaughter: %w", err)
	}
	return r.insertLots(ctx, s)
}

// GetByID obtiene la faena con sus lotes.
func (r *SlaughterRepo) GetByID(ctx context.Context, id string) (*entity.Slaughter, error) {
	s, err := scanSlaughter(r.q.QueryRow(ctx, `SELECT `+slaughterColumns+` FROM slaughters WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slaughter: %w", err)
	}
	lots, err := NewLotRepository(r.q).ListBySlaughter(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Lots = lots
	return s, nil
}

// Update reemplaza la cabecera y la colección completa de lotes.
func (r *SlaughterRepo) Update(ctx context.Context, s *entity.Slaughter) error {
	query := `
		UPDATE slaughters SET cow_tag = $2, cow_id = $3, slaughter_date = $4, total_weight = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		s.ID, s.CowTag, nullIfEmpty(s.CowID), s.SlaughterDate, s.TotalWeight, nullIfEmpty(s.Notes), s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update slaughter: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM meat_cuts WHERE slaughter_id = $1`, s.ID); err != nil {
		return fmt.Errorf("delete slaughter lots: %w", err)
	}
	return r.insertLots(ctx, s)
}

// Delete elimina la faena; los lotes se eliminan por ON DELETE CASCADE.
func (r *SlaughterRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM slaughters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete slaughter: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todas las faenas, la más reciente primero.
func (r *SlaughterRepo) List(ctx context.Context) ([]*entity.Slaughter, error) {
	return r.list(ctx, `SELECT `+slaughterColumns+` FROM slaughters ORDER BY slaughter_date DESC, id`)
}

// SearchByCowTag búsqueda por subcadena de la marca del animal, sin distinguir mayúsculas.
func (r *SlaughterRepo) SearchByCowTag(ctx context.Context, tag string) ([]*entity.Slaughter, error) {
	return r.list(ctx, `SELECT `+slaughterColumns+` FROM slaughters WHERE cow_tag ILIKE '%' || $1 || '%' ORDER BY slaughter_date DESC, id`, tag)
}

// ListByDateRange faenas con fecha en [from, to].
func (r *SlaughterRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Slaughter, error) {
	return r.list(ctx, `SELECT `+slaughterColumns+` FROM slaughters WHERE slaughter_date BETWEEN $1 AND $2 ORDER BY slaughter_date DESC, id`, from, to)
}

func (r *SlaughterRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Slaughter, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slaughters: %w", err)
	}
	var list []*entity.Slaughter
	for rows.Next() {
		s, err := scanSlaughter(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan slaughter: %w", err)
		}
		list = append(list, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Los lotes se cargan después de cerrar el cursor: una tx no admite dos consultas abiertas.
	lotRepo := NewLotRepository(r.q)
	for _, s := range list {
		if s.Lots, err = lotRepo.ListBySlaughter(ctx, s.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *SlaughterRepo) insertLots(ctx context.Context, s *entity.Slaughter) error {
	query := `
		INSERT INTO meat_cuts (id, slaughter_id, product_id, total_weight, available_weight, price_per_kg, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, l := range s.Lots {
		_, err := r.q.Exec(ctx, query, l.ID, s.ID, l.ProductID, l.TotalWeight, l.AvailableWeight, l.PricePerUnitWeight, i)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.NewValidationError("product_id", "el producto "+l.ProductID+" no existe")
			}
			return fmt.Errorf("insert meat cut: %w", err)
		}
	}
	return nil
}

func scanSlaughter(row pgx.Row) (*entity.Slaughter, error) {
	var s entity.Slaughter
	err := row.Scan(&s.ID, &s.CowTag, &s.CowID, &s.SlaughterDate, &s.TotalWeight, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

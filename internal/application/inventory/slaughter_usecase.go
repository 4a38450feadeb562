package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Carnes-api/internal/application/dto"
	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
	"github.com/jhoicas/Carnes-api/pkg/logger"
)

// SlaughterUseCase libro de faenas: crea, reemplaza y elimina faenas con sus lotes,
// propagando el peso de cada lote a la cantidad manual del producto. Cada operación es una transacción.
type SlaughterUseCase struct {
	txRunner repository.TxRunner
	repo     repository.SlaughterRepository
	log      *logger.Logger
}

// NewSlaughterUseCase construye el caso de uso.
func NewSlaughterUseCase(txRunner repository.TxRunner, repo repository.SlaughterRepository, log *logger.Logger) *SlaughterUseCase {
	return &SlaughterUseCase{txRunner: txRunner, repo: repo, log: log.Named("slaughters")}
}

// Create persiste la faena y sus lotes; suma el peso total de cada lote a la cantidad manual de su producto
// y marca el producto como respaldado por lotes.
func (uc *SlaughterUseCase) Create(ctx context.Context, in dto.SlaughterRequest) (*dto.SlaughterResponse, error) {
	date, lots, err := parseSlaughterRequest(in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Slaughter{
		ID:            uuid.New().String(),
		CowTag:        strings.TrimSpace(in.CowTag),
		CowID:         strings.TrimSpace(in.CowID),
		SlaughterDate: date,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.AttachLots(lots)

	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		if err := requireProducts(ctx, repos.Products, s.Lots); err != nil {
			return err
		}
		if err := repos.Slaughters.Create(ctx, s); err != nil {
			return fmt.Errorf("crear faena: %w", err)
		}
		return addLotStock(ctx, repos.Products, s.Lots)
	})
	if err != nil {
		uc.logFailure(err, s.ID, "registrar faena")
		return nil, err
	}
	uc.log.Info().
		Str("slaughter_id", s.ID).
		Str("cow_tag", s.CowTag).
		Int("lots", len(s.Lots)).
		Str("total_weight", s.TotalWeight.String()).
		Msg("faena registrada")
	out := dto.ToSlaughterResponse(s)
	return &out, nil
}

// Update reemplaza por completo la faena: descuenta (con piso 0) el peso de los lotes anteriores,
// reemplaza los campos y la colección de lotes, y suma el peso de los nuevos.
func (uc *SlaughterUseCase) Update(ctx context.Context, id string, in dto.SlaughterRequest) (*dto.SlaughterResponse, error) {
	date, lots, err := parseSlaughterRequest(in)
	if err != nil {
		return nil, err
	}
	var updated *entity.Slaughter
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		s, err := repos.Slaughters.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("faena %s: %w", id, domain.ErrNotFound)
		}
		if err := requireProducts(ctx, repos.Products, lots); err != nil {
			return err
		}
		if err := removeLotStock(ctx, repos.Products, s.Lots); err != nil {
			return err
		}
		s.CowTag = strings.TrimSpace(in.CowTag)
		s.CowID = strings.TrimSpace(in.CowID)
		s.SlaughterDate = date
		s.Notes = in.Notes
		s.UpdatedAt = time.Now()
		s.AttachLots(lots)
		if err := repos.Slaughters.Update(ctx, s); err != nil {
			return fmt.Errorf("actualizar faena: %w", err)
		}
		if err := addLotStock(ctx, repos.Products, s.Lots); err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		uc.logFailure(err, id, "actualizar faena")
		return nil, err
	}
	uc.log.Info().
		Str("slaughter_id", id).
		Int("lots", len(updated.Lots)).
		Str("total_weight", updated.TotalWeight.String()).
		Msg("faena actualizada")
	out := dto.ToSlaughterResponse(updated)
	return &out, nil
}

// Delete descuenta (con piso 0) el peso de cada lote y elimina la faena con sus lotes.
func (uc *SlaughterUseCase) Delete(ctx context.Context, id string) error {
	var lots int
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		s, err := repos.Slaughters.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("faena %s: %w", id, domain.ErrNotFound)
		}
		if err := removeLotStock(ctx, repos.Products, s.Lots); err != nil {
			return err
		}
		lots = len(s.Lots)
		return repos.Slaughters.Delete(ctx, id)
	})
	if err != nil {
		uc.logFailure(err, id, "eliminar faena")
		return err
	}
	uc.log.Info().Str("slaughter_id", id).Int("lots", lots).Msg("faena eliminada")
	return nil
}

// GetByID obtiene una faena con sus lotes.
func (uc *SlaughterUseCase) GetByID(ctx context.Context, id string) (*dto.SlaughterResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		uc.log.Warn().Str("slaughter_id", id).Msg("faena no encontrada")
		return nil, fmt.Errorf("faena %s: %w", id, domain.ErrNotFound)
	}
	out := dto.ToSlaughterResponse(s)
	return &out, nil
}

// List lista todas las faenas.
func (uc *SlaughterUseCase) List(ctx context.Context) ([]dto.SlaughterResponse, error) {
	return toSlaughterResponses(uc.repo.List(ctx))
}

// SearchByCowTag busca por subcadena de la marca del animal.
func (uc *SlaughterUseCase) SearchByCowTag(ctx context.Context, tag string) ([]dto.SlaughterResponse, error) {
	return toSlaughterResponses(uc.repo.SearchByCowTag(ctx, strings.TrimSpace(tag)))
}

// ListByDateRange faenas entre from y to (YYYY-MM-DD, ambos inclusive).
func (uc *SlaughterUseCase) ListByDateRange(ctx context.Context, from, to string) ([]dto.SlaughterResponse, error) {
	verr := &domain.ValidationError{}
	start, err := time.Parse(dto.DateLayout, from)
	if err != nil {
		verr.Add("from", "fecha inválida, formato YYYY-MM-DD")
	}
	end, err := time.Parse(dto.DateLayout, to)
	if err != nil {
		verr.Add("to", "fecha inválida, formato YYYY-MM-DD")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, domain.NewValidationError("to", "debe ser posterior o igual a from")
	}
	return toSlaughterResponses(uc.repo.ListByDateRange(ctx, start, end))
}

func (uc *SlaughterUseCase) logFailure(err error, id, op string) {
	ev := uc.log.Error()
	if domainError(err) {
		ev = uc.log.Warn()
	}
	ev.Err(err).Str("slaughter_id", id).Msg(op)
}

func toSlaughterResponses(list []*entity.Slaughter, err error) ([]dto.SlaughterResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.SlaughterResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ToSlaughterResponse(s))
	}
	return out, nil
}

// parseSlaughterRequest valida la fecha y construye lotes nuevos (IDs nuevos: el reemplazo es total).
func parseSlaughterRequest(in dto.SlaughterRequest) (time.Time, []*entity.InventoryLot, error) {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(in.CowTag) == "" {
		verr.Add("cow_tag", "la marca del animal es obligatoria")
	}
	date, err := time.Parse(dto.DateLayout, in.SlaughterDate)
	if err != nil {
		verr.Add("slaughter_date", "fecha inválida, formato YYYY-MM-DD")
	}
	lots := make([]*entity.InventoryLot, 0, len(in.Lots))
	for i, l := range in.Lots {
		if !l.TotalWeight.IsPositive() {
			verr.Add(fmt.Sprintf("meat_cuts[%d].total_weight", i), "el peso debe ser mayor que 0")
			continue
		}
		lot, err := entity.NewInventoryLot(uuid.New().String(), l.ProductID, l.TotalWeight, l.AvailableWeight, l.PricePerKg)
		if err != nil {
			var fe *domain.ValidationError
			if errors.As(err, &fe) {
				for _, f := range fe.Fields {
					verr.Add(fmt.Sprintf("meat_cuts[%d].%s", i, f.Field), f.Message)
				}
				continue
			}
			return time.Time{}, nil, err
		}
		lots = append(lots, lot)
	}
	if err := verr.OrNil(); err != nil {
		return time.Time{}, nil, err
	}
	return date, lots, nil
}

// requireProducts valida que cada lote referencie un producto existente.
func requireProducts(ctx context.Context, products repository.ProductRepository, lots []*entity.InventoryLot) error {
	seen := make(map[string]bool, len(lots))
	verr := &domain.ValidationError{}
	for i, l := range lots {
		if seen[l.ProductID] {
			continue
		}
		p, err := products.GetByID(ctx, l.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			verr.Add(fmt.Sprintf("meat_cuts[%d].product_id", i), "el producto "+l.ProductID+" no existe")
			continue
		}
		seen[l.ProductID] = true
	}
	return verr.OrNil()
}

// addLotStock incrementa de forma atómica la cantidad manual de cada producto y lo marca LOT.
func addLotStock(ctx context.Context, products repository.ProductRepository, lots []*entity.InventoryLot) error {
	for _, l := range lots {
		if err := products.AdjustManualQuantity(ctx, l.ProductID, l.TotalWeight); err != nil {
			return fmt.Errorf("sumar stock de %s: %w", l.ProductID, err)
		}
		if err := products.MarkLotBacked(ctx, l.ProductID); err != nil {
			return err
		}
	}
	return nil
}

// removeLotStock decrementa de forma atómica (piso 0) la cantidad manual de cada producto.
func removeLotStock(ctx context.Context, products repository.ProductRepository, lots []*entity.InventoryLot) error {
	for _, l := range lots {
		if err := products.AdjustManualQuantity(ctx, l.ProductID, l.TotalWeight.Neg()); err != nil {
			return fmt.Errorf("descontar stock de %s: %w", l.ProductID, err)
		}
	}
	return nil
}

package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Carnes-api/internal/application/dto"
	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// LotUseCase consultas sobre lotes de inventario (meat cuts). Sin escrituras: los lotes
// nacen y mueren con su faena y su peso disponible solo cambia por reservas de pedidos.
type LotUseCase struct {
	repo        repository.LotRepository
	productRepo repository.ProductRepository
}

// NewLotUseCase construye el caso de uso.
func NewLotUseCase(repo repository.LotRepository, productRepo repository.ProductRepository) *LotUseCase {
	return &LotUseCase{repo: repo, productRepo: productRepo}
}

// GetByID obtiene un lote.
func (uc *LotUseCase) GetByID(ctx context.Context, id string) (*dto.LotResponse, error) {
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("lote %s: %w", id, domain.ErrNotFound)
	}
	out := dto.ToLotResponse(l)
	return &out, nil
}

// List todos los lotes.
func (uc *LotUseCase) List(ctx context.Context) ([]dto.LotResponse, error) {
	return toLotResponses(uc.repo.List(ctx))
}

// ListAvailable lotes con peso disponible, faena más reciente primero.
func (uc *LotUseCase) ListAvailable(ctx context.Context) ([]dto.LotResponse, error) {
	return toLotResponses(uc.repo.ListAvailable(ctx))
}

// ListBySlaughter lotes de una faena.
func (uc *LotUseCase) ListBySlaughter(ctx context.Context, slaughterID string) ([]dto.LotResponse, error) {
	return toLotResponses(uc.repo.ListBySlaughter(ctx, slaughterID))
}

// Search lotes de un producto con al menos minWeight disponible.
func (uc *LotUseCase) Search(ctx context.Context, productID string, minWeight decimal.Decimal) ([]dto.LotResponse, error) {
	if productID == "" {
		return nil, domain.NewValidationError("product_id", "el producto es obligatorio")
	}
	if minWeight.IsNegative() {
		return nil, domain.NewValidationError("min_weight", "debe ser positivo o cero")
	}
	return toLotResponses(uc.repo.SearchByProductAndMinWeight(ctx, productID, minWeight))
}

// AvailabilityByProduct disponibilidad por lote del producto (origen, fecha, pesos, precio, nombre).
func (uc *LotUseCase) AvailabilityByProduct(ctx context.Context, productID string) ([]dto.LotAvailabilityResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	list, err := uc.repo.ListAvailabilityByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LotAvailabilityResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ToLotAvailabilityResponse(a))
	}
	return out, nil
}

func toLotResponses(list []*entity.InventoryLot, err error) ([]dto.LotResponse, error) {
	if err != nil {
		return nil, err
	}
	return dto.ToLotResponses(list), nil
}

package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReserveLotWeight bloquea el lote (SELECT FOR UPDATE) y descuenta w de su peso disponible.
// Debe llamarse con los repositorios de una transacción. ErrInsufficientCapacity si no alcanza.
func ReserveLotWeight(ctx context.Context, lots repository.LotRepository, lotID string, w decimal.Decimal) error {
	lot, err := lots.GetForUpdate(ctx, lotID)
	if err != nil {
		return err
	}
	if lot == nil {
		return fmt.Errorf("lote %s: %w", lotID, domain.ErrNotFound)
	}
	if err := lot.Reserve(w); err != nil {
		return err
	}
	return lots.UpdateAvailableWeight(ctx, lot.ID, lot.AvailableWeight)
}

// ReleaseLotWeight devuelve w al lote, sin superar su peso total. Un lote ya eliminado se ignora.
func ReleaseLotWeight(ctx context.Context, lots repository.LotRepository, lotID string, w decimal.Decimal) error {
	lot, err := lots.GetForUpdate(ctx, lotID)
	if err != nil {
		return err
	}
	if lot == nil {
		return nil
	}
	if err := lot.Release(w); err != nil {
		return err
	}
	return lots.UpdateAvailableWeight(ctx, lot.ID, lot.AvailableWeight)
}

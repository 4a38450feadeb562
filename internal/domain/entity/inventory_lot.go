package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/shopspring/decimal"
)

// InventoryLot es la unidad de peso producida por una faena para un producto (tabla meat_cuts).
// Invariante: 0 <= AvailableWeight <= TotalWeight.
type InventoryLot struct {
	ID                 string
	SlaughterID        string
	ProductID          string
	TotalWeight        decimal.Decimal
	AvailableWeight    decimal.Decimal
	PricePerUnitWeight decimal.Decimal
}

// NewInventoryLot construye un lote. Si available es nil se inicializa con el peso total.
func NewInventoryLot(id, productID string, total decimal.Decimal, available *decimal.Decimal, price decimal.Decimal) (*InventoryLot, error) {
	verr := &domain.ValidationError{}
	if productID == "" {
		verr.Add("product_id", "el producto es obligatorio")
	}
	if total.IsNegative() {
		verr.Add("total_weight", "el peso debe ser positivo o cero")
	}
	if price.IsNegative() {
		verr.Add("price_per_kg", "el precio debe ser positivo o cero")
	}
	avail := total
	if available != nil {
		avail = *available
		if avail.IsNegative() {
			verr.Add("available_weight", "el peso disponible debe ser positivo o cero")
		} else if avail.GreaterThan(total) {
			verr.Add("available_weight", "el peso disponible no puede superar el peso total")
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return &InventoryLot{
		ID:                 id,
		ProductID:          productID,
		TotalWeight:        RoundWeight(total),
		AvailableWeight:    RoundWeight(avail),
		PricePerUnitWeight: RoundMoney(price),
	}, nil
}

// ReservedWeight peso ya comprometido en pedidos.
func (l *InventoryLot) ReservedWeight() decimal.Decimal {
	return l.TotalWeight.Sub(l.AvailableWeight)
}

// HasAvailableWeight indica si el lote puede cubrir w.
func (l *InventoryLot) HasAvailableWeight(w decimal.Decimal) bool {
	return l.AvailableWeight.GreaterThanOrEqual(w)
}

// Reserve descuenta w del peso disponible. Falla con ErrInsufficientCapacity sin modificar el lote.
func (l *InventoryLot) Reserve(w decimal.Decimal) error {
	if w.IsNegative() {
		return domain.NewValidationError("weight", "el peso a reservar no puede ser negativo")
	}
	if !l.HasAvailableWeight(w) {
		return fmt.Errorf("%w: lote %s, solicitado %s, disponible %s",
			domain.ErrInsufficientCapacity, l.ID, w.String(), l.AvailableWeight.String())
	}
	l.AvailableWeight = l.AvailableWeight.Sub(w)
	return nil
}

// Release devuelve w al peso disponible, sin superar nunca el peso total.
func (l *InventoryLot) Release(w decimal.Decimal) error {
	if w.IsNegative() {
		return domain.NewValidationError("weight", "el peso a liberar no puede ser negativo")
	}
	l.AvailableWeight = l.AvailableWeight.Add(w)
	if l.AvailableWeight.GreaterThan(l.TotalWeight) {
		l.AvailableWeight = l.TotalWeight
	}
	return nil
}

// LotAvailability vista de disponibilidad de un lote con los datos de su faena y producto.
type LotAvailability struct {
	LotID              string
	CowTag             string
	CowID              string
	SlaughterDate      time.Time
	AvailableWeight    decimal.Decimal
	TotalWeight        decimal.Decimal
	PricePerUnitWeight decimal.Decimal
	ProductName        string
}

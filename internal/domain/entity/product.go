package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modos de stock de un producto.
const (
	StockModeLot    = "LOT"    // stock = suma del peso disponible de sus lotes
	StockModeManual = "MANUAL" // stock = cantidad manual (huevos, miel, ...)
)

// Product representa un producto vendible (corte de carne o producto genérico).
// ManualQuantity solo se modifica indirectamente (faenas o ajuste manual explícito).
type Product struct {
	ID             string
	Name           string
	Description    string
	Price          decimal.Decimal // precio por unidad de peso
	ImageURL       string
	MeatCutType    string
	ManualQuantity decimal.Decimal
	StockMode      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsLotBacked indica si el stock se deriva de los lotes.
func (p *Product) IsLotBacked() bool {
	return p.StockMode == StockModeLot
}

// ValidStockMode valida el modo de stock.
func ValidStockMode(mode string) bool {
	return mode == StockModeLot || mode == StockModeManual
}

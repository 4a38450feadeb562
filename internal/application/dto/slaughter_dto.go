package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LotRequest lote producido por una faena.
type LotRequest struct {
	ProductID       string           `json:"product_id" validate:"required,uuid"`
	TotalWeight     decimal.Decimal  `json:"total_weight" validate:"gt=0"`
	AvailableWeight *decimal.Decimal `json:"available_weight" validate:"omitempty,gte=0"`
	PricePerKg      decimal.Decimal  `json:"price_per_kg" validate:"gte=0"`
}

// SlaughterRequest body para crear o reemplazar una faena.
type SlaughterRequest struct {
	CowTag        string       `json:"cow_tag" validate:"required,max=100"`
	CowID         string       `json:"cow_id" validate:"max=100"`
	SlaughterDate string       `json:"slaughter_date" validate:"required,datetime=2006-01-02"`
	Notes         string       `json:"notes" validate:"max=2000"`
	Lots          []LotRequest `json:"meat_cuts" validate:"dive"`
}

// SlaughterResponse faena con sus lotes.
type SlaughterResponse struct {
	ID            string          `json:"id"`
	CowTag        string          `json:"cow_tag"`
	CowID         string          `json:"cow_id,omitempty"`
	SlaughterDate string          `json:"slaughter_date"`
	TotalWeight   decimal.Decimal `json:"total_weight"`
	Notes         string          `json:"notes,omitempty"`
	Lots          []LotResponse   `json:"meat_cuts"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// LotResponse lote de inventario.
type LotResponse struct {
	ID              string          `json:"id"`
	SlaughterID     string          `json:"slaughter_id"`
	ProductID       string          `json:"product_id"`
	TotalWeight     decimal.Decimal `json:"total_weight"`
	AvailableWeight decimal.Decimal `json:"available_weight"`
	ReservedWeight  decimal.Decimal `json:"reserved_weight"`
	PricePerKg      decimal.Decimal `json:"price_per_kg"`
}

// LotAvailabilityResponse disponibilidad de un lote con su origen.
type LotAvailabilityResponse struct {
	LotID           string          `json:"meat_cut_id"`
	CowTag          string          `json:"cow_tag"`
	CowID           string          `json:"cow_id,omitempty"`
	SlaughterDate   string          `json:"slaughter_date"`
	AvailableWeight decimal.Decimal `json:"available_weight"`
	TotalWeight     decimal.Decimal `json:"total_weight"`
	PricePerKg      decimal.Decimal `json:"price_per_kg"`
	ProductName     string          `json:"product_name"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. La cantidad manual inicia en 0.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	Description string          `json:"description" validate:"max=2000"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	ImageURL    string          `json:"image_url" validate:"omitempty,max=2048"`
	MeatCutType string          `json:"meat_cut_type" validate:"max=100"`
	StockMode   string          `json:"stock_mode" validate:"omitempty,oneof=LOT MANUAL"`
}

// UpdateProductRequest entrada para actualizar un producto (nunca la cantidad).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	ImageURL    *string          `json:"image_url" validate:"omitempty,max=2048"`
	MeatCutType *string          `json:"meat_cut_type" validate:"omitempty,max=100"`
}

// SetManualStockRequest fija la cantidad manual de un producto MANUAL.
type SetManualStockRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"gte=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	Price               decimal.Decimal `json:"price"`
	ImageURL            string          `json:"image_url,omitempty"`
	MeatCutType         string          `json:"meat_cut_type,omitempty"`
	StockMode           string          `json:"stock_mode"`
	ManualStockQuantity decimal.Decimal `json:"manual_stock_quantity"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ProductWithStockResponse producto con su stock disponible calculado.
type ProductWithStockResponse struct {
	ProductResponse
	AvailableStock decimal.Decimal `json:"available_stock"`
}

// AvailableStockResponse stock disponible de un producto.
type AvailableStockResponse struct {
	ProductID      string          `json:"product_id"`
	StockMode      string          `json:"stock_mode"`
	AvailableStock decimal.Decimal `json:"available_stock"`
}

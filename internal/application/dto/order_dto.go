package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de pedido: lote (meat_cut_id) o producto genérico. Si vienen ambos gana el lote.
type OrderItemRequest struct {
	LotID     string           `json:"meat_cut_id" validate:"required_without=ProductID,omitempty,uuid"`
	ProductID string           `json:"product_id" validate:"required_without=LotID,omitempty,uuid"`
	Weight    decimal.Decimal  `json:"weight" validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty,gte=0"`
}

// OrderRequest body para crear o reemplazar un pedido.
type OrderRequest struct {
	CustomerName    string             `json:"customer_name" validate:"required,max=255"`
	CustomerPhone   string             `json:"customer_phone" validate:"max=50"`
	CustomerAddress string             `json:"customer_address" validate:"max=500"`
	Status          string             `json:"status" validate:"omitempty,oneof=PENDING PROCESSING COMPLETED CANCELLED"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest cambio de estado.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PROCESSING COMPLETED CANCELLED"`
}

// OrderResponse pedido con sus líneas.
type OrderResponse struct {
	ID              string              `json:"id"`
	CustomerName    string              `json:"customer_name"`
	CustomerPhone   string              `json:"customer_phone,omitempty"`
	CustomerAddress string              `json:"customer_address,omitempty"`
	Status          string              `json:"status"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	OrderDate       time.Time           `json:"order_date"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	LotID     string          `json:"meat_cut_id,omitempty"`
	ProductID string          `json:"product_id,omitempty"`
	ItemName  string          `json:"item_name"`
	Weight    decimal.Decimal `json:"weight"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CustomerResponse cliente derivado de los pedidos.
type CustomerResponse struct {
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	LastOrderDate time.Time `json:"last_order_date"`
}

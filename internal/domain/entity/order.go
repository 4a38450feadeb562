package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

// ValidOrderStatus valida el estado.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order representa un pedido de cliente con sus líneas.
type Order struct {
	ID              string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Status          string
	Items           []*OrderItem
	TotalAmount     decimal.Decimal // derivado: suma de subtotales
	OrderDate       time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsCancelled indica si el pedido no retiene reservas.
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// CalculateTotal recalcula subtotales y total del pedido.
func (o *Order) CalculateTotal() {
	total := decimal.Zero
	for _, it := range o.Items {
		it.CalculateSubtotal()
		total = total.Add(it.Subtotal)
	}
	o.TotalAmount = RoundMoney(total)
}

// OrderItem línea de pedido: referencia débil a un lote (LotID) o a un producto genérico (ProductID).
// Si vienen ambos, el lote tiene prioridad.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	LotID     string
	ItemName  string // nombre resuelto del producto (solo lectura)
	Weight    decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// CalculateSubtotal subtotal = round_half_up(UnitPrice * Weight, 2).
func (i *OrderItem) CalculateSubtotal() {
	i.Subtotal = RoundMoney(i.UnitPrice.Mul(i.Weight))
}

// IsLotItem indica si la línea consume peso de un lote.
func (i *OrderItem) IsLotItem() bool {
	return i.LotID != ""
}

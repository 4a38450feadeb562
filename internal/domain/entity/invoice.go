package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusUnpaid    = "UNPAID"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusOverdue   = "OVERDUE"
	InvoiceStatusCancelled = "CANCELLED"
)

// DefaultTaxRate IVA reducido para productos agrícolas (porcentaje).
var DefaultTaxRate = decimal.NewFromInt(10)

// ValidInvoiceStatus valida el estado.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Invoice factura respaldada por un único pedido (uno a uno).
// TotalAmount es una copia del total del pedido al crear la factura; no se vuelve a derivar.
type Invoice struct {
	ID            string
	InvoiceNumber string
	OrderID       string
	Sequence      int64 // consecutivo anual usado en InvoiceNumber
	IssueDate     time.Time
	DueDate       *time.Time
	TotalAmount   decimal.Decimal
	TaxRate       decimal.Decimal // porcentaje, ej. 10
	TaxAmount     decimal.Decimal
	GrandTotal    decimal.Decimal
	Notes         string
	Status        string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CalculateTotals TaxAmount = TotalAmount * TaxRate / 100; GrandTotal = TotalAmount + TaxAmount. Idempotente.
func (inv *Invoice) CalculateTotals() {
	inv.TaxAmount = RoundMoney(inv.TotalAmount.Mul(inv.TaxRate).Div(hundred))
	inv.GrandTotal = RoundMoney(inv.TotalAmount.Add(inv.TaxAmount))
}

// IsOverdue indica si una factura impaga venció respecto a asOf.
func (inv *Invoice) IsOverdue(asOf time.Time) bool {
	if inv.Status != InvoiceStatusUnpaid || inv.DueDate == nil {
		return false
	}
	return inv.DueDate.Before(truncateDay(asOf))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

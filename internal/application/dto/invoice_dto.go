package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices. Fechas opcionales (YYYY-MM-DD).
type CreateInvoiceRequest struct {
	OrderID   string `json:"order_id" validate:"required,uuid"`
	IssueDate string `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate   string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     string `json:"notes" validate:"max=2000"`
}

// UpdateInvoiceRequest campos editables; nil conserva el valor actual. due_date "" lo elimina.
type UpdateInvoiceRequest struct {
	IssueDate *string          `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate   *string          `json:"due_date"`
	TaxRate   *decimal.Decimal `json:"tax_rate" validate:"omitempty,gte=0,lte=100"`
	Notes     *string          `json:"notes" validate:"omitempty,max=2000"`
	Status    *string          `json:"status" validate:"omitempty,oneof=UNPAID PAID OVERDUE CANCELLED"`
}

// BatchPDFRequest body para POST /api/invoices/batch/pdf.
type BatchPDFRequest struct {
	InvoiceIDs []string `json:"invoice_ids" validate:"required,min=1,dive,required,uuid"`
}

// InvoiceResponse factura. Order se incluye en GET por ID.
type InvoiceResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	OrderID       string          `json:"order_id"`
	IssueDate     string          `json:"issue_date"`
	DueDate       string          `json:"due_date,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	Notes         string          `json:"notes,omitempty"`
	Status        string          `json:"status"`
	CreatedBy     string          `json:"created_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Order         *OrderResponse  `json:"order,omitempty"`
}

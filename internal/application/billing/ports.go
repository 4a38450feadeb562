package billing

import (
	"context"

	"github.com/jhoicas/Carnes-api/internal/domain/entity"
)

// CompanyInfo datos del emisor impresos en la cabecera del comprobante.
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// InvoiceDocument factura resuelta con su pedido y líneas, lista para imprimir.
type InvoiceDocument struct {
	Invoice       *entity.Invoice
	Order         *entity.Order
	ReceiptNumber string
}

// InvoicePDFGenerator puerto de generación de PDF. Cada documento ocupa sus propias páginas.
type InvoicePDFGenerator interface {
	GenerateInvoicesPDF(ctx context.Context, company CompanyInfo, docs []InvoiceDocument) ([]byte, error)
}

package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Carnes-api/internal/domain"
	dombilling "github.com/jhoicas/Carnes-api/internal/domain/billing"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
	"github.com/jhoicas/Carnes-api/pkg/logger"
)

// PDFUseCase genera los comprobantes PDF de una o varias facturas.
type PDFUseCase struct {
	invoices  repository.InvoiceRepository
	orders    repository.OrderRepository
	generator InvoicePDFGenerator
	company   CompanyInfo
	log       *logger.Logger
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoices repository.InvoiceRepository,
	orders repository.OrderRepository,
	generator InvoicePDFGenerator,
	company CompanyInfo,
	log *logger.Logger,
) *PDFUseCase {
	return &PDFUseCase{
		invoices:  invoices,
		orders:    orders,
		generator: generator,
		company:   company,
		log:       log.Named("pdf"),
	}
}

// InvoicePDF comprobante de una factura. Devuelve los bytes y el nombre de archivo sugerido.
func (uc *PDFUseCase) InvoicePDF(ctx context.Context, invoiceID string) ([]byte, string, error) {
	doc, err := uc.resolve(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateInvoicesPDF(ctx, uc.company, []InvoiceDocument{doc})
	if err != nil {
		uc.log.Error().Err(err).Str("invoice_id", invoiceID).Msg("generar pdf")
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("rechnung_%s.pdf", doc.Invoice.InvoiceNumber), nil
}

// BatchPDF un único documento con una factura por página, en el orden recibido.
func (uc *PDFUseCase) BatchPDF(ctx context.Context, invoiceIDs []string) ([]byte, string, error) {
	if len(invoiceIDs) == 0 {
		return nil, "", domain.NewValidationError("invoice_ids", "debe indicar al menos una factura")
	}
	docs := make([]InvoiceDocument, 0, len(invoiceIDs))
	for _, id := range invoiceIDs {
		doc, err := uc.resolve(ctx, id)
		if err != nil {
			return nil, "", err
		}
		docs = append(docs, doc)
	}
	pdfBytes, err := uc.generator.GenerateInvoicesPDF(ctx, uc.company, docs)
	if err != nil {
		uc.log.Error().Err(err).Int("invoices", len(docs)).Msg("generar pdf por lote")
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	uc.log.Info().Int("invoices", len(docs)).Msg("pdf por lote generado")
	return pdfBytes, fmt.Sprintf("rechnungen_%s.pdf", time.Now().Format("20060102")), nil
}

func (uc *PDFUseCase) resolve(ctx context.Context, invoiceID string) (InvoiceDocument, error) {
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return InvoiceDocument{}, fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return InvoiceDocument{}, fmt.Errorf("factura %s: %w", invoiceID, domain.ErrNotFound)
	}
	o, err := uc.orders.GetByID(ctx, inv.OrderID)
	if err != nil {
		return InvoiceDocument{}, fmt.Errorf("pdf: obtener pedido: %w", err)
	}
	if o == nil {
		return InvoiceDocument{}, fmt.Errorf("pedido %s de la factura %s: %w", inv.OrderID, inv.InvoiceNumber, domain.ErrNotFound)
	}
	return InvoiceDocument{
		Invoice:       inv,
		Order:         o,
		ReceiptNumber: dombilling.ReceiptNumber(inv.IssueDate, inv.Sequence),
	}, nil
}

// Package pdf genera los comprobantes (Rechnungen) de facturas con Maroto v2.
//
// Layout de cada página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  Emisor (nombre, dirección)   │  Rechnung / Beleg-Nr. / Datum │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Kunde: nombre, teléfono, dirección                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Artikel | Menge (kg) | Preis/kg | Summe              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Zwischensumme / MwSt. / Gesamtbetrag                        │
//	│  Pie: vencimiento, notas, contacto                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appbilling "github.com/jhoicas/Carnes-api/internal/application/billing"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 122, Green: 31, Blue: 31}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const dateLayout = "02.01.2006"

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
// Importes y pesos se imprimen con formato alemán (1.234,50 €).
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(language.German)}
}

// GenerateInvoicesPDF genera un documento con una página (o más, si no entra) por factura.
func (g *MarotoPDFGenerator) GenerateInvoicesPDF(
	ctx context.Context,
	company appbilling.CompanyInfo,
	docs []appbilling.InvoiceDocument,
) ([]byte, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("pdf: no hay facturas para generar")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Rechnung", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)
	pages := make([]core.Page, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pages = append(pages, page.New().Add(g.invoiceRows(company, doc)...))
	}
	m.AddPages(pages...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

func (g *MarotoPDFGenerator) invoiceRows(company appbilling.CompanyInfo, doc appbilling.InvoiceDocument) []core.Row {
	rows := []core.Row{
		headerRow(company, doc),
		line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}),
		customerRow(doc.Order),
		line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}),
		tableHeaderRow(),
	}
	rows = append(rows, g.itemRows(doc.Order.Items)...)
	rows = append(rows,
		line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}),
		g.totalsRow(doc.Invoice),
		row.New(4),
	)
	return append(rows, footerRows(company, doc.Invoice)...)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor (izq) y número de factura, comprobante y fecha (der).
func headerRow(company appbilling.CompanyInfo, doc appbilling.InvoiceDocument) core.Row {
	return row.New(22).Add(
		col.New(7).Add(
			text.New(nonEmpty(company.Name, "Hofladen"), props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(company.Address, ""), props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RECHNUNG "+doc.Invoice.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Beleg-Nr.: "+doc.ReceiptNumber, props.Text{
				Size: 9, Align: align.Right, Top: 8,
			}),
			text.New("Datum: "+doc.Invoice.IssueDate.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente tomados del pedido.
func customerRow(o *entity.Order) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("KUNDE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(o.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tel.: %s   |   Adresse: %s",
				nonEmpty(o.CustomerPhone, "-"),
				nonEmpty(o.CustomerAddress, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Artikel", 6, align.Left),
		h("Menge (kg)", 2, align.Right),
		h("Preis/kg", 2, align.Right),
		h("Summe", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// itemRows: una fila por línea del pedido.
func (g *MarotoPDFGenerator) itemRows(items []*entity.OrderItem) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			cell(nonEmpty(it.ItemName, "Artikel"), 6, align.Left),
			cell(g.weight(it.Weight), 2, align.Right),
			cell(g.money(it.UnitPrice), 2, align.Right),
			cell(g.money(it.Subtotal), 2, align.Right),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func (g *MarotoPDFGenerator) totalsRow(inv *entity.Invoice) core.Row {
	label := func(s string, top float64, bold bool) core.Component {
		p := props.Text{Size: 9, Align: align.Right, Right: 2, Top: top}
		if bold {
			p.Style = fontstyle.Bold
			p.Color = colorPrimary
		}
		return text.New(s, p)
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Zwischensumme:", 1, false),
			label(fmt.Sprintf("MwSt. %s %%:", inv.TaxRate.String()), 7, false),
			label("Gesamtbetrag:", 13, true),
		),
		col.New(3).Add(
			label(g.money(inv.TotalAmount), 1, false),
			label(g.money(inv.TaxAmount), 7, false),
			label(g.money(inv.GrandTotal), 13, true),
		),
	)
}

// footerRows: vencimiento, notas y contacto del emisor.
func footerRows(company appbilling.CompanyInfo, inv *entity.Invoice) []core.Row {
	var rows []core.Row
	if inv.DueDate != nil {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Zahlbar bis: "+inv.DueDate.Format(dateLayout), props.Text{Size: 8, Style: fontstyle.Bold}),
		)))
	}
	if inv.Notes != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Hinweis: "+inv.Notes, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	rows = append(rows,
		line.NewRow(4, props.Line{Color: colorGray, Thickness: 0.2}),
		row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Vielen Dank für Ihren Einkauf!   %s   %s",
				nonEmpty(company.Phone, ""),
				nonEmpty(company.Email, ""),
			), props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
		)),
	)
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money 1234.5 -> "1.234,50 €".
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	v := entity.RoundMoney(d).InexactFloat64()
	return g.printer.Sprint(number.Decimal(v, number.Scale(entity.MoneyScale))) + " €"
}

// weight 2.505 -> "2,505".
func (g *MarotoPDFGenerator) weight(d decimal.Decimal) string {
	v := entity.RoundWeight(d).InexactFloat64()
	return g.printer.Sprint(number.Decimal(v, number.Scale(entity.WeightScale)))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

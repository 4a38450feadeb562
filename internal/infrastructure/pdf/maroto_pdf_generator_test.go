package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/Carnes-api/internal/application/billing"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleDoc(number string) appbilling.InvoiceDocument {
	issued := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	due := issued.AddDate(0, 0, 14)
	inv := &entity.Invoice{
		InvoiceNumber: number,
		IssueDate:     issued,
		DueDate:       &due,
		TotalAmount:   d("68.59"),
		TaxRate:       d("10"),
		Notes:         "Abholung Samstag",
	}
	inv.CalculateTotals()
	return appbilling.InvoiceDocument{
		Invoice: inv,
		Order: &entity.Order{
			CustomerName: "Anna Müller",
			Items: []*entity.OrderItem{
				{ItemName: "Rinderhüfte", Weight: d("2.505"), UnitPrice: d("18.00"), Subtotal: d("45.09")},
				{ItemName: "Hackfleisch", Weight: d("1.000"), UnitPrice: d("23.50"), Subtotal: d("23.50")},
			},
		},
		ReceiptNumber: "5324-0001",
	}
}

func TestGenerateInvoicesPDF_UnaYVariasFacturas(t *testing.T) {
	g := NewMarotoPDFGenerator()
	company := appbilling.CompanyInfo{Name: "Hofladen", Address: "Dorfstraße 1", Email: "info@hofladen.de"}

	single, err := g.GenerateInvoicesPDF(context.Background(), company, []appbilling.InvoiceDocument{sampleDoc("INV-2024-000001")})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(single, []byte("%PDF")), "debe ser un PDF")

	batch, err := g.GenerateInvoicesPDF(context.Background(), company, []appbilling.InvoiceDocument{
		sampleDoc("INV-2024-000001"), sampleDoc("INV-2024-000002"),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(batch, []byte("%PDF")))
	assert.Greater(t, len(batch), len(single))
}

func TestGenerateInvoicesPDF_SinFacturas(t *testing.T) {
	_, err := NewMarotoPDFGenerator().GenerateInvoicesPDF(context.Background(), appbilling.CompanyInfo{}, nil)
	assert.Error(t, err)
}

func TestFormatoAleman(t *testing.T) {
	g := NewMarotoPDFGenerator()
	assert.Equal(t, "1.234,50 €", g.money(d("1234.5")))
	assert.Equal(t, "45,09 €", g.money(d("45.085")))
	assert.Equal(t, "2,505", g.weight(d("2.505")))
}

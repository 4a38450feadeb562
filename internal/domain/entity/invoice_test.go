package entity_test

import (
	"testing"
	"time"

	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals_IVA10(t *testing.T) {
	inv := &entity.Invoice{TotalAmount: d("150.00"), TaxRate: entity.DefaultTaxRate}
	inv.CalculateTotals()
	assert.Equal(t, "15.00", inv.TaxAmount.StringFixed(2))
	assert.Equal(t, "165.00", inv.GrandTotal.StringFixed(2))
}

func TestCalculateTotals_Idempotente(t *testing.T) {
	inv := &entity.Invoice{TotalAmount: d("99.99"), TaxRate: d("7")}
	inv.CalculateTotals()
	tax, grand := inv.TaxAmount, inv.GrandTotal

	inv.CalculateTotals()
	assert.True(t, tax.Equal(inv.TaxAmount))
	assert.True(t, grand.Equal(inv.GrandTotal))
	assert.Equal(t, "7.00", inv.TaxAmount.StringFixed(2))
}

func TestIsOverdue(t *testing.T) {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	inv := &entity.Invoice{Status: entity.InvoiceStatusUnpaid, DueDate: &due}

	assert.False(t, inv.IsOverdue(due.Add(10*time.Hour)), "el día del vencimiento aún no está vencida")
	assert.True(t, inv.IsOverdue(due.AddDate(0, 0, 1)))

	inv.Status = entity.InvoiceStatusPaid
	assert.False(t, inv.IsOverdue(due.AddDate(0, 1, 0)))
}

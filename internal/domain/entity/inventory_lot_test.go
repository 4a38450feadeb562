package entity_test

import (
	"testing"

	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newLot(t *testing.T, total string) *entity.InventoryLot {
	t.Helper()
	lot, err := entity.NewInventoryLot("lot-1", "prod-1", d(total), nil, d("22.50"))
	require.NoError(t, err)
	return lot
}

// ──────────────────────────────────────────────────────────────────────────────
// Reserva / liberación de peso
// ──────────────────────────────────────────────────────────────────────────────

func TestNewInventoryLot_DisponibleIgualTotalPorDefecto(t *testing.T) {
	lot := newLot(t, "50.00")
	assert.True(t, lot.AvailableWeight.Equal(d("50")), "sin peso disponible explícito se usa el total")
	assert.True(t, lot.ReservedWeight().IsZero())
}

func TestNewInventoryLot_DisponibleMayorQueTotal(t *testing.T) {
	avail := d("60")
	_, err := entity.NewInventoryLot("lot-1", "prod-1", d("50"), &avail, d("10"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewInventoryLot_SinProducto(t *testing.T) {
	_, err := entity.NewInventoryLot("lot-1", "", d("50"), nil, d("10"))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "product_id", verr.Fields[0].Field)
}

func TestReserve_CapacidadInsuficienteNoModificaLote(t *testing.T) {
	lot := newLot(t, "50.00")

	require.NoError(t, lot.Reserve(d("20.00")))
	assert.True(t, lot.AvailableWeight.Equal(d("30.00")))

	err := lot.Reserve(d("40.00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientCapacity)
	assert.True(t, lot.AvailableWeight.Equal(d("30.00")), "una reserva fallida no debe tocar el disponible")
}

func TestReserve_PesoNegativo(t *testing.T) {
	lot := newLot(t, "10")
	assert.ErrorIs(t, lot.Reserve(d("-1")), domain.ErrInvalidInput)
}

func TestReserveRelease_IdaYVuelta(t *testing.T) {
	lot := newLot(t, "50.000")
	before := lot.AvailableWeight

	require.NoError(t, lot.Reserve(d("12.345")))
	require.NoError(t, lot.Release(d("12.345")))
	assert.True(t, lot.AvailableWeight.Equal(before))
}

func TestRelease_NoSuperaTotal(t *testing.T) {
	lot := newLot(t, "50")
	require.NoError(t, lot.Reserve(d("5")))

	require.NoError(t, lot.Release(d("100")))
	assert.True(t, lot.AvailableWeight.Equal(d("50")), "release se limita al peso total")
	assert.False(t, lot.AvailableWeight.GreaterThan(lot.TotalWeight))
}

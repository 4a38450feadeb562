package inventory_test

import (
	"testing"

	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/jhoicas/Carnes-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAvailableStock_ProductoLotSumaLotes(t *testing.T) {
	p := &entity.Product{ID: "p", StockMode: entity.StockModeLot, ManualQuantity: d("999")}
	lots := []*entity.InventoryLot{
		{ProductID: "p", AvailableWeight: d("10.250")},
		{ProductID: "p", AvailableWeight: d("4.750")},
		{ProductID: "otro", AvailableWeight: d("100")},
	}
	assert.True(t, inventory.AvailableStock(p, lots).Equal(d("15")))
}

func TestAvailableStock_ProductoLotSinLotes(t *testing.T) {
	p := &entity.Product{ID: "p", StockMode: entity.StockModeLot, ManualQuantity: d("5")}
	assert.True(t, inventory.AvailableStock(p, nil).IsZero())
}

func TestAvailableStock_ProductoManual(t *testing.T) {
	p := &entity.Product{ID: "p", StockMode: entity.StockModeManual, ManualQuantity: d("30")}
	assert.True(t, inventory.AvailableStock(p, nil).Equal(d("30")))
}

func TestAvailableStock_ProductoSinIdentidad(t *testing.T) {
	p := &entity.Product{StockMode: entity.StockModeLot, ManualQuantity: d("7")}
	assert.True(t, inventory.AvailableStock(p, []*entity.InventoryLot{{ProductID: "", AvailableWeight: d("1")}}).Equal(d("7")))
	assert.True(t, inventory.AvailableStock(nil, nil).IsZero())
}

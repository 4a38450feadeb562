package inventory

import (
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AvailableStock calcula el stock disponible de un producto (servicio de dominio).
//   - producto sin ID (aún no persistido): cantidad manual.
//   - modo MANUAL: cantidad manual.
//   - modo LOT: suma del peso disponible de sus lotes (0 si no tiene lotes).
func AvailableStock(p *entity.Product, lots []*entity.InventoryLot) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	if p.ID == "" || !p.IsLotBacked() {
		return p.ManualQuantity
	}
	return SumAvailableWeight(p.ID, lots)
}

// SumAvailableWeight suma el peso disponible de los lotes del producto indicado.
func SumAvailableWeight(productID string, lots []*entity.InventoryLot) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lots {
		if l.ProductID == productID {
			total = total.Add(l.AvailableWeight)
		}
	}
	return total
}

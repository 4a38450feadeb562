package dto

import "github.com/jhoicas/Carnes-api/internal/domain/entity"

// ToProductResponse mapea entidad a DTO.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                  p.ID,
		Name:                p.Name,
		Description:         p.Description,
		Price:               p.Price,
		ImageURL:            p.ImageURL,
		MeatCutType:         p.MeatCutType,
		StockMode:           p.StockMode,
		ManualStockQuantity: p.ManualQuantity,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// ToLotResponse mapea un lote.
func ToLotResponse(l *entity.InventoryLot) LotResponse {
	return LotResponse{
		ID:              l.ID,
		SlaughterID:     l.SlaughterID,
		ProductID:       l.ProductID,
		TotalWeight:     l.TotalWeight,
		AvailableWeight: l.AvailableWeight,
		ReservedWeight:  l.ReservedWeight(),
		PricePerKg:      l.PricePerUnitWeight,
	}
}

// ToLotResponses mapea una lista de lotes (nunca nil).
func ToLotResponses(lots []*entity.InventoryLot) []LotResponse {
	out := make([]LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, ToLotResponse(l))
	}
	return out
}

// ToSlaughterResponse mapea una faena con sus lotes.
func ToSlaughterResponse(s *entity.Slaughter) SlaughterResponse {
	return SlaughterResponse{
		ID:            s.ID,
		CowTag:        s.CowTag,
		CowID:         s.CowID,
		SlaughterDate: s.SlaughterDate.Format(DateLayout),
		TotalWeight:   s.TotalWeight,
		Notes:         s.Notes,
		Lots:          ToLotResponses(s.Lots),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToLotAvailabilityResponse mapea la vista de disponibilidad.
func ToLotAvailabilityResponse(a *entity.LotAvailability) LotAvailabilityResponse {
	return LotAvailabilityResponse{
		LotID:           a.LotID,
		CowTag:          a.CowTag,
		CowID:           a.CowID,
		SlaughterDate:   a.SlaughterDate.Format(DateLayout),
		AvailableWeight: a.AvailableWeight,
		TotalWeight:     a.TotalWeight,
		PricePerKg:      a.PricePerUnitWeight,
		ProductName:     a.ProductName,
	}
}

// ToOrderResponse mapea un pedido con sus líneas.
func ToOrderResponse(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:        it.ID,
			LotID:     it.LotID,
			ProductID: it.ProductID,
			ItemName:  it.ItemName,
			Weight:    it.Weight,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return OrderResponse{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		Status:          o.Status,
		Items:           items,
		TotalAmount:     o.TotalAmount,
		OrderDate:       o.OrderDate,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToInvoiceResponse mapea una factura (sin pedido).
func ToInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	out := InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		OrderID:       inv.OrderID,
		IssueDate:     inv.IssueDate.Format(DateLayout),
		TotalAmount:   inv.TotalAmount,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		GrandTotal:    inv.GrandTotal,
		Notes:         inv.Notes,
		Status:        inv.Status,
		CreatedBy:     inv.CreatedBy,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	if inv.DueDate != nil {
		out.DueDate = inv.DueDate.Format(DateLayout)
	}
	return out
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Slaughter representa una faena (sacrificio de un animal) y los lotes que produjo.
// Los lotes le pertenecen: se eliminan en cascada con la faena.
type Slaughter struct {
	ID            string
	CowTag        string
	CowID         string
	SlaughterDate time.Time
	TotalWeight   decimal.Decimal // derivado: suma de TotalWeight de los lotes
	Notes         string
	Lots          []*InventoryLot
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AttachLots reemplaza la colección de lotes, fija la referencia a la faena y recalcula el peso total.
func (s *Slaughter) AttachLots(lots []*InventoryLot) {
	s.Lots = make([]*InventoryLot, 0, len(lots))
	for _, l := range lots {
		l.SlaughterID = s.ID
		s.Lots = append(s.Lots, l)
	}
	s.RecalculateTotalWeight()
}

// RecalculateTotalWeight suma el peso total de los lotes.
func (s *Slaughter) RecalculateTotalWeight() {
	total := decimal.Zero
	for _, l := range s.Lots {
		total = total.Add(l.TotalWeight)
	}
	s.TotalWeight = total
}

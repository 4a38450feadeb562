package entity_test

import (
	"testing"

	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestAttachLots_BackReferenceYPesoTotal(t *testing.T) {
	s := &entity.Slaughter{ID: "sl-1"}
	s.AttachLots([]*entity.InventoryLot{
		{ProductID: "a", TotalWeight: d("40.500")},
		{ProductID: "b", TotalWeight: d("9.500")},
	})
	for _, l := range s.Lots {
		assert.Equal(t, "sl-1", l.SlaughterID)
	}
	assert.True(t, s.TotalWeight.Equal(d("50")))
}

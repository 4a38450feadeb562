package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Carnes-api/internal/application/inventory"
	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/internal/domain/repository"
)

func TestLotQueries(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "Rinderhüfte")
	f.product(t, "p2", "Hackfleisch")

	older, err := f.slaughters.Create(f.ctx, request("2024-03-01", lotReq("p1", "8", "27")))
	require.NoError(t, err)
	newer, err := f.slaughters.Create(f.ctx, request("2024-03-05", lotReq("p1", "2", "29"), lotReq("p2", "5", "11")))
	require.NoError(t, err)

	all, err := f.lots.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	found, err := f.lots.Search(f.ctx, "p1", d("3"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, older.Lots[0].ID, found[0].ID)

	bySlaughter, err := f.lots.ListBySlaughter(f.ctx, newer.ID)
	require.NoError(t, err)
	assert.Len(t, bySlaughter, 2)

	avail, err := f.lots.AvailabilityByProduct(f.ctx, "p1")
	require.NoError(t, err)
	require.Len(t, avail, 2)
	assert.Equal(t, "2024-03-05", avail[0].SlaughterDate)
	assert.Equal(t, "Rinderhüfte", avail[0].ProductName)
	assert.Equal(t, "DE-0101", avail[0].CowTag)

	_, err = f.lots.AvailabilityByProduct(f.ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.lots.Search(f.ctx, "", d("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.lots.Search(f.ctx, "p1", d("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReserveAndRelease(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "Rinderhüfte")
	s, err := f.slaughters.Create(f.ctx, request("2024-03-05", lotReq("p1", "10", "25")))
	require.NoError(t, err)
	lotID := s.Lots[0].ID

	run := func(fn func(repos repository.Repos) error) error {
		return f.store.Run(f.ctx, fn)
	}

	require.NoError(t, run(func(repos repository.Repos) error {
		return inventory.ReserveLotWeight(f.ctx, repos.Lots, lotID, d("7.5"))
	}))
	lot, err := f.lots.GetByID(f.ctx, lotID)
	require.NoError(t, err)
	assert.True(t, d("2.5").Equal(lot.AvailableWeight))
	assert.True(t, d("7.5").Equal(lot.ReservedWeight))

	err = run(func(repos repository.Repos) error {
		return inventory.ReserveLotWeight(f.ctx, repos.Lots, lotID, d("3"))
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientCapacity)

	// La liberación nunca supera el peso total.
	require.NoError(t, run(func(repos repository.Repos) error {
		return inventory.ReleaseLotWeight(f.ctx, repos.Lots, lotID, d("20"))
	}))
	lot, err = f.lots.GetByID(f.ctx, lotID)
	require.NoError(t, err)
	assert.True(t, d("10").Equal(lot.AvailableWeight))

	err = run(func(repos repository.Repos) error {
		return inventory.ReserveLotWeight(f.ctx, repos.Lots, "no-existe", d("1"))
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, run(func(repos repository.Repos) error {
		return inventory.ReleaseLotWeight(f.ctx, repos.Lots, "no-existe", d("1"))
	}), "un lote eliminado se ignora al liberar")
}

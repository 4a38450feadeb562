package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Carnes-api/internal/application/dto"
	"github.com/jhoicas/Carnes-api/internal/application/inventory"
	"github.com/jhoicas/Carnes-api/internal/application/usecase"
	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/jhoicas/Carnes-api/internal/infrastructure/memory"
	"github.com/jhoicas/Carnes-api/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (context.Context, *usecase.ProductUseCase, *inventory.SlaughterUseCase) {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	return context.Background(),
		usecase.NewProductUseCase(repos.Products, repos.Lots, store, logger.Nop()),
		inventory.NewSlaughterUseCase(store, repos.Slaughters, logger.Nop())
}

func TestCreate_ValoresPorDefecto(t *testing.T) {
	ctx, uc, _ := setup(t)

	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "  Bio-Honig ", Price: d("15.005")})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Bio-Honig", p.Name)
	assert.Equal(t, entity.StockModeManual, p.StockMode)
	assert.True(t, d("15.01").Equal(p.Price), "precio redondeado a 2 decimales")
	assert.True(t, p.ManualStockQuantity.IsZero())
}

func TestCreate_Validacion(t *testing.T) {
	ctx, uc, _ := setup(t)

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: " ", Price: d("-1"), StockMode: "KG"})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
}

func TestCreateBulk_TodoONada(t *testing.T) {
	ctx, uc, _ := setup(t)

	_, err := uc.CreateBulk(ctx, []dto.CreateProductRequest{
		{Name: "Gulasch", Price: d("22")},
		{Name: "", Price: d("1")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := uc.CreateBulk(ctx, []dto.CreateProductRequest{
		{Name: "Gulasch", Price: d("22")},
		{Name: "Speck", Price: d("24")},
	})
	require.NoError(t, err)
	assert.Len(t, created, 2)

	_, err = uc.CreateBulk(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_Parcial(t *testing.T) {
	ctx, uc, _ := setup(t)
	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Tafelspitz", Price: d("28"), Description: "Klassiker"})
	require.NoError(t, err)

	price := d("29.50")
	out, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Tafelspitz", out.Name)
	assert.Equal(t, "Klassiker", out.Description)
	assert.True(t, price.Equal(out.Price))

	empty := ""
	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, "no-existe", dto.UpdateProductRequest{Price: &price})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStock_LoteVsManual(t *testing.T) {
	ctx, uc, slaughters := setup(t)
	meat, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Rinderhüfte", Price: d("30")})
	require.NoError(t, err)
	eggs, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Bio-Eier", Price: d("4.50")})
	require.NoError(t, err)

	_, err = slaughters.Create(ctx, dto.SlaughterRequest{
		CowTag:        "DE-0101",
		SlaughterDate: "2024-03-05",
		Lots: []dto.LotRequest{
			{ProductID: meat.ID, TotalWeight: d("12.5"), PricePerKg: d("28")},
			{ProductID: meat.ID, TotalWeight: d("7.25"), PricePerKg: d("28")},
		},
	})
	require.NoError(t, err)

	stock, err := uc.AvailableStock(ctx, meat.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StockModeLot, stock.StockMode)
	assert.True(t, d("19.75").Equal(stock.AvailableStock))

	// Un producto LOT no admite stock manual.
	_, err = uc.SetManualStock(ctx, meat.ID, d("5"))
	assert.ErrorIs(t, err, domain.ErrConflict)

	set, err := uc.SetManualStock(ctx, eggs.ID, d("30"))
	require.NoError(t, err)
	assert.True(t, d("30").Equal(set.AvailableStock))

	_, err = uc.SetManualStock(ctx, eggs.ID, d("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	withStock, err := uc.ListWithStock(ctx)
	require.NoError(t, err)
	require.Len(t, withStock, 2)
	byName := map[string]decimal.Decimal{}
	for _, p := range withStock {
		byName[p.Name] = p.AvailableStock
	}
	assert.True(t, d("30").Equal(byName["Bio-Eier"]))
	assert.True(t, d("19.75").Equal(byName["Rinderhüfte"]))

	// Con lotes registrados el producto no se elimina.
	assert.ErrorIs(t, uc.Delete(ctx, meat.ID), domain.ErrConflict)
	require.NoError(t, uc.Delete(ctx, eggs.ID))
	_, err = uc.GetByID(ctx, eggs.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInitDefaultProducts(t *testing.T) {
	ctx, uc, slaughters := setup(t)
	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Alt", Price: d("1")})
	require.NoError(t, err)

	out, err := uc.InitDefaultProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, out, len(usecase.DefaultProducts()))

	modes := map[string]string{}
	for _, p := range out {
		modes[p.Name] = p.StockMode
	}
	assert.NotContains(t, modes, "Alt", "el catálogo anterior se reemplaza")
	assert.Equal(t, entity.StockModeManual, modes["Bio-Honig"])
	assert.Equal(t, entity.StockModeLot, modes["Bio-Rindfleisch - Filet"])

	_, err = slaughters.Create(ctx, dto.SlaughterRequest{
		CowTag:        "DE-0101",
		SlaughterDate: "2024-03-05",
		Lots:          []dto.LotRequest{{ProductID: out[0].ID, TotalWeight: d("1"), PricePerKg: d("1")}},
	})
	require.NoError(t, err)

	_, err = uc.InitDefaultProducts(ctx)
	assert.ErrorIs(t, err, domain.ErrConflict, "no se reinicia con lotes registrados")
}

func TestInitializeDefaultProducts_NoDestructivo(t *testing.T) {
	ctx, uc, slaughters := setup(t)
	own, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Hausgemachte Wurst", Price: d("4.50")})
	require.NoError(t, err)
	honey, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Bio-Honig", Price: d("99.00")})
	require.NoError(t, err)

	out, err := uc.InitializeDefaultProducts(ctx, false)
	require.NoError(t, err)
	assert.Len(t, out, len(usecase.DefaultProducts()))

	all, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(usecase.DefaultProducts())+1, "el producto propio se conserva")

	kept, err := uc.GetByID(ctx, honey.ID)
	require.NoError(t, err)
	assert.True(t, d("99.00").Equal(kept.Price), "sin overwrite el existente no cambia")
	_, err = uc.GetByID(ctx, own.ID)
	require.NoError(t, err)

	// Repetir no duplica.
	_, err = uc.InitializeDefaultProducts(ctx, false)
	require.NoError(t, err)
	all, err = uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(usecase.DefaultProducts())+1)

	// Con lotes registrados se puede completar igual.
	_, err = slaughters.Create(ctx, dto.SlaughterRequest{
		CowTag:        "DE-0202",
		SlaughterDate: "2024-03-05",
		Lots:          []dto.LotRequest{{ProductID: own.ID, TotalWeight: d("2"), PricePerKg: d("9")}},
	})
	require.NoError(t, err)

	_, err = uc.InitializeDefaultProducts(ctx, true)
	require.NoError(t, err)
	kept, err = uc.GetByID(ctx, honey.ID)
	require.NoError(t, err)
	assert.False(t, d("99.00").Equal(kept.Price), "overwrite toma el precio del surtido")
	assert.Equal(t, honey.ID, kept.ID)
}

func TestClearProducts(t *testing.T) {
	ctx, uc, slaughters := setup(t)
	_, err := uc.InitializeDefaultProducts(ctx, false)
	require.NoError(t, err)

	n, err := uc.ClearProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(usecase.DefaultProducts()), n)
	all, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Filet", Price: d("40"), StockMode: entity.StockModeLot})
	require.NoError(t, err)
	_, err = slaughters.Create(ctx, dto.SlaughterRequest{
		CowTag:        "DE-0303",
		SlaughterDate: "2024-03-06",
		Lots:          []dto.LotRequest{{ProductID: p.ID, TotalWeight: d("1"), PricePerKg: d("40")}},
	})
	require.NoError(t, err)

	_, err = uc.ClearProducts(ctx)
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.GetByID(ctx, p.ID)
	assert.NoError(t, err, "el catálogo queda intacto")
}

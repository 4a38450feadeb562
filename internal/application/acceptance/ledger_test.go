package acceptance

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/jhoicas/Carnes-api/internal/application/billing"
	"github.com/jhoicas/Carnes-api/internal/application/dto"
	"github.com/jhoicas/Carnes-api/internal/application/inventory"
	"github.com/jhoicas/Carnes-api/internal/application/sales"
	"github.com/jhoicas/Carnes-api/internal/application/usecase"
	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/internal/domain/entity"
	"github.com/jhoicas/Carnes-api/internal/infrastructure/memory"
	"github.com/jhoicas/Carnes-api/pkg/logger"
	"github.com/shopspring/decimal"
)

type ledgerContext struct {
	ctx        context.Context
	store      *memory.Store
	products   *usecase.ProductUseCase
	slaughters *inventory.SlaughterUseCase
	orders     *sales.OrderUseCase
	invoices   *billing.InvoiceUseCase

	productIDs   map[string]string
	slaughterIDs map[string]string
	lotID        string
	order        *dto.OrderResponse
	invoice      *dto.InvoiceResponse
	err          error
}

func (c *ledgerContext) reset() {
	c.ctx = context.Background()
	c.store = memory.NewStore()
	repos := c.store.Repos()
	log := logger.Nop()
	c.products = usecase.NewProductUseCase(repos.Products, repos.Lots, c.store, log)
	c.slaughters = inventory.NewSlaughterUseCase(c.store, repos.Slaughters, log)
	c.orders = sales.NewOrderUseCase(c.store, repos.Orders, log)
	c.invoices = billing.NewInvoiceUseCase(c.store, repos.Invoices, repos.Orders, billing.DefaultSettings(), log)
	c.productIDs = map[string]string{}
	c.slaughterIDs = map[string]string{}
	c.lotID = ""
	c.order = nil
	c.invoice = nil
	c.err = nil
}

func dec(s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("decimal %q: %w", s, err)
	}
	return v, nil
}

func expectDecimal(label, want string, got decimal.Decimal) error {
	w, err := dec(want)
	if err != nil {
		return err
	}
	if !w.Equal(got) {
		return fmt.Errorf("%s: esperado %s, obtenido %s", label, w, got)
	}
	return nil
}

// ── Given ────────────────────────────────────────────────────

func (c *ledgerContext) unProductoConPrecio(name, price string) error {
	p, err := dec(price)
	if err != nil {
		return err
	}
	out, err := c.products.Create(c.ctx, dto.CreateProductRequest{Name: name, Price: p})
	if err != nil {
		return err
	}
	c.productIDs[name] = out.ID
	return nil
}

func (c *ledgerContext) unaFaenaConUnLote(tag, product, weight, price string) error {
	w, err := dec(weight)
	if err != nil {
		return err
	}
	p, err := dec(price)
	if err != nil {
		return err
	}
	s, err := c.slaughters.Create(c.ctx, dto.SlaughterRequest{
		CowTag:        tag,
		SlaughterDate: "2024-03-05",
		Lots:          []dto.LotRequest{{ProductID: c.productIDs[product], TotalWeight: w, PricePerKg: p}},
	})
	if err != nil {
		return err
	}
	c.slaughterIDs[tag] = s.ID
	c.lotID = s.Lots[0].ID
	return nil
}

func (c *ledgerContext) unPedidoConTotal(total string) error {
	t, err := dec(total)
	if err != nil {
		return err
	}
	now := time.Now()
	o := &entity.Order{
		ID:           "pedido-fijo",
		CustomerName: "Anna Müller",
		Status:       entity.OrderStatusPending,
		TotalAmount:  t,
		OrderDate:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := c.store.Repos().Orders.Create(c.ctx, o); err != nil {
		return err
	}
	c.order = &dto.OrderResponse{ID: o.ID}
	return nil
}

// ── When ─────────────────────────────────────────────────────

func (c *ledgerContext) sePideDelLote(weight string) error {
	return c.pedirLote(weight, nil)
}

func (c *ledgerContext) sePideDelLoteConPrecio(weight, price string) error {
	p, err := dec(price)
	if err != nil {
		return err
	}
	return c.pedirLote(weight, &p)
}

func (c *ledgerContext) pedirLote(weight string, price *decimal.Decimal) error {
	w, err := dec(weight)
	if err != nil {
		return err
	}
	c.order, c.err = c.orders.Create(c.ctx, dto.OrderRequest{
		CustomerName: "Anna Müller",
		Items:        []dto.OrderItemRequest{{LotID: c.lotID, Weight: w, UnitPrice: price}},
	})
	return nil
}

func (c *ledgerContext) sePideDeProducto(weight, product, price string) error {
	w, err := dec(weight)
	if err != nil {
		return err
	}
	p, err := dec(price)
	if err != nil {
		return err
	}
	if _, err := c.products.Update(c.ctx, c.productIDs[product], dto.UpdateProductRequest{Price: &p}); err != nil {
		return err
	}
	c.order, c.err = c.orders.Create(c.ctx, dto.OrderRequest{
		CustomerName: "Anna Müller",
		Items:        []dto.OrderItemRequest{{ProductID: c.productIDs[product], Weight: w}},
	})
	return c.err
}

func (c *ledgerContext) seEditaElPedidoConPrecio(price string) error {
	p, err := dec(price)
	if err != nil {
		return err
	}
	if c.order == nil {
		return errors.New("no hay pedido")
	}
	item := c.order.Items[0]
	c.order, c.err = c.orders.Update(c.ctx, c.order.ID, dto.OrderRequest{
		CustomerName: c.order.CustomerName,
		Items:        []dto.OrderItemRequest{{LotID: item.LotID, ProductID: item.ProductID, Weight: item.Weight, UnitPrice: &p}},
	})
	return c.err
}

func (c *ledgerContext) seEliminaLaFaena(tag string) error {
	return c.slaughters.Delete(c.ctx, c.slaughterIDs[tag])
}

func (c *ledgerContext) seFacturaElPedido() error {
	c.invoice, c.err = c.invoices.CreateFromOrder(c.ctx, c.order.ID)
	return c.err
}

// ── Then ─────────────────────────────────────────────────────

func (c *ledgerContext) elPesoDisponibleDelLoteEs(weight string) error {
	l, err := c.store.Repos().Lots.GetByID(c.ctx, c.lotID)
	if err != nil {
		return err
	}
	if l == nil {
		return errors.New("lote no encontrado")
	}
	return expectDecimal("peso disponible", weight, l.AvailableWeight)
}

func (c *ledgerContext) laOperacionFallaPorCapacidad() error {
	if !errors.Is(c.err, domain.ErrInsufficientCapacity) {
		return fmt.Errorf("se esperaba ErrInsufficientCapacity, obtenido %v", c.err)
	}
	return nil
}

func (c *ledgerContext) elStockDisponibleEs(product, qty string) error {
	s, err := c.products.AvailableStock(c.ctx, c.productIDs[product])
	if err != nil {
		return err
	}
	return expectDecimal("stock disponible", qty, s.AvailableStock)
}

func (c *ledgerContext) elSubtotalDeLaLineaEs(subtotal string) error {
	return expectDecimal("subtotal", subtotal, c.order.Items[0].Subtotal)
}

func (c *ledgerContext) elPrecioUnitarioGuardadoEs(price string) error {
	if c.err != nil {
		return c.err
	}
	o, err := c.orders.GetByID(c.ctx, c.order.ID)
	if err != nil {
		return err
	}
	return expectDecimal("precio unitario", price, o.Items[0].UnitPrice)
}

func (c *ledgerContext) elImpuestoEs(tax string) error {
	return expectDecimal("impuesto", tax, c.invoice.TaxAmount)
}

func (c *ledgerContext) elTotalDeLaFacturaEs(total string) error {
	return expectDecimal("total", total, c.invoice.GrandTotal)
}

const num = `(\d+(?:\.\d+)?)`

func InitializeScenario(sc *godog.ScenarioContext) {
	c := &ledgerContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	sc.Step(`^un producto "([^"]*)" con precio `+num+`$`, c.unProductoConPrecio)
	sc.Step(`^una faena "([^"]*)" con un lote de "([^"]*)" de `+num+` kg a `+num+`$`, c.unaFaenaConUnLote)
	sc.Step(`^un pedido con total `+num+`$`, c.unPedidoConTotal)

	sc.Step(`^se pide `+num+` kg del lote$`, c.sePideDelLote)
	sc.Step(`^se pide `+num+` kg del lote con precio de cliente `+num+`$`, c.sePideDelLoteConPrecio)
	sc.Step(`^se pide `+num+` kg de "([^"]*)" a `+num+`$`, c.sePideDeProducto)
	sc.Step(`^se edita el pedido con precio de cliente `+num+`$`, c.seEditaElPedidoConPrecio)
	sc.Step(`^se elimina la faena "([^"]*)"$`, c.seEliminaLaFaena)
	sc.Step(`^se factura el pedido$`, c.seFacturaElPedido)

	sc.Step(`^el peso disponible del lote es `+num+`$`, c.elPesoDisponibleDelLoteEs)
	sc.Step(`^la operación falla por capacidad insuficiente$`, c.laOperacionFallaPorCapacidad)
	sc.Step(`^el stock disponible de "([^"]*)" es `+num+`$`, c.elStockDisponibleEs)
	sc.Step(`^el subtotal de la línea es `+num+`$`, c.elSubtotalDeLaLineaEs)
	sc.Step(`^el precio unitario guardado es `+num+`$`, c.elPrecioUnitarioGuardadoEs)
	sc.Step(`^el impuesto es `+num+`$`, c.elImpuestoEs)
	sc.Step(`^el total de la factura es `+num+`$`, c.elTotalDeLaFacturaEs)
}

func TestLedgerFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/features"},
			TestingT: t,
			Strict:   true,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("escenarios de aceptación fallidos")
	}
}

package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Carnes-api/internal/application/billing"
	"github.com/jhoicas/Carnes-api/internal/application/dto"
	"github.com/jhoicas/Carnes-api/internal/application/inventory"
	"github.com/jhoicas/Carnes-api/internal/application/sales"
	"github.com/jhoicas/Carnes-api/internal/application/usecase"
	"github.com/jhoicas/Carnes-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Carnes-api/internal/interfaces/http"
	"github.com/jhoicas/Carnes-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type stubPDF struct{}

func (stubPDF) GenerateInvoicesPDF(context.Context, billing.CompanyInfo, []billing.InvoiceDocument) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

// buildTestApp construye la API completa sobre el store en memoria.
func buildTestApp(t *testing.T) (*fiber.App, *logger.RingBuffer) {
	t.Helper()
	buf := logger.NewRingBuffer(50)
	log := logger.New(logger.Config{Env: "test", Level: "debug", Buffer: buf})
	store := memory.NewStore()
	repos := store.Repos()
	invoiceUC := billing.NewInvoiceUseCase(store, repos.Invoices, repos.Orders, billing.DefaultSettings(), log)

	app := fiber.New(apphttp.NewConfig("carnes-test", log))
	app.Use(requestid.New())
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(repos.Products, repos.Lots, store, log),
		SlaughterUC: inventory.NewSlaughterUseCase(store, repos.Slaughters, log),
		LotUC:       inventory.NewLotUseCase(repos.Lots, repos.Products),
		OrderUC:     sales.NewOrderUseCase(store, repos.Orders, log),
		InvoiceUC:   invoiceUC,
		InvoicePDF:  billing.NewPDFUseCase(repos.Invoices, repos.Orders, stubPDF{}, billing.CompanyInfo{Name: "Hofladen"}, log),
		LogBuffer:   buf,
	})
	return app, buf
}

// doJSON lanza la petición y devuelve la respuesta (el cuerpo se decodifica en out si no es nil).
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, out any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func createProduct(t *testing.T, app *fiber.App, name, price string) dto.ProductResponse {
	t.Helper()
	var p dto.ProductResponse
	resp := doJSON(t, app, http.MethodPost, "/api/products",
		map[string]any{"name": name, "price": price}, &p)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return p
}

func createSlaughter(t *testing.T, app *fiber.App, productID, weight, price string) dto.SlaughterResponse {
	t.Helper()
	var s dto.SlaughterResponse
	resp := doJSON(t, app, http.MethodPost, "/api/slaughters", map[string]any{
		"cow_tag":        "DE-0101",
		"slaughter_date": "2024-03-05",
		"meat_cuts": []map[string]any{
			{"product_id": productID, "total_weight": weight, "price_per_kg": price},
		},
	}, &s)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación y errores
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_ValidacionDevuelve400(t *testing.T) {
	app, _ := buildTestApp(t)

	var body dto.ErrorResponse
	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"price": "-1"}, &body)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
	fields := map[string]string{}
	for _, f := range body.Errors {
		fields[f.Field] = f.Message
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "price")
}

func TestCuerpoInvalido(t *testing.T) {
	app, _ := buildTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", body.Code)
}

func TestNoEncontradoDevuelve404(t *testing.T) {
	app, _ := buildTestApp(t)
	for _, path := range []string{"/api/products/x", "/api/orders/x", "/api/invoices/x", "/api/slaughters/x", "/api/meat-cuts/x"} {
		var body dto.ErrorResponse
		resp := doJSON(t, app, http.MethodGet, path, nil, &body)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "NOT_FOUND", body.Code, path)
	}
}

func TestOrderItem_RequiereLoteOProducto(t *testing.T) {
	app, _ := buildTestApp(t)
	var body dto.ErrorResponse
	resp := doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"customer_name": "Anna",
		"items":         []map[string]any{{"weight": "0"}},
	}, &body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	fields := map[string]bool{}
	for _, f := range body.Errors {
		fields[f.Field] = true
	}
	assert.True(t, fields["items[0].meat_cut_id"])
	assert.True(t, fields["items[0].weight"])
}

func TestIDMalformadoEnRuta_Devuelve404(t *testing.T) {
	app, _ := buildTestApp(t)
	cases := []struct{ method, path string }{
		{http.MethodDelete, "/api/slaughters/123"},
		{http.MethodGet, "/api/meat-cuts/availability/product/abc"},
		{http.MethodGet, "/api/meat-cuts/slaughter/abc"},
		{http.MethodGet, "/api/invoices/by-order/no-uuid"},
		{http.MethodPost, "/api/invoices/from-order/no-uuid"},
		{http.MethodGet, "/api/invoices/abc/pdf"},
	}
	for _, tc := range cases {
		var body dto.ErrorResponse
		resp := doJSON(t, app, tc.method, tc.path, nil, &body)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, tc.path)
		assert.Equal(t, "NOT_FOUND", body.Code, tc.path)
	}
}

func TestIDMalformadoEnCuerpo_Devuelve400(t *testing.T) {
	app, _ := buildTestApp(t)
	fieldMessages := func(body dto.ErrorResponse) map[string]string {
		out := map[string]string{}
		for _, f := range body.Errors {
			out[f.Field] = f.Message
		}
		return out
	}

	var body dto.ErrorResponse
	resp := doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"customer_name": "Anna",
		"items":         []map[string]any{{"meat_cut_id": "abc", "weight": "1.000"}},
	}, &body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "debe ser un UUID válido", fieldMessages(body)["items[0].meat_cut_id"])

	body = dto.ErrorResponse{}
	resp = doJSON(t, app, http.MethodPost, "/api/invoices", map[string]any{"order_id": "abc"}, &body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, fieldMessages(body), "order_id")

	body = dto.ErrorResponse{}
	resp = doJSON(t, app, http.MethodPost, "/api/invoices/batch/pdf", map[string]any{"invoice_ids": []string{"abc"}}, &body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, fieldMessages(body), "invoice_ids[0]")

	body = dto.ErrorResponse{}
	resp = doJSON(t, app, http.MethodGet, "/api/meat-cuts/search?productId=abc&minWeight=1", nil, &body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: faena → pedido → factura → PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestFlujoCompleto(t *testing.T) {
	app, _ := buildTestApp(t)
	p := createProduct(t, app, "Rinderhüfte", "30.00")
	s := createSlaughter(t, app, p.ID, "50.000", "22.50")
	lotID := s.Lots[0].ID

	var stock dto.AvailableStockResponse
	doJSON(t, app, http.MethodGet, "/api/products/"+p.ID+"/available-stock", nil, &stock)
	assert.True(t, d("50").Equal(stock.AvailableStock))
	assert.Equal(t, "LOT", stock.StockMode)

	var order dto.OrderResponse
	resp := doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"customer_name": "Anna Müller",
		"items":         []map[string]any{{"meat_cut_id": lotID, "weight": "20.000", "unit_price": "1.00"}},
	}, &order)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.True(t, d("22.50").Equal(order.Items[0].UnitPrice))
	assert.True(t, d("450.00").Equal(order.TotalAmount))

	var errBody dto.ErrorResponse
	resp = doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"customer_name": "Jonas",
		"items":         []map[string]any{{"meat_cut_id": lotID, "weight": "40.000"}},
	}, &errBody)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_CAPACITY", errBody.Code)

	var inv dto.InvoiceResponse
	resp = doJSON(t, app, http.MethodPost, "/api/invoices/from-order/"+order.ID, nil, &inv)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.True(t, d("45.00").Equal(inv.TaxAmount))
	assert.True(t, d("495.00").Equal(inv.GrandTotal))

	resp = doJSON(t, app, http.MethodPost, "/api/invoices/from-order/"+order.ID, nil, &errBody)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", errBody.Code)

	resp = doJSON(t, app, http.MethodDelete, "/api/orders/"+order.ID, nil, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, "un pedido facturado no se elimina")

	resp = doJSON(t, app, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), inv.InvoiceNumber)

	resp = doJSON(t, app, http.MethodPost, "/api/invoices/batch/pdf", map[string]any{"invoice_ids": []string{inv.ID}}, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var byOrder dto.InvoiceResponse
	resp = doJSON(t, app, http.MethodGet, "/api/invoices/by-order/"+order.ID, nil, &byOrder)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, inv.InvoiceNumber, byOrder.InvoiceNumber)
}

func TestFacturaDePedido_SobreviveAPeticionesPosteriores(t *testing.T) {
	app, _ := buildTestApp(t)
	p := createProduct(t, app, "Suppenfleisch", "12.00")
	s := createSlaughter(t, app, p.ID, "20.000", "12.00")

	var order dto.OrderResponse
	resp := doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"customer_name": "Lena",
		"items":         []map[string]any{{"meat_cut_id": s.Lots[0].ID, "weight": "5.000"}},
	}, &order)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var inv dto.InvoiceResponse
	resp = doJSON(t, app, http.MethodPost, "/api/invoices/from-order/"+order.ID, nil, &inv)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Peticiones con otros parámetros reutilizan los buffers de fasthttp.
	for i := 0; i < 5; i++ {
		doJSON(t, app, http.MethodGet, "/api/products/"+p.ID+"/available-stock", nil, nil)
		doJSON(t, app, http.MethodGet, "/api/meat-cuts/slaughter/"+s.ID, nil, nil)
	}

	var byOrder dto.InvoiceResponse
	resp = doJSON(t, app, http.MethodGet, "/api/invoices/by-order/"+order.ID, nil, &byOrder)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, inv.ID, byOrder.ID)
	assert.Equal(t, order.ID, byOrder.OrderID)

	resp = doJSON(t, app, http.MethodDelete, "/api/orders/"+order.ID, nil, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUpdateStatus_QueryParam(t *testing.T) {
	app, _ := buildTestApp(t)
	p := createProduct(t, app, "Gulasch", "16.00")
	s := createSlaughter(t, app, p.ID, "10.000", "16.00")

	var order dto.OrderResponse
	doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"customer_name": "Paul",
		"items":         []map[string]any{{"meat_cut_id": s.Lots[0].ID, "weight": "10.000"}},
	}, &order)

	resp := doJSON(t, app, http.MethodPatch, "/api/orders/"+order.ID+"/status?status=CANCELLED", nil, &order)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "CANCELLED", order.Status)

	var lot dto.LotResponse
	doJSON(t, app, http.MethodGet, "/api/meat-cuts/"+s.Lots[0].ID, nil, &lot)
	assert.True(t, d("10").Equal(lot.AvailableWeight), "cancelar libera la reserva")
}

// ──────────────────────────────────────────────────────────────────────────────
// Logs
// ──────────────────────────────────────────────────────────────────────────────

func TestLogs_RegistraPeticiones(t *testing.T) {
	app, buf := buildTestApp(t)
	createProduct(t, app, "Honig", "8.50")

	var count dto.LogCountResponse
	doJSON(t, app, http.MethodGet, "/api/logs/count", nil, &count)
	assert.Greater(t, count.Count, 0)
	assert.Equal(t, 50, count.Capacity)

	var entries []logger.Entry
	doJSON(t, app, http.MethodGet, "/api/logs?limit=5", nil, &entries)
	require.NotEmpty(t, entries)
	assert.LessOrEqual(t, len(entries), 5)

	resp := doJSON(t, app, http.MethodDelete, "/api/logs", nil, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	// La propia petición DELETE se registra después de vaciar.
	assert.LessOrEqual(t, buf.Count(), 1)

	var body dto.ErrorResponse
	resp = doJSON(t, app, http.MethodGet, "/api/logs/since?timestamp=ayer", nil, &body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInitProducts_CompletaSinBorrar(t *testing.T) {
	app, _ := buildTestApp(t)
	own := createProduct(t, app, "Hausgemachte Wurst", "4.50")

	var out []dto.ProductResponse
	resp := doJSON(t, app, http.MethodPost, "/api/init/products?overwrite=false", nil, &out)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, out)

	resp = doJSON(t, app, http.MethodGet, "/api/products/"+own.ID, nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "el producto propio sigue")

	var count dto.CountResponse
	resp = doJSON(t, app, http.MethodDelete, "/api/init/products/clear", nil, &count)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, len(out)+1, count.Count)

	var all []dto.ProductResponse
	doJSON(t, app, http.MethodGet, "/api/products", nil, &all)
	assert.Empty(t, all)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Carnes-api/internal/application/inventory"
	"github.com/jhoicas/Carnes-api/internal/domain"
)

// LotHandler consultas de lotes (meat cuts). Se crean y eliminan vía faenas.
type LotHandler struct {
	uc *inventory.LotUseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(uc *inventory.LotUseCase) *LotHandler {
	return &LotHandler{uc: uc}
}

// List godoc
// @Summary      Listar lotes
// @Tags         meat-cuts
// @Produce      json
// @Success      200  {array}  dto.LotResponse
// @Router       /api/meat-cuts [get]
func (h *LotHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener lote
// @Tags         meat-cuts
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/meat-cuts/{id} [get]
func (h *LotHandler) GetByID(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ListAvailable godoc
// @Summary      Lotes con peso disponible
// @Tags         meat-cuts
// @Produce      json
// @Success      200  {array}  dto.LotResponse
// @Router       /api/meat-cuts/available [get]
func (h *LotHandler) ListAvailable(c *fiber.Ctx) error {
	out, err := h.uc.ListAvailable(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ListBySlaughter godoc
// @Summary      Lotes de una faena
// @Tags         meat-cuts
// @Produce      json
// @Param        slaughterId  path  string  true  "ID de la faena"
// @Success      200          {array}  dto.LotResponse
// @Router       /api/meat-cuts/slaughter/{slaughterId} [get]
func (h *LotHandler) ListBySlaughter(c *fiber.Ctx) error {
	slaughterID, err := idParam(c, "slaughterId")
	if err != nil {
		return err
	}
	out, err := h.uc.ListBySlaughter(c.UserContext(), slaughterID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Lotes de un producto con al menos minWeight disponible
// @Tags         meat-cuts
// @Produce      json
// @Param        productId  query  string  true  "ID del producto"
// @Param        minWeight  query  number  true  "Peso mínimo disponible"
// @Success      200        {array}   dto.LotResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/meat-cuts/search [get]
func (h *LotHandler) Search(c *fiber.Ctx) error {
	minWeight := decimal.Zero
	if raw := c.Query("minWeight"); raw != "" {
		w, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.NewValidationError("minWeight", "debe ser un número")
		}
		minWeight = w
	}
	productID := c.Query("productId")
	if _, err := uuid.Parse(productID); productID != "" && err != nil {
		return domain.NewValidationError("productId", "debe ser un UUID válido")
	}
	out, err := h.uc.Search(c.UserContext(), productID, minWeight)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AvailabilityByProduct godoc
// @Summary      Disponibilidad por lote de un producto, con su faena de origen
// @Tags         meat-cuts
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {array}   dto.LotAvailabilityResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/meat-cuts/availability/product/{productId} [get]
func (h *LotHandler) AvailabilityByProduct(c *fiber.Ctx) error {
	productID, err := idParam(c, "productId")
	if err != nil {
		return err
	}
	out, err := h.uc.AvailabilityByProduct(c.UserContext(), productID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Carnes-api/internal/application/dto"
	"github.com/jhoicas/Carnes-api/internal/application/inventory"
)

// SlaughterHandler faenas y sus lotes.
type SlaughterHandler struct {
	uc  *inventory.SlaughterUseCase
	val *Validator
}

// NewSlaughterHandler construye el handler.
func NewSlaughterHandler(uc *inventory.SlaughterUseCase, val *Validator) *SlaughterHandler {
	return &SlaughterHandler{uc: uc, val: val}
}

// Create godoc
// @Summary      Registrar faena con sus lotes
// @Tags         slaughters
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SlaughterRequest  true  "Faena"
// @Success      201   {object}  dto.SlaughterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/slaughters [post]
func (h *SlaughterHandler) Create(c *fiber.Ctx) error {
	var in dto.SlaughterRequest
	if err := h.val.bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar faena y lotes
// @Tags         slaughters
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la faena"
// @Param        body  body  dto.SlaughterRequest  true  "Faena"
// @Success      200   {object}  dto.SlaughterResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/slaughters/{id} [put]
func (h *SlaughterHandler) Update(c *fiber.Ctx) error {
	var in dto.SlaughterRequest
	if err := h.val.bind(c, &in); err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar faena (y sus lotes)
// @Tags         slaughters
// @Param        id   path  string  true  "ID de la faena"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/slaughters/{id} [delete]
func (h *SlaughterHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener faena
// @Tags         slaughters
// @Produce      json
// @Param        id   path  string  true  "ID de la faena"
// @Success      200  {object}  dto.SlaughterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/slaughters/{id} [get]
func (h *SlaughterHandler) GetByID(c *fiber.Ctx) error {
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

// List godoc
// @Summary      Listar faenas
// @Tags         slaughters
// @Produce      json
// @Success      200  {array}  dto.SlaughterResponse
// @Router       /api/slaughters [get]
func (h *SlaughterHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar faenas por caravana
// @Tags         slaughters
// @Produce      json
// @Param        cowTag  query  string  true  "Subcadena de la caravana"
// @Success      200     {array}  dto.SlaughterResponse
// @Router       /api/slaughters/search [get]
func (h *SlaughterHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.SearchByCowTag(c.UserContext(), c.Query("cowTag"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DateRange godoc
// @Summary      Faenas entre dos fechas (inclusivo)
// @Tags         slaughters
// @Produce      json
// @Param        startDate  query  string  true  "YYYY-MM-DD"
// @Param        endDate    query  string  true  "YYYY-MM-DD"
// @Success      200        {array}   dto.SlaughterResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/slaughters/date-range [get]
func (h *SlaughterHandler) DateRange(c *fiber.Ctx) error {
	out, err := h.uc.ListByDateRange(c.UserContext(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

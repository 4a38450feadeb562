package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Carnes-api/internal/application/dto"
	"github.com/jhoicas/Carnes-api/internal/application/sales"
)

// OrderHandler pedidos, su estado y clientes derivados.
type OrderHandler struct {
	uc  *sales.OrderUseCase
	val *Validator
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *sales.OrderUseCase, val *Validator) *OrderHandler {
	return &OrderHandler{uc: uc, val: val}
}

// Create godoc
// @Summary      Crear pedido (precio del lote o producto) y reservar peso
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderRequest  true  "Pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.OrderRequest
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
// @Summary      Reemplazar pedido y líneas
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.OrderRequest  true  "Pedido"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.OrderRequest
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

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Description  Acepta ?status= o un cuerpo {"status": "..."}.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id      path   string  true   "ID del pedido"
// @Param        status  query  string  false  "Nuevo estado"
// @Success      200     {object}  dto.OrderResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	in := dto.UpdateOrderStatusRequest{Status: c.Query("status")}
	if in.Status == "" && len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "cuerpo inválido")
		}
	}
	if err := h.val.Struct(&in); err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), id, in.Status)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pedido (libera reservas)
// @Tags         orders
// @Param        id   path  string  true  "ID del pedido"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
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
// @Summary      Obtener pedido
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar pedidos
// @Tags         orders
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar pedidos por cliente
// @Tags         orders
// @Produce      json
// @Param        customerName  query  string  true  "Subcadena del nombre"
// @Success      200           {array}  dto.OrderResponse
// @Router       /api/orders/search [get]
func (h *OrderHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), c.Query("customerName"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ByStatus godoc
// @Summary      Pedidos por estado
// @Tags         orders
// @Produce      json
// @Param        status  path  string  true  "PENDING | PROCESSING | COMPLETED | CANCELLED"
// @Success      200     {array}   dto.OrderResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/orders/status/{status} [get]
func (h *OrderHandler) ByStatus(c *fiber.Ctx) error {
	out, err := h.uc.ListByStatus(c.UserContext(), c.Params("status"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Customers godoc
// @Summary      Clientes únicos derivados de los pedidos
// @Tags         orders
// @Produce      json
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/orders/customers [get]
func (h *OrderHandler) Customers(c *fiber.Ctx) error {
	out, err := h.uc.ListCustomers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Carnes-api/internal/application/dto"
	"github.com/jhoicas/Carnes-api/internal/application/usecase"
	"github.com/jhoicas/Carnes-api/internal/domain"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	val *Validator
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, val *Validator) *ProductHandler {
	return &ProductHandler{uc: uc, val: val}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := h.val.bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateBulk godoc
// @Summary      Crear varios productos en una transacción
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.CreateProductRequest  true  "Productos"
// @Success      201   {array}   dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/bulk [post]
func (h *ProductHandler) CreateBulk(c *fiber.Ctx) error {
	var in []dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cuerpo inválido")
	}
	if len(in) == 0 {
		return domain.NewValidationError("body", "debe tener al menos 1 producto")
	}
	all := &domain.ValidationError{}
	for i := range in {
		var verr *domain.ValidationError
		if err := h.val.Struct(&in[i]); errors.As(err, &verr) {
			for _, f := range verr.Fields {
				all.Add(fmt.Sprintf("[%d].%s", i, f.Field), f.Message)
			}
		}
	}
	if err := all.OrNil(); err != nil {
		return err
	}
	out, err := h.uc.CreateBulk(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar productos por nombre
// @Tags         products
// @Produce      json
// @Param        name  query  string  true  "Subcadena del nombre"
// @Success      200   {array}  dto.ProductResponse
// @Router       /api/products/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), c.Query("name"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (nunca la cantidad)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
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
// @Summary      Eliminar producto
// @Tags         products
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListWithStock godoc
// @Summary      Productos con stock disponible
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductWithStockResponse
// @Router       /api/products/with-stock [get]
func (h *ProductHandler) ListWithStock(c *fiber.Ctx) error {
	out, err := h.uc.ListWithStock(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetWithStock godoc
// @Summary      Producto con stock disponible
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductWithStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/with-stock [get]
func (h *ProductHandler) GetWithStock(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetWithStock(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AvailableStock godoc
// @Summary      Stock disponible de un producto
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.AvailableStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/available-stock [get]
func (h *ProductHandler) AvailableStock(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.AvailableStock(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SetManualStock godoc
// @Summary      Fijar la cantidad de un producto MANUAL
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.SetManualStockRequest  true  "Cantidad"
// @Success      200   {object}  dto.ProductWithStockResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/manual-stock [put]
func (h *ProductHandler) SetManualStock(c *fiber.Ctx) error {
	var in dto.SetManualStockRequest
	if err := h.val.bind(c, &in); err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.SetManualStock(c.UserContext(), id, in.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// InitDefaults godoc
// @Summary      Reemplazar el catálogo por los productos por defecto
// @Tags         admin
// @Produce      json
// @Success      200  {array}   dto.ProductResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/init-defaults [post]
func (h *ProductHandler) InitDefaults(c *fiber.Ctx) error {
	out, err := h.uc.InitDefaultProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// InitProducts godoc
// @Summary      Agregar los productos por defecto que faltan
// @Tags         admin
// @Produce      json
// @Param        overwrite  query  bool  false  "Sobrescribir los existentes con el mismo nombre"
// @Success      200        {array}   dto.ProductResponse
// @Router       /api/init/products [post]
func (h *ProductHandler) InitProducts(c *fiber.Ctx) error {
	out, err := h.uc.InitializeDefaultProducts(c.UserContext(), c.QueryBool("overwrite"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ClearProducts godoc
// @Summary      Vaciar el catálogo de productos
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.CountResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/init/products/clear [delete]
func (h *ProductHandler) ClearProducts(c *fiber.Ctx) error {
	n, err := h.uc.ClearProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.CountResponse{Count: n})
}

// DefaultCatalogue godoc
// @Summary      Catálogo por defecto (sin persistir)
// @Tags         admin
// @Produce      json
// @Success      200  {array}  dto.CreateProductRequest
// @Router       /api/init/products/default [get]
func (h *ProductHandler) DefaultCatalogue(c *fiber.Ctx) error {
	return c.JSON(usecase.DefaultProducts())
}

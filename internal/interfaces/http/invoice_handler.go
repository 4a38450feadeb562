package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Carnes-api/internal/application/billing"
	"github.com/jhoicas/Carnes-api/internal/application/dto"
)

// InvoiceHandler facturas y sus PDF.
type InvoiceHandler struct {
	uc  *billing.InvoiceUseCase
	pdf *billing.PDFUseCase
	val *Validator
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase, val *Validator) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf, val: val}
}

// Create godoc
// @Summary      Facturar un pedido
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := h.val.bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateFromOrder godoc
// @Summary      Facturar un pedido con fechas por defecto
// @Tags         invoices
// @Produce      json
// @Param        orderId  path  string  true  "ID del pedido"
// @Success      201      {object}  dto.InvoiceResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /api/invoices/from-order/{orderId} [post]
func (h *InvoiceHandler) CreateFromOrder(c *fiber.Ctx) error {
	orderID, err := idParam(c, "orderId")
	if err != nil {
		return err
	}
	out, err := h.uc.CreateFromOrder(c.UserContext(), orderID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar factura (recalcula impuesto y total)
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la factura"
// @Param        body  body  dto.UpdateInvoiceRequest  true  "Campos a editar"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
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
// @Summary      Eliminar factura
// @Tags         invoices
// @Param        id   path  string  true  "ID de la factura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
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
// @Summary      Obtener factura con su pedido
// @Tags         invoices
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
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

// GetByNumber godoc
// @Summary      Obtener factura por número
// @Tags         invoices
// @Produce      json
// @Param        number  path  string  true  "Número de factura"
// @Success      200     {object}  dto.InvoiceResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/invoices/number/{number} [get]
func (h *InvoiceHandler) GetByNumber(c *fiber.Ctx) error {
	out, err := h.uc.GetByNumber(c.UserContext(), c.Params("number"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByOrder godoc
// @Summary      Factura de un pedido
// @Tags         invoices
// @Produce      json
// @Param        orderId  path  string  true  "ID del pedido"
// @Success      200      {object}  dto.InvoiceResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/invoices/by-order/{orderId} [get]
func (h *InvoiceHandler) GetByOrder(c *fiber.Ctx) error {
	orderID, err := idParam(c, "orderId")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByOrder(c.UserContext(), orderID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar comprobante PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	data, filename, err := h.pdf.InvoicePDF(c.UserContext(), id)
	if err != nil {
		return err
	}
	return sendPDF(c, data, filename)
}

// BatchPDF godoc
// @Summary      Varios comprobantes en un único PDF
// @Tags         invoices
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.BatchPDFRequest  true  "IDs de factura"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/batch/pdf [post]
func (h *InvoiceHandler) BatchPDF(c *fiber.Ctx) error {
	var in dto.BatchPDFRequest
	if err := h.val.bind(c, &in); err != nil {
		return err
	}
	data, filename, err := h.pdf.BatchPDF(c.UserContext(), in.InvoiceIDs)
	if err != nil {
		return err
	}
	return sendPDF(c, data, filename)
}

func sendPDF(c *fiber.Ctx, data []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

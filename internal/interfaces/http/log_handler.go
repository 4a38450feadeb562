package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Carnes-api/internal/application/dto"
	"github.com/jhoicas/Carnes-api/internal/domain"
	"github.com/jhoicas/Carnes-api/pkg/logger"
)

const defaultLogLimit = 100

// LogHandler lectura del buffer de logs en memoria.
type LogHandler struct {
	buf *logger.RingBuffer
}

// NewLogHandler construye el handler.
func NewLogHandler(buf *logger.RingBuffer) *LogHandler {
	return &LogHandler{buf: buf}
}

// Recent godoc
// @Summary      Últimos eventos de log (más reciente primero)
// @Tags         logs
// @Produce      json
// @Param        limit  query  int  false  "Máximo de eventos"  default(100)
// @Success      200    {array}  logger.Entry
// @Router       /api/logs [get]
func (h *LogHandler) Recent(c *fiber.Ctx) error {
	return c.JSON(h.buf.Recent(c.QueryInt("limit", defaultLogLimit)))
}

// ByLevel godoc
// @Summary      Eventos de un nivel
// @Tags         logs
// @Produce      json
// @Param        level  path   string  true   "debug | info | warn | error"
// @Param        limit  query  int     false  "Máximo de eventos"  default(100)
// @Success      200    {array}  logger.Entry
// @Router       /api/logs/level/{level} [get]
func (h *LogHandler) ByLevel(c *fiber.Ctx) error {
	return c.JSON(h.buf.ByLevel(c.Params("level"), c.QueryInt("limit", defaultLogLimit)))
}

// Since godoc
// @Summary      Eventos posteriores a un instante
// @Tags         logs
// @Produce      json
// @Param        timestamp  query  string  true  "RFC 3339 o YYYY-MM-DDTHH:MM:SS"
// @Success      200        {array}   logger.Entry
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/logs/since [get]
func (h *LogHandler) Since(c *fiber.Ctx) error {
	raw := c.Query("timestamp")
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.ParseInLocation("2006-01-02T15:04:05", raw, time.Local)
	}
	if err != nil {
		return domain.NewValidationError("timestamp", "formato esperado RFC 3339")
	}
	return c.JSON(h.buf.Since(t))
}

// Count godoc
// @Summary      Cantidad de eventos retenidos
// @Tags         logs
// @Produce      json
// @Success      200  {object}  dto.LogCountResponse
// @Router       /api/logs/count [get]
func (h *LogHandler) Count(c *fiber.Ctx) error {
	return c.JSON(dto.LogCountResponse{Count: h.buf.Count(), Capacity: h.buf.Capacity()})
}

// Clear godoc
// @Summary      Vaciar el buffer de logs
// @Tags         logs
// @Success      204
// @Router       /api/logs [delete]
func (h *LogHandler) Clear(c *fiber.Ctx) error {
	h.buf.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}

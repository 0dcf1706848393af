package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-core/internal/application/dto"
)

// AdvanceDate avanza el reloj lógico de la bodega.
func (h *WarehouseHandler) AdvanceDate(c *fiber.Ctx) error {
	var in dto.AdvanceDateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.wh.AdvanceDate(in.Days); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"date": h.wh.Date()})
}

// SaveState exporta el snapshot y lo persiste en el backend configurado.
func (h *WarehouseHandler) SaveState(c *fiber.Ctx) error {
	data, err := h.wh.Snapshot()
	if err != nil {
		return fail(c, err)
	}
	if err := h.store.Save(c.Context(), data); err != nil {
		return fail(c, err)
	}
	h.log.Info().Int("bytes", len(data)).Msg("estado guardado")
	return c.JSON(fiber.Map{"saved": true})
}

// LoadState restaura el estado desde el backend configurado.
func (h *WarehouseHandler) LoadState(c *fiber.Ctx) error {
	data, err := h.store.Load(c.Context())
	if err != nil {
		return fail(c, err)
	}
	if err := h.wh.Restore(data); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"loaded": true, "date": h.wh.Date()})
}

// ImportState ingiere registros de texto (PARTNER / BATCH_S / BATCH_M) del
// cuerpo de la petición, una línea por registro.
func (h *WarehouseHandler) ImportState(c *fiber.Ctx) error {
	if err := h.wh.ImportReader(bytes.NewReader(c.Body())); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"imported": true})
}

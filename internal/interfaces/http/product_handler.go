package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-core/internal/application/dto"
	"github.com/jhoicas/bodega-core/internal/domain/entity"
)

// ListProducts lista todos los productos en el orden canónico.
func (h *WarehouseHandler) ListProducts(c *fiber.Ctx) error {
	products := h.wh.Products()
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Render()
	}
	return c.JSON(fiber.Map{"products": out})
}

// ListBatches lista lotes vivos; admite como mucho un filtro:
// ?partner=id, ?product=id o ?max_price=n.
func (h *WarehouseHandler) ListBatches(c *fiber.Ctx) error {
	var (
		batches []*entity.Batch
		err     error
	)
	switch {
	case c.Query("partner") != "":
		batches, err = h.wh.BatchesByPartner(c.Query("partner"))
	case c.Query("product") != "":
		batches, err = h.wh.BatchesByProduct(c.Query("product"))
	case c.Query("max_price") != "":
		limit, perr := decimal.NewFromString(c.Query("max_price"))
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "max_price inválido"})
		}
		batches = h.wh.BatchesUnderPrice(limit)
	default:
		batches = h.wh.Batches()
	}
	if err != nil {
		return fail(c, err)
	}
	out := make([]string, len(batches))
	for i, b := range batches {
		out[i] = b.Render()
	}
	return c.JSON(fiber.Map{"batches": out})
}

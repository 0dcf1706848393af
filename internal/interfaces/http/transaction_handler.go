package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-core/internal/application/dto"
	"github.com/jhoicas/bodega-core/internal/domain/entity"
)

func (h *WarehouseHandler) txResponse(t entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:       t.ID(),
		Kind:     string(t.Kind()),
		Rendered: t.Render(h.wh.Date()),
	}
}

// RegisterSale registra una venta con pago diferido.
func (h *WarehouseHandler) RegisterSale(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	sale, err := h.wh.AttemptSale(in.PartnerID, in.ProductID, in.Amount, in.Deadline)
	if err != nil {
		return fail(c, err)
	}
	opRegistered.WithLabelValues("sale").Inc()
	return c.Status(fiber.StatusCreated).JSON(h.txResponse(sale))
}

// RegisterAcquisition registra una compra; si kind viene informado registra
// también el producto (simple o derivado) en la misma operación.
func (h *WarehouseHandler) RegisterAcquisition(c *fiber.Ctx) error {
	var in dto.AcquisitionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	price, err := decimal.NewFromString(in.Price)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "price inválido"})
	}

	var tx *entity.Acquisition
	switch in.Kind {
	case "":
		tx, err = h.wh.Acquire(in.PartnerID, in.ProductID, in.Amount, price)
	case "simple":
		tx, err = h.wh.AcquireNewSimple(in.PartnerID, in.ProductID, in.Amount, price)
	case "derivative":
		multiplier, merr := decimal.NewFromString(in.Multiplier)
		if merr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "multiplier inválido"})
		}
		recipe := make(entity.Recipe, 0, len(in.Recipe))
		for _, comp := range in.Recipe {
			recipe = append(recipe, entity.Component{ProductID: comp.ProductID, Quantity: comp.Quantity})
		}
		tx, err = h.wh.AcquireNewDerivative(in.PartnerID, in.ProductID, in.Amount, price, multiplier, recipe)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "kind inválido"})
	}
	if err != nil {
		return fail(c, err)
	}
	opRegistered.WithLabelValues("acquisition").Inc()
	return c.Status(fiber.StatusCreated).JSON(h.txResponse(tx))
}

// RegisterBreakdown registra una desagregación. Sobre un producto simple la
// operación es un no-op y responde 204.
func (h *WarehouseHandler) RegisterBreakdown(c *fiber.Ctx) error {
	var in dto.BreakdownRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	tx, err := h.wh.AttemptBreakdown(in.PartnerID, in.ProductID, in.Amount)
	if err != nil {
		return fail(c, err)
	}
	if tx == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	opRegistered.WithLabelValues("breakdown").Inc()
	return c.Status(fiber.StatusCreated).JSON(h.txResponse(tx))
}

// GetTransaction devuelve una transacción del libro mayor.
func (h *WarehouseHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	tx, err := h.wh.Transaction(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(h.txResponse(tx))
}

// PayTransaction liquida una transacción (idempotente).
func (h *WarehouseHandler) PayTransaction(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	tx, err := h.wh.Pay(id)
	if err != nil {
		return fail(c, err)
	}
	opRegistered.WithLabelValues("pay").Inc()
	return c.JSON(h.txResponse(tx))
}

// GetBalances devuelve fecha y saldos actuales.
func (h *WarehouseHandler) GetBalances(c *fiber.Ctx) error {
	return c.JSON(dto.BalancesResponse{
		Date:          h.wh.Date(),
		Available:     entity.RoundString(h.wh.AvailableBalance()),
		Contabilistic: entity.RoundString(h.wh.ContabilisticBalance()),
	})
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-core/internal/application/dto"
	"github.com/jhoicas/bodega-core/internal/application/warehouse"
	"github.com/jhoicas/bodega-core/internal/domain"
	"github.com/jhoicas/bodega-core/pkg/logger"
)

// WarehouseHandler maneja las peticiones HTTP del motor de inventario.
// La bodega es de un solo escritor: la serialización la hace el propio
// agregado con su mutex, así que los handlers pueden compartirla.
type WarehouseHandler struct {
	wh    *warehouse.Warehouse
	store warehouse.SnapshotStore
	log   *logger.Logger
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(wh *warehouse.Warehouse, store warehouse.SnapshotStore, log *logger.Logger) *WarehouseHandler {
	return &WarehouseHandler{wh: wh, store: store, log: log}
}

// fail traduce errores de dominio a códigos HTTP, a la manera del resto de
// la casa: centinelas con errors.Is, detalle tipado con errors.As.
func fail(c *fiber.Ctx, err error) error {
	var shortage *domain.StockShortageError
	switch {
	case errors.As(err, &shortage):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":       "INSUFFICIENT_STOCK",
			"message":    shortage.Error(),
			"product_id": shortage.ProductID,
			"requested":  shortage.Requested,
			"available":  shortage.Available,
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrBadEntry):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_ENTRY", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidDate), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

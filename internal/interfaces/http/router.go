package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/bodega-core/internal/application/warehouse"
	"github.com/jhoicas/bodega-core/pkg/logger"
)

// NewApp construye la aplicación Fiber con todas las rutas del motor.
func NewApp(appName string, wh *warehouse.Warehouse, store warehouse.SnapshotStore, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: appName,
	})

	app.Use(recover.New())
	app.Use(RequestLogger(log))

	h := NewWarehouseHandler(wh, store, log)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "date": wh.Date()})
	})

	api := app.Group("/api")

	api.Post("/partners", h.RegisterPartner)
	api.Get("/partners", h.ListPartners)
	api.Get("/partners/:id", h.ShowPartner)
	api.Get("/partners/:id/notifications", h.ListPartnerNotifications)
	api.Post("/partners/:id/notifications/toggle", h.ToggleNotifications)

	api.Get("/products", h.ListProducts)
	api.Get("/batches", h.ListBatches)

	api.Post("/transactions/sales", h.RegisterSale)
	api.Post("/transactions/acquisitions", h.RegisterAcquisition)
	api.Post("/transactions/breakdowns", h.RegisterBreakdown)
	api.Get("/transactions/:id", h.GetTransaction)
	api.Post("/transactions/:id/pay", h.PayTransaction)

	api.Get("/balances", h.GetBalances)
	api.Post("/date/advance", h.AdvanceDate)

	api.Post("/state/save", h.SaveState)
	api.Post("/state/load", h.LoadState)
	api.Post("/state/import", h.ImportState)

	return app
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-core/internal/application/dto"
)

// RegisterPartner da de alta un socio.
func (h *WarehouseHandler) RegisterPartner(c *fiber.Ctx) error {
	var in dto.RegisterPartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	partner, err := h.wh.RegisterPartner(in.ID, in.Name, in.Address)
	if err != nil {
		return fail(c, err)
	}
	opRegistered.WithLabelValues("register_partner").Inc()
	return c.Status(fiber.StatusCreated).JSON(dto.PartnerResponse{Rendered: partner.Render()})
}

// ListPartners lista todos los socios en el orden canónico.
func (h *WarehouseHandler) ListPartners(c *fiber.Ctx) error {
	partners := h.wh.Partners()
	out := make([]string, len(partners))
	for i, p := range partners {
		out[i] = p.Render()
	}
	return c.JSON(fiber.Map{"partners": out})
}

// ShowPartner muestra un socio y consume sus notificaciones pendientes.
func (h *WarehouseHandler) ShowPartner(c *fiber.Ctx) error {
	id := c.Params("id")
	partner, err := h.wh.Partner(id)
	if err != nil {
		return fail(c, err)
	}
	notifications, err := h.wh.ReadPartnerNotifications(id)
	if err != nil {
		return fail(c, err)
	}
	resp := dto.PartnerResponse{Rendered: partner.Render()}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, n.Render())
	}
	return c.JSON(resp)
}

// ListPartnerNotifications lista las notificaciones sin consumirlas;
// admite ?type=NEW|BARGAIN (vacío = todas).
func (h *WarehouseHandler) ListPartnerNotifications(c *fiber.Ctx) error {
	notifications, err := h.wh.PartnerNotifications(c.Params("id"), c.Query("type"))
	if err != nil {
		return fail(c, err)
	}
	out := make([]string, len(notifications))
	for i, n := range notifications {
		out[i] = n.Render()
	}
	return c.JSON(fiber.Map{"notifications": out})
}

// ToggleNotifications invierte el silenciado de un producto para el socio.
func (h *WarehouseHandler) ToggleNotifications(c *fiber.Ctx) error {
	var in dto.ToggleNotificationsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	muted, err := h.wh.ToggleProductNotifications(c.Params("id"), in.ProductID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"muted": muted})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/dreamwall/internal/service"
	"github.com/maheshrc27/dreamwall/internal/transfer"
)

type SettingsHandler struct {
	s service.SettingsService
}

func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{s: service}
}

// GetSettingsInfo serves the public view: the settings document only.
func (h *SettingsHandler) GetSettingsInfo(c *fiber.Ctx) error {
	rec, err := h.s.Get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec.Settings)
}

func (h *SettingsHandler) GetAdminSettings(c *fiber.Ctx) error {
	rec, err := h.s.Get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var req transfer.SettingsUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	rec, err := h.s.Update(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Settings updated successfully",
		"settings": rec,
	})
}

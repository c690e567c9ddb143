package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/dreamwall/internal/service"
	"github.com/maheshrc27/dreamwall/internal/transfer"
)

type ReportHandler struct {
	s service.ReportService
}

func NewReportHandler(service service.ReportService) *ReportHandler {
	return &ReportHandler{s: service}
}

func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	var req transfer.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.s.Submit(c.UserContext(), GetUser(c).ID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Report submitted successfully",
		"report":  report,
	})
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	reports, pagination, err := h.s.List(c.UserContext(), c.Query("status"), resolvePaging(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"reports":    reports,
		"pagination": pagination,
	})
}

func (h *ReportHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid report id")
	}

	var req transfer.ReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.s.UpdateStatus(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Report status updated successfully",
		"report":  report,
	})
}

func (h *ReportHandler) Remove(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid report id")
	}

	if err := h.s.Remove(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Report deleted successfully",
	})
}

func (h *ReportHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.s.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

package handlers

import (
	"errors"
	"strconv"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/dreamwall/internal/api/middleware"
	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/service"
	"github.com/maheshrc27/dreamwall/pkg/logger"
	"go.uber.org/zap"
)

func GetUser(c *fiber.Ctx) *models.User {
	return middleware.CurrentUser(c)
}

var statusByKind = []struct {
	kind   error
	status int
}{
	{service.ErrNotFound, fiber.StatusNotFound},
	{service.ErrInvalidInput, fiber.StatusBadRequest},
	{service.ErrUnauthorized, fiber.StatusUnauthorized},
	{service.ErrForbidden, fiber.StatusForbidden},
	{service.ErrConflict, fiber.StatusConflict},
}

// respondError maps service errors to their status. Anything unexpected is
// logged, reported and hidden behind a generic message.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range statusByKind {
		if errors.Is(err, m.kind) {
			return c.Status(m.status).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	logger.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Any("request_id", c.Locals(middleware.RequestIDKey)),
		zap.Error(err))
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Server error",
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

func parseID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func resolvePaging(c *fiber.Ctx) models.Paging {
	return models.NewPaging(c.QueryInt("page", 1), c.QueryInt("limit", 0))
}

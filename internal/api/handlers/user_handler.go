package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/dreamwall/internal/service"
	"github.com/maheshrc27/dreamwall/internal/transfer"
)

type UserHandler struct {
	s service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{s: service}
}

func (h *UserHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.s.Stats(c.UserContext(), GetUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req transfer.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.s.UpdateProfile(c.UserContext(), GetUser(c).ID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) GetUserInfo(c *fiber.Ctx) error {
	id, ok := parseID(c, "userId")
	if !ok {
		return badRequest(c, "Invalid user id")
	}

	user, err := h.s.GetUser(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) ListPosts(c *fiber.Ctx) error {
	id, ok := parseID(c, "userId")
	if !ok {
		return badRequest(c, "Invalid user id")
	}

	list, err := h.s.ListPosts(c.UserContext(), id, resolvePaging(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

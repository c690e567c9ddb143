package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/dreamwall/internal/service"
	"github.com/maheshrc27/dreamwall/internal/transfer"
)

type AuthHandler struct {
	s service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{s: service}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req transfer.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	res, err := h.s.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req transfer.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	res, err := h.s.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(GetUser(c))
}

// CreateAdmin promotes an existing user. Only mounted with dev routes on.
func (h *AuthHandler) CreateAdmin(c *fiber.Ctx) error {
	var req transfer.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := transfer.Validate(req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.s.PromoteAdmin(c.UserContext(), req.PhoneNumber)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Admin user created successfully",
		"user":    user,
	})
}

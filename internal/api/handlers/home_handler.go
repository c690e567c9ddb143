package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/dreamwall/internal/service"
)

type HomeHandler struct {
	s  service.HomeService
	ls service.LotteryService
}

func NewHomeHandler(service service.HomeService, lotteries service.LotteryService) *HomeHandler {
	return &HomeHandler{s: service, ls: lotteries}
}

func (h *HomeHandler) Feed(c *fiber.Ctx) error {
	feed, err := h.s.Feed(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feed)
}

func (h *HomeHandler) Featured(c *fiber.Ctx) error {
	posts, err := h.s.Featured(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

func (h *HomeHandler) Recent(c *fiber.Ctx) error {
	posts, err := h.s.Recent(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

func (h *HomeHandler) Keywords(c *fiber.Ctx) error {
	keywords, err := h.s.Keywords(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(keywords)
}

func (h *HomeHandler) Winners(c *fiber.Ctx) error {
	winners, err := h.ls.Winners(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(winners)
}

func (h *HomeHandler) CurrentLottery(c *fiber.Ctx) error {
	lottery, err := h.ls.Current(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lottery)
}

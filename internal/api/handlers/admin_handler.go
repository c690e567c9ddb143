package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/dreamwall/internal/repository"
	"github.com/maheshrc27/dreamwall/internal/service"
	"github.com/maheshrc27/dreamwall/internal/transfer"
)

type AdminHandler struct {
	s  service.AdminService
	ps service.PostService
	hs service.HomeService
	ks service.KeywordService
	ls service.LotteryService
}

func NewAdminHandler(
	service service.AdminService,
	posts service.PostService,
	home service.HomeService,
	keywords service.KeywordService,
	lotteries service.LotteryService) *AdminHandler {
	return &AdminHandler{s: service, ps: posts, hs: home, ks: keywords, ls: lotteries}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.s.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

func (h *AdminHandler) ListPosts(c *fiber.Ctx) error {
	f := repository.PostFilter{Status: c.Query("status"), Search: c.Query("search")}
	list, err := h.s.ListPosts(c.UserContext(), f, resolvePaging(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func (h *AdminHandler) UpdatePost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post id")
	}

	var req transfer.AdminPostUpdate
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	post, err := h.s.UpdatePost(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	h.hs.Invalidate(c.UserContext())
	return c.JSON(post)
}

func (h *AdminHandler) RemovePost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post id")
	}

	if err := h.ps.Delete(c.UserContext(), GetUser(c), id); err != nil {
		return respondError(c, err)
	}
	h.hs.Invalidate(c.UserContext())
	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	f := repository.UserFilter{Search: c.Query("search"), Role: c.Query("role"), Status: c.Query("status")}
	users, pagination, err := h.s.ListUsers(c.UserContext(), f, resolvePaging(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"users":      users,
		"pagination": pagination,
	})
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user id")
	}

	var req transfer.AdminUserUpdate
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.s.UpdateUser(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *AdminHandler) RemoveUser(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user id")
	}

	if err := h.s.RemoveUser(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}

func (h *AdminHandler) ListComments(c *fiber.Ctx) error {
	f := repository.CommentFilter{
		PostID: int64(c.QueryInt("postId", 0)),
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	comments, pagination, err := h.s.ListComments(c.UserContext(), f, resolvePaging(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"comments":   comments,
		"pagination": pagination,
	})
}

func (h *AdminHandler) UpdateComment(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid comment id")
	}

	var req transfer.AdminCommentUpdate
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.s.UpdateComment(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

func (h *AdminHandler) RemoveComment(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid comment id")
	}

	if err := h.s.RemoveComment(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Comment deleted successfully",
	})
}

func (h *AdminHandler) ListKeywords(c *fiber.Ctx) error {
	keywords, err := h.ks.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(keywords)
}

func (h *AdminHandler) CreateKeyword(c *fiber.Ctx) error {
	var req transfer.KeywordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	keyword, err := h.ks.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(keyword)
}

func (h *AdminHandler) UpdateKeyword(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid keyword id")
	}

	var req transfer.KeywordUpdate
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.ks.Update(c.UserContext(), id, req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Keyword updated successfully",
	})
}

func (h *AdminHandler) RemoveKeyword(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid keyword id")
	}

	if err := h.ks.Remove(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Keyword deleted successfully",
	})
}

func (h *AdminHandler) ListLotteries(c *fiber.Ctx) error {
	lotteries, err := h.ls.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lotteries)
}

func (h *AdminHandler) CreateLottery(c *fiber.Ctx) error {
	var req transfer.LotteryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	lottery, err := h.ls.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lottery)
}

func (h *AdminHandler) UpdateLottery(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid lottery id")
	}

	var req transfer.LotteryUpdate
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	lottery, err := h.ls.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lottery)
}

func (h *AdminHandler) RemoveLottery(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid lottery id")
	}

	if err := h.ls.Remove(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Lottery deleted successfully",
	})
}

func (h *AdminHandler) DrawLottery(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid lottery id")
	}

	res, err := h.ls.Draw(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

func (h *AdminHandler) Winners(c *fiber.Ctx) error {
	winners, err := h.ls.Winners(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(winners)
}

package handlers

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/dreamwall/internal/service"
	"github.com/maheshrc27/dreamwall/internal/transfer"
)

type PostHandler struct {
	s  service.PostService
	ls service.LikeService
	cs service.CommentService
}

func NewPostHandler(service service.PostService, likes service.LikeService, comments service.CommentService) *PostHandler {
	return &PostHandler{s: service, ls: likes, cs: comments}
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	list, err := h.s.List(c.UserContext(), c.Query("search"), resolvePaging(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func (h *PostHandler) MyPosts(c *fiber.Ctx) error {
	list, err := h.s.MyPosts(c.UserContext(), GetUser(c).ID, resolvePaging(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post id")
	}

	post, err := h.s.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) Featured(c *fiber.Ctx) error {
	posts, err := h.s.Featured(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

func (h *PostHandler) TrendingByLikes(c *fiber.Ctx) error {
	posts, err := h.s.TrendingByLikes(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

func (h *PostHandler) TrendingByShares(c *fiber.Ctx) error {
	posts, err := h.s.TrendingByShares(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var req transfer.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	post, err := h.s.Create(c.UserContext(), GetUser(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// CreateWithAccount takes a multipart form: title, description, content,
// contactInfo (JSON) and up to five images.
func (h *PostHandler) CreateWithAccount(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "Unable to parse form")
	}

	req := transfer.CreateWithAccountRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Content:     c.FormValue("content"),
	}
	if raw := c.FormValue("contactInfo"); raw != "" {
		if err := sonic.UnmarshalString(raw, &req.Contact); err != nil {
			return badRequest(c, "Invalid contact information")
		}
	}

	res, err := h.s.CreateWithAccount(c.UserContext(), req, form.File["images"])
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post id")
	}

	var req transfer.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	post, err := h.s.Update(c.UserContext(), GetUser(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post id")
	}

	if err := h.s.Delete(c.UserContext(), GetUser(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}

func (h *PostHandler) LikeStatus(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post id")
	}

	liked, err := h.ls.Status(c.UserContext(), GetUser(c).ID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"isLiked": liked})
}

func (h *PostHandler) ToggleLike(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post id")
	}

	res, err := h.ls.Toggle(c.UserContext(), GetUser(c).ID, id)
	if err != nil {
		return respondError(c, err)
	}

	message := "Post unliked"
	if res.Liked {
		message = "Post liked"
	}
	return c.JSON(fiber.Map{
		"message": message,
		"isLiked": res.Liked,
		"likes":   res.Likes,
	})
}

func (h *PostHandler) Share(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post id")
	}

	shares, err := h.s.Share(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"shares": shares})
}

func (h *PostHandler) ListComments(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post id")
	}

	comments, err := h.cs.ListByPost(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// AddComment accepts signed-in users and named guests.
func (h *PostHandler) AddComment(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "Invalid post id")
	}

	var req transfer.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.cs.Add(c.UserContext(), id, GetUser(c), req, c.IP())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

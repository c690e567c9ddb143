package handlers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/dreamwall/internal/service"
)

type UploadHandler struct {
	s service.MediaService
}

func NewUploadHandler(service service.MediaService) *UploadHandler {
	return &UploadHandler{s: service}
}

func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "No image file provided")
	}

	img, err := h.s.Upload(c.UserContext(), fh)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"image":   img,
	})
}

func (h *UploadHandler) UploadImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "No image files provided")
	}

	images, err := h.s.UploadMany(c.UserContext(), form.File["images"])
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"images":  images,
	})
}

// DeleteImage takes the public id from the wildcard so ids containing the
// folder separator work unescaped.
func (h *UploadHandler) DeleteImage(c *fiber.Ctx) error {
	publicID, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return badRequest(c, "Invalid public id")
	}

	if err := h.s.Delete(c.UserContext(), publicID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Image deleted successfully",
	})
}

func (h *UploadHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Upload service is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

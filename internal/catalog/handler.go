package catalog

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/catalog", h.getCatalog)
}

func (h *Handler) getCatalog(c *fiber.Ctx) error {
	return c.JSON(Options())
}

package search

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/search", h.search)
}

func (h *Handler) search(c *fiber.Ctx) error {
	f := Filters{
		Text:         c.Query("q"),
		PropertyType: c.Query("propertyType", AnyOption),
		ListingType:  c.Query("listingType", AnyOption),
	}

	props, err := h.service.Search(c.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("search failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "Something went wrong. Please try again."})
	}
	return c.JSON(props)
}

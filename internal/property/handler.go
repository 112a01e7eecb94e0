package property

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/makaziyangu/makazi-backend/internal/gateway"
	"github.com/makaziyangu/makazi-backend/internal/user"
)

// genericFailure is the dialog text shown for gateway I/O errors; the
// underlying error is logged, not surfaced.
const genericFailure = "Something went wrong. Please try again."

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Public reads: browsing is allowed without an account.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/properties", h.listProperties)
	app.Get("/api/v1/properties/featured", h.featuredProperties)
	app.Get("/api/v1/property/:id", h.getProperty)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/my-listings", h.myListings)
	app.Put("/api/v1/property/:id", h.updateProperty)
	app.Delete("/api/v1/property/:id", h.deleteProperty)
}

func (h *Handler) listProperties(c *fiber.Ctx) error {
	props, err := h.service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("listing properties failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": genericFailure})
	}
	return c.JSON(props)
}

func (h *Handler) featuredProperties(c *fiber.Ctx) error {
	props, err := h.service.Featured(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("fetching featured properties failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": genericFailure})
	}
	return c.JSON(props)
}

func (h *Handler) getProperty(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Property not found"})
		}
		log.Error().Err(err).Str("id", c.Params("id")).Msg("fetching property failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": genericFailure})
	}
	return c.JSON(p)
}

func (h *Handler) myListings(c *fiber.Ctx) error {
	uid, err := user.GetUIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	props, err := h.service.ByAgent(c.Context(), uid)
	if err != nil {
		log.Error().Err(err).Str("agent", uid).Msg("fetching my listings failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": genericFailure})
	}
	return c.JSON(props)
}

// updateRequest carries the editable property fields. Pointers distinguish
// "not sent" from zero values so partial updates work.
type updateRequest struct {
	Title        *string   `json:"title"`
	PropertyType *string   `json:"propertyType"`
	ListingType  *string   `json:"listingType"`
	Price        *string   `json:"price"`
	Location     *string   `json:"location"`
	Bedrooms     *int      `json:"bedrooms"`
	Bathrooms    *int      `json:"bathrooms"`
	Description  *string   `json:"description"`
	Amenities    *[]string `json:"amenities"`
}

func (h *Handler) updateProperty(c *fiber.Ctx) error {
	uid, err := user.GetUIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id := c.Params("id")
	existing, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Property not found"})
		}
		log.Error().Err(err).Str("id", id).Msg("fetching property for update failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": genericFailure})
	}
	if existing.AgentID != uid {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "You are not authorized to update this property"})
	}

	payload := new(updateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updates := gateway.Fields{}
	if payload.Title != nil {
		updates["title"] = *payload.Title
	}
	if payload.PropertyType != nil {
		updates["propertyType"] = *payload.PropertyType
	}
	if payload.ListingType != nil {
		updates["listingType"] = strings.ToLower(*payload.ListingType)
	}
	if payload.Price != nil {
		updates["price"] = *payload.Price
	}
	if payload.Location != nil {
		updates["location"] = *payload.Location
	}
	if payload.Bedrooms != nil {
		updates["bedrooms"] = *payload.Bedrooms
	}
	if payload.Bathrooms != nil {
		updates["bathrooms"] = *payload.Bathrooms
	}
	if payload.Description != nil {
		updates["description"] = *payload.Description
	}
	if payload.Amenities != nil {
		updates["amenities"] = *payload.Amenities
	}
	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "nothing to update"})
	}

	if err := h.service.Update(c.Context(), id, updates); err != nil {
		log.Error().Err(err).Str("id", id).Msg("updating property failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": genericFailure})
	}

	updated, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("re-reading updated property failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": genericFailure})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProperty(c *fiber.Ctx) error {
	uid, err := user.GetUIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id := c.Params("id")
	existing, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Property not found"})
		}
		log.Error().Err(err).Str("id", id).Msg("fetching property for delete failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": genericFailure})
	}
	if existing.AgentID != uid {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "You are not authorized to delete this property"})
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("deleting property failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": genericFailure})
	}
	return c.JSON(fiber.Map{"message": "Property deleted"})
}

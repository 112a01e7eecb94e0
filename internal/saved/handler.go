package saved

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/makaziyangu/makazi-backend/internal/user"
)

const genericFailure = "Something went wrong. Please try again."

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/saved", h.listSaved)
	app.Get("/api/v1/saved/ids", h.savedIDs)
	app.Post("/api/v1/saved/:propertyId", h.saveProperty)
	app.Delete("/api/v1/saved/:propertyId", h.unsaveProperty)
}

func (h *Handler) listSaved(c *fiber.Ctx) error {
	uid, err := user.GetUIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	props, err := h.service.List(c.Context(), uid)
	if err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("listing saved properties failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": genericFailure})
	}
	return c.JSON(props)
}

func (h *Handler) savedIDs(c *fiber.Ctx) error {
	uid, err := user.GetUIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ids, err := h.service.IDs(c.Context(), uid)
	if err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("fetching saved ids failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": genericFailure})
	}
	return c.JSON(fiber.Map{"ids": ids})
}

func (h *Handler) saveProperty(c *fiber.Ctx) error {
	uid, err := user.GetUIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Save(c.Context(), uid, c.Params("propertyId")); err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("saving property failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": genericFailure})
	}
	return c.JSON(fiber.Map{"message": "Property saved"})
}

func (h *Handler) unsaveProperty(c *fiber.Ctx) error {
	uid, err := user.GetUIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Unsave(c.Context(), uid, c.Params("propertyId")); err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("removing saved property failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": genericFailure})
	}
	return c.JSON(fiber.Map{"message": "Property removed from saved"})
}

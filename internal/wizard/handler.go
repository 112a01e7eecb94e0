package wizard

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/makaziyangu/makazi-backend/internal/capture"
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
	app.Post("/api/v1/wizard/landlord", h.startLandlord)
	app.Get("/api/v1/wizard/landlord/:id", h.getLandlord)
	app.Put("/api/v1/wizard/landlord/:id/personal", h.putPersonalInfo)
	app.Post("/api/v1/wizard/landlord/:id/capture/:slot", h.captureLandlordPhoto)
	app.Post("/api/v1/wizard/landlord/:id/next", h.landlordNext)
	app.Post("/api/v1/wizard/landlord/:id/back", h.landlordBack)
	app.Post("/api/v1/wizard/landlord/:id/submit", h.submitLandlord)

	app.Post("/api/v1/wizard/listing", h.startListing)
	app.Get("/api/v1/wizard/listing/:id", h.getListing)
	app.Put("/api/v1/wizard/listing/:id/basic", h.putBasicInfo)
	app.Put("/api/v1/wizard/listing/:id/details", h.putDetails)
	app.Post("/api/v1/wizard/listing/:id/amenities/:name", h.toggleAmenity)
	app.Post("/api/v1/wizard/listing/:id/photos", h.captureListingPhoto)
	app.Delete("/api/v1/wizard/listing/:id/photos/:index", h.removeListingPhoto)
	app.Post("/api/v1/wizard/listing/:id/next", h.listingNext)
	app.Post("/api/v1/wizard/listing/:id/back", h.listingBack)
	app.Post("/api/v1/wizard/listing/:id/submit", h.submitListing)
}

func uidOr401(c *fiber.Ctx) (string, error) {
	uid, err := user.GetUIDFromCtx(c)
	if err != nil {
		return "", c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return uid, nil
}

func draftError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrDraftNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Draft not found"})
	}
	// validation alerts are shown to the user as written
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
}

func (h *Handler) startLandlord(c *fiber.Ctx) error {
	uid, err := uidOr401(c)
	if err != nil || uid == "" {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"draftId": h.service.StartLandlord(uid)})
}

func (h *Handler) getLandlord(c *fiber.Ctx) error {
	uid, err := uidOr401(c)
	if err != nil || uid == "" {
		return err
	}

	var snap LandlordFlow
	if err := h.service.WithLandlord(c.Params("id"), uid, func(flow *LandlordFlow) error {
		snap = flow.snapshot()
		return nil
	}); err != nil {
		return draftError(c, err)
	}
	return c.JSON(fiber.Map{"step": snap.Step(), "draft": snap})
}

func (h *Handler) putPersonalInfo(c *fiber.Ctx) error {
	uid, err := uidOr401(c)
	if err != nil || uid == "" {
		return err
	}

	payload := new(PersonalInfo)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var snap LandlordFlow
	if err := h.service.WithLandlord(c.Params("id"), uid, func(flow *LandlordFlow) error {
		flow.Personal = *payload
		snap = flow.snapshot()
		return nil
	}); err != nil {
		return draftError(c, err)
	}
	return c.JSON(fiber.Map{"step": snap.Step(), "draft": snap})
}

func (h *Handler) captureLandlordPhoto(c *fiber.Ctx) error {
	uid, err := uidOr401(c)
	if err != nil || uid == "" {
		return err
	}

	id := c.Params("id")
	slot := c.Params("slot")
	switch slot {
	case "idFront", "idBack", "license", "profilePhoto":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown photo slot"})
	}
	if len(c.Body()) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "missing image data"})
	}
	// reject missing drafts before the upload round trip
	if err := h.service.WithLandlord(id, uid, func(*LandlordFlow) error { return nil }); err != nil {
		return draftError(c, err)
	}

	url, err := h.service.CapturePhoto(c.Context(), slot, c.Body(), slot == "profilePhoto")
	if err != nil {
		log.Error().Err(err).Str("slot", slot).Msg("capturing wizard photo failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": genericFailure})
	}

	if err := h.service.WithLandlord(id, uid, func(flow *LandlordFlow) error {
		switch slot {
		case "idFront":
			flow.Docs.IDFront = url
		case "idBack":
			flow.Docs.IDBack = url
		case "license":
			flow.Docs.License = url
		case "profilePhoto":
			flow.ProfilePhoto = url
		}
		return nil
	}); err != nil {
		return draftError(c, err)
	}
	return c.JSON(fiber.Map{"url": url, "quality": capture.Quality})
}

func (h *Handler) landlordNext(c *fiber.Ctx) error {
	uid, err := uidOr401(c)
	if err != nil || uid == "" {
		return err
	}

	var step int
	if err := h.service.WithLandlord(c.Params("id"), uid, func(flow *LandlordFlow) error {
		if err := flow.Next(); err != nil {
			return err
		}
		step = flow.Step()
		return nil
	}); err != nil {
		return draftError(c, err)
	}
	return c.JSON(fiber.Map{"step": step})
}

func (h *Handler) landlordBack(c *fiber.Ctx) error {
	uid, err := uidOr401(c)
	if err != nil || uid == "" {
		return err
	}

	id := c.Params("id")
	var step int
	if err := h.service.WithLandlord(id, uid, func(flow *LandlordFlow) error {
		if err := flow.Back(); err != nil {
			return err
		}
		step = flow.Step()
		return nil
	}); err != nil {
		if errors.Is(err, ErrAlreadyFirstStep) {
			// backing out of the first step abandons the draft
			h.service.Discard(id)
			return c.JSON(fiber.Map{"discarded": true})
		}
		return draftError(c, err)
	}
	return c.JSON(fiber.Map{"step": step})
}

func (h *Handler) submitLandlord(c *fiber.Ctx) error {
	uid, err := uidOr401(c)
	if err != nil || uid == "" {
		return err
	}
	profile, err := h.service.SubmitLandlord(c.Context(), c.Params("id"), uid)
	if err != nil {
		if errors.Is(err, ErrDraftNotFound) || errors.Is(err, ErrMissingFields) ||
			errors.Is(err, ErrInvalidPhone) || errors.Is(err, ErrMissingIDPhotos) ||
			errors.Is(err, ErrMissingProfilePhoto) {
			return draftError(c, err)
		}
		log.Error().Err(err).Str("uid", uid).Msg("landlord registration failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": genericFailure})
	}
	return c.JSON(profile)
}

func (h *Handler) startListing(c *fiber.Ctx) error {
	uid, err := uidOr401(c)
	if err != nil || uid == "" {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"draftId": h.service.StartListing(uid)})
}

func (h *Handler) getListing(c *fiber.Ctx) error {
	uid, err := uidOr401(c)
	if err != nil || uid == "" {
		return err
	}

	var snap ListingFlow
	if err := h.service.WithListing(c.Params("id"), uid, func(flow *ListingFlow) error {
		snap = flow.snapshot()
		return nil
	}); err != nil {
		return draftError(c, err)
	}
	return c.JSON(fiber.Map{"step": snap.Step(), "draft": snap})
}

func (h *Handler) putBasicInfo(c *fiber.Ctx) error {
	uid, err := uidOr401(c)
	if err != nil || uid == "" {
		return err
	}

	payload := new(BasicInfo)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var snap ListingFlow
	if err := h.service.WithListing(c.Params("id"), uid, func(flow *ListingFlow) error {
		flow.Basic = *payload
		snap = flow.snapshot()
		return nil
	}); err != nil {
		return draftError(c, err)
	}
	return c.JSON(fiber.Map{"step": snap.Step(), "draft": snap})
}

func (h *Handler) putDetails(c *fiber.Ctx) error {
	uid, err := uidOr401(c)
	if err != nil || uid == "" {
		return err
	}

	payload := new(Details)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var snap ListingFlow
	if err := h.service.WithListing(c.Params("id"), uid, func(flow *ListingFlow) error {
		flow.Details = *payload
		snap = flow.snapshot()
		return nil
	}); err != nil {
		return draftError(c, err)
	}
	return c.JSON(fiber.Map{"step": snap.Step(), "draft": snap})
}

func (h *Handler) toggleAmenity(c *fiber.Ctx) error {
	uid, err := uidOr401(c)
	if err != nil || uid == "" {
		return err
	}

	var amenities []string
	if err := h.service.WithListing(c.Params("id"), uid, func(flow *ListingFlow) error {
		flow.ToggleAmenity(c.Params("name"))
		amenities = append([]string(nil), flow.Details.Amenities...)
		return nil
	}); err != nil {
		return draftError(c, err)
	}
	return c.JSON(fiber.Map{"amenities": amenities})
}

func (h *Handler) captureListingPhoto(c *fiber.Ctx) error {
	uid, err := uidOr401(c)
	if err != nil || uid == "" {
		return err
	}

	id := c.Params("id")
	if len(c.Body()) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "missing image data"})
	}
	// reject missing drafts before the upload round trip
	if err := h.service.WithListing(id, uid, func(*ListingFlow) error { return nil }); err != nil {
		return draftError(c, err)
	}

	url, err := h.service.CapturePhoto(c.Context(), "property", c.Body(), false)
	if err != nil {
		log.Error().Err(err).Msg("capturing listing photo failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": genericFailure})
	}

	var photos []string
	if err := h.service.WithListing(id, uid, func(flow *ListingFlow) error {
		if err := flow.AddPhoto(url); err != nil {
			return err
		}
		photos = append([]string(nil), flow.Photos...)
		return nil
	}); err != nil {
		return draftError(c, err)
	}
	return c.JSON(fiber.Map{"url": url, "photos": photos, "quality": capture.Quality})
}

func (h *Handler) removeListingPhoto(c *fiber.Ctx) error {
	uid, err := uidOr401(c)
	if err != nil || uid == "" {
		return err
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid photo index"})
	}

	var photos []string
	if err := h.service.WithListing(c.Params("id"), uid, func(flow *ListingFlow) error {
		flow.RemovePhoto(index)
		photos = append([]string(nil), flow.Photos...)
		return nil
	}); err != nil {
		return draftError(c, err)
	}
	return c.JSON(fiber.Map{"photos": photos})
}

func (h *Handler) listingNext(c *fiber.Ctx) error {
	uid, err := uidOr401(c)
	if err != nil || uid == "" {
		return err
	}

	var step int
	if err := h.service.WithListing(c.Params("id"), uid, func(flow *ListingFlow) error {
		if err := flow.Next(); err != nil {
			return err
		}
		step = flow.Step()
		return nil
	}); err != nil {
		return draftError(c, err)
	}
	return c.JSON(fiber.Map{"step": step})
}

func (h *Handler) listingBack(c *fiber.Ctx) error {
	uid, err := uidOr401(c)
	if err != nil || uid == "" {
		return err
	}

	id := c.Params("id")
	var step int
	if err := h.service.WithListing(id, uid, func(flow *ListingFlow) error {
		if err := flow.Back(); err != nil {
			return err
		}
		step = flow.Step()
		return nil
	}); err != nil {
		if errors.Is(err, ErrAlreadyFirstStep) {
			// backing out of the first step abandons the draft
			h.service.Discard(id)
			return c.JSON(fiber.Map{"discarded": true})
		}
		return draftError(c, err)
	}
	return c.JSON(fiber.Map{"step": step})
}

func (h *Handler) submitListing(c *fiber.Ctx) error {
	uid, err := uidOr401(c)
	if err != nil || uid == "" {
		return err
	}
	created, err := h.service.SubmitListing(c.Context(), c.Params("id"), uid)
	if err != nil {
		if errors.Is(err, ErrDraftNotFound) || errors.Is(err, ErrMissingFields) ||
			errors.Is(err, ErrMissingDescription) || errors.Is(err, ErrNoPhotos) {
			return draftError(c, err)
		}
		log.Error().Err(err).Str("uid", uid).Msg("publishing listing failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": genericFailure})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

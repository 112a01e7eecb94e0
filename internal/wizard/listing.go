package wizard

import (
	"errors"
	"strings"
	"time"

	"github.com/makaziyangu/makazi-backend/internal/property"
	"github.com/makaziyangu/makazi-backend/internal/user"
)

// Property listing steps.
const (
	ListingStepBasicInfo = iota
	ListingStepDetails
	ListingStepPhotos
	listingSteps
)

const maxListingPhotos = 5

// Room counters render as steppers, so out-of-range input is clamped
// rather than rejected.
const (
	minRooms = 1
	maxRooms = 20
)

func clampRooms(n int) int {
	if n < minRooms {
		return minRooms
	}
	if n > maxRooms {
		return maxRooms
	}
	return n
}

var (
	ErrMissingDescription = errors.New("Please add a description for your property")
	ErrNoPhotos           = errors.New("Please add at least one photo of your property")
	ErrTooManyPhotos      = errors.New("You can add up to 5 photos")
)

type BasicInfo struct {
	Title        string `json:"title" validate:"required"`
	PropertyType string `json:"propertyType" validate:"required"`
	ListingType  string `json:"listingType" validate:"required"`
	Price        string `json:"price" validate:"required"`
	Location     string `json:"location" validate:"required"`
}

type Details struct {
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Description string   `json:"description"`
	Amenities   []string `json:"amenities"`
}

// ListingFlow is the three step create-a-listing wizard.
type ListingFlow struct {
	stepper

	Basic   BasicInfo `json:"basic"`
	Details Details   `json:"details"`
	Photos  []string  `json:"photos"`
}

func NewListingFlow() *ListingFlow {
	return &ListingFlow{stepper: newStepper(listingSteps)}
}

// snapshot returns a copy safe to serialize after the draft lock is
// released.
func (f *ListingFlow) snapshot() ListingFlow {
	out := *f
	out.Photos = append([]string(nil), f.Photos...)
	out.Details.Amenities = append([]string(nil), f.Details.Amenities...)
	return out
}

func (f *ListingFlow) Next() error {
	return f.advance(f.validateStep)
}

func (f *ListingFlow) Back() error {
	return f.back()
}

func (f *ListingFlow) validateStep(step int) error {
	switch step {
	case ListingStepBasicInfo:
		if err := validate.Struct(f.Basic); err != nil {
			return ErrMissingFields
		}
	case ListingStepDetails:
		if strings.TrimSpace(f.Details.Description) == "" {
			return ErrMissingDescription
		}
	}
	return nil
}

func (f *ListingFlow) Validate() error {
	for step := 0; step < listingSteps; step++ {
		if err := f.validateStep(step); err != nil {
			return err
		}
	}
	if len(f.Photos) == 0 {
		return ErrNoPhotos
	}
	return nil
}

// ToggleAmenity adds the amenity if absent and removes it if present.
func (f *ListingFlow) ToggleAmenity(name string) {
	for i, a := range f.Details.Amenities {
		if a == name {
			f.Details.Amenities = append(f.Details.Amenities[:i], f.Details.Amenities[i+1:]...)
			return
		}
	}
	f.Details.Amenities = append(f.Details.Amenities, name)
}

func (f *ListingFlow) AddPhoto(url string) error {
	if len(f.Photos) >= maxListingPhotos {
		return ErrTooManyPhotos
	}
	f.Photos = append(f.Photos, url)
	return nil
}

func (f *ListingFlow) RemovePhoto(index int) {
	if index < 0 || index >= len(f.Photos) {
		return
	}
	f.Photos = append(f.Photos[:index], f.Photos[index+1:]...)
}

// BuildProperty canonicalizes the draft into a property document: the
// listing type is lowercased, the price gets the currency prefix, and
// the first photo becomes the card image.
func (f *ListingFlow) BuildProperty(agent user.Profile, now time.Time) property.Property {
	price := strings.TrimSpace(f.Basic.Price)
	if !strings.HasPrefix(price, "KSh ") {
		price = "KSh " + price
	}

	amenities := f.Details.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	return property.Property{
		Title:        f.Basic.Title,
		PropertyType: f.Basic.PropertyType,
		ListingType:  strings.ToLower(f.Basic.ListingType),
		Price:        price,
		Location:     f.Basic.Location,
		Bedrooms:     clampRooms(f.Details.Bedrooms),
		Bathrooms:    clampRooms(f.Details.Bathrooms),
		Description:  f.Details.Description,
		Amenities:    amenities,
		Image:        f.Photos[0],
		Photos:       f.Photos,
		Rating:       0,
		AgentID:      agent.UID,
		AgentName:    agent.Name,
		AgentPhone:   agent.Phone,
		CreatedAt:    now.UTC().Format(time.RFC3339),
	}
}

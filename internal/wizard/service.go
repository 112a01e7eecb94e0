package wizard

import (
	"context"
	"time"

	"github.com/makaziyangu/makazi-backend/internal/capture"
	"github.com/makaziyangu/makazi-backend/internal/gateway"
	"github.com/makaziyangu/makazi-backend/internal/property"
	"github.com/makaziyangu/makazi-backend/internal/user"
)

// Service runs the two wizards end to end: drafts live in the store,
// photos go through a camera session, and submission lands in the
// document store.
type Service struct {
	drafts     *Store
	users      *user.Service
	properties *property.Service
	images     capture.ImageStore
	now        func() time.Time
}

func NewService(drafts *Store, users *user.Service, properties *property.Service, images capture.ImageStore) *Service {
	return &Service{
		drafts:     drafts,
		users:      users,
		properties: properties,
		images:     images,
		now:        time.Now,
	}
}

func (s *Service) StartLandlord(uid string) string { return s.drafts.CreateLandlord(uid) }
func (s *Service) StartListing(uid string) string  { return s.drafts.CreateListing(uid) }

// WithLandlord runs fn against the draft under its lock; all draft
// reads and mutations go through here.
func (s *Service) WithLandlord(id, uid string, fn func(*LandlordFlow) error) error {
	return s.drafts.WithLandlord(id, uid, fn)
}

// WithListing is the listing-flow counterpart of WithLandlord.
func (s *Service) WithListing(id, uid string, fn func(*ListingFlow) error) error {
	return s.drafts.WithListing(id, uid, fn)
}

// Discard abandons a draft. Backing out of the first step lands here.
func (s *Service) Discard(id string) { s.drafts.Delete(id) }

// CapturePhoto runs a full camera session for one wizard slot and
// returns the stored image url. Selfie slots open on the front camera.
func (s *Service) CapturePhoto(ctx context.Context, slot string, frame []byte, selfie bool) (string, error) {
	session := capture.NewSession(s.images, selfie)
	if err := session.GrantPermission(); err != nil {
		return "", err
	}
	return session.Capture(ctx, frame, slot)
}

// SubmitLandlord validates the whole flow and merges the landlord
// fields into the user's profile.
func (s *Service) SubmitLandlord(ctx context.Context, id, uid string) (user.Profile, error) {
	var update gateway.Fields
	err := s.drafts.WithLandlord(id, uid, func(flow *LandlordFlow) error {
		if err := flow.Validate(); err != nil {
			return err
		}
		update = flow.ProfileUpdate()
		return nil
	})
	if err != nil {
		return user.Profile{}, err
	}

	profile, err := s.users.ApplyLandlord(ctx, uid, update)
	if err != nil {
		return user.Profile{}, err
	}
	s.drafts.Delete(id)
	return profile, nil
}

// SubmitListing validates the whole flow and publishes the property
// under the submitting user's agent details.
func (s *Service) SubmitListing(ctx context.Context, id, uid string) (property.Property, error) {
	profile, err := s.users.Profile(ctx, uid)
	if err != nil {
		return property.Property{}, err
	}

	var draft property.Property
	err = s.drafts.WithListing(id, uid, func(flow *ListingFlow) error {
		if err := flow.Validate(); err != nil {
			return err
		}
		draft = flow.BuildProperty(profile, s.now())
		return nil
	})
	if err != nil {
		return property.Property{}, err
	}

	created, err := s.properties.Create(ctx, draft)
	if err != nil {
		return property.Property{}, err
	}
	s.drafts.Delete(id)
	return created, nil
}

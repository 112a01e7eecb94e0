package wizard

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/makaziyangu/makazi-backend/internal/gateway"
	"github.com/makaziyangu/makazi-backend/internal/property"
	"github.com/makaziyangu/makazi-backend/internal/user"
)

type fakeImages struct{}

func (fakeImages) Store(ctx context.Context, frame []byte, name string) (string, error) {
	return "https://img.example.com/" + name + ".jpg", nil
}

func newTestService(t *testing.T) (*Service, *gateway.InMemoryStore, string) {
	t.Helper()
	ctx := context.Background()

	store := gateway.NewInMemoryStore()
	auth := gateway.NewInMemoryAuthenticator()
	users := user.NewService(auth, user.NewGatewayRepository(store))

	profile, err := users.Register(ctx, "amina@example.com", "secret123", "Amina Odhiambo")
	if err != nil {
		t.Fatalf("registering user: %v", err)
	}

	properties := property.NewService(property.NewGatewayRepository(store))
	svc := NewService(NewStore(), users, properties, fakeImages{})
	return svc, store, profile.UID
}

func completeLandlordDraft(t *testing.T, svc *Service, id, uid string) {
	t.Helper()
	ctx := context.Background()

	front, err := svc.CapturePhoto(ctx, "idFront", []byte("jpeg"), false)
	if err != nil {
		t.Fatalf("CapturePhoto idFront: %v", err)
	}
	back, err := svc.CapturePhoto(ctx, "idBack", []byte("jpeg"), false)
	if err != nil {
		t.Fatalf("CapturePhoto idBack: %v", err)
	}
	selfie, err := svc.CapturePhoto(ctx, "profilePhoto", []byte("jpeg"), true)
	if err != nil {
		t.Fatalf("CapturePhoto selfie: %v", err)
	}

	if err := svc.WithLandlord(id, uid, func(flow *LandlordFlow) error {
		flow.Personal = validPersonalInfo()
		flow.Docs.IDFront = front
		flow.Docs.IDBack = back
		flow.ProfilePhoto = selfie
		return nil
	}); err != nil {
		t.Fatalf("WithLandlord: %v", err)
	}
}

func TestSubmitLandlordUpgradesProfile(t *testing.T) {
	svc, _, uid := newTestService(t)
	ctx := context.Background()

	id := svc.StartLandlord(uid)
	completeLandlordDraft(t, svc, id, uid)

	var selfie string
	if err := svc.WithLandlord(id, uid, func(flow *LandlordFlow) error {
		selfie = flow.ProfilePhoto
		return nil
	}); err != nil {
		t.Fatalf("WithLandlord: %v", err)
	}

	profile, err := svc.SubmitLandlord(ctx, id, uid)
	if err != nil {
		t.Fatalf("SubmitLandlord: %v", err)
	}
	if !profile.IsLandlord {
		t.Errorf("profile not marked landlord")
	}
	if profile.Phone != "0712345678" {
		t.Errorf("phone = %q", profile.Phone)
	}
	if profile.Avatar != selfie {
		t.Errorf("avatar = %q, want captured selfie", profile.Avatar)
	}

	// draft is gone after submit
	err = svc.WithLandlord(id, uid, func(*LandlordFlow) error { return nil })
	if err != ErrDraftNotFound {
		t.Errorf("got %v, want ErrDraftNotFound", err)
	}
}

func TestSubmitLandlordResetsVerification(t *testing.T) {
	svc, store, uid := newTestService(t)
	ctx := context.Background()

	// an admin verified this landlord on a previous run
	err := store.Set(ctx, gateway.UsersCollection, uid, gateway.Fields{"isVerified": true}, true)
	if err != nil {
		t.Fatalf("seeding verified flag: %v", err)
	}

	id := svc.StartLandlord(uid)
	completeLandlordDraft(t, svc, id, uid)

	profile, err := svc.SubmitLandlord(ctx, id, uid)
	if err != nil {
		t.Fatalf("SubmitLandlord: %v", err)
	}
	if profile.IsVerified {
		t.Errorf("resubmission kept the verified flag, want it cleared for review")
	}
}

func TestSubmitListingPublishesProperty(t *testing.T) {
	svc, _, uid := newTestService(t)
	ctx := context.Background()

	id := svc.StartListing(uid)

	url, err := svc.CapturePhoto(ctx, "property", []byte("jpeg"), false)
	if err != nil {
		t.Fatalf("CapturePhoto: %v", err)
	}

	if err := svc.WithListing(id, uid, func(flow *ListingFlow) error {
		flow.Basic = validBasicInfo()
		flow.Details = Details{Bedrooms: 2, Bathrooms: 1, Description: "Bright two bedroom."}
		flow.ToggleAmenity("WiFi")
		return flow.AddPhoto(url)
	}); err != nil {
		t.Fatalf("WithListing: %v", err)
	}

	created, err := svc.SubmitListing(ctx, id, uid)
	if err != nil {
		t.Fatalf("SubmitListing: %v", err)
	}
	if created.ID == "" {
		t.Errorf("created property has no id")
	}
	if created.AgentID != uid {
		t.Errorf("agentId = %q, want %q", created.AgentID, uid)
	}
	if created.ListingType != "rent" {
		t.Errorf("listingType = %q", created.ListingType)
	}
	if created.Image != url {
		t.Errorf("image = %q, want first photo", created.Image)
	}
}

func TestSubmitListingRejectsIncompleteDraft(t *testing.T) {
	svc, _, uid := newTestService(t)
	ctx := context.Background()

	id := svc.StartListing(uid)
	if err := svc.WithListing(id, uid, func(flow *ListingFlow) error {
		flow.Basic = validBasicInfo()
		flow.Details.Description = "d"
		return nil
	}); err != nil {
		t.Fatalf("WithListing: %v", err)
	}

	if _, err := svc.SubmitListing(ctx, id, uid); err != ErrNoPhotos {
		t.Fatalf("got %v, want ErrNoPhotos", err)
	}

	// a rejected submit keeps the draft around
	err := svc.WithListing(id, uid, func(*ListingFlow) error { return nil })
	if err != nil {
		t.Errorf("draft discarded after failed submit: %v", err)
	}
}

func TestConcurrentDraftMutationsStayConsistent(t *testing.T) {
	svc, _, uid := newTestService(t)

	id := svc.StartListing(uid)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := svc.WithListing(id, uid, func(flow *ListingFlow) error {
				if err := flow.AddPhoto(fmt.Sprintf("p%02d.jpg", i)); err != nil && err != ErrTooManyPhotos {
					return err
				}
				flow.ToggleAmenity("WiFi")
				return nil
			})
			if err != nil {
				t.Errorf("WithListing: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if err := svc.WithListing(id, uid, func(flow *ListingFlow) error {
		if len(flow.Photos) != maxListingPhotos {
			t.Errorf("photos = %d, want %d", len(flow.Photos), maxListingPhotos)
		}
		for _, p := range flow.Photos {
			if p == "" {
				t.Errorf("empty photo url after concurrent writes")
			}
		}
		if n := len(flow.Details.Amenities); n > 1 {
			t.Errorf("amenities = %v, duplicate toggles", flow.Details.Amenities)
		}
		return nil
	}); err != nil {
		t.Fatalf("WithListing: %v", err)
	}
}

package search

import (
	"context"
	"testing"

	"github.com/makaziyangu/makazi-backend/internal/gateway"
	"github.com/makaziyangu/makazi-backend/internal/property"
)

var fixture = []property.Property{
	{ID: "p1", Title: "Sunny Westlands Apartment", PropertyType: "Apartment", ListingType: "rent", Location: "Westlands, Nairobi"},
	{ID: "p2", Title: "Karen Family House", PropertyType: "House", ListingType: "sale", Location: "Karen, Nairobi"},
	{ID: "p3", Title: "Kilimani Studio", PropertyType: "Studio", ListingType: "rent", Location: "Kilimani, Nairobi"},
	{ID: "p4", Title: "Westgate View Apartment", PropertyType: "Apartment", ListingType: "sale", Location: "Westlands, Nairobi"},
	{ID: "p5", Title: "Diani Beach Villa", PropertyType: "Villa", ListingType: "sale", Location: "Diani, Kwale"},
}

func ids(props []property.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.ID
	}
	return out
}

func TestApplyCombinesFacetsAndText(t *testing.T) {
	got := Apply(Filters{Text: "west", PropertyType: "Apartment", ListingType: AnyOption}, fixture)
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p4" {
		t.Fatalf("got %v, want [p1 p4]", ids(got))
	}
}

func TestApplyTextMatchesLocation(t *testing.T) {
	got := Apply(Filters{Text: "kwale"}, fixture)
	if len(got) != 1 || got[0].ID != "p5" {
		t.Fatalf("got %v, want [p5]", ids(got))
	}
}

func TestApplyListingTypeIsCaseInsensitive(t *testing.T) {
	got := Apply(Filters{ListingType: "Rent"}, fixture)
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p3" {
		t.Fatalf("got %v, want [p1 p3]", ids(got))
	}
}

func TestApplyAllFacetsMatchEverything(t *testing.T) {
	got := Apply(Filters{PropertyType: AnyOption, ListingType: AnyOption}, fixture)
	if len(got) != len(fixture) {
		t.Fatalf("got %d results, want %d", len(got), len(fixture))
	}
}

func TestApplyNoMatches(t *testing.T) {
	got := Apply(Filters{Text: "mombasa road"}, fixture)
	if len(got) != 0 {
		t.Fatalf("got %v, want empty", ids(got))
	}
}

func TestSearchWithoutCache(t *testing.T) {
	store := gateway.NewInMemoryStore()
	ctx := context.Background()
	for _, p := range fixture {
		if _, err := store.Create(ctx, gateway.PropertiesCollection, gateway.Fields{
			"title":        p.Title,
			"propertyType": p.PropertyType,
			"listingType":  p.ListingType,
			"location":     p.Location,
			"createdAt":    "2024-05-01T10:00:00Z",
		}); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	// nil cache means every search goes straight to the store
	svc := NewService(property.NewGatewayRepository(store), nil)
	got, err := svc.Search(ctx, Filters{PropertyType: "Apartment"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
}

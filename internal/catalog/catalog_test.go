package catalog

import "testing"

func TestOptionsAreCopies(t *testing.T) {
	a := Options()
	a.Amenities[0] = "mutated"

	b := Options()
	if b.Amenities[0] != "WiFi" {
		t.Fatalf("catalog options share backing arrays")
	}
}

func TestSearchCategoriesStartWithAll(t *testing.T) {
	c := Options()
	if c.SearchCategories[0] != "All" {
		t.Fatalf("first search category = %q, want All", c.SearchCategories[0])
	}
	if len(c.ListingTypes) != 2 {
		t.Fatalf("listing types = %v", c.ListingTypes)
	}
}

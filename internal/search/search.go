package search

import (
	"strings"

	"github.com/makaziyangu/makazi-backend/internal/property"
)

// AnyOption disables a facet so it matches every property.
const AnyOption = "All"

// Filters describes one search. Empty text and "All" facets mean
// unfiltered.
type Filters struct {
	Text         string `json:"text"`
	PropertyType string `json:"propertyType"`
	ListingType  string `json:"listingType"`
}

func (f Filters) matches(p property.Property) bool {
	if f.PropertyType != "" && f.PropertyType != AnyOption && p.PropertyType != f.PropertyType {
		return false
	}
	if f.ListingType != "" && f.ListingType != AnyOption &&
		p.ListingType != strings.ToLower(f.ListingType) {
		return false
	}
	if f.Text == "" {
		return true
	}
	needle := strings.ToLower(f.Text)
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Location), needle)
}

// Apply narrows props to the ones matching f, preserving order.
func Apply(f Filters, props []property.Property) []property.Property {
	out := make([]property.Property, 0, len(props))
	for _, p := range props {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

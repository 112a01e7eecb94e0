package catalog

// Catalog is the public DTO with the pick-lists the listing forms and
// search screen are built from.
// JSON tags follow the camelCase convention used elsewhere in the project.
type Catalog struct {
	PropertyTypes    []string `json:"propertyTypes"`
	SearchCategories []string `json:"searchCategories"`
	ListingTypes     []string `json:"listingTypes"`
	Amenities        []string `json:"amenities"`
}

var propertyTypes = []string{
	"Apartment", "House", "Villa", "Studio", "Condo", "Townhouse",
}

// search facets prepend the match-everything option and keep the list short
var searchCategories = []string{
	"All", "Apartment", "House", "Villa", "Studio", "Condo",
}

var listingTypes = []string{"Rent", "Sale"}

var amenities = []string{
	"WiFi", "Parking", "Security", "Water", "Generator", "Swimming Pool",
	"Gym", "CCTV", "Garden", "Balcony", "Furnished", "Air Conditioning",
}

// Options returns the full catalog. The lists are fixed, so callers get
// fresh copies they are free to mutate.
func Options() Catalog {
	return Catalog{
		PropertyTypes:    append([]string(nil), propertyTypes...),
		SearchCategories: append([]string(nil), searchCategories...),
		ListingTypes:     append([]string(nil), listingTypes...),
		Amenities:        append([]string(nil), amenities...),
	}
}

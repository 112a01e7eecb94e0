package property

import "github.com/makaziyangu/makazi-backend/internal/gateway"

// Listing types as stored. User-facing labels ("Rent"/"Sale") are lower-cased
// on write.
const (
	ListingRent = "rent"
	ListingSale = "sale"
)

// Property maps to a document in the properties collection. Field names and
// types must stay compatible with the stored schema.
type Property struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	PropertyType string   `json:"propertyType"`
	ListingType  string   `json:"listingType"`
	Price        string   `json:"price"`
	Location     string   `json:"location"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Description  string   `json:"description"`
	Amenities    []string `json:"amenities"`
	Image        string   `json:"image"`
	Photos       []string `json:"photos"`
	Rating       float64  `json:"rating"`
	AgentID      string   `json:"agentId"`
	AgentName    string   `json:"agentName"`
	AgentPhone   string   `json:"agentPhone"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt,omitempty"`
}

// DisplayPrice renders the price for listing cards. Rent listings carry a
// recurring-period suffix at render time only; it is never stored.
func (p Property) DisplayPrice() string {
	if p.ListingType == ListingRent {
		return p.Price + "/month"
	}
	return p.Price
}

func (p Property) fields() gateway.Fields {
	f := gateway.Fields{
		"title":        p.Title,
		"propertyType": p.PropertyType,
		"listingType":  p.ListingType,
		"price":        p.Price,
		"location":     p.Location,
		"bedrooms":     p.Bedrooms,
		"bathrooms":    p.Bathrooms,
		"description":  p.Description,
		"amenities":    p.Amenities,
		"image":        p.Image,
		"photos":       p.Photos,
		"rating":       p.Rating,
		"agentId":      p.AgentID,
		"agentName":    p.AgentName,
		"agentPhone":   p.AgentPhone,
		"createdAt":    p.CreatedAt,
	}
	if p.UpdatedAt != "" {
		f["updatedAt"] = p.UpdatedAt
	}
	return f
}

func fromFields(id string, f gateway.Fields) Property {
	return Property{
		ID:           id,
		Title:        gateway.StringField(f, "title"),
		PropertyType: gateway.StringField(f, "propertyType"),
		ListingType:  gateway.StringField(f, "listingType"),
		Price:        gateway.StringField(f, "price"),
		Location:     gateway.StringField(f, "location"),
		Bedrooms:     gateway.IntField(f, "bedrooms"),
		Bathrooms:    gateway.IntField(f, "bathrooms"),
		Description:  gateway.StringField(f, "description"),
		Amenities:    gateway.StringsField(f, "amenities"),
		Image:        gateway.StringField(f, "image"),
		Photos:       gateway.StringsField(f, "photos"),
		Rating:       gateway.FloatField(f, "rating"),
		AgentID:      gateway.StringField(f, "agentId"),
		AgentName:    gateway.StringField(f, "agentName"),
		AgentPhone:   gateway.StringField(f, "agentPhone"),
		CreatedAt:    gateway.StringField(f, "createdAt"),
		UpdatedAt:    gateway.StringField(f, "updatedAt"),
	}
}

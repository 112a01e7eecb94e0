package user

import (
	"net/url"

	"github.com/makaziyangu/makazi-backend/internal/gateway"
)

// Profile is the app's copy of a users/{uid} document. Field names match the
// stored document schema and must stay compatible with it.
type Profile struct {
	UID             string   `json:"uid"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone,omitempty"`
	IDNumber        string   `json:"idNumber,omitempty"`
	Address         string   `json:"address,omitempty"`
	IsLandlord      bool     `json:"isLandlord"`
	IsVerified      bool     `json:"isVerified"`
	Avatar          string   `json:"avatar,omitempty"`
	SavedProperties []string `json:"savedProperties,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

// AvatarURL builds the generated placeholder avatar used until the user
// uploads a real profile photo.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=0d2b1f&color=fff"
}

func (p Profile) fields() gateway.Fields {
	f := gateway.Fields{
		"uid":        p.UID,
		"name":       p.Name,
		"email":      p.Email,
		"isLandlord": p.IsLandlord,
		"isVerified": p.IsVerified,
		"createdAt":  p.CreatedAt,
		"avatar":     p.Avatar,
	}
	if p.Phone != "" {
		f["phone"] = p.Phone
	}
	if p.IDNumber != "" {
		f["idNumber"] = p.IDNumber
	}
	if p.Address != "" {
		f["address"] = p.Address
	}
	if len(p.SavedProperties) > 0 {
		f["savedProperties"] = p.SavedProperties
	}
	if p.UpdatedAt != "" {
		f["updatedAt"] = p.UpdatedAt
	}
	return f
}

func profileFromFields(uid string, f gateway.Fields) Profile {
	return Profile{
		UID:             uid,
		Name:            gateway.StringField(f, "name"),
		Email:           gateway.StringField(f, "email"),
		Phone:           gateway.StringField(f, "phone"),
		IDNumber:        gateway.StringField(f, "idNumber"),
		Address:         gateway.StringField(f, "address"),
		IsLandlord:      gateway.BoolField(f, "isLandlord"),
		IsVerified:      gateway.BoolField(f, "isVerified"),
		Avatar:          gateway.StringField(f, "avatar"),
		SavedProperties: gateway.StringsField(f, "savedProperties"),
		CreatedAt:       gateway.StringField(f, "createdAt"),
		UpdatedAt:       gateway.StringField(f, "updatedAt"),
	}
}

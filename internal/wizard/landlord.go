package wizard

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/makaziyangu/makazi-backend/internal/gateway"
	"github.com/makaziyangu/makazi-backend/internal/user"
)

// Landlord registration steps.
const (
	LandlordStepPersonalInfo = iota
	LandlordStepDocuments
	LandlordStepProfilePhoto
	landlordSteps
)

// Alert texts shown when a step is incomplete.
var (
	ErrMissingFields       = errors.New("Please fill in all required fields")
	ErrInvalidPhone        = errors.New("Please enter a valid phone number")
	ErrMissingIDPhotos     = errors.New("Please take photos of both sides of your ID")
	ErrMissingProfilePhoto = errors.New("Please take a profile photo")
)

var validate = validator.New()

type PersonalInfo struct {
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone" validate:"required,min=10"`
	IDNumber string `json:"idNumber" validate:"required"`
	Address  string `json:"address" validate:"required"`
}

// Documents holds urls of the captured verification photos. The
// business license is optional.
type Documents struct {
	IDFront string `json:"idFront"`
	IDBack  string `json:"idBack"`
	License string `json:"license,omitempty"`
}

// LandlordFlow is the three step become-a-landlord wizard.
type LandlordFlow struct {
	stepper

	Personal     PersonalInfo `json:"personal"`
	Docs         Documents    `json:"documents"`
	ProfilePhoto string       `json:"profilePhoto"`
}

func NewLandlordFlow() *LandlordFlow {
	return &LandlordFlow{stepper: newStepper(landlordSteps)}
}

// snapshot returns a copy safe to serialize after the draft lock is
// released. All fields are values, so a plain copy suffices.
func (f *LandlordFlow) snapshot() LandlordFlow {
	return *f
}

func (f *LandlordFlow) Next() error {
	return f.advance(f.validateStep)
}

func (f *LandlordFlow) Back() error {
	return f.back()
}

func (f *LandlordFlow) validateStep(step int) error {
	switch step {
	case LandlordStepPersonalInfo:
		if err := validate.Struct(f.Personal); err != nil {
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) {
				for _, fe := range fieldErrs {
					if fe.Field() == "Phone" && fe.Tag() == "min" {
						return ErrInvalidPhone
					}
				}
			}
			return ErrMissingFields
		}
	case LandlordStepDocuments:
		if f.Docs.IDFront == "" || f.Docs.IDBack == "" {
			return ErrMissingIDPhotos
		}
	}
	return nil
}

// Validate checks every step, used on final submission.
func (f *LandlordFlow) Validate() error {
	for step := 0; step < landlordSteps; step++ {
		if err := f.validateStep(step); err != nil {
			return err
		}
	}
	if f.ProfilePhoto == "" {
		return ErrMissingProfilePhoto
	}
	return nil
}

// ProfileUpdate builds the merge payload that upgrades the user's
// profile to a landlord account.
func (f *LandlordFlow) ProfileUpdate() gateway.Fields {
	avatar := f.ProfilePhoto
	if avatar == "" {
		avatar = user.AvatarURL(f.Personal.FullName)
	}
	// every submission puts the account back in the review queue, so the
	// verified flag resets even on a re-run
	fields := gateway.Fields{
		"name":       f.Personal.FullName,
		"phone":      f.Personal.Phone,
		"idNumber":   f.Personal.IDNumber,
		"address":    f.Personal.Address,
		"avatar":     avatar,
		"isLandlord": true,
		"isVerified": false,
	}
	if f.Docs.License != "" {
		fields["businessLicense"] = f.Docs.License
	}
	return fields
}

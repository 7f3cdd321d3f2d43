package dto

import (
	"time"

	"github.com/hari2128-cell/CureVox/internal/models"
)

// UpdateProfileRequest carries the editable profile fields. Pointers
// distinguish "not sent" from "clear this value".
type UpdateProfileRequest struct {
	Name                     *string  `json:"name" validate:"omitempty,max=120"`
	DateOfBirth              *string  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender                   *string  `json:"gender" validate:"omitempty,is-gender"`
	BloodGroup               *string  `json:"blood_group" validate:"omitempty,is-blood-group"`
	Height                   *float64 `json:"height" validate:"omitempty,gt=0,lt=300"`
	Weight                   *float64 `json:"weight" validate:"omitempty,gt=0,lt=700"`
	Allergies                *string  `json:"allergies" validate:"omitempty,max=2000"`
	ChronicConditions        *string  `json:"chronic_conditions" validate:"omitempty,max=2000"`
	CurrentMedications       *string  `json:"current_medications" validate:"omitempty,max=2000"`
	EmergencyContactName     *string  `json:"emergency_contact_name" validate:"omitempty,max=120"`
	EmergencyContactPhone    *string  `json:"emergency_contact_phone" validate:"omitempty,phone"`
	EmergencyContactRelation *string  `json:"emergency_contact_relation" validate:"omitempty,max=60"`
}

// ProfilePayload is the full profile returned from profile reads.
type ProfilePayload struct {
	UserPayload
	DateOfBirth              *time.Time `json:"date_of_birth,omitempty"`
	Gender                   string     `json:"gender,omitempty"`
	BloodGroup               string     `json:"blood_group,omitempty"`
	Height                   float64    `json:"height,omitempty"`
	Weight                   float64    `json:"weight,omitempty"`
	Allergies                string     `json:"allergies,omitempty"`
	ChronicConditions        string     `json:"chronic_conditions,omitempty"`
	CurrentMedications       string     `json:"current_medications,omitempty"`
	EmergencyContactName     string     `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone    string     `json:"emergency_contact_phone,omitempty"`
	EmergencyContactRelation string     `json:"emergency_contact_relation,omitempty"`
}

// NewUserPayload projects a user model for API responses.
func NewUserPayload(user *models.User) *UserPayload {
	return &UserPayload{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		IsVerified:  user.IsVerified,
		LastLogin:   user.LastLogin,
		CreatedAt:   user.CreatedAt,
	}
}

// NewProfilePayload projects the full profile for API responses.
func NewProfilePayload(user *models.User) *ProfilePayload {
	return &ProfilePayload{
		UserPayload:              *NewUserPayload(user),
		DateOfBirth:              user.DateOfBirth,
		Gender:                   user.Gender,
		BloodGroup:               user.BloodGroup,
		Height:                   user.Height,
		Weight:                   user.Weight,
		Allergies:                user.Allergies,
		ChronicConditions:        user.ChronicConditions,
		CurrentMedications:       user.CurrentMedications,
		EmergencyContactName:     user.EmergencyContactName,
		EmergencyContactPhone:    user.EmergencyContactPhone,
		EmergencyContactRelation: user.EmergencyContactRelation,
	}
}

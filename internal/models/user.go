package models

import "time"

// User maps an external identity to a local account. ExternalUID is set once
// at first login and never changes; email and phone are unique across users.
type User struct {
	BaseModel
	ExternalUID string `gorm:"size:128;uniqueIndex;not null" json:"-"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Email       string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PhoneNumber string `gorm:"size:20;uniqueIndex;not null" json:"phone_number"`

	// Profile
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      string     `gorm:"size:10" json:"gender,omitempty"` // male, female, other
	BloodGroup  string     `gorm:"size:5" json:"blood_group,omitempty"`
	Height      float64    `json:"height,omitempty"` // cm
	Weight      float64    `json:"weight,omitempty"` // kg

	// Medical
	Allergies          string `gorm:"type:text" json:"allergies,omitempty"`
	ChronicConditions  string `gorm:"type:text" json:"chronic_conditions,omitempty"`
	CurrentMedications string `gorm:"type:text" json:"current_medications,omitempty"`

	// Emergency contact
	EmergencyContactName     string `gorm:"size:100" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone    string `gorm:"size:20" json:"emergency_contact_phone,omitempty"`
	EmergencyContactRelation string `gorm:"size:50" json:"emergency_contact_relation,omitempty"`

	// Account status
	IsActive   bool       `gorm:"default:true" json:"is_active"`
	IsVerified bool       `gorm:"default:false" json:"is_verified"`
	LastLogin  *time.Time `json:"last_login,omitempty"`

	// Relations
	Sessions  []Session   `gorm:"foreignKey:UserID" json:"-"`
	Diagnoses []Diagnosis `gorm:"foreignKey:UserID" json:"-"`
}

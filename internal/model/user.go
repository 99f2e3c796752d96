package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is a registered platform member. Profile fields are optional.
type User struct {
	ID                       string                      `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name                     *string                     `json:"name,omitempty" gorm:"size:255"`
	Email                    string                      `json:"email" gorm:"uniqueIndex;size:255;not null"`
	EmailVerified            *time.Time                  `json:"emailVerified,omitempty"`
	Image                    *string                     `json:"image,omitempty" gorm:"size:1024"`
	Gender                   *string                     `json:"gender,omitempty" gorm:"size:50"`
	MaritalStatus            *string                     `json:"maritalStatus,omitempty" gorm:"size:50"`
	PreferredName            *string                     `json:"preferredName,omitempty" gorm:"size:255"`
	PreferredCommunication   *string                     `json:"preferredCommunication,omitempty" gorm:"size:50"`
	PreferredStartDate       *time.Time                  `json:"preferredStartDate,omitempty"`
	BirthYear                *int                        `json:"birthYear,omitempty"`
	ResidentialDistrict      *string                     `json:"residentialDistrict,omitempty" gorm:"size:255"`
	EmergencyContactName     *string                     `json:"emergencyContactName,omitempty" gorm:"size:255"`
	EmergencyContactRelation *string                     `json:"emergencyContactRelationship,omitempty" gorm:"size:100"`
	EmergencyContactPhone    *string                     `json:"emergencyContactPhone,omitempty" gorm:"size:50"`
	Roles                    datatypes.JSONSlice[string] `json:"roles"`
	CreatedAt                time.Time                   `json:"createdAt"`
	UpdatedAt                time.Time                   `json:"updatedAt"`

	// Relations
	Skills   []Skill   `json:"skills,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Accounts []Account `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Sessions []Session `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Events   []Event   `json:"events,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
}

// BeforeCreate assigns an id and an empty role list.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Roles == nil {
		u.Roles = datatypes.JSONSlice[string]{}
	}
	return nil
}

// HasRole reports whether role is present in the user's role set.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

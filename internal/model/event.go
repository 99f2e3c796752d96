package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is a volunteering activity organised by a user at a location.
type Event struct {
	ID              string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name            string         `json:"name" gorm:"size:255;not null"`
	Timestamp       time.Time      `json:"timestamp" gorm:"not null;index"`
	Duration        int            `json:"duration" gorm:"not null"`
	Details         string         `json:"details" gorm:"type:text;not null"`
	ApprovalStatus  ApprovalStatus `json:"approvalStatus" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Image           *string        `json:"image" gorm:"size:1024"`
	EventLocationID uint           `json:"eventLocationId" gorm:"not null;index"`
	UserID          string         `json:"userId" gorm:"type:varchar(36);not null;index"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`

	// Relations
	EventLocation *EventLocation      `json:"eventLocation,omitempty" gorm:"foreignKey:EventLocationID;constraint:OnDelete:RESTRICT"`
	User          *User               `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Tags          []EventTag          `json:"tags,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Registrations []EventRegistration `json:"registrations,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Metrics       []Metric            `json:"metrics,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:SET NULL"`
}

// BeforeCreate assigns an id and the initial PENDING status.
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.ApprovalStatus == "" {
		e.ApprovalStatus = ApprovalStatusPending
	}
	return nil
}

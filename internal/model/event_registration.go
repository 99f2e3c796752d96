package model

// EventRegistration records that a participant signed up for an event.
// (EventID, Participant) is the primary key; rows are never updated.
type EventRegistration struct {
	EventID     string `json:"eventId" gorm:"type:varchar(36);primaryKey"`
	Participant string `json:"participant" gorm:"type:varchar(36);primaryKey;index"`

	Event *Event `json:"event,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the plural aggregate name used by the API.
func (EventRegistration) TableName() string {
	return "event_registrations"
}

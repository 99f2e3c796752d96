package model

// EventTag is a free-text label on an event. (EventID, Name) is the primary key.
type EventTag struct {
	EventID string `json:"eventId" gorm:"type:varchar(36);primaryKey"`
	Name    string `json:"name" gorm:"size:191;primaryKey"`

	Event *Event `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

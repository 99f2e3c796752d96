package model

// EventLocation is a place events are held at.
type EventLocation struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	Name        string   `json:"name" gorm:"size:255;not null"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Description *string  `json:"description" gorm:"type:text"`

	Events []Event `json:"events,omitempty" gorm:"foreignKey:EventLocationID;constraint:OnDelete:RESTRICT"`
}

// TableName keeps the table name stable across naming strategies.
func (EventLocation) TableName() string {
	return "event_locations"
}

package validation

import "volunteerhub/internal/model"

// EventLocationSortable are the columns locations can be ordered by.
var EventLocationSortable = Sortable{
	"id":        "id",
	"name":      "name",
	"latitude":  "latitude",
	"longitude": "longitude",
}

// EventLocationCreateInput is the create view of a location.
type EventLocationCreateInput struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Description *string  `json:"description,omitempty"`
}

// Model builds the record to insert.
func (in EventLocationCreateInput) Model() *model.EventLocation {
	return &model.EventLocation{
		Name:        in.Name,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Description: in.Description,
	}
}

// EventLocationUpdateInput is the update view of a location.
type EventLocationUpdateInput struct {
	Name        *string           `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Latitude    Nullable[float64] `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   Nullable[float64] `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Description Nullable[string]  `json:"description"`
}

// Apply writes the update onto l.
func (in EventLocationUpdateInput) Apply(l *model.EventLocation) {
	if in.Name != nil {
		l.Name = *in.Name
	}
	in.Latitude.applyTo(&l.Latitude)
	in.Longitude.applyTo(&l.Longitude)
	in.Description.applyTo(&l.Description)
}

// EventLocationWhereInput is the filter view of a location.
type EventLocationWhereInput struct {
	AND []EventLocationWhereInput `json:"AND,omitempty" validate:"omitempty,dive"`
	OR  []EventLocationWhereInput `json:"OR,omitempty" validate:"omitempty,dive"`
	NOT []EventLocationWhereInput `json:"NOT,omitempty" validate:"omitempty,dive"`

	ID          *Filter[uint]    `json:"id,omitempty"`
	Name        *StringFilter    `json:"name,omitempty"`
	Latitude    *Filter[float64] `json:"latitude,omitempty"`
	Longitude   *Filter[float64] `json:"longitude,omitempty"`
	Description *StringFilter    `json:"description,omitempty"`
}

// EventLocationFindManyArgs is the list view of locations.
type EventLocationFindManyArgs = FindManyArgs[EventLocationWhereInput]

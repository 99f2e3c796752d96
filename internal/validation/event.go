package validation

import (
	"time"

	"volunteerhub/internal/model"
)

// EventSortable are the columns events can be ordered by.
var EventSortable = Sortable{
	"id":              "id",
	"name":            "name",
	"timestamp":       "timestamp",
	"duration":        "duration",
	"approvalStatus":  "approval_status",
	"image":           "image",
	"eventLocationId": "event_location_id",
	"userId":          "user_id",
	"createdAt":       "created_at",
	"updatedAt":       "updated_at",
}

// EventCreateInput is the create view of an event. ApprovalStatus defaults
// to PENDING when omitted.
type EventCreateInput struct {
	ID              string                `json:"id,omitempty" validate:"omitempty,uuid"`
	Name            string                `json:"name" validate:"required,max=255"`
	Timestamp       time.Time             `json:"timestamp" validate:"required"`
	Duration        *int                  `json:"duration" validate:"required,gte=0"`
	Details         *string               `json:"details" validate:"required"`
	ApprovalStatus  *model.ApprovalStatus `json:"approvalStatus,omitempty" validate:"omitempty,approval_status"`
	Image           *string               `json:"image,omitempty" validate:"omitempty,max=1024"`
	EventLocationID *uint                 `json:"eventLocationId" validate:"required,gt=0"`
	UserID          string                `json:"userId" validate:"required,uuid"`
}

// Model builds the record to insert.
func (in EventCreateInput) Model() *model.Event {
	e := &model.Event{
		ID:              in.ID,
		Name:            in.Name,
		Timestamp:       in.Timestamp.UTC(),
		Duration:        *in.Duration,
		Details:         *in.Details,
		Image:           in.Image,
		EventLocationID: *in.EventLocationID,
		UserID:          in.UserID,
	}
	if in.ApprovalStatus != nil {
		e.ApprovalStatus = *in.ApprovalStatus
	}
	return e
}

// EventUpdateInput is the update view of an event. Every field is optional.
type EventUpdateInput struct {
	Name            *string               `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Timestamp       *time.Time            `json:"timestamp,omitempty"`
	Duration        *IntUpdate            `json:"duration,omitempty"`
	Details         *string               `json:"details,omitempty"`
	ApprovalStatus  *model.ApprovalStatus `json:"approvalStatus,omitempty" validate:"omitempty,approval_status"`
	Image           Nullable[string]      `json:"image" validate:"omitempty,max=1024"`
	EventLocationID *uint                 `json:"eventLocationId,omitempty" validate:"omitempty,gt=0"`
	UserID          *string               `json:"userId,omitempty" validate:"omitempty,uuid"`
}

// Apply writes the update onto e.
func (in EventUpdateInput) Apply(e *model.Event) error {
	if in.Name != nil {
		e.Name = *in.Name
	}
	if in.Timestamp != nil {
		e.Timestamp = in.Timestamp.UTC()
	}
	if in.Duration != nil {
		d, err := in.Duration.Apply("duration", e.Duration)
		if err != nil {
			return err
		}
		e.Duration = d
	}
	if in.Details != nil {
		e.Details = *in.Details
	}
	if in.ApprovalStatus != nil {
		e.ApprovalStatus = *in.ApprovalStatus
	}
	in.Image.applyTo(&e.Image)
	if in.EventLocationID != nil {
		e.EventLocationID = *in.EventLocationID
	}
	if in.UserID != nil {
		e.UserID = *in.UserID
	}
	return nil
}

// EventScalarUpdate is the update-many data view: relation keys excluded.
type EventScalarUpdate struct {
	Name           *string               `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Timestamp      *time.Time            `json:"timestamp,omitempty"`
	Duration       *IntUpdate            `json:"duration,omitempty"`
	Details        *string               `json:"details,omitempty"`
	ApprovalStatus *model.ApprovalStatus `json:"approvalStatus,omitempty" validate:"omitempty,approval_status"`
	Image          Nullable[string]      `json:"image" validate:"omitempty,max=1024"`
}

// Apply writes the update onto e.
func (in EventScalarUpdate) Apply(e *model.Event) error {
	return EventUpdateInput{
		Name:           in.Name,
		Timestamp:      in.Timestamp,
		Duration:       in.Duration,
		Details:        in.Details,
		ApprovalStatus: in.ApprovalStatus,
		Image:          in.Image,
	}.Apply(e)
}

// EventUpdateManyArgs applies Data to every event matching Where.
type EventUpdateManyArgs struct {
	Where *EventWhereInput  `json:"where,omitempty"`
	Data  EventScalarUpdate `json:"data"`
}

// EventWhereInput is the filter view of an event.
type EventWhereInput struct {
	AND []EventWhereInput `json:"AND,omitempty" validate:"omitempty,dive"`
	OR  []EventWhereInput `json:"OR,omitempty" validate:"omitempty,dive"`
	NOT []EventWhereInput `json:"NOT,omitempty" validate:"omitempty,dive"`

	ID              *StringFilter                 `json:"id,omitempty"`
	Name            *StringFilter                 `json:"name,omitempty"`
	Timestamp       *Filter[time.Time]            `json:"timestamp,omitempty"`
	Duration        *Filter[int]                  `json:"duration,omitempty"`
	Details         *StringFilter                 `json:"details,omitempty"`
	ApprovalStatus  *Filter[model.ApprovalStatus] `json:"approvalStatus,omitempty"`
	Image           *StringFilter                 `json:"image,omitempty"`
	EventLocationID *Filter[uint]                 `json:"eventLocationId,omitempty"`
	UserID          *StringFilter                 `json:"userId,omitempty"`
	CreatedAt       *Filter[time.Time]            `json:"createdAt,omitempty"`
	UpdatedAt       *Filter[time.Time]            `json:"updatedAt,omitempty"`
}

// EventFindManyArgs is the list view of events.
type EventFindManyArgs = FindManyArgs[EventWhereInput]

// EventsWithStatus returns a filter selecting events in status.
func EventsWithStatus(status model.ApprovalStatus) *EventWhereInput {
	return &EventWhereInput{ApprovalStatus: Eq(status)}
}

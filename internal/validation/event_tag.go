package validation

import "volunteerhub/internal/model"

// EventTagKey identifies one tag of one event.
type EventTagKey struct {
	EventID string `json:"eventId" validate:"required,uuid"`
	Name    string `json:"name" validate:"required,max=191"`
}

// EventTagCreateInput is the create view of a tag.
type EventTagCreateInput = EventTagKey

// EventTagCreateManyInput tags one event with several names.
type EventTagCreateManyInput struct {
	EventID string   `json:"eventId" validate:"required,uuid"`
	Names   []string `json:"names" validate:"required,min=1,dive,required,max=191"`
}

// Models builds the records to insert.
func (in EventTagCreateManyInput) Models() []model.EventTag {
	tags := make([]model.EventTag, 0, len(in.Names))
	for _, name := range in.Names {
		tags = append(tags, model.EventTag{EventID: in.EventID, Name: name})
	}
	return tags
}

package validation

// EventRegistrationKey identifies one participant of one event.
type EventRegistrationKey struct {
	EventID     string `json:"eventId" validate:"required,uuid"`
	Participant string `json:"participant" validate:"required,uuid"`
}

// EventRegistrationCreateInput is the create view of a registration.
type EventRegistrationCreateInput = EventRegistrationKey

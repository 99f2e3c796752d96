package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"volunteerhub/internal/model"
)

const resourceEventRegistration = "event registration"

// EventRegistrationRepository defines roster persistence operations.
// Registrations are keyed by (eventId, participant).
type EventRegistrationRepository interface {
	Create(ctx context.Context, registration *model.EventRegistration) error
	FindByKey(ctx context.Context, eventID, participant string) (*model.EventRegistration, error)
	FindByEvent(ctx context.Context, eventID string) ([]model.EventRegistration, error)
	FindByParticipant(ctx context.Context, participant string) ([]model.EventRegistration, error)
	Delete(ctx context.Context, eventID, participant string) error
}

type eventRegistrationRepository struct {
	db *gorm.DB
}

// NewEventRegistrationRepository creates a new registration repository.
func NewEventRegistrationRepository(db *gorm.DB) EventRegistrationRepository {
	return &eventRegistrationRepository{db: db}
}

func (r *eventRegistrationRepository) Create(ctx context.Context, registration *model.EventRegistration) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(registration).Error
	return classify(resourceEventRegistration, err)
}

func (r *eventRegistrationRepository) FindByKey(ctx context.Context, eventID, participant string) (*model.EventRegistration, error) {
	var registration model.EventRegistration
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND participant = ?", eventID, participant).
		First(&registration).Error
	if err != nil {
		return nil, classify(resourceEventRegistration, err)
	}
	return &registration, nil
}

func (r *eventRegistrationRepository) FindByEvent(ctx context.Context, eventID string) ([]model.EventRegistration, error) {
	registrations := make([]model.EventRegistration, 0)
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("participant").Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *eventRegistrationRepository) FindByParticipant(ctx context.Context, participant string) ([]model.EventRegistration, error) {
	registrations := make([]model.EventRegistration, 0)
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("participant = ?", participant).
		Order("event_id").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *eventRegistrationRepository) Delete(ctx context.Context, eventID, participant string) error {
	res := r.db.WithContext(ctx).
		Where("event_id = ? AND participant = ?", eventID, participant).
		Delete(&model.EventRegistration{})
	if res.Error != nil {
		return classifyDelete(resourceEventRegistration, res.Error)
	}
	if res.RowsAffected == 0 {
		return classify(resourceEventRegistration, gorm.ErrRecordNotFound)
	}
	return nil
}

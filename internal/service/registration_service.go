package service

import (
	"context"

	"volunteerhub/internal/auth"
	"volunteerhub/internal/model"
	"volunteerhub/internal/repository"
	"volunteerhub/internal/validation"
)

// RegistrationService exposes event rosters.
type RegistrationService interface {
	GetOne(ctx context.Context, key validation.EventRegistrationKey) (*model.EventRegistration, error)
	// GetByEvent returns the roster of an event.
	GetByEvent(ctx context.Context, eventID string) ([]model.EventRegistration, error)
	GetByParticipant(ctx context.Context, participant string) ([]model.EventRegistration, error)
	Create(ctx context.Context, input validation.EventRegistrationCreateInput) (*model.EventRegistration, error)
	Delete(ctx context.Context, key validation.EventRegistrationKey) error
	// CreatePolicy is the gate Create runs under.
	CreatePolicy() auth.Policy
}

type registrationService struct {
	repo         repository.EventRegistrationRepository
	strictCreate bool
}

// NewRegistrationService creates a new registration service. strictCreate
// makes Create require a caller.
func NewRegistrationService(repo repository.EventRegistrationRepository, strictCreate bool) RegistrationService {
	return &registrationService{repo: repo, strictCreate: strictCreate}
}

func (s *registrationService) GetOne(ctx context.Context, key validation.EventRegistrationKey) (*model.EventRegistration, error) {
	if err := validation.Check(key); err != nil {
		return nil, err
	}
	return s.repo.FindByKey(ctx, key.EventID, key.Participant)
}

func (s *registrationService) GetByEvent(ctx context.Context, eventID string) ([]model.EventRegistration, error) {
	if err := validation.ID("eventId", eventID); err != nil {
		return nil, err
	}
	return s.repo.FindByEvent(ctx, eventID)
}

func (s *registrationService) GetByParticipant(ctx context.Context, participant string) ([]model.EventRegistration, error) {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return nil, err
	}
	if err := validation.ID("participant", participant); err != nil {
		return nil, err
	}
	return s.repo.FindByParticipant(ctx, participant)
}

func (s *registrationService) CreatePolicy() auth.Policy {
	return auth.CreatePolicy(s.strictCreate)
}

func (s *registrationService) Create(ctx context.Context, input validation.EventRegistrationCreateInput) (*model.EventRegistration, error) {
	if err := auth.Authorize(ctx, s.CreatePolicy()); err != nil {
		return nil, err
	}
	if err := validation.Check(input); err != nil {
		return nil, err
	}
	registration := &model.EventRegistration{EventID: input.EventID, Participant: input.Participant}
	if err := s.repo.Create(ctx, registration); err != nil {
		return nil, err
	}
	return registration, nil
}

func (s *registrationService) Delete(ctx context.Context, key validation.EventRegistrationKey) error {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return err
	}
	if err := validation.Check(key); err != nil {
		return err
	}
	return s.repo.Delete(ctx, key.EventID, key.Participant)
}

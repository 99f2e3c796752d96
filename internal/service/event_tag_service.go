package service

import (
	"context"

	"volunteerhub/internal/auth"
	"volunteerhub/internal/model"
	"volunteerhub/internal/repository"
	"volunteerhub/internal/validation"
)

// EventTagService exposes event tags.
type EventTagService interface {
	GetOne(ctx context.Context, key validation.EventTagKey) (*model.EventTag, error)
	GetByEvent(ctx context.Context, eventID string) ([]model.EventTag, error)
	Create(ctx context.Context, input validation.EventTagCreateInput) (*model.EventTag, error)
	// CreateMany inserts every tag or none.
	CreateMany(ctx context.Context, input validation.EventTagCreateManyInput) ([]model.EventTag, error)
	Delete(ctx context.Context, key validation.EventTagKey) error
}

type eventTagService struct {
	repo repository.EventTagRepository
}

// NewEventTagService creates a new tag service.
func NewEventTagService(repo repository.EventTagRepository) EventTagService {
	return &eventTagService{repo: repo}
}

func (s *eventTagService) GetOne(ctx context.Context, key validation.EventTagKey) (*model.EventTag, error) {
	if err := validation.Check(key); err != nil {
		return nil, err
	}
	return s.repo.FindByKey(ctx, key.EventID, key.Name)
}

func (s *eventTagService) GetByEvent(ctx context.Context, eventID string) ([]model.EventTag, error) {
	if err := validation.ID("eventId", eventID); err != nil {
		return nil, err
	}
	return s.repo.FindByEvent(ctx, eventID)
}

func (s *eventTagService) Create(ctx context.Context, input validation.EventTagCreateInput) (*model.EventTag, error) {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return nil, err
	}
	if err := validation.Check(input); err != nil {
		return nil, err
	}
	tag := &model.EventTag{EventID: input.EventID, Name: input.Name}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *eventTagService) CreateMany(ctx context.Context, input validation.EventTagCreateManyInput) ([]model.EventTag, error) {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return nil, err
	}
	if err := validation.Check(input); err != nil {
		return nil, err
	}
	tags := input.Models()
	if err := s.repo.CreateMany(ctx, tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *eventTagService) Delete(ctx context.Context, key validation.EventTagKey) error {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return err
	}
	if err := validation.Check(key); err != nil {
		return err
	}
	return s.repo.Delete(ctx, key.EventID, key.Name)
}

package service

import (
	"context"

	"volunteerhub/internal/auth"
	"volunteerhub/internal/model"
	"volunteerhub/internal/repository"
	"volunteerhub/internal/validation"
)

// MetricService exposes the contribution ledger.
type MetricService interface {
	GetOne(ctx context.Context, id uint) (*model.Metric, error)
	GetAll(ctx context.Context, args validation.MetricFindManyArgs) ([]model.Metric, error)
	GetByEvent(ctx context.Context, eventID string) ([]model.Metric, error)
	Create(ctx context.Context, input validation.MetricCreateInput) (*model.Metric, error)
	CreateMany(ctx context.Context, input validation.MetricCreateManyInput) ([]model.Metric, error)
	Update(ctx context.Context, id uint, input validation.MetricUpdateInput) (*model.Metric, error)
	Delete(ctx context.Context, id uint) error
}

type metricService struct {
	repo repository.MetricRepository
}

// NewMetricService creates a new metric service.
func NewMetricService(repo repository.MetricRepository) MetricService {
	return &metricService{repo: repo}
}

func (s *metricService) GetOne(ctx context.Context, id uint) (*model.Metric, error) {
	if err := validation.IntID("id", id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *metricService) GetAll(ctx context.Context, args validation.MetricFindManyArgs) ([]model.Metric, error) {
	if err := validation.CheckFindMany(&args, validation.MetricSortable); err != nil {
		return nil, err
	}
	return s.repo.FindMany(ctx, args)
}

func (s *metricService) GetByEvent(ctx context.Context, eventID string) ([]model.Metric, error) {
	if err := validation.ID("eventId", eventID); err != nil {
		return nil, err
	}
	return s.repo.FindByEvent(ctx, eventID)
}

func (s *metricService) Create(ctx context.Context, input validation.MetricCreateInput) (*model.Metric, error) {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return nil, err
	}
	if err := validation.Check(input); err != nil {
		return nil, err
	}
	metric := input.Model()
	if err := s.repo.Create(ctx, metric); err != nil {
		return nil, err
	}
	return metric, nil
}

func (s *metricService) CreateMany(ctx context.Context, input validation.MetricCreateManyInput) ([]model.Metric, error) {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return nil, err
	}
	if err := validation.Check(input); err != nil {
		return nil, err
	}
	metrics := make([]model.Metric, 0, len(input.Items))
	for _, item := range input.Items {
		metrics = append(metrics, *item.Model())
	}
	if err := s.repo.CreateMany(ctx, metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

func (s *metricService) Update(ctx context.Context, id uint, input validation.MetricUpdateInput) (*model.Metric, error) {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return nil, err
	}
	if err := validation.IntID("id", id); err != nil {
		return nil, err
	}
	if err := validation.Check(input); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, input.Apply)
}

func (s *metricService) Delete(ctx context.Context, id uint) error {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return err
	}
	if err := validation.IntID("id", id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"volunteerhub/internal/auth"
	"volunteerhub/internal/cache"
	"volunteerhub/internal/metrics"
	"volunteerhub/internal/model"
	"volunteerhub/internal/repository"
	"volunteerhub/internal/validation"
)

const locationCacheTTL = 5 * time.Minute

// EventLocationService exposes the event location aggregate.
type EventLocationService interface {
	GetOne(ctx context.Context, id uint) (*model.EventLocation, error)
	GetAll(ctx context.Context, args validation.EventLocationFindManyArgs) ([]model.EventLocation, error)
	Create(ctx context.Context, input validation.EventLocationCreateInput) (*model.EventLocation, error)
	Update(ctx context.Context, id uint, input validation.EventLocationUpdateInput) (*model.EventLocation, error)
	Delete(ctx context.Context, id uint) error
	// CreatePolicy is the gate Create runs under.
	CreatePolicy() auth.Policy
}

type eventLocationService struct {
	repo         repository.EventLocationRepository
	cache        *cache.Client
	strictCreate bool
}

// NewEventLocationService creates a new location service. Single locations
// are cached; strictCreate makes Create require a caller.
func NewEventLocationService(repo repository.EventLocationRepository, cache *cache.Client, strictCreate bool) EventLocationService {
	return &eventLocationService{
		repo:         repo,
		cache:        cache,
		strictCreate: strictCreate,
	}
}

func (s *eventLocationService) cacheKey(id uint) string {
	return fmt.Sprintf("location:%d", id)
}

func (s *eventLocationService) GetOne(ctx context.Context, id uint) (*model.EventLocation, error) {
	if err := validation.IntID("id", id); err != nil {
		return nil, err
	}
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.EventLocation
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.LocationCacheTotal.WithLabelValues("hit").Inc()
			return &cached, nil
		}
	}
	metrics.LocationCacheTotal.WithLabelValues("miss").Inc()

	location, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(location); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, locationCacheTTL)
	}
	return location, nil
}

func (s *eventLocationService) GetAll(ctx context.Context, args validation.EventLocationFindManyArgs) ([]model.EventLocation, error) {
	if err := validation.CheckFindMany(&args, validation.EventLocationSortable); err != nil {
		return nil, err
	}
	return s.repo.FindMany(ctx, args)
}

func (s *eventLocationService) CreatePolicy() auth.Policy {
	return auth.CreatePolicy(s.strictCreate)
}

func (s *eventLocationService) Create(ctx context.Context, input validation.EventLocationCreateInput) (*model.EventLocation, error) {
	if err := auth.Authorize(ctx, s.CreatePolicy()); err != nil {
		return nil, err
	}
	if err := validation.Check(input); err != nil {
		return nil, err
	}
	location := input.Model()
	if err := s.repo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *eventLocationService) Update(ctx context.Context, id uint, input validation.EventLocationUpdateInput) (*model.EventLocation, error) {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return nil, err
	}
	if err := validation.IntID("id", id); err != nil {
		return nil, err
	}
	if err := validation.Check(input); err != nil {
		return nil, err
	}
	location, err := s.repo.Update(ctx, id, func(l *model.EventLocation) error {
		input.Apply(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return location, nil
}

func (s *eventLocationService) Delete(ctx context.Context, id uint) error {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return err
	}
	if err := validation.IntID("id", id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

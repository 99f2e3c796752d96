package service

import (
	"context"

	"volunteerhub/internal/auth"
	apperrors "volunteerhub/internal/errors"
	"volunteerhub/internal/model"
	"volunteerhub/internal/repository"
	"volunteerhub/internal/validation"
)

// EventService exposes the event aggregate.
type EventService interface {
	GetOne(ctx context.Context, id string) (*model.Event, error)
	GetAll(ctx context.Context) ([]model.Event, error)
	GetApproved(ctx context.Context) ([]model.Event, error)
	GetPending(ctx context.Context) ([]model.Event, error)
	GetCancelled(ctx context.Context) ([]model.Event, error)
	FindMany(ctx context.Context, args validation.EventFindManyArgs) ([]model.Event, error)
	// GetByOrganiser returns the approved events organised by userID.
	GetByOrganiser(ctx context.Context, userID string) ([]model.Event, error)
	Create(ctx context.Context, input validation.EventCreateInput) (*model.Event, error)
	// Update is the generic update. It may set any approval status.
	Update(ctx context.Context, id string, input validation.EventUpdateInput) (*model.Event, error)
	UpdateMany(ctx context.Context, args validation.EventUpdateManyArgs) (int64, error)
	Approve(ctx context.Context, id string) (*model.Event, error)
	Cancel(ctx context.Context, id string) (*model.Event, error)
	Delete(ctx context.Context, id string) error
}

type eventService struct {
	repo repository.EventRepository
}

// NewEventService creates a new event service.
func NewEventService(repo repository.EventRepository) EventService {
	return &eventService{repo: repo}
}

func (s *eventService) GetOne(ctx context.Context, id string) (*model.Event, error) {
	if err := validation.ID("id", id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *eventService) GetAll(ctx context.Context) ([]model.Event, error) {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, nil)
}

func (s *eventService) GetApproved(ctx context.Context) ([]model.Event, error) {
	return s.repo.List(ctx, validation.EventsWithStatus(model.ApprovalStatusApproved))
}

func (s *eventService) GetPending(ctx context.Context) ([]model.Event, error) {
	return s.repo.List(ctx, validation.EventsWithStatus(model.ApprovalStatusPending))
}

func (s *eventService) GetCancelled(ctx context.Context) ([]model.Event, error) {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, validation.EventsWithStatus(model.ApprovalStatusCancelled))
}

func (s *eventService) FindMany(ctx context.Context, args validation.EventFindManyArgs) ([]model.Event, error) {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return nil, err
	}
	if err := validation.CheckFindMany(&args, validation.EventSortable); err != nil {
		return nil, err
	}
	return s.repo.FindMany(ctx, args)
}

func (s *eventService) GetByOrganiser(ctx context.Context, userID string) ([]model.Event, error) {
	if err := validation.ID("userId", userID); err != nil {
		return nil, err
	}
	where := validation.EventsWithStatus(model.ApprovalStatusApproved)
	where.UserID = validation.StrEq(userID)
	return s.repo.List(ctx, where)
}

func (s *eventService) Create(ctx context.Context, input validation.EventCreateInput) (*model.Event, error) {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return nil, err
	}
	if err := validation.Check(input); err != nil {
		return nil, err
	}
	event := input.Model()
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id string, input validation.EventUpdateInput) (*model.Event, error) {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return nil, err
	}
	if err := validation.ID("id", id); err != nil {
		return nil, err
	}
	if err := validation.Check(input); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, input.Apply)
}

func (s *eventService) UpdateMany(ctx context.Context, args validation.EventUpdateManyArgs) (int64, error) {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return 0, err
	}
	if err := validation.Check(args); err != nil {
		return 0, err
	}
	return s.repo.UpdateMany(ctx, args.Where, args.Data.Apply)
}

func (s *eventService) Approve(ctx context.Context, id string) (*model.Event, error) {
	return s.transition(ctx, id, model.ApprovalStatusApproved)
}

func (s *eventService) Cancel(ctx context.Context, id string) (*model.Event, error) {
	return s.transition(ctx, id, model.ApprovalStatusCancelled)
}

// transition moves an event to next when the approval state machine allows it.
func (s *eventService) transition(ctx context.Context, id string, next model.ApprovalStatus) (*model.Event, error) {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return nil, err
	}
	if err := validation.ID("id", id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, func(e *model.Event) error {
		if !e.ApprovalStatus.CanTransitionTo(next) {
			return apperrors.Invalid("approvalStatus", "transition",
				"cannot move from "+string(e.ApprovalStatus)+" to "+string(next))
		}
		e.ApprovalStatus = next
		return nil
	})
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return err
	}
	if err := validation.ID("id", id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

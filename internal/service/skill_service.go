package service

import (
	"context"

	"volunteerhub/internal/auth"
	apperrors "volunteerhub/internal/errors"
	"volunteerhub/internal/model"
	"volunteerhub/internal/repository"
	"volunteerhub/internal/validation"
)

// SkillService exposes user skills.
type SkillService interface {
	GetOne(ctx context.Context, id uint) (*model.Skill, error)
	// GetByUser returns the skills of userID, which must be the caller.
	GetByUser(ctx context.Context, input validation.SkillByUserInput) ([]model.Skill, error)
	Create(ctx context.Context, input validation.SkillCreateInput) (*model.Skill, error)
	Delete(ctx context.Context, id uint) error
}

type skillService struct {
	repo repository.SkillRepository
}

// NewSkillService creates a new skill service.
func NewSkillService(repo repository.SkillRepository) SkillService {
	return &skillService{repo: repo}
}

func (s *skillService) GetOne(ctx context.Context, id uint) (*model.Skill, error) {
	if err := validation.IntID("id", id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *skillService) GetByUser(ctx context.Context, input validation.SkillByUserInput) ([]model.Skill, error) {
	caller, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	if err := validation.Check(input); err != nil {
		return nil, err
	}
	if input.UserID != caller.ID {
		return nil, apperrors.Forbidden("skills are only visible to their owner")
	}
	return s.repo.FindByUser(ctx, input.UserID)
}

func (s *skillService) Create(ctx context.Context, input validation.SkillCreateInput) (*model.Skill, error) {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return nil, err
	}
	if err := validation.Check(input); err != nil {
		return nil, err
	}
	skill := input.Model()
	if err := s.repo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *skillService) Delete(ctx context.Context, id uint) error {
	if err := auth.Authorize(ctx, auth.Protected); err != nil {
		return err
	}
	if err := validation.IntID("id", id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

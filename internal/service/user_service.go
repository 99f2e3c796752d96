package service

import (
	"context"

	"volunteerhub/internal/auth"
	"volunteerhub/internal/model"
	"volunteerhub/internal/repository"
	"volunteerhub/internal/validation"
)

// UserService exposes registration and the caller's own profile.
type UserService interface {
	// Exists reports whether an account uses email, and nothing else.
	Exists(ctx context.Context, input validation.UserExistsInput) (bool, error)
	Create(ctx context.Context, input validation.UserCreateInput) (*model.User, error)
	Me(ctx context.Context) (*model.User, error)
	Update(ctx context.Context, input validation.UserUpdateInput) (*model.User, error)
	Delete(ctx context.Context) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Exists(ctx context.Context, input validation.UserExistsInput) (bool, error) {
	if err := validation.Check(input); err != nil {
		return false, err
	}
	return s.repo.ExistsByEmail(ctx, validation.NormalizeEmail(input.Email))
}

func (s *userService) Create(ctx context.Context, input validation.UserCreateInput) (*model.User, error) {
	if err := validation.Check(input); err != nil {
		return nil, err
	}
	user := input.Model()
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Me(ctx context.Context) (*model.User, error) {
	caller, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, caller.ID)
}

func (s *userService) Update(ctx context.Context, input validation.UserUpdateInput) (*model.User, error) {
	caller, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	if err := validation.Check(input); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, caller.ID, func(u *model.User) error {
		input.Apply(u)
		return nil
	})
}

func (s *userService) Delete(ctx context.Context) error {
	caller, err := auth.Require(ctx)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, caller.ID)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "trendradar/internal/errors"
	"trendradar/internal/model"
	"trendradar/internal/repository"
)

// CreateUserParams carries the fields for admin user creation. Required
// fields are enforced at the handler boundary; the role enumeration is
// validated here before any store mutation.
type CreateUserParams struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        model.Role
	Gender      *string
	DateOfBirth *string
	IsActive    *bool
}

// UpdateUserParams is a partial update; only non-nil fields change.
type UpdateUserParams struct {
	Email       *string
	Password    *string
	FirstName   *string
	LastName    *string
	Role        *model.Role
	Gender      *string
	DateOfBirth *string
	IsActive    *bool
}

// UserService exposes admin-only user management.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, params CreateUserParams) (*model.User, error)
	Update(ctx context.Context, id uint, params UpdateUserParams) (*model.User, error)
	Delete(ctx context.Context, id uint) error
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Create(ctx context.Context, params CreateUserParams) (*model.User, error) {
	if !params.Role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	existing, err := s.users.FindByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrEmailExists
	}

	hash, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        params.Email,
		PasswordHash: hash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Role:         params.Role,
		Gender:       params.Gender,
		DateOfBirth:  params.DateOfBirth,
		IsActive:     true,
	}
	if params.IsActive != nil {
		user.IsActive = *params.IsActive
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uint, params UpdateUserParams) (*model.User, error) {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	fields := map[string]interface{}{}
	if params.Email != nil {
		fields["email"] = *params.Email
	}
	if params.FirstName != nil {
		fields["first_name"] = *params.FirstName
	}
	if params.LastName != nil {
		fields["last_name"] = *params.LastName
	}
	if params.Role != nil {
		if !params.Role.Valid() {
			return nil, apperrors.ErrInvalidRole
		}
		fields["role"] = *params.Role
	}
	if params.Gender != nil {
		fields["gender"] = *params.Gender
	}
	if params.DateOfBirth != nil {
		fields["date_of_birth"] = *params.DateOfBirth
	}
	if params.IsActive != nil {
		fields["is_active"] = *params.IsActive
	}
	if params.Password != nil {
		hash, err := HashPassword(*params.Password)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hash
	}

	if err := s.users.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	updated, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

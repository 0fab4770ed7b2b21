package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tanmayd/user_platform_app/internal/apperrors"
	"github.com/tanmayd/user_platform_app/internal/core/domain"
	portsrepo "github.com/tanmayd/user_platform_app/internal/core/ports/repositories"
	portssvc "github.com/tanmayd/user_platform_app/internal/core/ports/services"
	"github.com/tanmayd/user_platform_app/internal/dto"
)

// userService implements portssvc.UserSvcFacade for the backend service.
type userService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfileByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, email string, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.GetProfileByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// Only allow-listed fields are applied from the patch.
	if req.Name == nil || *req.Name == "" {
		return user, nil
	}

	now := time.Now()
	if err := s.userRepo.UpdateUserName(ctx, user.UserID, *req.Name, now); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	user.Name = *req.Name
	user.UpdatedAt = now
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

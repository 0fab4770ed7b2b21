package services

import (
	"context"

	"github.com/tanmayd/user_platform_app/internal/core/domain"
	"github.com/tanmayd/user_platform_app/internal/dto"
)

// UserReaderSvc defines read operations for user profiles
type UserReaderSvc interface {
	// GetProfileByEmail retrieves a user's profile by their verified email.
	GetProfileByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user profiles
type UserWriterSvc interface {
	// UpdateProfile applies the allow-listed fields of the patch to the user
	// identified by email.
	UpdateProfile(ctx context.Context, email string, req dto.UpdateProfileRequest) (*domain.User, error)
}

// UserSvcFacade combines all profile-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}

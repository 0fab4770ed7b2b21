package repositories

import (
	"context"
	"time"

	"github.com/tanmayd/user_platform_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their lowercased email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByResetTokenHash retrieves the user holding an unexpired reset
	// token with the given hash.
	FindUserByResetTokenHash(ctx context.Context, tokenHash string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// email is already registered.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUserName updates the user's name and updated_at.
	UpdateUserName(ctx context.Context, userID string, name string, updatedAt time.Time) error

	// UpdatePassword replaces the password hash and clears any outstanding
	// reset token in the same statement.
	UpdatePassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error

	// SetResetToken stores a reset token hash and its expiry for the user.
	SetResetToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error

	// ClearResetToken removes any outstanding reset token for the user.
	ClearResetToken(ctx context.Context, userID string) error
}

// UserRepository combines all user-related repository interfaces
type UserRepository interface {
	UserReader
	UserWriter
}

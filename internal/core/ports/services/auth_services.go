package services

import (
	"context"

	"github.com/tanmayd/user_platform_app/internal/core/domain"
	"github.com/tanmayd/user_platform_app/internal/dto"
)

// AuthSvcFacade defines the operations of the auth service.
type AuthSvcFacade interface {
	// Signup registers a new user and issues a session token.
	// Returns apperrors.ErrValidation for malformed input and
	// apperrors.ErrDuplicate when the email is already registered.
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error)

	// Login authenticates email+password and issues a session token.
	// Unknown email and wrong password both return apperrors.ErrUnauthorized.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)

	// ForgotPassword starts a password reset. It never reveals whether the
	// email exists; the returned message is constant.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword consumes a raw reset token and sets a new password.
	ResetPassword(ctx context.Context, rawToken string, newPassword string) error

	// VerifyToken validates a session token's signature and expiry and
	// re-checks that the referenced user still exists.
	VerifyToken(ctx context.Context, tokenString string) (*domain.Identity, error)
}

// TokenVerifier is the capability the backend service depends on to validate
// bearer tokens. In production it is an HTTP client of the auth service;
// tests substitute a fake.
type TokenVerifier interface {
	Verify(ctx context.Context, tokenString string) (*domain.Identity, error)
}

// MailSender dispatches password reset tokens to users. The real mailer is an
// external collaborator; the default implementation only logs.
type MailSender interface {
	SendPasswordReset(ctx context.Context, email string, rawToken string) error
}

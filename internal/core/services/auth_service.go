package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tanmayd/user_platform_app/internal/apperrors"
	"github.com/tanmayd/user_platform_app/internal/core/domain"
	portsrepo "github.com/tanmayd/user_platform_app/internal/core/ports/repositories"
	portssvc "github.com/tanmayd/user_platform_app/internal/core/ports/services"
	"github.com/tanmayd/user_platform_app/internal/dto"
	"github.com/tanmayd/user_platform_app/internal/platform/config"
	"github.com/tanmayd/user_platform_app/internal/utils"
)

const minPasswordLength = 6

// authService implements portssvc.AuthSvcFacade on top of the user repository.
type authService struct {
	userRepo   portsrepo.UserRepository
	mailSender portssvc.MailSender
	cfg        *config.Config
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo portsrepo.UserRepository, mailSender portssvc.MailSender, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:   userRepo,
		mailSender: mailSender,
		cfg:        cfg,
	}
}

// NormalizeEmail lowercases and trims an email so it can act as the natural key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	email := NormalizeEmail(req.Email)
	if req.Name == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("name, email and password are required: %w", apperrors.ErrValidation)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, apperrors.ErrValidation)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	return s.issueToken(&user)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := NormalizeEmail(req.Email)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		// Unknown email and bad password must be indistinguishable to the
		// caller, so both collapse to ErrUnauthorized.
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return s.issueToken(user)
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Deliberately indistinguishable from the success path.
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	rawToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiry := time.Now().Add(s.cfg.ResetTokenExpiryDuration)
	if err := s.userRepo.SetResetToken(ctx, user.UserID, utils.HashResetToken(rawToken), expiry); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.mailSender.SendPasswordReset(ctx, user.Email, rawToken); err != nil {
		return fmt.Errorf("failed to dispatch reset token: %w", err)
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, rawToken string, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByResetTokenHash(ctx, utils.HashResetToken(rawToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUnauthorized
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return apperrors.ErrUnauthorized
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// UpdatePassword clears the reset token fields in the same statement.
	if err := s.userRepo.UpdatePassword(ctx, user.UserID, passwordHash, time.Now()); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *authService) VerifyToken(ctx context.Context, tokenString string) (*domain.Identity, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	// Signature alone is not enough: the claims must match a user that still
	// exists at verification time.
	user, err := s.userRepo.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up token subject: %w", err)
	}

	return &domain.Identity{
		UserID: user.UserID,
		Email:  user.Email,
		Name:   user.Name,
	}, nil
}

func (s *authService) issueToken(user *domain.User) (*dto.AuthResponse, error) {
	token, err := utils.GenerateJWT(user.UserID, user.Email, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}

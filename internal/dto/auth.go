package dto

// SignupRequest carries the fields required to register a new user.
// Validation mirrors the service rules so most bad input is rejected at bind
// time with a 400.
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest starts a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes a password reset; the raw token arrives in
// the URL path.
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MessageResponse is a generic success message body.
type MessageResponse struct {
	Message string `json:"message"`
}

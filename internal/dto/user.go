package dto

import (
	"time"

	"github.com/tanmayd/user_platform_app/internal/core/domain"
)

// UserResponse holds the public identity fields of a user. The password hash
// and reset token never leave the service.
type UserResponse struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// ProfileResponse is UserResponse plus record timestamps, returned by the
// profile endpoints.
type ProfileResponse struct {
	UserID    string    `json:"userID"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateProfileRequest defines the data allowed for updating a profile.
// Using a pointer to differentiate between omitted fields and zero-value fields.
type UpdateProfileRequest struct {
	Name *string `json:"name"` // Only name is updatable
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of user profiles.
type ListUsersResponse struct {
	Users []ProfileResponse `json:"users"`
}

// ToUserResponse converts a domain.User to its public representation.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID: user.UserID,
		Name:   user.Name,
		Email:  user.Email,
	}
}

// ToProfileResponse converts a domain.User to a ProfileResponse DTO.
func ToProfileResponse(user *domain.User) ProfileResponse {
	return ProfileResponse{
		UserID:    user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToListUsersResponse converts a slice of domain.User to ListUsersResponse.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	profiles := make([]ProfileResponse, len(users))
	for i := range users {
		profiles[i] = ToProfileResponse(&users[i])
	}
	return ListUsersResponse{Users: profiles}
}

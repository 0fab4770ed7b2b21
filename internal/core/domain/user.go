package domain

import "time"

// User represents a registered user of the platform in the domain.
// Email is the natural key and is stored lowercased.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	// ResetTokenHash holds the SHA-256 hash of an outstanding password reset
	// token. Both fields are nil except between a forgot-password request and
	// its use or expiry.
	ResetTokenHash   *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Identity is the public identity asserted by a verified session token.
type Identity struct {
	UserID string `json:"userID"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

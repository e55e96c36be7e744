package domain

import "time"

// User represents a user of the application in the domain.
type User struct {
	UserID   string `json:"userID"` // Primary Key (e.g., UUID)
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoUrl,omitempty"` // Populated for Google sign-in users
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete

	// Auth fields, never serialized
	GoogleID               string     `json:"-"`
	PasswordHash           string     `json:"-"`
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GoogleUserInfo holds the profile fields returned by Google's userinfo endpoint
// or carried in a validated ID token payload.
type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

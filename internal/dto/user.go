package dto

import (
	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
)

// RegisterUserRequest defines data for creating a new account with a password.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines credentials for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	PhotoURL *string `json:"photoURL"`
}

// UserResponse defines data returned for a user.
type UserResponse struct {
	UserID   string `json:"userID"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL,omitempty"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Name:     u.Name,
		Email:    u.Email,
		PhotoURL: u.PhotoURL,
	}
}

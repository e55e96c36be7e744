package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsersByIDs retrieves multiple users by their IDs.
	FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's profile details.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiryTime time.Time) error

	// ClearRefreshToken removes the stored refresh token for a user (logout).
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

package models

import (
	"database/sql"
	"time"
)

// User represents a row in the users table.
type User struct {
	UserID       string         `db:"user_id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	PhotoURL     sql.NullString `db:"photo_url"`
	PasswordHash sql.NullString `db:"password_hash"` // NULL for Google-only accounts
	GoogleID     sql.NullString `db:"google_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	// Refresh token fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}

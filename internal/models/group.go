package models

import "time"

// Group represents a row in the groups table.
type Group struct {
	GroupID             string  `db:"group_id"`
	Name                string  `db:"name"`
	Description         string  `db:"description"`
	DefaultCurrencyCode *string `db:"default_currency_code"` // Nullable
	IsActive            bool    `db:"is_active"`
	AuditFields
}

// GroupMemberRole mirrors domain.GroupMemberRole at the storage layer.
type GroupMemberRole string

// GroupMemberStatus mirrors domain.GroupMemberStatus at the storage layer.
type GroupMemberStatus string

// GroupMember represents a row in the group_members join table.
type GroupMember struct {
	UserID   string            `db:"user_id"`
	GroupID  string            `db:"group_id"`
	Role     GroupMemberRole   `db:"role"`
	Status   GroupMemberStatus `db:"status"`
	JoinedAt time.Time         `db:"joined_at"`
}

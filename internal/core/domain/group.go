package domain

import "time"

// Group represents a named collection of members sharing expenses.
type Group struct {
	GroupID             string  `json:"groupID"` // Primary Key (e.g., UUID)
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode"` // Display currency for this group (e.g., "USD")
	IsActive            bool    `json:"isActive"`
	MemberCount         int     `json:"memberCount"` // Derived; populated on listings
	AuditFields
}

// GroupMemberRole defines the possible roles a user can have within a group.
type GroupMemberRole string

const (
	RoleAdmin  GroupMemberRole = "ADMIN"
	RoleMember GroupMemberRole = "MEMBER"
)

// GroupMemberStatus tracks the invitation state of a member.
// A member is created PENDING when invited and becomes ACTIVE on acceptance;
// there is no further transition.
type GroupMemberStatus string

const (
	MemberPending GroupMemberStatus = "PENDING"
	MemberActive  GroupMemberStatus = "ACTIVE"
)

// GroupMember represents the membership of a User in a Group.
type GroupMember struct {
	UserID   string            `json:"userID"`  // FK -> users.user_id
	GroupID  string            `json:"groupID"` // FK -> groups.group_id
	Name     string            `json:"name"`    // Display name of the user
	Email    string            `json:"email"`
	PhotoURL string            `json:"photoUrl,omitempty"`
	Role     GroupMemberRole   `json:"role"`
	Status   GroupMemberStatus `json:"status"`
	JoinedAt time.Time         `json:"joinedAt"` // Invited-at for PENDING members
}

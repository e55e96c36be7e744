package dto

import (
	"time"

	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
)

// --- Group DTOs ---

// CreateGroupRequest defines data for creating a new group.
type CreateGroupRequest struct {
	Name                string `json:"name" binding:"required,max=100"`
	Description         string `json:"description"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode" binding:"omitempty,iso4217"`
	// InviteEmails are invited as pending members alongside group creation.
	InviteEmails []string `json:"inviteEmails" binding:"omitempty,dive,email"`
}

// GroupResponse defines data returned for a group.
type GroupResponse struct {
	GroupID             string    `json:"groupID"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	DefaultCurrencyCode *string   `json:"defaultCurrencyCode,omitempty"`
	MemberCount         int       `json:"memberCount"`
	CreatedAt           time.Time `json:"createdAt"`
	CreatedBy           string    `json:"createdBy"` // UserID
	LastUpdatedAt       time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy       string    `json:"lastUpdatedBy"` // UserID
}

// ToGroupResponse converts domain.Group to DTO.
func ToGroupResponse(g *domain.Group) GroupResponse {
	return GroupResponse{
		GroupID:             g.GroupID,
		Name:                g.Name,
		Description:         g.Description,
		DefaultCurrencyCode: g.DefaultCurrencyCode,
		MemberCount:         g.MemberCount,
		CreatedAt:           g.CreatedAt,
		CreatedBy:           g.CreatedBy,
		LastUpdatedAt:       g.LastUpdatedAt,
		LastUpdatedBy:       g.LastUpdatedBy,
	}
}

// ListGroupsResponse wraps a list of groups.
type ListGroupsResponse struct {
	Groups []GroupResponse `json:"groups"`
}

// ToListGroupsResponse converts a slice of domain.Group to DTO.
func ToListGroupsResponse(gs []domain.Group) ListGroupsResponse {
	list := make([]GroupResponse, len(gs))
	for i, g := range gs {
		list[i] = ToGroupResponse(&g)
	}
	return ListGroupsResponse{Groups: list}
}

// --- Group Membership DTOs ---

// InviteMemberRequest defines data for inviting a user into a group.
type InviteMemberRequest struct {
	Email string                 `json:"email" binding:"required,email"`
	Role  domain.GroupMemberRole `json:"role" binding:"omitempty,oneof=ADMIN MEMBER"`
}

// GroupMemberResponse defines data returned about a group membership.
type GroupMemberResponse struct {
	UserID   string                   `json:"userID"`
	GroupID  string                   `json:"groupID"`
	Name     string                   `json:"name"`
	Email    string                   `json:"email"`
	PhotoURL string                   `json:"photoURL,omitempty"`
	Role     domain.GroupMemberRole   `json:"role"`
	Status   domain.GroupMemberStatus `json:"status"`
	JoinedAt time.Time                `json:"joinedAt"`
}

// ToGroupMemberResponse converts domain.GroupMember to DTO.
func ToGroupMemberResponse(m *domain.GroupMember) GroupMemberResponse {
	return GroupMemberResponse{
		UserID:   m.UserID,
		GroupID:  m.GroupID,
		Name:     m.Name,
		Email:    m.Email,
		PhotoURL: m.PhotoURL,
		Role:     m.Role,
		Status:   m.Status,
		JoinedAt: m.JoinedAt,
	}
}

// ListGroupMembersResponse wraps a list of group memberships.
type ListGroupMembersResponse struct {
	Members []GroupMemberResponse `json:"members"`
}

// ToListGroupMembersResponse converts a slice of domain.GroupMember to DTO.
func ToListGroupMembersResponse(ms []domain.GroupMember) ListGroupMembersResponse {
	list := make([]GroupMemberResponse, len(ms))
	for i, m := range ms {
		list[i] = ToGroupMemberResponse(&m)
	}
	return ListGroupMembersResponse{Members: list}
}

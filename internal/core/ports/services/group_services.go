package services

import (
	"context"

	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
	"github.com/SscSPs/expense_splitter_app/internal/dto"
)

// GroupReaderSvc defines read operations for group data
type GroupReaderSvc interface {
	// GetGroupByID retrieves a group the requesting user belongs to.
	GetGroupByID(ctx context.Context, groupID string, requestingUserID string) (*domain.Group, error)

	// ListGroupsForUser retrieves all groups the user is a member of.
	ListGroupsForUser(ctx context.Context, userID string) ([]domain.Group, error)

	// ListGroupMembers retrieves the members of a group the requesting user belongs to.
	ListGroupMembers(ctx context.Context, groupID string, requestingUserID string) ([]domain.GroupMember, error)
}

// GroupWriterSvc defines write operations for group data
type GroupWriterSvc interface {
	// CreateGroup creates a new group with the creator as its admin.
	CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.Group, error)

	// InviteMember adds a user to a group with pending status.
	InviteMember(ctx context.Context, groupID string, req dto.InviteMemberRequest, requestingUserID string) (*domain.GroupMember, error)

	// AcceptInvite transitions the requesting user's membership from pending to active.
	AcceptInvite(ctx context.Context, groupID string, requestingUserID string) error
}

// GroupSvcFacade combines all group-related service interfaces
type GroupSvcFacade interface {
	GroupReaderSvc
	GroupWriterSvc
}

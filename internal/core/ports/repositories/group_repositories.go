package repositories

import (
	"context"

	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
)

// GroupReader defines read operations for group data
type GroupReader interface {
	// FindGroupByID retrieves a group by its unique identifier.
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)

	// ListGroupsByUserID retrieves all active groups a user belongs to.
	ListGroupsByUserID(ctx context.Context, userID string) ([]domain.Group, error)

	// ListGroupMembers retrieves all members of a group, active and pending.
	ListGroupMembers(ctx context.Context, groupID string) ([]domain.GroupMember, error)

	// FindGroupMember retrieves a single membership record, if present.
	FindGroupMember(ctx context.Context, groupID string, userID string) (*domain.GroupMember, error)
}

// GroupWriter defines write operations for group data
type GroupWriter interface {
	// SaveGroup persists a new group and its creator's admin membership atomically.
	SaveGroup(ctx context.Context, group domain.Group, creator domain.GroupMember) error

	// AddGroupMember persists a new membership record.
	AddGroupMember(ctx context.Context, member domain.GroupMember) error

	// UpdateGroupMemberStatus transitions a membership between pending and active.
	UpdateGroupMemberStatus(ctx context.Context, groupID string, userID string, status domain.GroupMemberStatus) error
}

// GroupRepositoryFacade combines all group-related repository interfaces
type GroupRepositoryFacade interface {
	GroupReader
	GroupWriter
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_splitter_app/internal/apperrors"
	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_splitter_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_splitter_app/internal/core/ports/services"
	"github.com/SscSPs/expense_splitter_app/internal/dto"
	"github.com/google/uuid"
)

// GroupService handles business logic related to groups and memberships.
type GroupService struct {
	BaseService
	groupRepo portsrepo.GroupRepositoryFacade
	userRepo  portsrepo.UserRepositoryFacade
}

// NewGroupService creates a new GroupService.
func NewGroupService(groupRepo portsrepo.GroupRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.GroupSvcFacade {
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// Ensure GroupService implements the portssvc.GroupSvcFacade interface
var _ portssvc.GroupSvcFacade = (*GroupService)(nil)

// requireMember returns the membership of userID in groupID, or ErrForbidden
// when the user does not belong to the group at all.
func (s *GroupService) requireMember(ctx context.Context, groupID, userID string) (*domain.GroupMember, error) {
	member, err := s.groupRepo.FindGroupMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, fmt.Errorf("failed to check group membership: %w", err)
	}
	return member, nil
}

// CreateGroup creates a new group with the creator as its active admin.
func (s *GroupService) CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.Group, error) {
	now := time.Now()
	groupID := uuid.NewString()

	group := domain.Group{
		GroupID:     groupID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.DefaultCurrencyCode != "" {
		group.DefaultCurrencyCode = &req.DefaultCurrencyCode
	}

	creator := domain.GroupMember{
		UserID:   creatorUserID,
		GroupID:  groupID,
		Role:     domain.RoleAdmin,
		Status:   domain.MemberActive,
		JoinedAt: now,
	}

	if err := s.groupRepo.SaveGroup(ctx, group, creator); err != nil {
		s.LogError(ctx, err, "Failed to save group", slog.String("group_name", req.Name))
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	group.MemberCount = 1

	// Invites are best effort: unknown emails do not fail group creation.
	for _, email := range req.InviteEmails {
		invitee, err := s.userRepo.FindUserByEmail(ctx, email)
		if err != nil {
			s.GetLogger(ctx).Warn("Skipping invite for unknown email", slog.String("group_id", groupID), slog.String("email", email))
			continue
		}
		if invitee.UserID == creatorUserID {
			continue
		}
		member := domain.GroupMember{
			UserID:   invitee.UserID,
			GroupID:  groupID,
			Role:     domain.RoleMember,
			Status:   domain.MemberPending,
			JoinedAt: now,
		}
		if err := s.groupRepo.AddGroupMember(ctx, member); err != nil {
			s.LogError(ctx, err, "Failed to invite member during group creation", slog.String("group_id", groupID), slog.String("invitee_id", invitee.UserID))
			continue
		}
		group.MemberCount++
	}

	s.LogInfo(ctx, "Group created", slog.String("group_id", groupID), slog.String("creator_user_id", creatorUserID))
	return &group, nil
}

// GetGroupByID retrieves a group, requiring the requester to be a member.
func (s *GroupService) GetGroupByID(ctx context.Context, groupID string, requestingUserID string) (*domain.Group, error) {
	if _, err := s.requireMember(ctx, groupID, requestingUserID); err != nil {
		return nil, err
	}
	return s.groupRepo.FindGroupByID(ctx, groupID)
}

// ListGroupsForUser retrieves all groups the user is a member of.
func (s *GroupService) ListGroupsForUser(ctx context.Context, userID string) ([]domain.Group, error) {
	return s.groupRepo.ListGroupsByUserID(ctx, userID)
}

// ListGroupMembers retrieves the members of a group the requester belongs to.
func (s *GroupService) ListGroupMembers(ctx context.Context, groupID string, requestingUserID string) ([]domain.GroupMember, error) {
	if _, err := s.requireMember(ctx, groupID, requestingUserID); err != nil {
		return nil, err
	}
	return s.groupRepo.ListGroupMembers(ctx, groupID)
}

// InviteMember adds a user to a group with PENDING status. Only active admins
// may invite.
func (s *GroupService) InviteMember(ctx context.Context, groupID string, req dto.InviteMemberRequest, requestingUserID string) (*domain.GroupMember, error) {
	requester, err := s.requireMember(ctx, groupID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if requester.Role != domain.RoleAdmin || requester.Status != domain.MemberActive {
		return nil, apperrors.ErrForbidden
	}

	invitee, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no user with that email", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up invitee: %w", err)
	}

	role := req.Role
	if role == "" {
		role = domain.RoleMember
	}

	member := domain.GroupMember{
		UserID:   invitee.UserID,
		GroupID:  groupID,
		Name:     invitee.Name,
		Email:    invitee.Email,
		PhotoURL: invitee.PhotoURL,
		Role:     role,
		Status:   domain.MemberPending,
		JoinedAt: time.Now(),
	}

	if err := s.groupRepo.AddGroupMember(ctx, member); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: user is already in the group", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to add group member", slog.String("group_id", groupID), slog.String("invitee_id", invitee.UserID))
		return nil, fmt.Errorf("failed to invite member: %w", err)
	}

	s.LogInfo(ctx, "Member invited", slog.String("group_id", groupID), slog.String("invitee_id", invitee.UserID))
	return &member, nil
}

// AcceptInvite transitions the requester's own membership from PENDING to ACTIVE.
func (s *GroupService) AcceptInvite(ctx context.Context, groupID string, requestingUserID string) error {
	member, err := s.groupRepo.FindGroupMember(ctx, groupID, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: no invite for this group", apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to look up invite: %w", err)
	}
	if member.Status == domain.MemberActive {
		// Accepting twice is harmless.
		return nil
	}

	if err := s.groupRepo.UpdateGroupMemberStatus(ctx, groupID, requestingUserID, domain.MemberActive); err != nil {
		s.LogError(ctx, err, "Failed to accept invite", slog.String("group_id", groupID))
		return fmt.Errorf("failed to accept invite: %w", err)
	}

	s.LogInfo(ctx, "Invite accepted", slog.String("group_id", groupID), slog.String("user_id", requestingUserID))
	return nil
}

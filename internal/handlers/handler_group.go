package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/expense_splitter_app/internal/core/ports/services"
	"github.com/SscSPs/expense_splitter_app/internal/dto"
	"github.com/SscSPs/expense_splitter_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// GroupHandler handles group related requests.
type GroupHandler struct {
	groupService portssvc.GroupSvcFacade
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(gs portssvc.GroupSvcFacade) *GroupHandler {
	return &GroupHandler{groupService: gs}
}

// registerGroupRoutes sets up the routes for group management.
func registerGroupRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewGroupHandler(services.Group)

	groups := rg.Group("/dashboard/groups")
	{
		groups.GET("", h.ListGroups)
		groups.POST("", h.CreateGroup)
		groups.POST("/create", h.CreateGroup)
		groups.GET("/:group_id", h.GetGroup)
		groups.GET("/:group_id/members", h.ListMembers)
		groups.POST("/:group_id/invite", h.InviteMember)
		groups.POST("/:group_id/invite/accept", h.AcceptInvite)
	}
}

// ListGroups godoc
// @Summary List groups
// @Description Returns all groups the authenticated user is a member of.
// @Tags groups
// @Produce json
// @Success 200 {object} dto.ListGroupsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/groups [get]
func (h *GroupHandler) ListGroups(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	groups, err := h.groupService.ListGroupsForUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list groups")
		return
	}

	c.JSON(http.StatusOK, dto.ToListGroupsResponse(groups))
}

// CreateGroup godoc
// @Summary Create group
// @Description Creates a new group with the authenticated user as its admin.
// @Tags groups
// @Accept json
// @Produce json
// @Param group body dto.CreateGroupRequest true "Group details"
// @Success 201 {object} dto.GroupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/groups [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create group")
		return
	}

	c.JSON(http.StatusCreated, dto.ToGroupResponse(group))
}

// GetGroup godoc
// @Summary Get group
// @Description Returns a single group the authenticated user belongs to.
// @Tags groups
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/groups/{group_id} [get]
func (h *GroupHandler) GetGroup(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	group, err := h.groupService.GetGroupByID(c.Request.Context(), c.Param("group_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch group")
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupResponse(group))
}

// ListMembers godoc
// @Summary List group members
// @Description Returns the members of a group the authenticated user belongs to.
// @Tags groups
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {array} dto.GroupMemberResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/groups/{group_id}/members [get]
func (h *GroupHandler) ListMembers(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	members, err := h.groupService.ListGroupMembers(c.Request.Context(), c.Param("group_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list members")
		return
	}

	resp := make([]dto.GroupMemberResponse, len(members))
	for i := range members {
		resp[i] = dto.ToGroupMemberResponse(&members[i])
	}
	c.JSON(http.StatusOK, resp)
}

// InviteMember godoc
// @Summary Invite member
// @Description Invites a user into the group by email. Admin only. The invite stays pending until accepted.
// @Tags groups
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param invite body dto.InviteMemberRequest true "Invitee details"
// @Success 201 {object} dto.GroupMemberResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Invitee not found"
// @Failure 409 {object} ErrorResponse "User is already in the group"
// @Security BearerAuth
// @Router /dashboard/groups/{group_id}/invite [post]
func (h *GroupHandler) InviteMember(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	member, err := h.groupService.InviteMember(c.Request.Context(), c.Param("group_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to invite member")
		return
	}

	c.JSON(http.StatusCreated, dto.ToGroupMemberResponse(member))
}

// AcceptInvite godoc
// @Summary Accept invite
// @Description Activates the authenticated user's pending membership in the group. Accepting twice is a no-op.
// @Tags groups
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No invite for this user"
// @Security BearerAuth
// @Router /dashboard/groups/{group_id}/invite/accept [post]
func (h *GroupHandler) AcceptInvite(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.groupService.AcceptInvite(c.Request.Context(), c.Param("group_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to accept invite")
		return
	}

	c.Status(http.StatusNoContent)
}

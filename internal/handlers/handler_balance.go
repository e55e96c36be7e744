package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/expense_splitter_app/internal/core/ports/services"
	"github.com/SscSPs/expense_splitter_app/internal/dto"
	"github.com/SscSPs/expense_splitter_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// BalanceHandler handles group balance requests.
type BalanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(bs portssvc.BalanceSvcFacade) *BalanceHandler {
	return &BalanceHandler{balanceService: bs}
}

// registerBalanceRoutes sets up the routes for group balances.
func registerBalanceRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewBalanceHandler(services.Balance)

	rg.GET("/dashboard/groups/:group_id/balances", h.GetGroupBalances)
}

// GetGroupBalances godoc
// @Summary Get group balances
// @Description Returns the paid, owed, net and pending totals for every member of the group.
// @Tags balances
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {object} dto.GroupBalancesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/groups/{group_id}/balances [get]
func (h *BalanceHandler) GetGroupBalances(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	groupID := c.Param("group_id")
	balances, err := h.balanceService.GetGroupBalances(c.Request.Context(), groupID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to compute balances")
		return
	}

	c.JSON(http.StatusOK, dto.GroupBalancesResponse{GroupID: groupID, Balances: balances})
}

package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/expense_splitter_app/internal/core/ports/services"
	"github.com/SscSPs/expense_splitter_app/internal/dto"
	"github.com/SscSPs/expense_splitter_app/internal/middleware"
	"github.com/SscSPs/expense_splitter_app/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

const maxUserExpensesPageSize = 100

// ExpenseHandler handles expense and settlement related requests.
type ExpenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(es portssvc.ExpenseSvcFacade) *ExpenseHandler {
	return &ExpenseHandler{expenseService: es}
}

// registerExpenseRoutes sets up the routes for expense management.
func registerExpenseRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewExpenseHandler(services.Expense)

	groupExpenses := rg.Group("/dashboard/groups/:group_id/expenses")
	{
		groupExpenses.POST("", h.CreateExpense)
		groupExpenses.GET("", h.ListGroupExpenses)
		groupExpenses.GET("/:expense_id/splits", h.GetExpenseSplits)
		groupExpenses.POST("/:expense_id/settle", h.SettleShare)
		groupExpenses.DELETE("/:expense_id", h.DeleteExpense)
	}

	rg.GET("/dashboard/user/expenses", h.ListUserExpenses)
}

// CreateExpense godoc
// @Summary Record expense
// @Description Records a new expense in a group, split equally across its participants.
// @Tags expenses
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/groups/{group_id}/expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), c.Param("group_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to record expense")
		return
	}

	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// ListGroupExpenses godoc
// @Summary List group expenses
// @Description Returns the expenses of a group, newest first.
// @Tags expenses
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/groups/{group_id}/expenses [get]
func (h *ExpenseHandler) ListGroupExpenses(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	expenses, err := h.expenseService.ListGroupExpenses(c.Request.Context(), c.Param("group_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list expenses")
		return
	}

	c.JSON(http.StatusOK, dto.ToListExpensesResponse(expenses))
}

// ListUserExpenses godoc
// @Summary List own expenses
// @Description Returns the authenticated user's expenses across all their groups, newest first, paginated with an opaque token.
// @Tags expenses
// @Produce json
// @Param pageToken query string false "Token from a previous page"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} ErrorResponse "Malformed page token"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/user/expenses [get]
func (h *ExpenseHandler) ListUserExpenses(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var params dto.ListUserExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}
	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Limit > maxUserExpensesPageSize {
		params.Limit = maxUserExpensesPageSize
	}

	var before *time.Time
	if params.PageToken != "" {
		date, err := pagination.DecodeDateBasedToken(params.PageToken)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid page token"})
			return
		}
		before = &date
	}

	expenses, err := h.expenseService.ListUserExpenses(c.Request.Context(), userID, before, params.Limit)
	if err != nil {
		respondServiceError(c, err, "Failed to list expenses")
		return
	}

	resp := dto.ToListExpensesResponse(expenses)
	// A full page means more expenses may exist past the last date.
	if len(expenses) == params.Limit {
		last := expenses[len(expenses)-1]
		resp.NextPageToken = pagination.EncodeDateBasedToken(last.ExpenseDate)
	}

	c.JSON(http.StatusOK, resp)
}

// GetExpenseSplits godoc
// @Summary Get expense splits
// @Description Returns the per-participant shares of an expense. The first shares absorb any remainder cents.
// @Tags expenses
// @Produce json
// @Param group_id path string true "Group ID"
// @Param expense_id path string true "Expense ID"
// @Success 200 {object} dto.SplitResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/groups/{group_id}/expenses/{expense_id}/splits [get]
func (h *ExpenseHandler) GetExpenseSplits(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	ctx := c.Request.Context()
	expenseID := c.Param("expense_id")

	expense, err := h.expenseService.GetExpenseByID(ctx, expenseID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch expense")
		return
	}

	split, err := h.expenseService.GetExpenseSplits(ctx, expenseID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to compute splits")
		return
	}

	c.JSON(http.StatusOK, dto.ToSplitResponse(expenseID, expense.Participants, split))
}

// SettleShare godoc
// @Summary Settle a share
// @Description Marks a participant's share of an expense as paid. Settling an already paid share changes nothing.
// @Tags expenses
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param expense_id path string true "Expense ID"
// @Param settle body dto.SettleShareRequest false "Whose share to settle; the caller's own when omitted"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/groups/{group_id}/expenses/{expense_id}/settle [post]
func (h *ExpenseHandler) SettleShare(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	// An empty body settles the caller's own share.
	var req dto.SettleShareRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
			return
		}
	}
	if req.MemberID == "" {
		req.MemberID = userID
	}

	if err := h.expenseService.SettleShare(c.Request.Context(), c.Param("expense_id"), req.MemberID, userID); err != nil {
		respondServiceError(c, err, "Failed to settle share")
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteExpense godoc
// @Summary Delete expense
// @Description Removes an expense together with its settlements. Only the payer or a group admin may delete.
// @Tags expenses
// @Produce json
// @Param group_id path string true "Group ID"
// @Param expense_id path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/groups/{group_id}/expenses/{expense_id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), c.Param("expense_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete expense")
		return
	}

	c.Status(http.StatusNoContent)
}

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/SscSPs/expense_splitter_app/internal/core/ports/services"
	"github.com/SscSPs/expense_splitter_app/internal/dto"
	"github.com/SscSPs/expense_splitter_app/internal/middleware"
	"github.com/SscSPs/expense_splitter_app/internal/platform/config"
	"github.com/SscSPs/expense_splitter_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.Token, cfg)
	gh := NewGoogleOAuthHandler(services.GoogleAuth, services.User, services.Token, cfg)

	// 5 login attempts per minute per IP
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	limitMiddleware := middleware.RateLimit(limiter.New(store, rate))

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.POST("/google", limitMiddleware, gh.LoginWithGoogle)
		auth.GET("/google/redirect", gh.RedirectToGoogle)
		auth.GET("/google/callback", limitMiddleware, gh.GoogleCallback)
	}
}

// setRefreshCookie sets the HTTP-only refresh cookie. The value carries the
// user ID so /refresh needs no request body.
func (h *AuthHandler) setRefreshCookie(c *gin.Context, userID, rawToken string) {
	value := userID + "." + rawToken
	maxAge := int(h.cfg.RefreshTokenExpiryDuration.Seconds())
	c.SetCookie(h.cfg.RefreshTokenCookieName, value, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user account with email and password.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Conflict (email already registered)"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	newUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token plus a refresh cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.userService.AuthenticateUser(ctx, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondServiceError(c, err, "Failed to generate token")
		return
	}

	rawRefreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		respondServiceError(c, err, "Failed to generate refresh token")
		return
	}
	if err := h.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(rawRefreshToken), refreshExpiry); err != nil {
		respondServiceError(c, err, "Failed to store refresh token")
		return
	}
	h.setRefreshCookie(c, user.UserID, rawRefreshToken)

	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken, User: dto.ToUserResponse(user)})
}

// Refresh godoc
// @Summary Refresh access token
// @Description Exchanges a valid refresh cookie for a new access token. The refresh token is rotated.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	cookieValue, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token missing"})
		return
	}
	userID, rawToken, found := strings.Cut(cookieValue, ".")
	if !found || userID == "" || rawToken == "" {
		h.clearRefreshCookie(c)
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Malformed refresh token"})
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(ctx, userID, rawToken)
	if err != nil {
		h.clearRefreshCookie(c)
		respondServiceError(c, err, "Failed to validate refresh token")
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondServiceError(c, err, "Failed to generate token")
		return
	}

	// Rotate the refresh token on every use.
	newRawToken, newExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		respondServiceError(c, err, "Failed to rotate refresh token")
		return
	}
	if err := h.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(newRawToken), newExpiry); err != nil {
		respondServiceError(c, err, "Failed to store refresh token")
		return
	}
	h.setRefreshCookie(c, user.UserID, newRawToken)

	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: accessToken})
}

// Logout godoc
// @Summary Log out
// @Description Clears the refresh token server-side and drops the cookie.
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	cookieValue, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err == nil {
		if userID, _, found := strings.Cut(cookieValue, "."); found && userID != "" {
			if clearErr := h.userService.ClearRefreshToken(ctx, userID); clearErr != nil {
				logger := middleware.GetLoggerFromCtx(ctx)
				logger.Warn("Failed to clear stored refresh token on logout", slog.String("error", clearErr.Error()))
			}
		}
	}
	h.clearRefreshCookie(c)

	c.Status(http.StatusNoContent)
}

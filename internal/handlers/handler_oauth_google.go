package handlers

import (
	"net/http"

	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_splitter_app/internal/core/ports/services"
	"github.com/SscSPs/expense_splitter_app/internal/dto"
	"github.com/SscSPs/expense_splitter_app/internal/platform/config"
	"github.com/SscSPs/expense_splitter_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler handles Google sign-in requests. The client performs the
// OAuth dance itself and posts the resulting ID token here.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	cfg                *config.Config
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
	cfg *config.Config,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
		cfg:                cfg,
	}
}

// LoginWithGoogle godoc
// @Summary Sign in with Google
// @Description Validates a Google ID token, creating the user on first login, and returns an application JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [post]
func (h *GoogleOAuthHandler) LoginWithGoogle(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	info := domain.GoogleUserInfo{ID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		info.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		info.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		info.Picture = picture
	}

	user, err := h.googleOAuthService.FindOrCreateGoogleUser(ctx, info)
	if err != nil {
		respondServiceError(c, err, "Failed to sign in with Google")
		return
	}

	accessToken, ok := h.issueSession(c, user)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken, User: dto.ToUserResponse(user)})
}

// oauthStateCookieName holds the CSRF state for the redirect flow.
const oauthStateCookieName = "oauthstate"

// RedirectToGoogle godoc
// @Summary Start Google sign-in redirect flow
// @Description Redirects the browser to Google's consent screen. Intended for web clients that cannot run the native ID-token flow.
// @Tags auth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/redirect [get]
func (h *GoogleOAuthHandler) RedirectToGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		respondServiceError(c, err, "Failed to start Google sign-in")
		return
	}

	c.SetCookie(oauthStateCookieName, state, 600, "/", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(ctx, state))
}

// GoogleCallback godoc
// @Summary Complete Google sign-in redirect flow
// @Description Exchanges the authorization code from Google, creating the user on first login, and redirects to the frontend with an application JWT in the URL fragment.
// @Tags auth
// @Param state query string true "CSRF state from the redirect step"
// @Param code query string true "Authorization code from Google"
// @Success 307
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) GoogleCallback(c *gin.Context) {
	stateCookie, err := c.Cookie(oauthStateCookieName)
	if err != nil || stateCookie == "" || c.Query("state") != stateCookie {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookieName, "", -1, "/", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing authorization code"})
		return
	}

	ctx := c.Request.Context()
	oauthToken, err := h.googleOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Failed to exchange authorization code"})
		return
	}

	info, err := h.googleOAuthService.GetUserInfo(ctx, oauthToken)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch Google profile")
		return
	}

	user, err := h.googleOAuthService.FindOrCreateGoogleUser(ctx, *info)
	if err != nil {
		respondServiceError(c, err, "Failed to sign in with Google")
		return
	}

	accessToken, ok := h.issueSession(c, user)
	if !ok {
		return
	}

	// The token travels in the fragment so it never reaches server logs.
	c.Redirect(http.StatusTemporaryRedirect, h.cfg.FrontendBaseURL+"/auth/callback#token="+accessToken)
}

// issueSession generates the access and refresh tokens for a signed-in user
// and sets the refresh token cookie. On failure it writes the error response
// itself and returns false.
func (h *GoogleOAuthHandler) issueSession(c *gin.Context, user *domain.User) (string, bool) {
	ctx := c.Request.Context()

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondServiceError(c, err, "Failed to generate token")
		return "", false
	}

	rawRefreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		respondServiceError(c, err, "Failed to generate refresh token")
		return "", false
	}
	if err := h.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(rawRefreshToken), refreshExpiry); err != nil {
		respondServiceError(c, err, "Failed to store refresh token")
		return "", false
	}

	value := user.UserID + "." + rawRefreshToken
	maxAge := int(h.cfg.RefreshTokenExpiryDuration.Seconds())
	c.SetCookie(h.cfg.RefreshTokenCookieName, value, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)

	return accessToken, true
}

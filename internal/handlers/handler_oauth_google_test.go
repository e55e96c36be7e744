package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_splitter_app/internal/core/ports/services"
	"github.com/SscSPs/expense_splitter_app/internal/dto"
	"github.com/SscSPs/expense_splitter_app/internal/handlers"
	"github.com/SscSPs/expense_splitter_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// --- Mocks ---

type MockGoogleOAuthService struct {
	mock.Mock
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*MockGoogleOAuthService)(nil)

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	args := m.Called(ctx, state)
	return args.String(0)
}

func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	var token *oauth2.Token
	if args.Get(0) != nil {
		token = args.Get(0).(*oauth2.Token)
	}
	return token, args.Error(1)
}

func (m *MockGoogleOAuthService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, token)
	var info *domain.GoogleUserInfo
	if args.Get(0) != nil {
		info = args.Get(0).(*domain.GoogleUserInfo)
	}
	return info, args.Error(1)
}

func (m *MockGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	var payload *idtoken.Payload
	if args.Get(0) != nil {
		payload = args.Get(0).(*idtoken.Payload)
	}
	return payload, args.Error(1)
}

func (m *MockGoogleOAuthService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

type MockTokenService struct {
	mock.Mock
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	args := m.Called(ctx, userID, refreshTokenString)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Suite ---

type GoogleOAuthHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockGoogleOAuth  *MockGoogleOAuthService
	mockUserService  *MockUserService
	mockTokenService *MockTokenService
	cfg              *config.Config
}

func (suite *GoogleOAuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockGoogleOAuth = new(MockGoogleOAuthService)
	suite.mockUserService = new(MockUserService)
	suite.mockTokenService = new(MockTokenService)
	suite.cfg = &config.Config{
		RefreshTokenCookieName:     "rtid",
		RefreshTokenCookiePath:     "/api/v1/auth",
		RefreshTokenExpiryDuration: 24 * time.Hour,
		FrontendBaseURL:            "https://app.example.com",
	}

	h := handlers.NewGoogleOAuthHandler(suite.mockGoogleOAuth, suite.mockUserService, suite.mockTokenService, suite.cfg)
	suite.router = gin.New()
	suite.router.GET("/api/v1/auth/google/redirect", h.RedirectToGoogle)
	suite.router.GET("/api/v1/auth/google/callback", h.GoogleCallback)
}

func (suite *GoogleOAuthHandlerTestSuite) TestRedirect_SetsStateAndRedirects() {
	ctx := mock.Anything
	loginURL := "https://accounts.google.com/o/oauth2/auth?state=state-123"
	suite.mockGoogleOAuth.On("GenerateStateString", ctx).Return("state-123", nil).Once()
	suite.mockGoogleOAuth.On("GetGoogleLoginURL", ctx, "state-123").Return(loginURL).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/google/redirect", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusTemporaryRedirect, w.Code)
	suite.Equal(loginURL, w.Header().Get("Location"))

	var stateCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "oauthstate" {
			stateCookie = cookie
		}
	}
	suite.Require().NotNil(stateCookie)
	suite.Equal("state-123", stateCookie.Value)
	suite.True(stateCookie.HttpOnly)
}

func (suite *GoogleOAuthHandlerTestSuite) TestCallback_ExchangesCodeAndRedirectsToFrontend() {
	ctx := mock.Anything
	oauthToken := &oauth2.Token{AccessToken: "google-access"}
	info := &domain.GoogleUserInfo{ID: "gid-1", Email: "sam@example.com", Name: "Sam"}
	user := &domain.User{UserID: "user-1", Email: "sam@example.com", Name: "Sam"}

	suite.mockGoogleOAuth.On("ExchangeCodeForToken", ctx, "code-abc").Return(oauthToken, nil).Once()
	suite.mockGoogleOAuth.On("GetUserInfo", ctx, oauthToken).Return(info, nil).Once()
	suite.mockGoogleOAuth.On("FindOrCreateGoogleUser", ctx, *info).Return(user, nil).Once()
	suite.mockTokenService.On("GenerateAccessToken", ctx, user).Return("jwt-token", time.Now().Add(time.Hour), nil).Once()
	suite.mockTokenService.On("GenerateRefreshToken", ctx, user).Return("raw-refresh", time.Now().Add(24*time.Hour), nil).Once()
	suite.mockUserService.On("UpdateRefreshToken", ctx, "user-1", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	w := httptest.NewRecorder()
	query := url.Values{"state": {"state-123"}, "code": {"code-abc"}}
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?"+query.Encode(), nil)
	req.AddCookie(&http.Cookie{Name: "oauthstate", Value: "state-123"})
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusTemporaryRedirect, w.Code)
	suite.Equal("https://app.example.com/auth/callback#token=jwt-token", w.Header().Get("Location"))
	suite.mockGoogleOAuth.AssertExpectations(suite.T())
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *GoogleOAuthHandlerTestSuite) TestCallback_StateMismatchRejected() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=forged&code=code-abc", nil)
	req.AddCookie(&http.Cookie{Name: "oauthstate", Value: "state-123"})
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockGoogleOAuth.AssertNotCalled(suite.T(), "ExchangeCodeForToken", mock.Anything, mock.Anything)
}

func (suite *GoogleOAuthHandlerTestSuite) TestCallback_MissingCodeRejected() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=state-123", nil)
	req.AddCookie(&http.Cookie{Name: "oauthstate", Value: "state-123"})
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockGoogleOAuth.AssertNotCalled(suite.T(), "ExchangeCodeForToken", mock.Anything, mock.Anything)
}

func TestGoogleOAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GoogleOAuthHandlerTestSuite))
}

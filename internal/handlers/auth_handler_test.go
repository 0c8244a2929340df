package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billpilot_backend/internal/config"
	"billpilot_backend/internal/models"
	"billpilot_backend/internal/services/dto"
	"billpilot_backend/internal/validator"
	"billpilot_backend/pkg/apperrors"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTTLMinutes = 10
	cfg.JWT.RefreshTTLHours = 24
	config.AppConfig = cfg

	os.Exit(m.Run())
}

// stubAuthService returns canned results so the handler's HTTP surface can
// be tested in isolation.
type stubAuthService struct {
	loginResp    *dto.AuthResponse
	loginToken   string
	loginErr     error
	refreshResp  *dto.AuthResponse
	refreshToken string
	refreshErr   error
	logoutUser   *models.User
	logoutErr    error

	presentedOnLogin   string
	presentedOnRefresh string
	presentedOnLogout  string
}

func (s *stubAuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	return &models.User{Email: req.Email}, nil
}

func (s *stubAuthService) Login(req *dto.LoginRequest, presented string) (*dto.AuthResponse, string, error) {
	s.presentedOnLogin = presented
	return s.loginResp, s.loginToken, s.loginErr
}

func (s *stubAuthService) RefreshTokens(presented string) (*dto.AuthResponse, string, error) {
	s.presentedOnRefresh = presented
	return s.refreshResp, s.refreshToken, s.refreshErr
}

func (s *stubAuthService) Logout(presented string) (*models.User, error) {
	s.presentedOnLogout = presented
	return s.logoutUser, s.logoutErr
}

func (s *stubAuthService) VerifyEmail(userID, tokenValue string) (bool, error) {
	return false, nil
}

func (s *stubAuthService) ResendVerification(email string) (*models.User, error) {
	return &models.User{Email: email}, nil
}

func (s *stubAuthService) RequestPasswordReset(email string) (*models.User, error) {
	return &models.User{Email: email}, nil
}

func (s *stubAuthService) ResetPassword(req *dto.ResetPasswordConfirm) (*models.User, error) {
	return &models.User{}, nil
}

func authRouter(stub *stubAuthService) *gin.Engine {
	handler := NewAuthHandler(NewBaseHandler(validator.New()), stub)

	router := gin.New()
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)
	router.GET("/auth/new_access_token", handler.RefreshToken)
	router.GET("/auth/logout", handler.Logout)
	return router
}

func findCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	res := w.Result()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegisterReturns200(t *testing.T) {
	w := httptest.NewRecorder()
	body := `{"email":"billy@example.com","username":"billy-the-kid","firstName":"Billy",` +
		`"lastName":"Kid","password":"Str0ng-Pass!","passwordConfirm":"Str0ng-Pass!"}`
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	authRouter(&stubAuthService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "billy@example.com")
}

func TestRegisterValidationFailure(t *testing.T) {
	w := httptest.NewRecorder()
	body := `{"email":"not-an-email","username":"billy-the-kid","firstName":"Billy",` +
		`"lastName":"Kid","password":"Str0ng-Pass!","passwordConfirm":"Str0ng-Pass!"}`
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	authRouter(&stubAuthService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email")
}

func TestLoginSetsSessionCookie(t *testing.T) {
	stub := &stubAuthService{
		loginResp:  &dto.AuthResponse{Success: true, Username: "billy-the-kid", AccessToken: "access"},
		loginToken: "fresh-refresh-token",
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login",
		strings.NewReader(`{"email":"billy@example.com","password":"Str0ng-Pass!"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "old-token"})
	authRouter(stub).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "old-token", stub.presentedOnLogin, "handler must forward the presented cookie")

	cookie := findCookie(t, w, "jwt")
	require.NotNil(t, cookie)
	assert.Equal(t, "fresh-refresh-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
	assert.Equal(t, 24*60*60, cookie.MaxAge)
}

func TestLoginBodyNeverContainsRefreshToken(t *testing.T) {
	stub := &stubAuthService{
		loginResp:  &dto.AuthResponse{Success: true, AccessToken: "access"},
		loginToken: "fresh-refresh-token",
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login",
		strings.NewReader(`{"email":"billy@example.com","password":"Str0ng-Pass!"}`))
	req.Header.Set("Content-Type", "application/json")
	authRouter(stub).ServeHTTP(w, req)

	assert.NotContains(t, w.Body.String(), "fresh-refresh-token")
}

func TestRefreshWithoutCookie(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/new_access_token", nil)
	authRouter(&stubAuthService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshRejectionClearsCookie(t *testing.T) {
	stub := &stubAuthService{refreshErr: apperrors.ErrRefreshTokenRejected}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/new_access_token", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "stolen-token"})
	authRouter(stub).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "stolen-token", stub.presentedOnRefresh)

	cookie := findCookie(t, w, "jwt")
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestRefreshSuccessReplacesCookie(t *testing.T) {
	stub := &stubAuthService{
		refreshResp:  &dto.AuthResponse{Success: true, AccessToken: "new-access"},
		refreshToken: "rotated-token",
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/new_access_token", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "current-token"})
	authRouter(stub).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "new-access")

	cookie := findCookie(t, w, "jwt")
	require.NotNil(t, cookie)
	assert.Equal(t, "rotated-token", cookie.Value)
}

func TestLogoutWithoutCookie(t *testing.T) {
	stub := &stubAuthService{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/logout", nil)
	authRouter(stub).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, stub.presentedOnLogout, "service must not be called without a cookie")
}

func TestLogoutUnknownTokenClearsCookie(t *testing.T) {
	stub := &stubAuthService{logoutUser: nil}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "unknown"})
	authRouter(stub).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	cookie := findCookie(t, w, "jwt")
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

func TestLogoutKnownToken(t *testing.T) {
	stub := &stubAuthService{logoutUser: &models.User{FirstName: "Billy"}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "live-token"})
	authRouter(stub).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Billy")
}

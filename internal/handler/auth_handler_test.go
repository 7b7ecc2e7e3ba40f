package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rehmanpranto/TutorTrack/internal/middleware"
	"github.com/rehmanpranto/TutorTrack/internal/models"
	appErrors "github.com/rehmanpranto/TutorTrack/pkg/errors"
)

type authServiceMock struct {
	providers []string
	login     *models.LoginResponse
	loginErr  error
	current   *models.UserInfo
	currentID int64
	curErr    error
}

func (m *authServiceMock) Providers() []string { return m.providers }

func (m *authServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	return m.login, m.loginErr
}

func (m *authServiceMock) Logout(ctx context.Context, claims *models.SessionClaims) error {
	return nil
}

func (m *authServiceMock) CurrentUser(ctx context.Context, userID int64) (*models.UserInfo, error) {
	m.currentID = userID
	return m.current, m.curErr
}

func (m *authServiceMock) GoogleAuthURL(state string) (string, error) { return "", nil }

func (m *authServiceMock) GoogleCallback(ctx context.Context, code string) (*models.LoginResponse, error) {
	return nil, nil
}

func TestAuthHandlerSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &authServiceMock{current: &models.UserInfo{ID: 1, Email: "pranto@example.com", Name: "Pranto"}}
	handler := NewAuthHandler(mockSvc)

	c, w := newGinContext(http.MethodGet, "/auth/session", nil)
	c.Set(middleware.ContextUserKey, &models.SessionClaims{UserID: 1})

	handler.Session(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), mockSvc.currentID)
	assert.Contains(t, w.Body.String(), "pranto@example.com")
}

func TestAuthHandlerSessionWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&authServiceMock{})

	c, w := newGinContext(http.MethodGet, "/auth/session", nil)
	handler.Session(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerSessionDeletedAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &authServiceMock{curErr: appErrors.Clone(appErrors.ErrUnauthorized, "account no longer exists")}
	handler := NewAuthHandler(mockSvc)

	c, w := newGinContext(http.MethodGet, "/auth/session", nil)
	c.Set(middleware.ContextUserKey, &models.SessionClaims{UserID: 1})

	handler.Session(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerProviders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&authServiceMock{providers: []string{models.ProviderCredentials}})

	c, w := newGinContext(http.MethodGet, "/auth/providers", nil)
	handler.Providers(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), models.ProviderCredentials)
}

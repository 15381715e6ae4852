package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hypideas/identity-api/internal/application/session"
	"github.com/hypideas/identity-api/internal/domain"
	jwtinfra "github.com/hypideas/identity-api/internal/infrastructure/jwt"
	"github.com/hypideas/identity-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockSessionService struct{ mock.Mock }

func (m *mockSessionService) Login(ctx context.Context, req session.LoginRequest) (*session.LoginResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*session.LoginResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSessionService) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}
func (m *mockSessionService) GetCurrent(ctx context.Context, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	if s, _ := args.Get(0).(*domain.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSessionService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

// --- helpers ---

// withClaims injects verified claims the way the auth middleware would.
func withClaims(r *http.Request, userID, role, sessionID string) *http.Request {
	claims := &jwtinfra.Claims{UserID: userID, Role: role, SessionID: sessionID}
	return r.WithContext(context.WithValue(r.Context(), middleware.ClaimsKey, claims))
}

func urlParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func loggedInSession() *domain.Session {
	now := time.Now().UTC()
	return &domain.Session{
		SessionID: "s1",
		UserID:    "u1",
		Enable:    true,
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
		User:      &domain.User{UserID: "u1", Email: "a@b.edu", Username: "PhysicsPhD_Nova", Role: domain.RoleUser},
	}
}

// --- tests ---

func TestLogin_InvalidBody(t *testing.T) {
	h := NewSessionHandler(&mockSessionService{})
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := &mockSessionService{}
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions",
		strings.NewReader(`{"email":"a@b.edu","password":"wrong"}`))
	rec := httptest.NewRecorder()
	NewSessionHandler(svc).Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_HappyPath(t *testing.T) {
	svc := &mockSessionService{}
	svc.On("Login", mock.Anything, mock.MatchedBy(func(r session.LoginRequest) bool {
		return r.Email == "a@b.edu" && r.RememberMe
	})).Return(&session.LoginResult{
		AccessToken:  "jwt-abc",
		RefreshToken: "refresh-abc",
		Session:      loggedInSession(),
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions",
		strings.NewReader(`{"email":"a@b.edu","password":"password123","remember_me":true}`))
	rec := httptest.NewRecorder()
	NewSessionHandler(svc).Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env AuthEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "jwt-abc", env.AccessToken)
	assert.Equal(t, "refresh-abc", env.RefreshToken)
	assert.Equal(t, "s1", env.Session.ID)
	assert.Equal(t, "PhysicsPhD_Nova", env.User.Username)
	svc.AssertExpectations(t)
}

func TestRefresh_MissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/refresh", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	NewSessionHandler(&mockSessionService{}).Refresh(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc := &mockSessionService{}
	svc.On("Refresh", mock.Anything, "old-token").Return("jwt-new", "new-token", nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/refresh",
		strings.NewReader(`{"refresh_token":"old-token"}`))
	rec := httptest.NewRecorder()
	NewSessionHandler(svc).Refresh(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env AuthEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "jwt-new", env.AccessToken)
	assert.Equal(t, "new-token", env.RefreshToken)
}

func TestGetCurrent_NoClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/current", nil)
	rec := httptest.NewRecorder()
	NewSessionHandler(&mockSessionService{}).GetCurrent(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetCurrent_HappyPath(t *testing.T) {
	svc := &mockSessionService{}
	svc.On("GetCurrent", mock.Anything, "s1").Return(loggedInSession(), nil)

	req := withClaims(httptest.NewRequest(http.MethodGet, "/v1/sessions/current", nil), "u1", domain.RoleUser, "s1")
	rec := httptest.NewRecorder()
	NewSessionHandler(svc).GetCurrent(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env SessionEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "u1", env.User.ID)
}

func TestLogout_DisablesSession(t *testing.T) {
	svc := &mockSessionService{}
	svc.On("Logout", mock.Anything, "s1").Return(nil)

	req := withClaims(httptest.NewRequest(http.MethodDelete, "/v1/sessions/current", nil), "u1", domain.RoleUser, "s1")
	rec := httptest.NewRecorder()
	NewSessionHandler(svc).Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

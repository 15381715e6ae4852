package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hypideas/identity-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockUserService struct{ mock.Mock }

func (m *mockUserService) Register(ctx context.Context, req domain.SignupRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserService) RegisterWithSession(ctx context.Context, req domain.SignupRequest) (*domain.Session, string, string, error) {
	args := m.Called(ctx, req)
	if s, _ := args.Get(0).(*domain.Session); s != nil {
		return s, args.String(1), args.String(2), args.Error(3)
	}
	return nil, args.String(1), args.String(2), args.Error(3)
}
func (m *mockUserService) List(ctx context.Context, limit int, cursor string) ([]domain.User, string, error) {
	args := m.Called(ctx, limit, cursor)
	return args.Get(0).([]domain.User), args.String(1), args.Error(2)
}
func (m *mockUserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserService) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserService) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *mockUserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	return m.Called(ctx, userID, currentPassword, newPassword).Error(0)
}

// --- tests ---

func TestRegister_InvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/users", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	NewUserHandler(&mockUserService{}).Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_EmailConflict(t *testing.T) {
	svc := &mockUserService{}
	svc.On("RegisterWithSession", mock.Anything, mock.Anything).Return(nil, "", "", domain.ErrConflict)

	req := httptest.NewRequest(http.MethodPost, "/v1/users",
		strings.NewReader(`{"email":"a@b.edu","password":"password123","display_name":"Alice"}`))
	rec := httptest.NewRecorder()
	NewUserHandler(svc).Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_ReturnsSessionAndTokens(t *testing.T) {
	sess := loggedInSession()
	svc := &mockUserService{}
	svc.On("RegisterWithSession", mock.Anything, mock.MatchedBy(func(r domain.SignupRequest) bool {
		return r.Email == "a@b.edu" && r.DisplayName == "Alice Smith"
	})).Return(sess, "jwt-abc", "refresh-abc", nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/users",
		strings.NewReader(`{"email":"a@b.edu","password":"password123","display_name":"Alice Smith"}`))
	rec := httptest.NewRecorder()
	NewUserHandler(svc).Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var env AuthEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "jwt-abc", env.AccessToken)
	assert.Equal(t, "refresh-abc", env.RefreshToken)
	assert.Equal(t, "PhysicsPhD_Nova", env.User.Username)
	svc.AssertExpectations(t)
}

func TestListUsers_CursorPagination(t *testing.T) {
	svc := &mockUserService{}
	svc.On("List", mock.Anything, 2, "c1").Return([]domain.User{
		{UserID: "u1", Username: "A_One", PasswordHash: "$2a$12$x"},
		{UserID: "u2", Username: "B_Two"},
	}, "c2", nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/users?limit=2&cursor=c1", nil)
	rec := httptest.NewRecorder()
	NewUserHandler(svc).List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env PaginatedUsersEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	require.Len(t, env.Data, 2)
	assert.Equal(t, "c2", env.NextCursor)
	assert.NotContains(t, rec.Body.String(), "$2a$12$x")
}

func TestGetUser_NotFound(t *testing.T) {
	svc := &mockUserService{}
	svc.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	req := urlParam(httptest.NewRequest(http.MethodGet, "/v1/users/ghost", nil), "id", "ghost")
	rec := httptest.NewRecorder()
	NewUserHandler(svc).Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUser_OtherUserForbidden(t *testing.T) {
	svc := &mockUserService{}
	req := withClaims(httptest.NewRequest(http.MethodPut, "/v1/users/u2", strings.NewReader(`{}`)), "u1", domain.RoleUser, "s1")
	req = urlParam(req, "id", "u2")
	rec := httptest.NewRecorder()
	NewUserHandler(svc).Update(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUser_NonAdminCannotEscalate(t *testing.T) {
	svc := &mockUserService{}
	svc.On("Update", mock.Anything, "u1", mock.MatchedBy(func(r domain.UpdateUserRequest) bool {
		return r.Role == nil && r.Enable == nil && r.DisplayName != nil
	})).Return(&domain.User{UserID: "u1"}, nil)

	body := `{"display_name":"New Name","role":"admin","enable":false}`
	req := withClaims(httptest.NewRequest(http.MethodPut, "/v1/users/u1", strings.NewReader(body)), "u1", domain.RoleUser, "s1")
	req = urlParam(req, "id", "u1")
	rec := httptest.NewRecorder()
	NewUserHandler(svc).Update(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestUpdateUser_AdminCanSetRole(t *testing.T) {
	svc := &mockUserService{}
	svc.On("Update", mock.Anything, "u2", mock.MatchedBy(func(r domain.UpdateUserRequest) bool {
		return r.Role != nil && *r.Role == domain.RoleModerator
	})).Return(&domain.User{UserID: "u2", Role: domain.RoleModerator}, nil)

	req := withClaims(httptest.NewRequest(http.MethodPut, "/v1/users/u2",
		strings.NewReader(`{"role":"moderator"}`)), "admin-1", domain.RoleAdmin, "s9")
	req = urlParam(req, "id", "u2")
	rec := httptest.NewRecorder()
	NewUserHandler(svc).Update(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestDeleteUser_SelfAllowed(t *testing.T) {
	svc := &mockUserService{}
	svc.On("Delete", mock.Anything, "u1").Return(nil)

	req := withClaims(httptest.NewRequest(http.MethodDelete, "/v1/users/u1", nil), "u1", domain.RoleUser, "s1")
	req = urlParam(req, "id", "u1")
	rec := httptest.NewRecorder()
	NewUserHandler(svc).Delete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestChangePassword_OtherUserForbidden(t *testing.T) {
	svc := &mockUserService{}
	req := withClaims(httptest.NewRequest(http.MethodPut, "/v1/users/u2/password",
		strings.NewReader(`{"current_password":"old","new_password":"newpassword"}`)), "u1", domain.RoleUser, "s1")
	req = urlParam(req, "id", "u2")
	rec := httptest.NewRecorder()
	NewUserHandler(svc).ChangePassword(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestChangePassword_ShortNewPassword(t *testing.T) {
	req := withClaims(httptest.NewRequest(http.MethodPut, "/v1/users/u1/password",
		strings.NewReader(`{"current_password":"old","new_password":"short"}`)), "u1", domain.RoleUser, "s1")
	req = urlParam(req, "id", "u1")
	rec := httptest.NewRecorder()
	NewUserHandler(&mockUserService{}).ChangePassword(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChangePassword_HappyPath(t *testing.T) {
	svc := &mockUserService{}
	svc.On("ChangePassword", mock.Anything, "u1", "oldpassword", "newpassword1").Return(nil)

	req := withClaims(httptest.NewRequest(http.MethodPut, "/v1/users/u1/password",
		strings.NewReader(`{"current_password":"oldpassword","new_password":"newpassword1"}`)), "u1", domain.RoleUser, "s1")
	req = urlParam(req, "id", "u1")
	rec := httptest.NewRecorder()
	NewUserHandler(svc).ChangePassword(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

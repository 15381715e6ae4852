package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hypideas/identity-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPError_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrConflict, http.StatusConflict},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrBadRequest, http.StatusBadRequest},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
		{fmt.Errorf("email already registered: %w", domain.ErrConflict), http.StatusConflict},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		httpError(rec, c.err)
		assert.Equal(t, c.want, rec.Code, "err: %v", c.err)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusBadRequest, "nope")

	var env MessageEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "nope", env.Error)
	assert.Empty(t, env.Message)
}

func TestToSafeUser_HidesCredentials(t *testing.T) {
	u := &domain.User{
		UserID:       "u1",
		Email:        "a@b.edu",
		Username:     "QuantumResearcher_Iris",
		PasswordHash: "$2a$12$secret",
		Role:         domain.RoleUser,
	}
	safe := toSafeUser(u)

	raw, err := json.Marshal(safe)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.Contains(t, string(raw), "QuantumResearcher_Iris")
	assert.Nil(t, toSafeUser(nil))
}

func TestToSafeSession_HidesRefreshToken(t *testing.T) {
	s := &domain.Session{
		SessionID:    "s1",
		RefreshToken: "deadbeef",
		ExpiresAt:    time.Now().Add(time.Hour),
		CreatedAt:    time.Now(),
	}
	raw, err := json.Marshal(toSafeSession(s))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "deadbeef")
	assert.Nil(t, toSafeSession(nil))
}

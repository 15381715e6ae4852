package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hypideas/identity-api/internal/application/account"
	"github.com/hypideas/identity-api/internal/domain"
)

// MockAuthHandler exposes the stubbed account endpoints. Only mounted when
// MOCK_AUTH is set; see config.Config.MockAuth.
type MockAuthHandler struct {
	svc account.Service
}

func NewMockAuthHandler(svc account.Service) *MockAuthHandler {
	return &MockAuthHandler{svc: svc}
}

func (h *MockAuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *MockAuthHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.svc.CreateAccount(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *MockAuthHandler) IssueOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	code, err := h.svc.IssueOTP(r.Context(), req.Phone)
	if err != nil {
		httpError(w, err)
		return
	}
	// The code is returned in the response so frontend flows can complete
	// without a real SMS channel.
	writeJSON(w, http.StatusOK, map[string]string{"code": code})
}

func (h *MockAuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": h.svc.VerifyOTP(r.Context(), req.Phone, req.Code)})
}

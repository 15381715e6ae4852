package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hypideas/identity-api/internal/application/avatar"
	"github.com/hypideas/identity-api/internal/transport/http/middleware"
)

// AvatarHandler handles profile image upload and removal.
type AvatarHandler struct {
	svc avatar.Service
}

func NewAvatarHandler(svc avatar.Service) *AvatarHandler {
	return &AvatarHandler{svc: svc}
}

func (h *AvatarHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		Filename string `json:"filename"`
		Data     string `json:"data"` // base64-encoded image bytes
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Filename == "" || req.Data == "" {
		writeError(w, http.StatusBadRequest, "filename and data required")
		return
	}
	f, url, err := h.svc.Upload(r.Context(), claims.UserID, req.Filename, req.Data)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"file": f, "url": url})
}

func (h *AvatarHandler) Remove(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Remove(r.Context(), claims.UserID); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "avatar removed"})
}

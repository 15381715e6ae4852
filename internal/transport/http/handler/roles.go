package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hypideas/identity-api/internal/application/role"
)

// RoleHandler exposes the fixed role table.
type RoleHandler struct {
	eval role.Evaluator
}

func NewRoleHandler(eval role.Evaluator) *RoleHandler {
	return &RoleHandler{eval: eval}
}

func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.eval.List())
}

func (h *RoleHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	perms := h.eval.Permissions(chi.URLParam(r, "name"))
	if perms == nil {
		writeError(w, http.StatusNotFound, "unknown role")
		return
	}
	writeJSON(w, http.StatusOK, perms)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hypideas/identity-api/internal/application/interest"
	"github.com/hypideas/identity-api/internal/domain"
)

// InterestHandler handles the interest catalog endpoints.
type InterestHandler struct {
	svc interest.Service
}

func NewInterestHandler(svc interest.Service) *InterestHandler {
	return &InterestHandler{svc: svc}
}

func (h *InterestHandler) List(w http.ResponseWriter, r *http.Request) {
	interests, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interests)
}

func (h *InterestHandler) Get(w http.ResponseWriter, r *http.Request) {
	in, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (h *InterestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.InterestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in, err := h.svc.Create(r.Context(), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

func (h *InterestHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input domain.InterestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (h *InterestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "interest deleted"})
}

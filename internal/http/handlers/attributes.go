package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sokol111/ecommerce-admin-gateway/internal/models"
	"github.com/sokol111/ecommerce-admin-gateway/internal/problem"
)

func (h *Handlers) ListAttributes(w http.ResponseWriter, r *http.Request) {
	p, err := listParams(r)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	resp, err := h.Clients.Attributes.List(r.Context(), p)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) GetAttributeByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		problem.WriteError(w, r, problem.New(problem.KindValidation, "Missing id"))
		return
	}

	resp, err := h.Clients.Attributes.ByID(r.Context(), id)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) CreateAttribute(w http.ResponseWriter, r *http.Request) {
	var in models.CreateAttributeRequest
	if err := decodeStrict(r, &in); err != nil {
		problem.WriteError(w, r, errInvalidBody())
		return
	}

	resp, err := h.Clients.Attributes.Create(r.Context(), in)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handlers) UpdateAttribute(w http.ResponseWriter, r *http.Request) {
	var in models.UpdateAttributeRequest
	if err := decodeStrict(r, &in); err != nil {
		problem.WriteError(w, r, errInvalidBody())
		return
	}
	in.ID = chi.URLParam(r, "id")

	resp, err := h.Clients.Attributes.Update(r.Context(), in)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

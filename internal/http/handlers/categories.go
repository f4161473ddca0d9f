package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sokol111/ecommerce-admin-gateway/internal/models"
	"github.com/sokol111/ecommerce-admin-gateway/internal/problem"
)

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	p, err := listParams(r)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	resp, err := h.Clients.Categories.List(r.Context(), p)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		problem.WriteError(w, r, problem.New(problem.KindValidation, "Missing id"))
		return
	}

	resp, err := h.Clients.Categories.ByID(r.Context(), id)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in models.CreateCategoryRequest
	if err := decodeStrict(r, &in); err != nil {
		problem.WriteError(w, r, errInvalidBody())
		return
	}

	resp, err := h.Clients.Categories.Create(r.Context(), in)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var in models.UpdateCategoryRequest
	if err := decodeStrict(r, &in); err != nil {
		problem.WriteError(w, r, errInvalidBody())
		return
	}
	in.ID = chi.URLParam(r, "id")

	resp, err := h.Clients.Categories.Update(r.Context(), in)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

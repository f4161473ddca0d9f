package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sokol111/ecommerce-admin-gateway/internal/models"
	"github.com/sokol111/ecommerce-admin-gateway/internal/problem"
)

// listParams — разбор общих query-параметров листинга.
func listParams(r *http.Request) (models.ListParams, error) {
	var p models.ListParams

	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, problem.New(problem.KindValidation, "Invalid page")
		}
		p.Page = n
	}

	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, problem.New(problem.KindValidation, "Invalid size")
		}
		p.Size = n
	}

	p.Sort = q.Get("sort")
	p.Order = q.Get("order")
	p.CategoryID = q.Get("categoryId")

	if v := q.Get("enabled"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, problem.New(problem.KindValidation, "Invalid enabled")
		}
		p.Enabled = &b
	}

	return p, nil
}

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	p, err := listParams(r)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	resp, err := h.Clients.Products.List(r.Context(), p)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		problem.WriteError(w, r, problem.New(problem.KindValidation, "Missing id"))
		return
	}

	resp, err := h.Clients.Products.ByID(r.Context(), id)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in models.CreateProductRequest
	if err := decodeStrict(r, &in); err != nil {
		problem.WriteError(w, r, errInvalidBody())
		return
	}

	resp, err := h.Clients.Products.Create(r.Context(), in)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in models.UpdateProductRequest
	if err := decodeStrict(r, &in); err != nil {
		problem.WriteError(w, r, errInvalidBody())
		return
	}
	in.ID = chi.URLParam(r, "id")

	resp, err := h.Clients.Products.Update(r.Context(), in)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

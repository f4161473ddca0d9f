package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sokol111/ecommerce-admin-gateway/internal/models"
	"github.com/sokol111/ecommerce-admin-gateway/internal/problem"
)

// Presign — одноразовый URL для прямой загрузки файла в хранилище;
// сам файл через шлюз не проходит.
func (h *Handlers) Presign(w http.ResponseWriter, r *http.Request) {
	var in models.PresignRequest
	if err := decodeStrict(r, &in); err != nil {
		problem.WriteError(w, r, errInvalidBody())
		return
	}

	resp, err := h.Clients.Images.Presign(r.Context(), in)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) ConfirmUpload(w http.ResponseWriter, r *http.Request) {
	var in models.ConfirmRequest
	if err := decodeStrict(r, &in); err != nil {
		problem.WriteError(w, r, errInvalidBody())
		return
	}

	resp, err := h.Clients.Images.Confirm(r.Context(), in)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) PromoteImages(w http.ResponseWriter, r *http.Request) {
	var in models.PromoteRequest
	if err := decodeStrict(r, &in); err != nil {
		problem.WriteError(w, r, errInvalidBody())
		return
	}

	resp, err := h.Clients.Images.Promote(r.Context(), in)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) GetDeliveryURL(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		problem.WriteError(w, r, problem.New(problem.KindValidation, "Missing id"))
		return
	}

	width := 0
	if v := r.URL.Query().Get("w"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			problem.WriteError(w, r, problem.New(problem.KindValidation, "Invalid w"))
			return
		}
		width = n
	}

	quality := 0
	if v := r.URL.Query().Get("quality"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			problem.WriteError(w, r, problem.New(problem.KindValidation, "Invalid quality"))
			return
		}
		quality = n
	}

	resp, err := h.Clients.Images.DeliveryURL(r.Context(), id, width, quality)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

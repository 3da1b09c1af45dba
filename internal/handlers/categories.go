package handlers

import (
	"net/http"

	"budgetbook/internal/models"
	"budgetbook/internal/query"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type categoryRequest struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

// ListCategories lists categories, shared across users. A type filter also
// returns the general categories.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	q := query.ParseListQuery(r.URL.Query())

	categories, err := h.db.ListCategories(q)
	if err != nil {
		h.serverError(w, "ListCategories", err)
		return
	}

	h.respondData(w, categories)
}

// CreateCategory creates a category.
func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, "Invalid request body")
		return
	}
	if req.Name == nil || *req.Name == "" {
		h.respondError(w, "Name is required")
		return
	}

	category := &models.Category{
		ID:   uuid.NewString(),
		Name: *req.Name,
		Type: "general",
	}
	if req.Type != nil && *req.Type != "" {
		category.Type = *req.Type
	}

	if err := h.db.CreateCategory(category); err != nil {
		h.serverError(w, "CreateCategory", err)
		return
	}

	h.respondData(w, category)
}

// GetCategory returns one category.
func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.db.GetCategory(mux.Vars(r)["id"])
	if isNotFound(err) {
		h.respondError(w, "Category not found")
		return
	}
	if err != nil {
		h.serverError(w, "GetCategory", err)
		return
	}

	h.respondData(w, category)
}

// UpdateCategory applies a partial update to a category.
func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, "Invalid request body")
		return
	}

	category, err := h.db.GetCategory(mux.Vars(r)["id"])
	if isNotFound(err) {
		h.respondError(w, "Category not found")
		return
	}
	if err != nil {
		h.serverError(w, "UpdateCategory", err)
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Type != nil {
		category.Type = *req.Type
	}

	if err := h.db.UpdateCategory(category); err != nil {
		h.serverError(w, "UpdateCategory", err)
		return
	}

	h.respondData(w, category)
}

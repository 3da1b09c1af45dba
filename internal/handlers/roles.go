package handlers

import (
	"net/http"

	"budgetbook/internal/models"
	"budgetbook/internal/query"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type roleRequest struct {
	Name *string `json:"name"`
	Code *string `json:"code"`
}

// ListRoles lists roles. The keyword matches name or code.
func (h *Handlers) ListRoles(w http.ResponseWriter, r *http.Request) {
	q := query.ParseListQuery(r.URL.Query())

	roles, err := h.db.ListRoles(q)
	if err != nil {
		h.serverError(w, "ListRoles", err)
		return
	}

	h.respondData(w, roles)
}

// CreateRole creates a role.
func (h *Handlers) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, "Invalid request body")
		return
	}
	if req.Name == nil || req.Code == nil || *req.Name == "" || *req.Code == "" {
		h.respondError(w, "Name and code are required")
		return
	}

	role := &models.Role{
		ID:   uuid.NewString(),
		Name: *req.Name,
		Code: *req.Code,
	}

	if err := h.db.CreateRole(role); err != nil {
		h.respondError(w, "Code already exist")
		return
	}

	h.respondData(w, role)
}

// GetRole returns one role.
func (h *Handlers) GetRole(w http.ResponseWriter, r *http.Request) {
	role, err := h.db.GetRole(mux.Vars(r)["id"])
	if isNotFound(err) {
		h.respondError(w, "Role not found")
		return
	}
	if err != nil {
		h.serverError(w, "GetRole", err)
		return
	}

	h.respondData(w, role)
}

// UpdateRole applies a partial update to a role.
func (h *Handlers) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, "Invalid request body")
		return
	}

	role, err := h.db.GetRole(mux.Vars(r)["id"])
	if isNotFound(err) {
		h.respondError(w, "Role not found")
		return
	}
	if err != nil {
		h.serverError(w, "UpdateRole", err)
		return
	}

	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.Code != nil {
		role.Code = *req.Code
	}

	if err := h.db.UpdateRole(role); err != nil {
		h.serverError(w, "UpdateRole", err)
		return
	}

	h.respondData(w, role)
}

package handlers

import (
	"net/http"
	"strings"

	"budgetbook/internal/auth"
	"budgetbook/internal/models"
	"budgetbook/internal/query"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type userRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	RoleID      *string `json:"roleId"`
	SystemAdmin *bool   `json:"systemAdmin"`
}

// ListUsers lists users with a pagination envelope. The keyword matches
// name or email.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := query.ParseListQuery(r.URL.Query())

	users, total, err := h.db.ListUsers(q)
	if err != nil {
		h.serverError(w, "ListUsers", err)
		return
	}

	h.respondPage(w, users, query.Paginate(q, total))
}

// CreateUser creates a user from the admin surface.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, "Invalid request body")
		return
	}
	if req.Name == nil || req.Email == nil || req.Password == nil ||
		*req.Name == "" || *req.Email == "" || *req.Password == "" {
		h.respondError(w, "Name, email and password are required")
		return
	}

	email := strings.TrimSpace(*req.Email)
	if _, err := h.db.GetUserByEmail(email); err == nil {
		h.respondError(w, "Email already exist")
		return
	}

	hash, err := auth.HashPassword(*req.Password)
	if err != nil {
		h.serverError(w, "CreateUser", err)
		return
	}

	user := &models.User{
		ID:           uuid.NewString(),
		RoleID:       req.RoleID,
		Name:         *req.Name,
		Email:        email,
		PasswordHash: hash,
	}
	if req.SystemAdmin != nil {
		user.SystemAdmin = *req.SystemAdmin
	}

	if err := h.db.CreateUser(user); err != nil {
		h.serverError(w, "CreateUser", err)
		return
	}

	h.respondData(w, user)
}

// GetUser returns one user.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.db.GetUser(mux.Vars(r)["id"])
	if isNotFound(err) {
		h.respondError(w, "User not found")
		return
	}
	if err != nil {
		h.serverError(w, "GetUser", err)
		return
	}

	h.respondData(w, user)
}

// UpdateUser applies a partial update; a supplied password is re-hashed.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, "Invalid request body")
		return
	}

	user, err := h.db.GetUser(mux.Vars(r)["id"])
	if isNotFound(err) {
		h.respondError(w, "User not found")
		return
	}
	if err != nil {
		h.serverError(w, "UpdateUser", err)
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.RoleID != nil {
		user.RoleID = req.RoleID
	}
	if req.SystemAdmin != nil {
		user.SystemAdmin = *req.SystemAdmin
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			h.serverError(w, "UpdateUser", err)
			return
		}
		user.PasswordHash = hash
	}

	if err := h.db.UpdateUser(user); err != nil {
		h.serverError(w, "UpdateUser", err)
		return
	}

	h.respondData(w, user)
}

// DeleteUser removes one user by id.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.db.GetUser(mux.Vars(r)["id"])
	if isNotFound(err) {
		h.respondError(w, "User not found")
		return
	}
	if err != nil {
		h.serverError(w, "DeleteUser", err)
		return
	}

	if err := h.db.DeleteUser(user.ID); err != nil {
		h.serverError(w, "DeleteUser", err)
		return
	}

	h.respondData(w, user)
}

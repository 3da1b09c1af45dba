package handlers

import (
	"net/http"

	"budgetbook/internal/models"
	"budgetbook/internal/query"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type accountRequest struct {
	Name    *string  `json:"name"`
	Type    *string  `json:"type"`
	Balance *float64 `json:"balance"`
}

// ListAccounts lists the caller's accounts.
func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	q := query.ParseListQuery(r.URL.Query())

	accounts, err := h.db.ListAccounts(h.sessionUserID(r), q)
	if err != nil {
		h.serverError(w, "ListAccounts", err)
		return
	}

	h.respondData(w, accounts)
}

// CreateAccount creates an account owned by the caller.
func (h *Handlers) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, "Invalid request body")
		return
	}
	if req.Name == nil || *req.Name == "" {
		h.respondError(w, "Name is required")
		return
	}

	account := &models.Account{
		ID:     uuid.NewString(),
		UserID: h.sessionUserID(r),
		Name:   *req.Name,
	}
	if req.Type != nil {
		account.Type = *req.Type
	}
	if req.Balance != nil {
		account.Balance = *req.Balance
	}

	if err := h.db.CreateAccount(account); err != nil {
		h.serverError(w, "CreateAccount", err)
		return
	}

	h.respondData(w, account)
}

// GetAccount returns one of the caller's accounts.
func (h *Handlers) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.db.GetAccount(mux.Vars(r)["id"], h.sessionUserID(r))
	if isNotFound(err) {
		h.respondError(w, "Account not found")
		return
	}
	if err != nil {
		h.serverError(w, "GetAccount", err)
		return
	}

	h.respondData(w, account)
}

// UpdateAccount applies a partial update to one of the caller's accounts.
func (h *Handlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, "Invalid request body")
		return
	}

	account, err := h.db.GetAccount(mux.Vars(r)["id"], h.sessionUserID(r))
	if isNotFound(err) {
		h.respondError(w, "Account not found")
		return
	}
	if err != nil {
		h.serverError(w, "UpdateAccount", err)
		return
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Type != nil {
		account.Type = *req.Type
	}
	if req.Balance != nil {
		account.Balance = *req.Balance
	}

	if err := h.db.UpdateAccount(account); err != nil {
		h.serverError(w, "UpdateAccount", err)
		return
	}

	h.respondData(w, account)
}

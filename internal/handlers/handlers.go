package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"budgetbook/internal/auth"
	"budgetbook/internal/config"
	"budgetbook/internal/models"
	"budgetbook/internal/storage"
)

// Context key type to avoid collisions.
type contextKey string

// ClaimsContextKey is the context key for the verified session claims.
const ClaimsContextKey contextKey = "claims"

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	db  *storage.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *storage.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// SessionMiddleware reconstructs session claims from the request token when
// one is present. Requests without a valid token pass through with no
// claims; owner-scoped queries then run with an empty owner id and match
// nothing.
func (h *Handlers) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := auth.TokenFromRequest(r); token != "" {
			if claims, err := auth.ValidateToken([]byte(h.cfg.JWTSecret), token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ClaimsContextKey, claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFromRequest retrieves the session claims from request context.
func ClaimsFromRequest(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(ClaimsContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

// sessionUserID is the owner id injected into scoped queries. Empty when no
// session is present.
func (h *Handlers) sessionUserID(r *http.Request) string {
	if claims := ClaimsFromRequest(r); claims != nil {
		return claims.UserID
	}
	return ""
}

// envelope is the JSON response shape shared by every endpoint.
type envelope struct {
	Data       any                `json:"data,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
	Error      string             `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, e envelope) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(e); err != nil {
		log.Printf("Response encoding error: %v", err)
	}
}

// respondData writes a {data} envelope.
func (h *Handlers) respondData(w http.ResponseWriter, data any) {
	writeJSON(w, envelope{Data: data})
}

// respondPage writes a {data, pagination} envelope.
func (h *Handlers) respondPage(w http.ResponseWriter, data any, p models.Pagination) {
	writeJSON(w, envelope{Data: data, Pagination: &p})
}

// respondError writes an {error} envelope. Business failures keep HTTP 200;
// the error field is the contract.
func (h *Handlers) respondError(w http.ResponseWriter, msg string) {
	writeJSON(w, envelope{Error: msg})
}

// serverError logs an unexpected failure and returns the generic response.
func (h *Handlers) serverError(w http.ResponseWriter, op string, err error) {
	log.Printf("%s error: %v", op, err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// isNotFound reports whether err means the row does not exist.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

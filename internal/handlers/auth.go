package handlers

import (
	"net/http"
	"strings"

	"budgetbook/internal/auth"
	"budgetbook/internal/models"

	"github.com/google/uuid"
)

const defaultRoleCode = "user"

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a user with the default role. Duplicate emails
// short-circuit with the error envelope and insert nothing.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		h.respondError(w, "Name, email and password are required")
		return
	}

	if _, err := h.db.GetUserByEmail(req.Email); err == nil {
		h.respondError(w, "Email already exist")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.serverError(w, "Register", err)
		return
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if role, err := h.db.GetRoleByCode(defaultRoleCode); err == nil {
		user.RoleID = &role.ID
	}

	if err := h.db.CreateUser(user); err != nil {
		h.serverError(w, "Register", err)
		return
	}

	h.respondData(w, user)
}

// Login verifies credentials and issues a signed session token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, "Invalid request body")
		return
	}

	user, err := h.db.GetUserByEmail(strings.TrimSpace(req.Email))
	if err != nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		h.respondError(w, "Email or password is incorrect")
		return
	}

	h.issueToken(w, user)
}

// GoogleLogin is the social branch of the sign-in chain: the user is looked
// up by profile email and created on first login.
func (h *Handlers) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		h.respondError(w, "Email is required")
		return
	}

	user, err := h.db.GetUserByEmail(req.Email)
	if isNotFound(err) {
		user, err = h.createSocialUser(req)
	}
	if err != nil {
		h.serverError(w, "GoogleLogin", err)
		return
	}

	h.issueToken(w, user)
}

func (h *Handlers) createSocialUser(req googleLoginRequest) (*models.User, error) {
	// Social accounts carry no credential; store a random one so the row
	// can never be logged into with a guessable password.
	password, err := auth.RandomPassword()
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = req.Email
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if role, err := h.db.GetRoleByCode(defaultRoleCode); err == nil {
		user.RoleID = &role.ID
	}

	if err := h.db.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (h *Handlers) issueToken(w http.ResponseWriter, user *models.User) {
	var roleCode string
	if user.RoleID != nil {
		if role, err := h.db.GetRole(*user.RoleID); err == nil {
			roleCode = role.Code
		}
	}

	token, err := auth.GenerateToken([]byte(h.cfg.JWTSecret), user, roleCode, h.cfg.JWTExpiration)
	if err != nil {
		h.serverError(w, "Login", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.JWTExpiration.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	h.respondData(w, loginResponse{Token: token, User: user})
}

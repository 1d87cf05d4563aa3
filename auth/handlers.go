package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/drimcity/drimcity-go/web"
)

// CreateAccountRequest is the account registration payload.
type CreateAccountRequest struct {
	Login    string `json:"login" validate:"required,min=3,max=32,login_chars"`
	Password string `json:"password" validate:"required,min=8,max=512,has_uppercase,has_lowercase,has_digit,has_special"`
}

// AuthenticateRequest is the login payload.
type AuthenticateRequest struct {
	Login    string `json:"login" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8,max=512"`
}

// AccountResponse is returned on successful account creation.
type AccountResponse struct {
	Login     string    `json:"login"`
	CreatedAt time.Time `json:"createdAt"`
}

// TokenResponse carries the signed bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// Handlers serves the auth endpoints.
type Handlers struct {
	service  *Service
	validate *validator.Validate
}

// NewHandlers creates auth Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service, validate: newValidator()}
}

// Register mounts the auth routes.
func (h *Handlers) Register(r chi.Router) {
	r.Post("/auth/accounts", h.handleCreateAccount)
	r.Post("/auth", h.handleAuthenticate)
}

func (h *Handlers) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.RespondError(w, r, err)
		return
	}
	defer r.Body.Close()

	if err := web.Validate(h.validate, req, createAccountRules); err != nil {
		web.RespondError(w, r, err)
		return
	}

	account, err := h.service.CreateAccount(r.Context(), req.Login, req.Password)
	if err != nil {
		web.RespondError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/accounts/%s", account.Login))
	web.RespondJSON(w, http.StatusCreated, AccountResponse{
		Login:     account.Login,
		CreatedAt: account.CreatedAt,
	})
}

func (h *Handlers) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req AuthenticateRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.RespondError(w, r, err)
		return
	}
	defer r.Body.Close()

	if err := web.Validate(h.validate, req, authenticateRules); err != nil {
		web.RespondError(w, r, err)
		return
	}

	token, err := h.service.Authenticate(r.Context(), req.Login, req.Password)
	if err != nil {
		web.RespondError(w, r, err)
		return
	}

	web.RespondJSON(w, http.StatusOK, TokenResponse{Token: token})
}

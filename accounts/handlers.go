package accounts

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/drimcity/drimcity-go/apperror"
	"github.com/drimcity/drimcity-go/web"
)

// ProfileResponse is the public view of an account.
type ProfileResponse struct {
	Login     string    `json:"login"`
	CreatedAt time.Time `json:"createdAt"`
}

// Handlers serves account profile requests.
type Handlers struct {
	store Store
}

// NewHandlers creates account Handlers on the given store.
func NewHandlers(store Store) *Handlers {
	return &Handlers{store: store}
}

// Register mounts the account routes.
func (h *Handlers) Register(r chi.Router) {
	r.Get("/accounts/{login}", h.handleGetProfile)
}

// GetProfile returns the public profile for a login, case-insensitively.
func (h *Handlers) GetProfile(ctx context.Context, login string) (*Account, error) {
	account, err := h.store.FindByLogin(ctx, strings.ToLower(login))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NewNotFoundError("Account not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get account", err)
	}
	return account, nil
}

func (h *Handlers) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")

	account, err := h.GetProfile(r.Context(), login)
	if err != nil {
		if apperror.IsNotFound(err) {
			// Absent profiles answer with a bare 404, no problem payload.
			w.WriteHeader(http.StatusNotFound)
			return
		}
		web.RespondError(w, r, err)
		return
	}

	web.RespondJSON(w, http.StatusOK, ProfileResponse{
		Login:     account.Login,
		CreatedAt: account.CreatedAt,
	})
}

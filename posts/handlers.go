package posts

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/drimcity/drimcity-go/apperror"
	"github.com/drimcity/drimcity-go/auth"
	"github.com/drimcity/drimcity-go/web"
)

// CreatePostRequest is the post creation payload. The author comes from the
// bearer token, never from the body.
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,max=300"`
	Content string `json:"content" validate:"required,max=100000"`
}

// CreateCommentRequest is the comment creation payload.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}

// Handlers serves the posts and comments endpoints.
type Handlers struct {
	service     *Service
	validate    *validator.Validate
	requireAuth func(next http.Handler) http.Handler
}

// NewHandlers creates posts Handlers. requireAuth guards the write endpoints.
func NewHandlers(service *Service, requireAuth func(next http.Handler) http.Handler) *Handlers {
	return &Handlers{
		service:     service,
		validate:    web.NewValidator(),
		requireAuth: requireAuth,
	}
}

// Register mounts the posts routes. Reads are public; writes require a
// verified bearer token.
func (h *Handlers) Register(r chi.Router) {
	r.Get("/posts", h.handleGetPosts)
	r.Get("/posts/{slug}/comments", h.handleGetComments)
	r.With(h.requireAuth).Post("/posts", h.handleCreatePost)
	r.With(h.requireAuth).Post("/posts/{slug}/comments", h.handleCreateComment)
}

func (h *Handlers) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		web.RespondError(w, r, apperror.NewUnauthorizedError("Missing identity", nil))
		return
	}

	var req CreatePostRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.RespondError(w, r, err)
		return
	}
	defer r.Body.Close()

	if err := web.Validate(h.validate, req, createPostRules); err != nil {
		web.RespondError(w, r, err)
		return
	}

	post, err := h.service.CreatePost(r.Context(), identity.AccountID, req.Title, req.Content)
	if err != nil {
		web.RespondError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/posts/%s", post.Slug))
	web.RespondJSON(w, http.StatusCreated, post)
}

func (h *Handlers) handleGetPosts(w http.ResponseWriter, r *http.Request) {
	pageSize := 0
	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			web.RespondError(w, r, apperror.NewValidationError(apperror.FieldError{
				Field:   "pageSize",
				Message: "Page size must be an integer",
				Code:    CodePageSizeMustBeInteger,
			}))
			return
		}
		if parsed < 0 {
			web.RespondError(w, r, apperror.NewValidationError(apperror.FieldError{
				Field:   "pageSize",
				Message: "Page size must be positive",
				Code:    CodePageSizeMustBePositive,
			}))
			return
		}
		pageSize = parsed
	}

	page, err := h.service.ListPosts(r.Context(), EffectivePageSize(pageSize), r.URL.Query().Get("pageToken"))
	if err != nil {
		web.RespondError(w, r, err)
		return
	}

	web.RespondJSON(w, http.StatusOK, page)
}

func (h *Handlers) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		web.RespondError(w, r, apperror.NewUnauthorizedError("Missing identity", nil))
		return
	}

	slug := chi.URLParam(r, "slug")

	var req CreateCommentRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.RespondError(w, r, err)
		return
	}
	defer r.Body.Close()

	if err := web.Validate(h.validate, req, createCommentRules); err != nil {
		web.RespondError(w, r, err)
		return
	}

	comment, err := h.service.CreateComment(r.Context(), identity.AccountID, slug, req.Content)
	if err != nil {
		if apperror.IsNotFound(err) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		web.RespondError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/posts/%s/comments/%d", slug, comment.ID))
	web.RespondJSON(w, http.StatusCreated, comment)
}

func (h *Handlers) handleGetComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.ListComments(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if apperror.IsNotFound(err) {
			// Unknown slug answers with a bare 404, no problem payload.
			w.WriteHeader(http.StatusNotFound)
			return
		}
		web.RespondError(w, r, err)
		return
	}

	web.RespondJSON(w, http.StatusOK, comments)
}

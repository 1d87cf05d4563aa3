package posts

import (
	"context"
	"errors"
	"time"

	"github.com/drimcity/drimcity-go/apperror"
)

// Service implements the posts business logic on top of the Store.
type Service struct {
	store Store
}

// NewService creates a posts Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreatePost creates a post authored by the given account. The slug is
// derived from the title; identical titles still get distinct slugs from the
// random suffix.
func (s *Service) CreatePost(ctx context.Context, authorID int, title, content string) (*Post, error) {
	postSlug, err := CreateSlug(title)
	if err != nil {
		if errors.Is(err, ErrEmptySlugText) {
			return nil, apperror.NewValidationError(apperror.FieldError{
				Field:   "title",
				Message: "Title cannot be empty",
				Code:    CodeTitleRequired,
			})
		}
		return nil, apperror.NewInternalError("failed to create slug", err)
	}

	post := &Post{
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		AuthorID:  authorID,
		Slug:      postSlug,
	}

	if err := s.store.InsertPost(ctx, post); err != nil {
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}

	return post, nil
}

// EffectivePageSize applies the listing page-size policy: a missing or zero
// request uses the default, anything above the maximum is clamped, and other
// values pass through as-is. Negative sizes are rejected by the handler
// before this is called; zero and missing deliberately mean "default" rather
// than "invalid".
func EffectivePageSize(requested int) int {
	switch {
	case requested == 0:
		return DefaultPageSize
	case requested > MaximumPageSize:
		return MaximumPageSize
	default:
		return requested
	}
}

// ListPosts returns one page of posts ordered newest-first, resuming at the
// cursor's offset. It fetches one row beyond the page size to learn whether
// more remain; when they do, the page is truncated and the next cursor's
// offset advances by the page size. Listed content is ellipsized at 2000
// characters.
func (s *Service) ListPosts(ctx context.Context, pageSize int, pageToken string) (*PostPage, error) {
	cursor := PageCursor{}
	if pageToken != "" {
		var err error
		cursor, err = DecodeCursor(pageToken)
		if err != nil {
			return nil, apperror.NewValidationError(apperror.FieldError{
				Field:   "pageToken",
				Message: "Page token is malformed",
				Code:    CodePageTokenMalformed,
			})
		}
	}

	rows, err := s.store.ListPosts(ctx, cursor.Skip, pageSize+1)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}

	page := &PostPage{}
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		next := EncodeCursor(PageCursor{Skip: cursor.Skip + pageSize})
		page.NextPageToken = &next
	}

	page.Posts = make([]Post, len(rows))
	for i, row := range rows {
		row.Content = ellipsize(row.Content, listContentMaxLength)
		page.Posts[i] = row
	}

	return page, nil
}

// CreateComment attaches a comment to the post with the given slug. The
// referenced post must exist; a missing post is NotFound, never a silent
// orphan.
func (s *Service) CreateComment(ctx context.Context, authorID int, slug, content string) (*Comment, error) {
	postID, err := s.store.FindPostIDBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, apperror.NewNotFoundError("Post not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to resolve post", err)
	}

	comment := &Comment{
		Content:   content,
		CreatedAt: time.Now().UTC(),
		AuthorID:  authorID,
		PostID:    postID,
	}

	if err := s.store.InsertComment(ctx, comment); err != nil {
		return nil, apperror.NewDatabaseError("failed to create comment", err)
	}

	return comment, nil
}

// ListComments returns all comments of the post with the given slug, or
// NotFound when the slug does not resolve.
func (s *Service) ListComments(ctx context.Context, slug string) ([]Comment, error) {
	postID, err := s.store.FindPostIDBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, apperror.NewNotFoundError("Post not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to resolve post", err)
	}

	comments, err := s.store.ListComments(ctx, postID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list comments", err)
	}
	if comments == nil {
		comments = []Comment{}
	}

	return comments, nil
}

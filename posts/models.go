// Package posts implements posts and their comments: creation, listing with
// cursor pagination, slug generation and the datastore access behind them.
package posts

import "time"

// Field bounds enforced by request validation.
const (
	TitleMaxLength          = 300
	ContentMaxLength        = 100_000
	CommentContentMaxLength = 10_000
)

// Listing page-size policy.
const (
	DefaultPageSize = 10
	MaximumPageSize = 1000
)

// listContentMaxLength is where listed post content gets ellipsized.
const listContentMaxLength = 2000

// Post is an article. The slug is always derived from the title at creation
// time and never user-supplied; posts are immutable after creation.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	AuthorID  int       `json:"authorId"`
	Slug      string    `json:"slug"`
}

// Comment belongs to exactly one post and cannot exist without it.
type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	AuthorID  int       `json:"authorId"`
	PostID    int       `json:"-"`
}

// PostPage is one page of the post listing. NextPageToken is null once the
// end of the stream is reached.
type PostPage struct {
	Posts         []Post  `json:"posts"`
	NextPageToken *string `json:"nextPageToken"`
}

// ellipsize truncates text to max characters and appends a literal "..."
// whenever the stored content is longer. No word-boundary awareness.
func ellipsize(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

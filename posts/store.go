package posts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPostNotFound means no post matches the given slug.
var ErrPostNotFound = errors.New("post not found")

// Store is the datastore boundary for posts and comments.
type Store interface {
	// InsertPost persists a new post and fills in its generated ID.
	InsertPost(ctx context.Context, post *Post) error
	// ListPosts returns up to limit posts ordered newest-first, starting at
	// the given record offset.
	ListPosts(ctx context.Context, skip, limit int) ([]Post, error)
	// FindPostIDBySlug resolves a slug to a post id, or ErrPostNotFound.
	FindPostIDBySlug(ctx context.Context, slug string) (int, error)
	// InsertComment persists a new comment and fills in its generated ID. The
	// post foreign key guarantees the parent exists.
	InsertComment(ctx context.Context, comment *Comment) error
	// ListComments returns all comments of a post.
	ListComments(ctx context.Context, postID int) ([]Comment, error)
}

// PgStore is the PostgreSQL-backed Store.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a PgStore on the given pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) InsertPost(ctx context.Context, post *Post) error {
	query := `INSERT INTO posts (title, content, created_at, author_id, slug)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING id`
	return s.pool.QueryRow(ctx, query,
		post.Title, post.Content, post.CreatedAt, post.AuthorID, post.Slug,
	).Scan(&post.ID)
}

func (s *PgStore) ListPosts(ctx context.Context, skip, limit int) ([]Post, error) {
	query := `SELECT id, title, content, created_at, author_id, slug
              FROM posts
              ORDER BY created_at DESC
              OFFSET $1 LIMIT $2`
	rows, err := s.pool.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.AuthorID, &p.Slug); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *PgStore) FindPostIDBySlug(ctx context.Context, slug string) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx, `SELECT id FROM posts WHERE slug = $1`, slug).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrPostNotFound
		}
		return 0, err
	}
	return id, nil
}

func (s *PgStore) InsertComment(ctx context.Context, comment *Comment) error {
	query := `INSERT INTO comments (content, created_at, author_id, post_id)
              VALUES ($1, $2, $3, $4)
              RETURNING id`
	return s.pool.QueryRow(ctx, query,
		comment.Content, comment.CreatedAt, comment.AuthorID, comment.PostID,
	).Scan(&comment.ID)
}

func (s *PgStore) ListComments(ctx context.Context, postID int) ([]Comment, error) {
	query := `SELECT id, content, created_at, author_id, post_id
              FROM comments
              WHERE post_id = $1
              ORDER BY created_at`
	rows, err := s.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.AuthorID, &c.PostID); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

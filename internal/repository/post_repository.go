package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusboard/campusboard-api/internal/models"
)

// PostRepository manages persistence for posts.
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository constructs a new post repository.
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postDetailQuery = `
	SELECT p.id, p.author_id, p.content, p.created_at,
	       u.name AS author_name, u.email AS author_email,
	       COUNT(DISTINCT pl.id) AS like_count,
	       COUNT(DISTINCT rp.id) AS reply_count,
	       COALESCE(array_agg(DISTINCT pl.user_id) FILTER (WHERE pl.user_id IS NOT NULL), '{}') AS liked_by
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN post_likes pl ON pl.post_id = p.id
	LEFT JOIN replies rp ON rp.post_id = p.id`

const postDetailGroupBy = ` GROUP BY p.id, p.author_id, p.content, p.created_at, u.name, u.email`

// ListDetailed returns all posts with author fields and engagement
// counters, newest first.
func (r *PostRepository) ListDetailed(ctx context.Context) ([]models.PostDetail, error) {
	query := postDetailQuery + postDetailGroupBy + ` ORDER BY p.created_at DESC`
	var posts []models.PostDetail
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// FindByID returns a bare post row.
func (r *PostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	const query = `SELECT id, author_id, content, created_at FROM posts WHERE id = $1`
	var post models.Post
	if err := r.db.GetContext(ctx, &post, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return &post, nil
}

// FindDetailByID returns a single joined post.
func (r *PostRepository) FindDetailByID(ctx context.Context, id string) (*models.PostDetail, error) {
	query := postDetailQuery + ` WHERE p.id = $1` + postDetailGroupBy
	var post models.PostDetail
	if err := r.db.GetContext(ctx, &post, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find post detail: %w", err)
	}
	return &post, nil
}

// Create inserts a post.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO posts (id, author_id, content, created_at) VALUES (:id, :author_id, :content, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// DeleteCascade removes the post and its dependents in one transaction:
// replies, likes, then the post itself.
func (r *PostRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin post cascade delete: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM replies WHERE post_id = $1`, id); err != nil {
		return fmt.Errorf("delete post replies: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM post_likes WHERE post_id = $1`, id); err != nil {
		return fmt.Errorf("delete post likes: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit post cascade delete: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/campusboard/campusboard-api/internal/models"
)

// ErrAlreadyLiked is returned when an insert hits the (post, user)
// uniqueness constraint. The storage layer, not the existence check, is
// the authority on toggle state under concurrent requests.
var ErrAlreadyLiked = errors.New("post already liked by user")

const pqUniqueViolation = "23505"

// LikeRepository manages persistence for post likes.
type LikeRepository struct {
	db *sqlx.DB
}

// NewLikeRepository constructs a new like repository.
func NewLikeRepository(db *sqlx.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Find returns the like row for the (post, user) pair.
func (r *LikeRepository) Find(ctx context.Context, postID, userID string) (*models.PostLike, error) {
	const query = `SELECT id, post_id, user_id, created_at FROM post_likes WHERE post_id = $1 AND user_id = $2`
	var like models.PostLike
	if err := r.db.GetContext(ctx, &like, query, postID, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find like: %w", err)
	}
	return &like, nil
}

// Create inserts a like. Returns ErrAlreadyLiked when the pair already
// holds a like row.
func (r *LikeRepository) Create(ctx context.Context, like *models.PostLike) error {
	if like.ID == "" {
		like.ID = uuid.NewString()
	}
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO post_likes (id, post_id, user_id, created_at) VALUES (:id, :post_id, :user_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, like); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return ErrAlreadyLiked
		}
		return fmt.Errorf("create like: %w", err)
	}
	return nil
}

// Delete removes the like row for the (post, user) pair. Reports
// sql.ErrNoRows when no like existed.
func (r *LikeRepository) Delete(ctx context.Context, postID, userID string) error {
	const query = `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

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

// ClassReviewRepository manages persistence for end-of-term class reviews.
type ClassReviewRepository struct {
	db *sqlx.DB
}

// NewClassReviewRepository constructs a new class review repository.
func NewClassReviewRepository(db *sqlx.DB) *ClassReviewRepository {
	return &ClassReviewRepository{db: db}
}

const classReviewDetailQuery = `
	SELECT cr.id, cr.class_id, cr.user_id, cr.rating, cr.content, cr.created_at,
	       c.code AS class_code, c.name AS class_name, u.name AS user_name
	FROM class_reviews cr
	JOIN classes c ON c.id = cr.class_id
	JOIN users u ON u.id = cr.user_id`

// ListDetailed returns all class reviews joined with class and reviewer
// fields, newest first.
func (r *ClassReviewRepository) ListDetailed(ctx context.Context) ([]models.ClassReviewDetail, error) {
	query := classReviewDetailQuery + ` ORDER BY cr.created_at DESC`
	var reviews []models.ClassReviewDetail
	if err := r.db.SelectContext(ctx, &reviews, query); err != nil {
		return nil, fmt.Errorf("list class reviews: %w", err)
	}
	return reviews, nil
}

// FindDetailByID returns a single joined class review.
func (r *ClassReviewRepository) FindDetailByID(ctx context.Context, id string) (*models.ClassReviewDetail, error) {
	query := classReviewDetailQuery + ` WHERE cr.id = $1`
	var review models.ClassReviewDetail
	if err := r.db.GetContext(ctx, &review, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find class review: %w", err)
	}
	return &review, nil
}

// Create inserts a class review. Reviews are immutable after creation.
func (r *ClassReviewRepository) Create(ctx context.Context, review *models.ClassReview) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO class_reviews (id, class_id, user_id, rating, content, created_at) VALUES (:id, :class_id, :user_id, :rating, :content, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, review); err != nil {
		return fmt.Errorf("create class review: %w", err)
	}
	return nil
}

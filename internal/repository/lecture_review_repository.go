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

// LectureReviewRepository manages persistence for per-lecture reviews.
type LectureReviewRepository struct {
	db *sqlx.DB
}

// NewLectureReviewRepository constructs a new lecture review repository.
func NewLectureReviewRepository(db *sqlx.DB) *LectureReviewRepository {
	return &LectureReviewRepository{db: db}
}

const lectureReviewDetailQuery = `
	SELECT lr.id, lr.lecture_id, lr.user_id, lr.rating, lr.content, lr.created_at,
	       l.title AS lecture_title, l.lecture_number,
	       c.id AS class_id, c.code AS class_code, c.name AS class_name,
	       u.name AS user_name
	FROM lecture_reviews lr
	JOIN lectures l ON l.id = lr.lecture_id
	JOIN classes c ON c.id = l.class_id
	JOIN users u ON u.id = lr.user_id`

// ListDetailed returns all lecture reviews joined with lecture, class and
// reviewer fields, newest first.
func (r *LectureReviewRepository) ListDetailed(ctx context.Context) ([]models.LectureReviewDetail, error) {
	query := lectureReviewDetailQuery + ` ORDER BY lr.created_at DESC`
	var reviews []models.LectureReviewDetail
	if err := r.db.SelectContext(ctx, &reviews, query); err != nil {
		return nil, fmt.Errorf("list lecture reviews: %w", err)
	}
	return reviews, nil
}

// ListDetailedByClass returns lecture reviews for one class, newest first.
func (r *LectureReviewRepository) ListDetailedByClass(ctx context.Context, classID string) ([]models.LectureReviewDetail, error) {
	query := lectureReviewDetailQuery + ` WHERE c.id = $1 ORDER BY lr.created_at DESC`
	var reviews []models.LectureReviewDetail
	if err := r.db.SelectContext(ctx, &reviews, query, classID); err != nil {
		return nil, fmt.Errorf("list lecture reviews by class: %w", err)
	}
	return reviews, nil
}

// FindDetailByID returns a single joined lecture review.
func (r *LectureReviewRepository) FindDetailByID(ctx context.Context, id string) (*models.LectureReviewDetail, error) {
	query := lectureReviewDetailQuery + ` WHERE lr.id = $1`
	var review models.LectureReviewDetail
	if err := r.db.GetContext(ctx, &review, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find lecture review: %w", err)
	}
	return &review, nil
}

// Create inserts a lecture review.
func (r *LectureReviewRepository) Create(ctx context.Context, review *models.LectureReview) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO lecture_reviews (id, lecture_id, user_id, rating, content, created_at) VALUES (:id, :lecture_id, :user_id, :rating, :content, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, review); err != nil {
		return fmt.Errorf("create lecture review: %w", err)
	}
	return nil
}

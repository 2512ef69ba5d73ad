package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusboard/campusboard-api/internal/models"
)

// LectureRepository manages persistence for lectures.
type LectureRepository struct {
	db *sqlx.DB
}

// NewLectureRepository constructs a new lecture repository.
func NewLectureRepository(db *sqlx.DB) *LectureRepository {
	return &LectureRepository{db: db}
}

// FindOrCreate resolves a lecture by its natural key (class, title, number),
// inserting it when absent. The unique index on the natural key makes the
// operation safe under concurrent callers.
func (r *LectureRepository) FindOrCreate(ctx context.Context, classID, title string, lectureNumber int) (*models.Lecture, error) {
	const query = `
		INSERT INTO lectures (id, class_id, title, lecture_number, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (class_id, title, lecture_number) DO UPDATE SET title = EXCLUDED.title
		RETURNING id, class_id, title, lecture_number, lecture_date, created_at`

	var lecture models.Lecture
	if err := r.db.GetContext(ctx, &lecture, query, uuid.NewString(), classID, title, lectureNumber, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("find or create lecture: %w", err)
	}
	return &lecture, nil
}

// ListByClass returns all lectures of a class ordered by lecture number.
func (r *LectureRepository) ListByClass(ctx context.Context, classID string) ([]models.Lecture, error) {
	const query = `SELECT id, class_id, title, lecture_number, lecture_date, created_at FROM lectures WHERE class_id = $1 ORDER BY lecture_number ASC`
	var lectures []models.Lecture
	if err := r.db.SelectContext(ctx, &lectures, query, classID); err != nil {
		return nil, fmt.Errorf("list lectures by class: %w", err)
	}
	return lectures, nil
}

// MaxLectureNumber returns the highest lecture number recorded for a class,
// zero when the class has no lectures yet.
func (r *LectureRepository) MaxLectureNumber(ctx context.Context, classID string) (int, error) {
	const query = `SELECT COALESCE(MAX(lecture_number), 0) FROM lectures WHERE class_id = $1`
	var max int
	if err := r.db.GetContext(ctx, &max, query, classID); err != nil {
		return 0, fmt.Errorf("max lecture number: %w", err)
	}
	return max, nil
}

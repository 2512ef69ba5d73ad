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

// ClassRepository manages persistence for classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a new class repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

const classColumns = `id, code, name, instructor, semester, created_at, updated_at`

// List returns all classes, newest first.
func (r *ClassRepository) List(ctx context.Context) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes ORDER BY created_at DESC`, classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindByID returns a class record by ID.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE id = $1`, classColumns)
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find class by id: %w", err)
	}
	return &class, nil
}

// FindByCode returns a class record by its unique code.
func (r *ClassRepository) FindByCode(ctx context.Context, code string) (*models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE code = $1`, classColumns)
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, code); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find class by code: %w", err)
	}
	return &class, nil
}

// Create persists a class record.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if class.CreatedAt.IsZero() {
		class.CreatedAt = now
	}
	class.UpdatedAt = now

	const query = `INSERT INTO classes (id, code, name, instructor, semester, created_at, updated_at) VALUES (:id, :code, :name, :instructor, :semester, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// UpsertByCode inserts a class keyed by code or, when the code already
// exists, overrides only the metadata fields explicitly provided. The
// existing row wins for any blank input. Runs as a single statement so
// concurrent upserts for the same code cannot race.
func (r *ClassRepository) UpsertByCode(ctx context.Context, code, name string, instructor, semester *string) (*models.Class, error) {
	if name == "" {
		name = code
	}
	now := time.Now().UTC()
	query := fmt.Sprintf(`
		INSERT INTO classes (id, code, name, instructor, semester, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (code) DO UPDATE SET
			name       = COALESCE(NULLIF(EXCLUDED.name, EXCLUDED.code), classes.name),
			instructor = COALESCE(EXCLUDED.instructor, classes.instructor),
			semester   = COALESCE(EXCLUDED.semester, classes.semester),
			updated_at = EXCLUDED.updated_at
		RETURNING %s`, classColumns)

	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, uuid.NewString(), code, name, instructor, semester, now); err != nil {
		return nil, fmt.Errorf("upsert class by code: %w", err)
	}
	return &class, nil
}

// DeleteCascade removes the class and every dependent row in a single
// transaction: lecture reviews, lectures, class reviews, then the class.
func (r *ClassRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin class cascade delete: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM lecture_reviews WHERE lecture_id IN (SELECT id FROM lectures WHERE class_id = $1)`, id); err != nil {
		return fmt.Errorf("delete class lecture reviews: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM lectures WHERE class_id = $1`, id); err != nil {
		return fmt.Errorf("delete class lectures: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM class_reviews WHERE class_id = $1`, id); err != nil {
		return fmt.Errorf("delete class reviews: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete class: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit class cascade delete: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusboard/campusboard-api/internal/models"
	appErrors "github.com/campusboard/campusboard-api/pkg/errors"
)

type classRepository interface {
	List(ctx context.Context) ([]models.Class, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
	FindByCode(ctx context.Context, code string) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	DeleteCascade(ctx context.Context, id string) error
}

// CreateClassRequest captures the class creation payload.
type CreateClassRequest struct {
	Code       string `json:"code" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Instructor string `json:"instructor" validate:"required"`
	Semester   string `json:"semester" validate:"required"`
}

// ClassService coordinates class operations.
type ClassService struct {
	repo      classRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs ClassService.
func NewClassService(repo classRepository, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, validator: validate, logger: logger}
}

// List returns all classes, newest first.
func (s *ClassService) List(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// Create adds a new class. The code must be globally unique.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "code, name, instructor and semester are required")
	}

	if _, err := s.repo.FindByCode(ctx, req.Code); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "class with this code already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check class code")
	}

	class := &models.Class{
		Code:       req.Code,
		Name:       req.Name,
		Instructor: &req.Instructor,
		Semester:   &req.Semester,
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}
	return class, nil
}

// Delete removes a class together with its lectures and reviews.
func (s *ClassService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "class id is required")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class")
	}

	s.logger.Info("class deleted", zap.String("class_id", id))
	return nil
}

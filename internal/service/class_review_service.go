package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusboard/campusboard-api/internal/models"
	appErrors "github.com/campusboard/campusboard-api/pkg/errors"
	"github.com/campusboard/campusboard-api/pkg/export"
)

type classUpserter interface {
	UpsertByCode(ctx context.Context, code, name string, instructor, semester *string) (*models.Class, error)
}

type classReviewRepository interface {
	ListDetailed(ctx context.Context) ([]models.ClassReviewDetail, error)
	FindDetailByID(ctx context.Context, id string) (*models.ClassReviewDetail, error)
	Create(ctx context.Context, review *models.ClassReview) error
}

// CreateClassReviewRequest captures the class review creation payload.
// Class metadata fields are optional: they seed the class row when the
// code is not yet known.
type CreateClassReviewRequest struct {
	ClassCode  string `json:"classCode" validate:"required"`
	ClassName  string `json:"className"`
	Instructor string `json:"instructor"`
	Semester   string `json:"semester"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Content    string `json:"content" validate:"required"`
}

// ClassReviewService coordinates end-of-term review operations.
type ClassReviewService struct {
	classes   classUpserter
	reviews   classReviewRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassReviewService constructs ClassReviewService.
func NewClassReviewService(classes classUpserter, reviews classReviewRepository, validate *validator.Validate, logger *zap.Logger) *ClassReviewService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassReviewService{classes: classes, reviews: reviews, validator: validate, logger: logger}
}

// List returns all class reviews, newest first.
func (s *ClassReviewService) List(ctx context.Context) ([]models.ClassReviewDetail, error) {
	reviews, err := s.reviews.ListDetailed(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reviews")
	}
	return reviews, nil
}

// Create upserts the named class and records a review against it on
// behalf of the acting user.
func (s *ClassReviewService) Create(ctx context.Context, req CreateClassReviewRequest, actor models.UserInfo) (*models.ClassReviewDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "class code, a 1-5 rating and content are required")
	}

	content := sanitizeContent(req.Content)
	if content == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "content is required")
	}

	class, err := s.classes.UpsertByCode(ctx, req.ClassCode, req.ClassName, nullIfEmpty(req.Instructor), nullIfEmpty(req.Semester))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve class")
	}

	review := &models.ClassReview{
		ClassID: class.ID,
		UserID:  actor.ID,
		Rating:  req.Rating,
		Content: content,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create review")
	}

	detail, err := s.reviews.FindDetailByID(ctx, review.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load created review")
	}

	s.logger.Info("class review created",
		zap.String("review_id", review.ID),
		zap.String("class_code", class.Code),
		zap.Int("rating", review.Rating))
	return detail, nil
}

// ExportDataset renders all class reviews as a tabular dataset for the
// CSV/PDF exporters.
func (s *ClassReviewService) ExportDataset(ctx context.Context) (export.Dataset, error) {
	reviews, err := s.reviews.ListDetailed(ctx)
	if err != nil {
		return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reviews for export")
	}

	dataset := export.Dataset{
		Headers: []string{"Class Code", "Class Name", "Rating", "Content", "Reviewer", "Date"},
		Rows:    make([]map[string]string, 0, len(reviews)),
	}
	for _, review := range reviews {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Class Code": review.ClassCode,
			"Class Name": review.ClassName,
			"Rating":     fmt.Sprintf("%d", review.Rating),
			"Content":    review.Content,
			"Reviewer":   review.UserName,
			"Date":       review.CreatedAt.Format("2006-01-02"),
		})
	}
	return dataset, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

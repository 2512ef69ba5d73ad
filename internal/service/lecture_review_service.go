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

type classFinder interface {
	FindByCode(ctx context.Context, code string) (*models.Class, error)
}

type lectureRepository interface {
	FindOrCreate(ctx context.Context, classID, title string, lectureNumber int) (*models.Lecture, error)
	MaxLectureNumber(ctx context.Context, classID string) (int, error)
}

type lectureReviewRepository interface {
	ListDetailed(ctx context.Context) ([]models.LectureReviewDetail, error)
	ListDetailedByClass(ctx context.Context, classID string) ([]models.LectureReviewDetail, error)
	FindDetailByID(ctx context.Context, id string) (*models.LectureReviewDetail, error)
	Create(ctx context.Context, review *models.LectureReview) error
}

type feedInvalidator interface {
	InvalidateFeed(ctx context.Context)
}

// CreateLectureReviewRequest captures the lecture review creation payload.
type CreateLectureReviewRequest struct {
	ClassCode     string `json:"classCode" validate:"required"`
	LectureTitle  string `json:"lectureTitle" validate:"required"`
	LectureNumber int    `json:"lectureNumber" validate:"min=0"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Content       string `json:"content" validate:"required"`
}

// LectureReviewService coordinates per-lecture review operations.
type LectureReviewService struct {
	classes   classFinder
	lectures  lectureRepository
	reviews   lectureReviewRepository
	feed      feedInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLectureReviewService constructs LectureReviewService.
func NewLectureReviewService(classes classFinder, lectures lectureRepository, reviews lectureReviewRepository, feed feedInvalidator, validate *validator.Validate, logger *zap.Logger) *LectureReviewService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LectureReviewService{classes: classes, lectures: lectures, reviews: reviews, feed: feed, validator: validate, logger: logger}
}

// List returns lecture reviews newest first, optionally narrowed to a
// single class code.
func (s *LectureReviewService) List(ctx context.Context, classCode string) ([]models.LectureReviewDetail, error) {
	if classCode == "" {
		reviews, err := s.reviews.ListDetailed(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lecture reviews")
		}
		return reviews, nil
	}

	class, err := s.classes.FindByCode(ctx, classCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	reviews, err := s.reviews.ListDetailedByClass(ctx, class.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lecture reviews")
	}
	return reviews, nil
}

// Create records a review against a lecture of an existing class,
// creating the lecture row when its natural key is not yet known. Unlike
// class reviews, the class itself must already exist.
func (s *LectureReviewService) Create(ctx context.Context, req CreateLectureReviewRequest, actor models.UserInfo) (*models.LectureReviewDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "class code, lecture title, a 1-5 rating and content are required")
	}

	content := sanitizeContent(req.Content)
	if content == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "content is required")
	}

	class, err := s.classes.FindByCode(ctx, req.ClassCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found, please add the class first")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	number := req.LectureNumber
	if number < 1 {
		number = 1
	}

	lecture, err := s.lectures.FindOrCreate(ctx, class.ID, req.LectureTitle, number)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve lecture")
	}

	review := &models.LectureReview{
		LectureID: lecture.ID,
		UserID:    actor.ID,
		Rating:    req.Rating,
		Content:   content,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create lecture review")
	}

	detail, err := s.reviews.FindDetailByID(ctx, review.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load created lecture review")
	}

	if s.feed != nil {
		s.feed.InvalidateFeed(ctx)
	}

	s.logger.Info("lecture review created",
		zap.String("review_id", review.ID),
		zap.String("class_code", class.Code),
		zap.String("lecture_id", lecture.ID))
	return detail, nil
}

// NextLectureNumber suggests the number for the next lecture of a class:
// one past the highest recorded number, starting at 1.
func (s *LectureReviewService) NextLectureNumber(ctx context.Context, classCode string) (int, error) {
	if classCode == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, "class code is required")
	}

	class, err := s.classes.FindByCode(ctx, classCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	max, err := s.lectures.MaxLectureNumber(ctx, class.ID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve lecture number")
	}
	return max + 1, nil
}

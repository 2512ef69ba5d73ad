package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/campusboard-api/internal/models"
	"github.com/campusboard/campusboard-api/internal/service"
)

type fakeClassFinder struct {
	classes map[string]*models.Class
}

func (f *fakeClassFinder) FindByCode(ctx context.Context, code string) (*models.Class, error) {
	class, ok := f.classes[code]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return class, nil
}

type fakeLectureRepo struct {
	maxNumber int
}

func (f *fakeLectureRepo) FindOrCreate(ctx context.Context, classID, title string, lectureNumber int) (*models.Lecture, error) {
	return &models.Lecture{ID: "l1", ClassID: classID, Title: title, LectureNumber: lectureNumber}, nil
}

func (f *fakeLectureRepo) MaxLectureNumber(ctx context.Context, classID string) (int, error) {
	return f.maxNumber, nil
}

type fakeLectureReviewRepo struct {
	reviews []models.LectureReviewDetail
}

func (f *fakeLectureReviewRepo) ListDetailed(ctx context.Context) ([]models.LectureReviewDetail, error) {
	return f.reviews, nil
}

func (f *fakeLectureReviewRepo) ListDetailedByClass(ctx context.Context, classID string) ([]models.LectureReviewDetail, error) {
	var filtered []models.LectureReviewDetail
	for _, r := range f.reviews {
		if r.ClassID == classID {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func (f *fakeLectureReviewRepo) FindDetailByID(ctx context.Context, id string) (*models.LectureReviewDetail, error) {
	for i := range f.reviews {
		if f.reviews[i].ID == id {
			return &f.reviews[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeLectureReviewRepo) Create(ctx context.Context, review *models.LectureReview) error {
	if review.ID == "" {
		review.ID = "lr-new"
	}
	review.CreatedAt = time.Now()
	f.reviews = append(f.reviews, models.LectureReviewDetail{LectureReview: *review})
	return nil
}

func newTestLectureReviewHandler(finder *fakeClassFinder, lectures *fakeLectureRepo) *LectureReviewHandler {
	svc := service.NewLectureReviewService(finder, lectures, &fakeLectureReviewRepo{}, nil, nil, nil)
	return NewLectureReviewHandler(svc)
}

func TestLectureReviewHandlerNextNumber(t *testing.T) {
	gin.SetMode(gin.TestMode)
	finder := &fakeClassFinder{classes: map[string]*models.Class{
		"CS101": {ID: "c1", Code: "CS101", Name: "Intro"},
	}}
	handler := newTestLectureReviewHandler(finder, &fakeLectureRepo{maxNumber: 7})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/lecture-reviews/next-number?classCode=CS101", nil)
	c.Request = req

	handler.NextNumber(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			NextNumber int `json:"nextNumber"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 8, envelope.Data.NextNumber)
}

func TestLectureReviewHandlerNextNumberUnknownClass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestLectureReviewHandler(&fakeClassFinder{classes: map[string]*models.Class{}}, &fakeLectureRepo{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/lecture-reviews/next-number?classCode=NOPE", nil)
	c.Request = req

	handler.NextNumber(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

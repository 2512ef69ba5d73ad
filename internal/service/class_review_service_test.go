package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusboard/campusboard-api/internal/models"
	appErrors "github.com/campusboard/campusboard-api/pkg/errors"
)

type mockClassUpserter struct {
	classes map[string]*models.Class
	calls   int
}

func (m *mockClassUpserter) UpsertByCode(ctx context.Context, code, name string, instructor, semester *string) (*models.Class, error) {
	m.calls++
	if m.classes == nil {
		m.classes = make(map[string]*models.Class)
	}
	if existing, ok := m.classes[code]; ok {
		if name != "" && name != code {
			existing.Name = name
		}
		if instructor != nil {
			existing.Instructor = instructor
		}
		if semester != nil {
			existing.Semester = semester
		}
		cp := *existing
		return &cp, nil
	}
	if name == "" {
		name = code
	}
	class := &models.Class{ID: "class-" + code, Code: code, Name: name, Instructor: instructor, Semester: semester}
	m.classes[code] = class
	cp := *class
	return &cp, nil
}

type mockClassReviewRepo struct {
	items map[string]*models.ClassReview
	byCls map[string]string
}

func (m *mockClassReviewRepo) ListDetailed(ctx context.Context) ([]models.ClassReviewDetail, error) {
	var details []models.ClassReviewDetail
	for _, r := range m.items {
		details = append(details, models.ClassReviewDetail{ClassReview: *r, ClassCode: m.byCls[r.ID], UserName: "User A"})
	}
	return details, nil
}

func (m *mockClassReviewRepo) FindDetailByID(ctx context.Context, id string) (*models.ClassReviewDetail, error) {
	if r, ok := m.items[id]; ok {
		return &models.ClassReviewDetail{ClassReview: *r, ClassCode: m.byCls[id], UserName: "User A"}, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockClassReviewRepo) Create(ctx context.Context, review *models.ClassReview) error {
	if m.items == nil {
		m.items = make(map[string]*models.ClassReview)
		m.byCls = make(map[string]string)
	}
	if review.ID == "" {
		review.ID = "generated"
	}
	review.CreatedAt = time.Now()
	cp := *review
	m.items[review.ID] = &cp
	return nil
}

func TestClassReviewServiceCreateRegistersClass(t *testing.T) {
	classes := &mockClassUpserter{}
	reviews := &mockClassReviewRepo{}
	svc := NewClassReviewService(classes, reviews, validator.New(), zap.NewNop())

	detail, err := svc.Create(context.Background(), CreateClassReviewRequest{
		ClassCode: "CS101",
		ClassName: "Intro to CS",
		Rating:    4,
		Content:   "well structured course",
	}, models.UserInfo{ID: "u1", Name: "User A"})
	require.NoError(t, err)
	assert.Equal(t, 4, detail.Rating)
	assert.Equal(t, "u1", detail.UserID)
	assert.Equal(t, 1, classes.calls)
	assert.Equal(t, "Intro to CS", classes.classes["CS101"].Name)
}

func TestClassReviewServiceCreateBlankNameDefaultsToCode(t *testing.T) {
	classes := &mockClassUpserter{}
	svc := NewClassReviewService(classes, &mockClassReviewRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateClassReviewRequest{
		ClassCode: "CS101",
		Rating:    5,
		Content:   "good",
	}, models.UserInfo{ID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "CS101", classes.classes["CS101"].Name)
}

func TestClassReviewServiceCreateRatingOutOfRange(t *testing.T) {
	svc := NewClassReviewService(&mockClassUpserter{}, &mockClassReviewRepo{}, validator.New(), zap.NewNop())

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), CreateClassReviewRequest{
			ClassCode: "CS101",
			Rating:    rating,
			Content:   "text",
		}, models.UserInfo{ID: "u1"})
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestClassReviewServiceCreateStripsMarkup(t *testing.T) {
	reviews := &mockClassReviewRepo{}
	svc := NewClassReviewService(&mockClassUpserter{}, reviews, validator.New(), zap.NewNop())

	detail, err := svc.Create(context.Background(), CreateClassReviewRequest{
		ClassCode: "CS101",
		Rating:    3,
		Content:   "<script>alert(1)</script>decent lectures",
	}, models.UserInfo{ID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "decent lectures", detail.Content)
}

func TestClassReviewServiceExportDataset(t *testing.T) {
	reviews := &mockClassReviewRepo{}
	svc := NewClassReviewService(&mockClassUpserter{}, reviews, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateClassReviewRequest{
		ClassCode: "CS101",
		Rating:    5,
		Content:   "excellent",
	}, models.UserInfo{ID: "u1"})
	require.NoError(t, err)

	dataset, err := svc.ExportDataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Class Code", "Class Name", "Rating", "Content", "Reviewer", "Date"}, dataset.Headers)
	require.Len(t, dataset.Rows, 1)
	assert.Equal(t, "5", dataset.Rows[0]["Rating"])
}

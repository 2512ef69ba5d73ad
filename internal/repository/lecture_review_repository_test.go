package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/campusboard-api/internal/models"
)

func newLectureReviewRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func lectureReviewRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "lecture_id", "user_id", "rating", "content", "created_at", "lecture_title", "lecture_number", "class_id", "class_code", "class_name", "user_name"})
}

func TestLectureReviewRepositoryListDetailed(t *testing.T) {
	db, mock, cleanup := newLectureReviewRepoMock(t)
	defer cleanup()
	repo := NewLectureReviewRepository(db)

	rows := lectureReviewRows().
		AddRow("lr1", "l1", "u1", 5, "great pacing", time.Now(), "Week 3", 3, "c1", "CS101", "Intro", "User A")
	mock.ExpectQuery("SELECT lr.id, lr.lecture_id").
		WillReturnRows(rows)

	reviews, err := repo.ListDetailed(context.Background())
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "CS101", reviews[0].ClassCode)
	assert.Equal(t, 3, reviews[0].LectureNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLectureReviewRepositoryListDetailedByClass(t *testing.T) {
	db, mock, cleanup := newLectureReviewRepoMock(t)
	defer cleanup()
	repo := NewLectureReviewRepository(db)

	rows := lectureReviewRows().
		AddRow("lr1", "l1", "u1", 4, "good recap", time.Now(), "Week 1", 1, "c1", "CS101", "Intro", "User A")
	mock.ExpectQuery(`SELECT lr.id, lr.lecture_id(.|\n)*WHERE c.id = \$1`).
		WithArgs("c1").
		WillReturnRows(rows)

	reviews, err := repo.ListDetailedByClass(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "c1", reviews[0].ClassID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLectureReviewRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newLectureReviewRepoMock(t)
	defer cleanup()
	repo := NewLectureReviewRepository(db)

	mock.ExpectExec("INSERT INTO lecture_reviews").
		WillReturnResult(sqlmock.NewResult(1, 1))

	review := &models.LectureReview{LectureID: "l1", UserID: "u1", Rating: 4, Content: "solid"}
	require.NoError(t, repo.Create(context.Background(), review))
	assert.NotEmpty(t, review.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/campusboard-api/internal/models"
)

func newClassRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func classRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "code", "name", "instructor", "semester", "created_at", "updated_at"})
}

func TestClassRepositoryList(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	rows := classRows().
		AddRow("c2", "CS102", "Data Structures", nil, nil, time.Now(), time.Now()).
		AddRow("c1", "CS101", "Intro", "Dr. Kim", "2026-1", time.Now().Add(-time.Hour), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, code, name, instructor, semester, created_at, updated_at FROM classes ORDER BY created_at DESC")).
		WillReturnRows(rows)

	classes, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.Equal(t, "CS102", classes[0].Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryFindByCodeNotFound(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery("SELECT id, code, name").
		WithArgs("MISSING").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByCode(context.Background(), "MISSING")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestClassRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectExec("INSERT INTO classes").
		WillReturnResult(sqlmock.NewResult(1, 1))

	class := &models.Class{Code: "CS101", Name: "Intro"}
	require.NoError(t, repo.Create(context.Background(), class))
	assert.NotEmpty(t, class.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryUpsertByCodeDefaultsNameToCode(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	rows := classRows().AddRow("c1", "CS101", "CS101", nil, nil, time.Now(), time.Now())
	mock.ExpectQuery("INSERT INTO classes").
		WithArgs(sqlmock.AnyArg(), "CS101", "CS101", nil, nil, sqlmock.AnyArg()).
		WillReturnRows(rows)

	class, err := repo.UpsertByCode(context.Background(), "CS101", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "CS101", class.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryDeleteCascade(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM lecture_reviews WHERE lecture_id IN (SELECT id FROM lectures WHERE class_id = $1)")).
		WithArgs("c1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM lectures WHERE class_id = $1")).
		WithArgs("c1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM class_reviews WHERE class_id = $1")).
		WithArgs("c1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM classes WHERE id = $1")).
		WithArgs("c1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteCascade(context.Background(), "c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryDeleteCascadeRollsBack(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM lecture_reviews").
		WithArgs("c1").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := repo.DeleteCascade(context.Background(), "c1")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

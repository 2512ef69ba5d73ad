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

func newUserRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	hash := "$2a$12$hash"
	rows := sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "calendar_id", "calendar_api_key", "calendar_embed_code", "created_at", "updated_at"}).
		AddRow("u1", "a@example.com", "User A", hash, nil, nil, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, name, password_hash, calendar_id, calendar_api_key, calendar_embed_code, created_at, updated_at FROM users WHERE email = $1 LIMIT 1")).
		WithArgs("a@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	require.NotNil(t, user.PasswordHash)
	assert.Equal(t, hash, *user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByEmailNotFound(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT id, email, name").
		WithArgs("missing@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(1, 1))

	hash := "$2a$12$hash"
	user := &models.User{Email: "a@example.com", Name: "User A", PasswordHash: &hash}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpdateCalendarSettings(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET calendar_id = $2, calendar_api_key = $3, calendar_embed_code = $4, updated_at = $5 WHERE id = $1")).
		WithArgs("u1", "cal-1", nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateCalendarSettings(context.Background(), "u1", models.CalendarSettings{CalendarID: "cal-1"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpdateCalendarSettingsMissingUser(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE users SET calendar_id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateCalendarSettings(context.Background(), "missing", models.CalendarSettings{})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

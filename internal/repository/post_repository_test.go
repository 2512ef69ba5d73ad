package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/campusboard-api/internal/models"
)

func newPostRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func postDetailRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "author_id", "content", "created_at", "author_name", "author_email", "like_count", "reply_count", "liked_by"})
}

func TestPostRepositoryListDetailed(t *testing.T) {
	db, mock, cleanup := newPostRepoMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	rows := postDetailRows().
		AddRow("p2", "u1", "second", time.Now(), "User A", "a@example.com", 2, 1, "{u2,u3}").
		AddRow("p1", "u2", "first", time.Now().Add(-time.Minute), "User B", "b@example.com", 0, 0, "{}")
	mock.ExpectQuery("SELECT p.id, p.author_id, p.content").
		WillReturnRows(rows)

	posts, err := repo.ListDetailed(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, 2, posts[0].LikeCount)
	assert.Equal(t, pq.StringArray{"u2", "u3"}, posts[0].LikedBy)
	assert.Empty(t, posts[1].LikedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newPostRepoMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, author_id, content, created_at FROM posts WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPostRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newPostRepoMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	mock.ExpectExec("INSERT INTO posts").
		WillReturnResult(sqlmock.NewResult(1, 1))

	post := &models.Post{AuthorID: "u1", Content: "hello campus"}
	require.NoError(t, repo.Create(context.Background(), post))
	assert.NotEmpty(t, post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryDeleteCascade(t *testing.T) {
	db, mock, cleanup := newPostRepoMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM replies WHERE post_id = $1")).
		WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM post_likes WHERE post_id = $1")).
		WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM posts WHERE id = $1")).
		WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteCascade(context.Background(), "p1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryDeleteCascadeRollsBack(t *testing.T) {
	db, mock, cleanup := newPostRepoMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM replies").
		WithArgs("p1").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := repo.DeleteCascade(context.Background(), "p1")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

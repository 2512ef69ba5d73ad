package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusboard/campusboard-api/internal/models"
	appErrors "github.com/campusboard/campusboard-api/pkg/errors"
)

type mockUserRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
	created []*models.User
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.byEmail[email]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := m.byID[id]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "generated"
	}
	user.CreatedAt = time.Now()
	cp := *user
	m.created = append(m.created, &cp)
	if m.byEmail == nil {
		m.byEmail = make(map[string]*models.User)
	}
	m.byEmail[user.Email] = &cp
	return nil
}

func testSessionConfig() SessionConfig {
	return SessionConfig{
		Secret:         "test-secret",
		DefaultMaxAge:  7 * 24 * time.Hour,
		RememberMaxAge: 365 * 24 * time.Hour,
	}
}

func hashOf(t *testing.T, password string) *string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(hash)
	return &s
}

func TestAuthServiceLogin(t *testing.T) {
	repo := &mockUserRepo{byEmail: map[string]*models.User{
		"a@example.com": {ID: "u1", Email: "a@example.com", Name: "User A", PasswordHash: hashOf(t, "secret123")},
	}}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testSessionConfig())

	session, err := svc.Authenticate(context.Background(), AuthenticateRequest{
		Email:    "a@example.com",
		Password: "secret123",
		IsLogin:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", session.User.ID)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, 7*24*time.Hour, session.MaxAge)

	claims, err := svc.ValidateSession(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := &mockUserRepo{byEmail: map[string]*models.User{
		"a@example.com": {ID: "u1", Email: "a@example.com", Name: "User A", PasswordHash: hashOf(t, "secret123")},
	}}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testSessionConfig())

	_, err := svc.Authenticate(context.Background(), AuthenticateRequest{
		Email:    "a@example.com",
		Password: "wrong",
		IsLogin:  true,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, validator.New(), zap.NewNop(), testSessionConfig())

	_, err := svc.Authenticate(context.Background(), AuthenticateRequest{
		Email:    "missing@example.com",
		Password: "whatever",
		IsLogin:  true,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginNoPasswordHash(t *testing.T) {
	repo := &mockUserRepo{byEmail: map[string]*models.User{
		"a@example.com": {ID: "u1", Email: "a@example.com", Name: "User A"},
	}}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testSessionConfig())

	_, err := svc.Authenticate(context.Background(), AuthenticateRequest{
		Email:    "a@example.com",
		Password: "secret123",
		IsLogin:  true,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRegister(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testSessionConfig())

	session, err := svc.Authenticate(context.Background(), AuthenticateRequest{
		Email:      "new@example.com",
		Password:   "secret123",
		Name:       "New User",
		RememberMe: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "New User", session.User.Name)
	assert.Equal(t, 365*24*time.Hour, session.MaxAge)
	require.Len(t, repo.created, 1)
	require.NotNil(t, repo.created[0].PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*repo.created[0].PasswordHash), []byte("secret123")))
}

func TestAuthServiceRegisterBlankName(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, validator.New(), zap.NewNop(), testSessionConfig())

	_, err := svc.Authenticate(context.Background(), AuthenticateRequest{
		Email:    "new@example.com",
		Password: "secret123",
		Name:     "   ",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{byEmail: map[string]*models.User{
		"taken@example.com": {ID: "u1", Email: "taken@example.com", Name: "User A"},
	}}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testSessionConfig())

	_, err := svc.Authenticate(context.Background(), AuthenticateRequest{
		Email:    "taken@example.com",
		Password: "secret123",
		Name:     "Other",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestAuthServiceValidateSessionRejectsTampering(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, validator.New(), zap.NewNop(), testSessionConfig())
	other := NewAuthService(&mockUserRepo{}, validator.New(), zap.NewNop(), SessionConfig{
		Secret:         "different-secret",
		DefaultMaxAge:  time.Hour,
		RememberMaxAge: time.Hour,
	})

	session, err := other.Authenticate(context.Background(), AuthenticateRequest{
		Email:    "a@example.com",
		Password: "secret123",
		Name:     "User A",
	})
	require.NoError(t, err)

	_, err = svc.ValidateSession(session.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

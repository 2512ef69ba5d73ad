package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusboard/campusboard-api/internal/models"
	appErrors "github.com/campusboard/campusboard-api/pkg/errors"
)

const bcryptCost = 12

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// SessionConfig defines the signing and lifetime parameters for session
// cookies.
type SessionConfig struct {
	Secret         string
	DefaultMaxAge  time.Duration
	RememberMaxAge time.Duration
}

// AuthenticateRequest captures the combined login/registration payload.
type AuthenticateRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	Name       string `json:"name"`
	RememberMe bool   `json:"rememberMe"`
	IsLogin    bool   `json:"isLogin"`
}

// Session is an issued session: the public identity, the signed cookie
// value, and its lifetime.
type Session struct {
	User   models.UserInfo
	Token  string
	MaxAge time.Duration
}

// AuthService provides authentication use cases.
type AuthService struct {
	repo      authUserRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    SessionConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, validate *validator.Validate, logger *zap.Logger, config SessionConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{repo: repo, validator: validate, logger: logger, config: config}
}

// Authenticate runs the login or registration flow depending on the
// request and returns an issued session.
func (s *AuthService) Authenticate(ctx context.Context, req AuthenticateRequest) (*Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "email and password are required")
	}

	if req.IsLogin {
		return s.login(ctx, req)
	}
	return s.register(ctx, req)
}

func (s *AuthService) login(ctx context.Context, req AuthenticateRequest) (*Session, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if user.PasswordHash == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	return s.issueSession(user.Info(), req.RememberMe)
}

func (s *AuthService) register(ctx context.Context, req AuthenticateRequest) (*Session, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name is required for registration")
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "user already exists with this email")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	hashStr := string(hash)

	user := &models.User{
		Email:        req.Email,
		Name:         name,
		PasswordHash: &hashStr,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return s.issueSession(user.Info(), req.RememberMe)
}

func (s *AuthService) issueSession(info models.UserInfo, remember bool) (*Session, error) {
	maxAge := s.config.DefaultMaxAge
	if remember {
		maxAge = s.config.RememberMaxAge
	}

	now := time.Now().UTC()
	claims := &models.SessionClaims{
		UserID: info.ID,
		Email:  info.Email,
		Name:   info.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   info.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(maxAge)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}

	return &Session{User: info, Token: signed, MaxAge: maxAge}, nil
}

// ValidateSession parses the signed cookie value and returns the embedded
// identity claims.
func (s *AuthService) ValidateSession(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session claims")
	}

	return claims, nil
}

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

type calendarUserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateCalendarSettings(ctx context.Context, userID string, settings models.CalendarSettings) error
}

// SaveCalendarRequest captures the calendar settings payload. All
// fields are optional; blank values clear the stored setting.
type SaveCalendarRequest struct {
	CalendarID string `json:"calendarId"`
	APIKey     string `json:"apiKey"`
	EmbedCode  string `json:"embedCode"`
}

// CalendarService manages per-user calendar embed settings.
type CalendarService struct {
	users     calendarUserRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCalendarService constructs CalendarService.
func NewCalendarService(users calendarUserRepository, validate *validator.Validate, logger *zap.Logger) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{users: users, validator: validate, logger: logger}
}

// Get returns the stored settings of a user. Unset fields come back
// as empty strings so clients always receive the full shape.
func (s *CalendarService) Get(ctx context.Context, userID string) (*models.CalendarSettings, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	settings := &models.CalendarSettings{}
	if user.CalendarID != nil {
		settings.CalendarID = *user.CalendarID
	}
	if user.CalendarAPIKey != nil {
		settings.APIKey = *user.CalendarAPIKey
	}
	if user.CalendarEmbedCode != nil {
		settings.EmbedCode = *user.CalendarEmbedCode
	}
	return settings, nil
}

// Save replaces the settings of a user.
func (s *CalendarService) Save(ctx context.Context, userID string, req SaveCalendarRequest) (*models.CalendarSettings, error) {
	settings := models.CalendarSettings{
		CalendarID: req.CalendarID,
		APIKey:     req.APIKey,
		EmbedCode:  req.EmbedCode,
	}

	if err := s.users.UpdateCalendarSettings(ctx, userID, settings); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save calendar settings")
	}

	s.logger.Info("calendar settings saved", zap.String("user_id", userID))
	return &settings, nil
}

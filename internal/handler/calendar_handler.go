package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/campusboard-api/internal/service"
	appErrors "github.com/campusboard/campusboard-api/pkg/errors"
	"github.com/campusboard/campusboard-api/pkg/response"
)

// CalendarHandler wires HTTP endpoints to the calendar settings service.
type CalendarHandler struct {
	service *service.CalendarService
}

// NewCalendarHandler creates a new handler.
func NewCalendarHandler(svc *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: svc}
}

// Get godoc
// @Summary Get calendar settings
// @Description Returns the caller's calendar embed settings
// @Tags Calendar
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /user/calendar-settings [get]
func (h *CalendarHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	settings, err := h.service.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// Save godoc
// @Summary Save calendar settings
// @Description Replaces the caller's calendar embed settings
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body service.SaveCalendarRequest true "Settings payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /user/calendar-settings [post]
func (h *CalendarHandler) Save(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SaveCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid settings payload"))
		return
	}

	settings, err := h.service.Save(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

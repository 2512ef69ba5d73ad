package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/campusboard-api/internal/service"
	appErrors "github.com/campusboard/campusboard-api/pkg/errors"
	"github.com/campusboard/campusboard-api/pkg/response"
)

// ClassHandler wires HTTP endpoints to the class service.
type ClassHandler struct {
	service *service.ClassService
}

// NewClassHandler creates a new handler.
func NewClassHandler(svc *service.ClassService) *ClassHandler {
	return &ClassHandler{service: svc}
}

// List godoc
// @Summary List classes
// @Description Returns all registered classes, newest first
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	classes, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, nil)
}

// Create godoc
// @Summary Register a class
// @Description Registers a class with a unique code
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body service.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req service.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid class payload"))
		return
	}

	class, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// Delete godoc
// @Summary Delete a class
// @Description Removes a class together with its lectures and reviews
// @Tags Classes
// @Produce json
// @Param id query string true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classes/delete [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "class deleted"}, nil)
}

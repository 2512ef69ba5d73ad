package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/campusboard-api/internal/service"
	appErrors "github.com/campusboard/campusboard-api/pkg/errors"
	"github.com/campusboard/campusboard-api/pkg/response"
)

// LectureReviewHandler wires HTTP endpoints to the lecture review service.
type LectureReviewHandler struct {
	service *service.LectureReviewService
}

// NewLectureReviewHandler creates a new handler.
func NewLectureReviewHandler(svc *service.LectureReviewService) *LectureReviewHandler {
	return &LectureReviewHandler{service: svc}
}

// List godoc
// @Summary List lecture reviews
// @Description Returns lecture reviews with lecture and class context, newest first; optionally filtered by class code
// @Tags LectureReviews
// @Produce json
// @Param classCode query string false "Limit to one class"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lecture-reviews [get]
func (h *LectureReviewHandler) List(c *gin.Context) {
	reviews, err := h.service.List(c.Request.Context(), c.Query("classCode"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reviews, nil)
}

// Create godoc
// @Summary Create a lecture review
// @Description Reviews a lecture of a registered class, creating the lecture row when needed
// @Tags LectureReviews
// @Accept json
// @Produce json
// @Param payload body service.CreateLectureReviewRequest true "Review payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lecture-reviews [post]
func (h *LectureReviewHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateLectureReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid review payload"))
		return
	}

	review, err := h.service.Create(c.Request.Context(), req, claims.Info())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, review)
}

// NextNumber godoc
// @Summary Suggest the next lecture number
// @Description Returns one past the highest lecture number recorded for a class
// @Tags LectureReviews
// @Produce json
// @Param classCode query string true "Class code"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lecture-reviews/next-number [get]
func (h *LectureReviewHandler) NextNumber(c *gin.Context) {
	next, err := h.service.NextLectureNumber(c.Request.Context(), c.Query("classCode"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"nextNumber": next}, nil)
}

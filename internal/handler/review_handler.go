package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/campusboard-api/internal/service"
	appErrors "github.com/campusboard/campusboard-api/pkg/errors"
	"github.com/campusboard/campusboard-api/pkg/export"
	"github.com/campusboard/campusboard-api/pkg/response"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ReviewHandler wires HTTP endpoints to the class review service.
type ReviewHandler struct {
	service       *service.ClassReviewService
	csv           csvRenderer
	pdf           pdfRenderer
	exportEnabled bool
}

// NewReviewHandler creates a new handler.
func NewReviewHandler(svc *service.ClassReviewService, csv csvRenderer, pdf pdfRenderer, exportEnabled bool) *ReviewHandler {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ReviewHandler{service: svc, csv: csv, pdf: pdf, exportEnabled: exportEnabled}
}

// List godoc
// @Summary List class reviews
// @Description Returns all class reviews, newest first
// @Tags Reviews
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reviews, nil)
}

// Create godoc
// @Summary Create a class review
// @Description Reviews a class, registering the class on the fly when its code is new
// @Tags Reviews
// @Accept json
// @Produce json
// @Param payload body service.CreateClassReviewRequest true "Review payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateClassReviewRequest
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

// Export godoc
// @Summary Export class reviews
// @Description Downloads all class reviews as CSV or PDF
// @Tags Reviews
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} byte
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reviews/export [get]
func (h *ReviewHandler) Export(c *gin.Context) {
	if !h.exportEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "review export is disabled"))
		return
	}

	dataset, err := h.service.ExportDataset(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	stamp := time.Now().UTC().Format("20060102")

	switch format {
	case "csv":
		payload, err := h.csv.Render(dataset)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"class-reviews-%s.csv\"", stamp))
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		payload, err := h.pdf.Render(dataset, "Class Reviews")
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"class-reviews-%s.pdf\"", stamp))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}

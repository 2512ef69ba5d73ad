package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/campusboard-api/internal/service"
	"github.com/campusboard/campusboard-api/pkg/response"
)

// FeedHandler wires the merged timeline endpoint to the feed service.
type FeedHandler struct {
	service *service.FeedService
}

// NewFeedHandler creates a new handler.
func NewFeedHandler(svc *service.FeedService) *FeedHandler {
	return &FeedHandler{service: svc}
}

// Feed godoc
// @Summary Get the merged feed
// @Description Returns posts and lecture reviews merged into one timeline, newest first
// @Tags Feed
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /feed [get]
func (h *FeedHandler) Feed(c *gin.Context) {
	items, err := h.service.Feed(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

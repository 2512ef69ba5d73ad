package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/campusboard-api/internal/service"
	appErrors "github.com/campusboard/campusboard-api/pkg/errors"
	"github.com/campusboard/campusboard-api/pkg/response"
)

// PostHandler wires HTTP endpoints to the post service.
type PostHandler struct {
	service *service.PostService
}

// NewPostHandler creates a new handler.
func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{service: svc}
}

// List godoc
// @Summary List posts
// @Description Returns all posts with author and engagement data, newest first
// @Tags Posts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posts, nil)
}

// Create godoc
// @Summary Create a post
// @Description Publishes a post of at most 280 characters
// @Tags Posts
// @Accept json
// @Produce json
// @Param payload body service.CreatePostRequest true "Post payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid post payload"))
		return
	}

	post, err := h.service.Create(c.Request.Context(), req, claims.Info())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}

// Delete godoc
// @Summary Delete a post
// @Description Removes a post with its replies and likes; only the author may delete
// @Tags Posts
// @Produce json
// @Param id query string true "Post ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /posts/delete [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Query("id"), claims.Info()); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "post deleted"}, nil)
}

// ToggleLike godoc
// @Summary Toggle a like
// @Description Likes a post, or removes the caller's existing like
// @Tags Posts
// @Accept json
// @Produce json
// @Param payload body service.ToggleLikeRequest true "Like payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /posts/like [post]
func (h *PostHandler) ToggleLike(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid like payload"))
		return
	}

	liked, err := h.service.ToggleLike(c.Request.Context(), req, claims.Info())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"liked": liked}, nil)
}

// ListReplies godoc
// @Summary List replies
// @Description Returns the replies of a post, oldest first
// @Tags Posts
// @Produce json
// @Param postId query string true "Post ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /posts/replies [get]
func (h *PostHandler) ListReplies(c *gin.Context) {
	replies, err := h.service.ListReplies(c.Request.Context(), c.Query("postId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, replies, nil)
}

// CreateReply godoc
// @Summary Reply to a post
// @Description Adds a comment to an existing post
// @Tags Posts
// @Accept json
// @Produce json
// @Param payload body service.CreateReplyRequest true "Reply payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /posts/replies [post]
func (h *PostHandler) CreateReply(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reply payload"))
		return
	}

	reply, err := h.service.CreateReply(c.Request.Context(), req, claims.Info())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reply)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/campusboard-api/internal/service"
	appErrors "github.com/campusboard/campusboard-api/pkg/errors"
	"github.com/campusboard/campusboard-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service      *service.AuthService
	cookieName   string
	secureCookie bool
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, cookieName string, secureCookie bool) *AuthHandler {
	return &AuthHandler{service: svc, cookieName: cookieName, secureCookie: secureCookie}
}

// Authenticate godoc
// @Summary Login or register
// @Description Authenticate by email and password, or register a new account, and set the session cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body service.AuthenticateRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth [post]
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req service.AuthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid auth payload"))
		return
	}

	session, err := h.service.Authenticate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, session.Token, int(session.MaxAge.Seconds()))
	response.JSON(c, http.StatusOK, gin.H{"user": session.User}, nil)
}

// Me godoc
// @Summary Get current user
// @Description Returns the authenticated user's identity, or null when no valid session is present
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.JSON(c, http.StatusOK, gin.H{"user": nil}, nil)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"user": claims.Info()}, nil)
}

// Logout godoc
// @Summary Logout current session
// @Description Clears the session cookie
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	response.JSON(c, http.StatusOK, gin.H{"message": "logged out"}, nil)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookieName, value, maxAge, "/", "", h.secureCookie, true)
}

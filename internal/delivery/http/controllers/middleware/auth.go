package middleware

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const SessionCtx = "session"

type AuthService interface {
	Authenticate(ctx context.Context, token string) (*models.Session, error)
}

type AuthMiddlewareProvider struct {
	log     logger.Log
	service AuthService
}

func NewAuthMiddlewareProvider(log logger.Log, s AuthService) *AuthMiddlewareProvider {
	return &AuthMiddlewareProvider{
		log:     log,
		service: s,
	}
}

// AuthMiddleware resolves the bearer token into a session stored on the gin context.
func (h *AuthMiddlewareProvider) AuthMiddleware(c *gin.Context) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	session, err := h.service.Authenticate(c.Request.Context(), token)
	if err != nil {
		h.log.Debug("failed to authenticate request", "err", err)
		if errors.Is(err, app_errors.ErrTokenExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": app_errors.ErrTokenExpired.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
		return
	}

	c.Set(SessionCtx, *session)
	c.Next()
}

// Session returns the caller set by AuthMiddleware.
func Session(c *gin.Context) (models.Session, bool) {
	raw, exists := c.Get(SessionCtx)
	if !exists {
		return models.Session{}, false
	}
	session, ok := raw.(models.Session)
	return session, ok
}

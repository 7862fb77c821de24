package auth

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/delivery/http/controllers/response"
	"LearnHub/internal/models"
	authsvc "LearnHub/internal/service/auth"
	"LearnHub/pkg/logger"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, reg authsvc.Registration) (*models.Profile, error)
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	RefreshTokens(ctx context.Context, token string) (*models.TokenPair, error)
	Profile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, session models.Session, update models.ProfileUpdate) (*models.Profile, error)
}

type AuthHandler struct {
	log     logger.Log
	service AuthService
}

func NewAuthHandler(l logger.Log, auth AuthService) *AuthHandler {
	return &AuthHandler{
		log:     l,
		service: auth,
	}
}

func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	profile, err := h.service.Profile(c.Request.Context(), session.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	var input models.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}
	profile, err := h.service.UpdateProfile(c.Request.Context(), session, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type registerRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input registerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	profile, err := h.service.Register(c.Request.Context(), authsvc.Registration{
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
		Role:        input.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func pairResponse(pair *models.TokenPair) tokenResponse {
	return tokenResponse{
		AccessToken:  pair.AccessToken.Raw,
		RefreshToken: pair.RefreshToken.Raw,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	pair, err := h.service.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		// do not reveal which of the two was wrong
		if errors.Is(err, app_errors.ErrUserNotFound) || errors.Is(err, app_errors.ErrIncorrectPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, pairResponse(pair))
}

type tokenRefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var input tokenRefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	pair, err := h.service.RefreshTokens(c.Request.Context(), input.RefreshToken)
	if err != nil {
		if response.Status(err) == http.StatusInternalServerError {
			h.log.Debug("refresh rejected", "err", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, pairResponse(pair))
}

package generate

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Generator interface {
	Generate(ctx context.Context, req models.GenerateRequest) (*models.CourseStructure, error)
}

type GenerateHandler struct {
	log     logger.Log
	service Generator
}

func NewGenerateHandler(l logger.Log, s Generator) *GenerateHandler {
	return &GenerateHandler{
		log:     l,
		service: s,
	}
}

// GenerateCourse returns a module outline for the posted course info.
func (h *GenerateHandler) GenerateCourse(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	structure, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, app_errors.ErrInvalidGenerateRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		h.log.ErrorErr("GenerateCourse failed", err, "title", req.Title)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate course"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"structure": structure,
	})
}

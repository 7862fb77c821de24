package learning

import (
	"LearnHub/internal/delivery/http/controllers/response"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProgressService interface {
	MarkDone(ctx context.Context, session models.Session, enrollmentID, materialID uuid.UUID) (*models.CourseProgress, error)
	CourseProgress(ctx context.Context, session models.Session, courseID uuid.UUID) (*models.ProgressSummary, error)
}

type ProgressHandler struct {
	log     logger.Log
	service ProgressService
}

func NewProgressHandler(l logger.Log, s ProgressService) *ProgressHandler {
	return &ProgressHandler{
		log:     l,
		service: s,
	}
}

func (h *ProgressHandler) MarkDone(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	enrollmentID, ok := response.UUIDParam(c, "enrollment_id")
	if !ok {
		return
	}
	materialID, ok := response.UUIDParam(c, "material_id")
	if !ok {
		return
	}
	progress, err := h.service.MarkDone(c.Request.Context(), session, enrollmentID, materialID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *ProgressHandler) CourseProgress(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	courseID, ok := response.UUIDParam(c, "course_id")
	if !ok {
		return
	}
	summary, err := h.service.CourseProgress(c.Request.Context(), session, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

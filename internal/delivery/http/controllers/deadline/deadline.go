package deadline

import (
	"LearnHub/internal/delivery/http/controllers/response"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DeadlineService interface {
	PriorityTasks(ctx context.Context, session models.Session) ([]models.PriorityTask, error)
	UpcomingDeadlines(ctx context.Context, session models.Session) ([]models.TeacherDeadline, error)
}

type DeadlineHandler struct {
	log     logger.Log
	service DeadlineService
}

func NewDeadlineHandler(l logger.Log, s DeadlineService) *DeadlineHandler {
	return &DeadlineHandler{
		log:     l,
		service: s,
	}
}

func (h *DeadlineHandler) PriorityTasks(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	tasks, err := h.service.PriorityTasks(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *DeadlineHandler) UpcomingDeadlines(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	deadlines, err := h.service.UpcomingDeadlines(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deadlines": deadlines})
}

package submission

import (
	"LearnHub/internal/delivery/http/controllers/response"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SubmissionService interface {
	Submit(ctx context.Context, session models.Session, taskID uuid.UUID, answerText, fileURL *string) (*models.Submission, error)
	TaskSubmissions(ctx context.Context, session models.Session, taskID uuid.UUID) ([]models.SubmissionView, error)
	Grade(ctx context.Context, session models.Session, submissionID uuid.UUID, grade int, feedback *string) (*models.Submission, error)
}

type SubmissionHandler struct {
	log     logger.Log
	service SubmissionService
}

func NewSubmissionHandler(l logger.Log, s SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		log:     l,
		service: s,
	}
}

type submitRequest struct {
	AnswerText *string `json:"answer_text"`
	FileURL    *string `json:"file_url"`
}

func (h *SubmissionHandler) Submit(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	taskID, ok := response.UUIDParam(c, "task_id")
	if !ok {
		return
	}
	var input submitRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}
	sub, err := h.service.Submit(c.Request.Context(), session, taskID, input.AnswerText, input.FileURL)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *SubmissionHandler) TaskSubmissions(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	taskID, ok := response.UUIDParam(c, "task_id")
	if !ok {
		return
	}
	subs, err := h.service.TaskSubmissions(c.Request.Context(), session, taskID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": subs})
}

type gradeRequest struct {
	Grade    *int    `json:"grade" binding:"required"`
	Feedback *string `json:"feedback"`
}

func (h *SubmissionHandler) Grade(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	submissionID, ok := response.UUIDParam(c, "submission_id")
	if !ok {
		return
	}
	var input gradeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}
	sub, err := h.service.Grade(c.Request.Context(), session, submissionID, *input.Grade, input.Feedback)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

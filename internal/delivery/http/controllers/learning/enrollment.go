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

type EnrollmentService interface {
	Enroll(ctx context.Context, session models.Session, courseID uuid.UUID) (*models.Enrollment, error)
	MyCourses(ctx context.Context, session models.Session) ([]models.EnrolledCourse, error)
	CourseStudents(ctx context.Context, session models.Session, courseID uuid.UUID) ([]models.CourseStudent, error)
	CourseContent(ctx context.Context, session models.Session, courseID uuid.UUID) (*models.CourseTree, error)
}

type EnrollmentHandler struct {
	log     logger.Log
	service EnrollmentService
}

func NewEnrollmentHandler(l logger.Log, s EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		log:     l,
		service: s,
	}
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	courseID, ok := response.UUIDParam(c, "course_id")
	if !ok {
		return
	}
	enrollment, err := h.service.Enroll(c.Request.Context(), session, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

func (h *EnrollmentHandler) MyCourses(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	courses, err := h.service.MyCourses(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *EnrollmentHandler) CourseStudents(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	courseID, ok := response.UUIDParam(c, "course_id")
	if !ok {
		return
	}
	students, err := h.service.CourseStudents(c.Request.Context(), session, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

func (h *EnrollmentHandler) CourseContent(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	courseID, ok := response.UUIDParam(c, "course_id")
	if !ok {
		return
	}
	tree, err := h.service.CourseContent(c.Request.Context(), session, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

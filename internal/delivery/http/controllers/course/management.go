package course

import (
	"LearnHub/internal/delivery/http/controllers/response"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ManagementService interface {
	MyCourses(ctx context.Context, session models.Session) ([]models.Course, error)
	OwnedTree(ctx context.Context, session models.Session, courseID uuid.UUID) (*models.CourseTree, error)
	UpdateCourse(ctx context.Context, session models.Session, courseID uuid.UUID, update models.CourseUpdate) (*models.Course, error)
	Publish(ctx context.Context, session models.Session, courseID uuid.UUID) error
	Hide(ctx context.Context, session models.Session, courseID uuid.UUID) error
	DeleteCourse(ctx context.Context, session models.Session, courseID uuid.UUID) error
	UploadCover(ctx context.Context, session models.Session, courseID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

type ManagementHandler struct {
	log     logger.Log
	service ManagementService
}

func NewManagementHandler(l logger.Log, s ManagementService) *ManagementHandler {
	return &ManagementHandler{
		log:     l,
		service: s,
	}
}

func (h *ManagementHandler) MyCourses(c *gin.Context) {
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

func (h *ManagementHandler) CourseTree(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	courseID, ok := response.UUIDParam(c, "course_id")
	if !ok {
		return
	}
	tree, err := h.service.OwnedTree(c.Request.Context(), session, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

func (h *ManagementHandler) UpdateCourse(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	courseID, ok := response.UUIDParam(c, "course_id")
	if !ok {
		return
	}
	var input models.CourseUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}
	course, err := h.service.UpdateCourse(c.Request.Context(), session, courseID, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *ManagementHandler) PublishCourse(c *gin.Context) {
	h.courseAction(c, h.service.Publish)
}

func (h *ManagementHandler) HideCourse(c *gin.Context) {
	h.courseAction(c, h.service.Hide)
}

func (h *ManagementHandler) DeleteCourse(c *gin.Context) {
	h.courseAction(c, h.service.DeleteCourse)
}

func (h *ManagementHandler) courseAction(c *gin.Context, action func(context.Context, models.Session, uuid.UUID) error) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	courseID, ok := response.UUIDParam(c, "course_id")
	if !ok {
		return
	}
	if err := action(c.Request.Context(), session, courseID); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ManagementHandler) UploadCover(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	courseID, ok := response.UUIDParam(c, "course_id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot open uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(fileHeader.Filename)))
	}

	url, err := h.service.UploadCover(
		c.Request.Context(),
		session,
		courseID,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		contentType,
	)
	if err != nil {
		h.log.ErrorErr("UploadCover failed", err, "course_id", courseID)
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"url":    url,
	})
}

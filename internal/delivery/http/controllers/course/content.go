package course

import (
	"LearnHub/internal/delivery/http/controllers/response"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ContentService interface {
	AddModule(ctx context.Context, session models.Session, courseID uuid.UUID, title, description string) (*models.Module, error)
	DeleteModule(ctx context.Context, session models.Session, moduleID uuid.UUID) error
	AddMaterial(ctx context.Context, session models.Session, moduleID uuid.UUID, material models.Material) (*models.MaterialNode, error)
	UpdateMaterial(ctx context.Context, session models.Session, materialID uuid.UUID, update models.MaterialUpdate) (*models.Material, error)
	DeleteMaterial(ctx context.Context, session models.Session, materialID uuid.UUID) error
	UpdateTask(ctx context.Context, session models.Session, taskID uuid.UUID, update models.TaskUpdate) (*models.Task, error)
}

type ContentHandler struct {
	log     logger.Log
	service ContentService
}

func NewContentHandler(l logger.Log, s ContentService) *ContentHandler {
	return &ContentHandler{
		log:     l,
		service: s,
	}
}

type newModuleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (h *ContentHandler) AddModule(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	courseID, ok := response.UUIDParam(c, "course_id")
	if !ok {
		return
	}
	var input newModuleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}
	module, err := h.service.AddModule(c.Request.Context(), session, courseID, input.Title, input.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, module)
}

func (h *ContentHandler) DeleteModule(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	moduleID, ok := response.UUIDParam(c, "module_id")
	if !ok {
		return
	}
	if err := h.service.DeleteModule(c.Request.Context(), session, moduleID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type newMaterialRequest struct {
	Type     string  `json:"type" binding:"required"`
	Title    string  `json:"title" binding:"required"`
	Content  string  `json:"content"`
	VideoURL *string `json:"video_url"`
}

func (h *ContentHandler) AddMaterial(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	moduleID, ok := response.UUIDParam(c, "module_id")
	if !ok {
		return
	}
	var input newMaterialRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}
	node, err := h.service.AddMaterial(c.Request.Context(), session, moduleID, models.Material{
		Type:     input.Type,
		Title:    input.Title,
		Content:  input.Content,
		VideoURL: input.VideoURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, node)
}

func (h *ContentHandler) UpdateMaterial(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	materialID, ok := response.UUIDParam(c, "material_id")
	if !ok {
		return
	}
	var input models.MaterialUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}
	material, err := h.service.UpdateMaterial(c.Request.Context(), session, materialID, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

func (h *ContentHandler) DeleteMaterial(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	materialID, ok := response.UUIDParam(c, "material_id")
	if !ok {
		return
	}
	if err := h.service.DeleteMaterial(c.Request.Context(), session, materialID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ContentHandler) UpdateTask(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	taskID, ok := response.UUIDParam(c, "task_id")
	if !ok {
		return
	}
	var input models.TaskUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}
	task, err := h.service.UpdateTask(c.Request.Context(), session, taskID, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

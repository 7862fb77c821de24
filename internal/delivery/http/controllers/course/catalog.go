package course

import (
	"LearnHub/internal/delivery/http/controllers/response"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type CatalogService interface {
	Catalog(ctx context.Context, limit, offset int) ([]models.CoursePreview, int, error)
	Search(ctx context.Context, query string, limit, offset int) ([]models.CoursePreview, int, error)
}

type CatalogHandler struct {
	log     logger.Log
	service CatalogService
}

func NewCatalogHandler(l logger.Log, s CatalogService) *CatalogHandler {
	return &CatalogHandler{
		log:     l,
		service: s,
	}
}

func (h *CatalogHandler) page(c *gin.Context) (limit, offset int, ok bool) {
	limit = defaultPageSize
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return 0, 0, false
		}
		limit = min(v, maxPageSize)
	}
	if s := c.Query("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
			return 0, 0, false
		}
		offset = v
	}
	return limit, offset, true
}

func (h *CatalogHandler) ListCourses(c *gin.Context) {
	limit, offset, ok := h.page(c)
	if !ok {
		return
	}
	previews, total, err := h.service.Catalog(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.ErrorErr("ListCourses failed", err)
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":   total,
		"courses": previews,
	})
}

func (h *CatalogHandler) SearchCourses(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	limit, offset, ok := h.page(c)
	if !ok {
		return
	}
	previews, total, err := h.service.Search(c.Request.Context(), q, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":   total,
		"courses": previews,
	})
}

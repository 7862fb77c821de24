package wizard

import (
	"LearnHub/internal/delivery/http/controllers/response"
	"LearnHub/internal/models"
	wizardsvc "LearnHub/internal/service/wizard"
	"LearnHub/pkg/logger"
	"context"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WizardService interface {
	Start(ctx context.Context, session models.Session) (*models.CourseDraft, error)
	Get(ctx context.Context, session models.Session, id uuid.UUID) (*models.CourseDraft, error)
	ListMine(ctx context.Context, session models.Session) ([]models.CourseDraft, error)
	Discard(ctx context.Context, session models.Session, id uuid.UUID) error
	SubmitInfo(ctx context.Context, session models.Session, id uuid.UUID, title, description string) (*models.CourseDraft, error)
	SubmitReferences(ctx context.Context, session models.Session, id uuid.UUID, keywords []string, files []wizardsvc.ReferenceFile) (*models.CourseDraft, error)
	Generate(ctx context.Context, session models.Session, id uuid.UUID) (*models.CourseDraft, error)
	Back(ctx context.Context, session models.Session, id uuid.UUID) (*models.CourseDraft, error)
	Save(ctx context.Context, session models.Session, id uuid.UUID) (*models.CourseDraft, error)
}

type WizardHandler struct {
	log     logger.Log
	service WizardService
}

func NewWizardHandler(l logger.Log, s WizardService) *WizardHandler {
	return &WizardHandler{
		log:     l,
		service: s,
	}
}

func (h *WizardHandler) Start(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	draft, err := h.service.Start(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

func (h *WizardHandler) List(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	drafts, err := h.service.ListMine(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drafts": drafts})
}

func (h *WizardHandler) Get(c *gin.Context) {
	h.step(c, h.service.Get)
}

func (h *WizardHandler) Discard(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	id, ok := response.UUIDParam(c, "draft_id")
	if !ok {
		return
	}
	if err := h.service.Discard(c.Request.Context(), session, id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type infoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *WizardHandler) SubmitInfo(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	id, ok := response.UUIDParam(c, "draft_id")
	if !ok {
		return
	}
	var input infoRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}
	draft, err := h.service.SubmitInfo(c.Request.Context(), session, id, input.Title, input.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SubmitReferences accepts either a JSON body {"keywords": [...]} or a
// multipart form with repeated "keywords" values and "files" uploads.
func (h *WizardHandler) SubmitReferences(c *gin.Context) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	id, ok := response.UUIDParam(c, "draft_id")
	if !ok {
		return
	}

	var (
		keywords []string
		files    []wizardsvc.ReferenceFile
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		form, err := c.MultipartForm()
		if err != nil {
			response.BadRequest(c, err)
			return
		}
		keywords = splitKeywords(form.Value["keywords"])
		opened, err := openReferences(form.File["files"])
		defer closeAll(opened)
		if err != nil {
			h.log.ErrorErr("cannot open reference upload", err, "draft_id", id)
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
			return
		}
		files = references(form.File["files"], opened)
	} else {
		var input struct {
			Keywords []string `json:"keywords"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			response.BadRequest(c, err)
			return
		}
		keywords = input.Keywords
	}

	draft, err := h.service.SubmitReferences(c.Request.Context(), session, id, keywords, files)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *WizardHandler) Generate(c *gin.Context) {
	h.step(c, h.service.Generate)
}

func (h *WizardHandler) Back(c *gin.Context) {
	h.step(c, h.service.Back)
}

func (h *WizardHandler) Save(c *gin.Context) {
	h.step(c, h.service.Save)
}

func (h *WizardHandler) step(c *gin.Context, action func(context.Context, models.Session, uuid.UUID) (*models.CourseDraft, error)) {
	session, ok := response.Session(c)
	if !ok {
		return
	}
	id, ok := response.UUIDParam(c, "draft_id")
	if !ok {
		return
	}
	draft, err := action(c.Request.Context(), session, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// splitKeywords also accepts a single comma separated value.
func splitKeywords(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}

func openReferences(headers []*multipart.FileHeader) ([]multipart.File, error) {
	opened := make([]multipart.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return opened, err
		}
		opened = append(opened, f)
	}
	return opened, nil
}

func references(headers []*multipart.FileHeader, opened []multipart.File) []wizardsvc.ReferenceFile {
	files := make([]wizardsvc.ReferenceFile, 0, len(opened))
	for i, f := range opened {
		fh := headers[i]
		contentType := fh.Header.Get("Content-Type")
		if contentType == "" {
			contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename)))
		}
		files = append(files, wizardsvc.ReferenceFile{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: contentType,
			Reader:      f,
		})
	}
	return files
}

func closeAll(files []multipart.File) {
	for _, f := range files {
		_ = f.Close()
	}
}

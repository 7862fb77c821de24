package wizard

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type draftRepo interface {
	CreateDraft(ctx context.Context, draft *models.CourseDraft) error
	DraftByID(ctx context.Context, id uuid.UUID) (*models.CourseDraft, error)
	UpdateDraft(ctx context.Context, draft *models.CourseDraft) error
	DraftsByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.CourseDraft, error)
	DeleteDraft(ctx context.Context, id uuid.UUID) error
}

type referenceStorage interface {
	UploadReference(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
}

type structureGenerator interface {
	Generate(ctx context.Context, req models.GenerateRequest) (*models.CourseStructure, error)
}

type courseSaver interface {
	SaveStructure(ctx context.Context, session models.Session, title, description string, structure *models.CourseStructure) (uuid.UUID, error)
}

// ReferenceFile is one uploaded reference document.
type ReferenceFile struct {
	Name        string
	Size        int64
	ContentType string
	Reader      io.Reader
}

type WizardService struct {
	log        logger.Log
	drafts     draftRepo
	references referenceStorage
	generator  structureGenerator
	saver      courseSaver
	now        func() time.Time
}

// NewWizardService builds the service. references may be nil, in which case files are ignored.
func NewWizardService(log logger.Log, drafts draftRepo, references referenceStorage, gen structureGenerator, saver courseSaver) *WizardService {
	return &WizardService{
		log:        log,
		drafts:     drafts,
		references: references,
		generator:  gen,
		saver:      saver,
		now:        time.Now,
	}
}

func (s *WizardService) Start(ctx context.Context, session models.Session) (*models.CourseDraft, error) {
	if !session.IsTeacher() {
		return nil, app_errors.ErrForbidden
	}
	draft := &models.CourseDraft{
		TeacherID:     session.UserID,
		Step:          models.StepInfo,
		Keywords:      []string{},
		ReferenceURLs: []string{},
	}
	if err := s.drafts.CreateDraft(ctx, draft); err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}
	return draft, nil
}

func (s *WizardService) Get(ctx context.Context, session models.Session, id uuid.UUID) (*models.CourseDraft, error) {
	return s.ownedDraft(ctx, session, id)
}

func (s *WizardService) ListMine(ctx context.Context, session models.Session) ([]models.CourseDraft, error) {
	if !session.IsTeacher() {
		return nil, app_errors.ErrForbidden
	}
	return s.drafts.DraftsByTeacher(ctx, session.UserID)
}

// Discard deletes the draft. A course already saved from it stays.
func (s *WizardService) Discard(ctx context.Context, session models.Session, id uuid.UUID) error {
	if _, err := s.ownedDraft(ctx, session, id); err != nil {
		return err
	}
	return s.drafts.DeleteDraft(ctx, id)
}

func (s *WizardService) SubmitInfo(ctx context.Context, session models.Session, id uuid.UUID, title, description string) (*models.CourseDraft, error) {
	draft, err := s.ownedDraft(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if err := applyInfo(draft, title, description); err != nil {
		return nil, err
	}
	return s.save(ctx, draft)
}

func (s *WizardService) SubmitReferences(ctx context.Context, session models.Session, id uuid.UUID, keywords []string, files []ReferenceFile) (*models.CourseDraft, error) {
	draft, err := s.ownedDraft(ctx, session, id)
	if err != nil {
		return nil, err
	}
	keywords = NormalizeKeywords(keywords)
	if err := checkReferences(draft, keywords); err != nil {
		return nil, err
	}

	draft.Keywords = keywords
	draft.ReferenceURLs = append(draft.ReferenceURLs, s.uploadReferences(ctx, session.UserID, files)...)
	draft.LastError = nil
	draft.Step = models.StepGenerate
	return s.save(ctx, draft)
}

func (s *WizardService) uploadReferences(ctx context.Context, teacherID uuid.UUID, files []ReferenceFile) []string {
	urls := make([]string, 0, len(files))
	if s.references == nil {
		if len(files) > 0 {
			s.log.Warn("reference storage not configured, skipping files", "count", len(files))
		}
		return urls
	}
	for _, f := range files {
		key := ReferenceObjectKey(teacherID, f.Name, s.now())
		url, err := s.references.UploadReference(ctx, key, f.Reader, f.Size, f.ContentType)
		if err != nil {
			s.log.ErrorErr("reference upload failed", err, "file", f.Name)
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

// ReferenceObjectKey names an uploaded reference as <teacher>/<unix-millis>_<slug>.<ext>.
func ReferenceObjectKey(teacherID uuid.UUID, filename string, at time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := slug.Make(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if base == "" {
		base = "file"
	}
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("%s/%d_%s%s", teacherID, at.UnixMilli(), base, ext)
}

func (s *WizardService) Generate(ctx context.Context, session models.Session, id uuid.UUID) (*models.CourseDraft, error) {
	draft, err := s.ownedDraft(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if err := checkGenerate(draft); err != nil {
		return nil, err
	}

	structure, genErr := s.generator.Generate(ctx, models.GenerateRequest{
		Title:         draft.Title,
		Description:   draft.Description,
		Keywords:      draft.Keywords,
		ReferenceURLs: draft.ReferenceURLs,
	})
	if genErr != nil {
		msg := genErr.Error()
		draft.LastError = &msg
		draft.Step = models.StepGenerate
		if _, err := s.save(ctx, draft); err != nil {
			s.log.ErrorErr("failed to record generation error", err, "draft_id", draft.ID)
		}
		return nil, genErr
	}

	draft.Structure = structure
	draft.LastError = nil
	draft.Step = models.StepPreview
	return s.save(ctx, draft)
}

func (s *WizardService) Back(ctx context.Context, session models.Session, id uuid.UUID) (*models.CourseDraft, error) {
	draft, err := s.ownedDraft(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if err := applyBack(draft); err != nil {
		return nil, err
	}
	return s.save(ctx, draft)
}

func (s *WizardService) Save(ctx context.Context, session models.Session, id uuid.UUID) (*models.CourseDraft, error) {
	draft, err := s.ownedDraft(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if err := checkSave(draft); err != nil {
		return nil, err
	}

	courseID, saveErr := s.saver.SaveStructure(ctx, session, draft.Title, draft.Description, draft.Structure)
	if saveErr != nil {
		msg := saveErr.Error()
		draft.LastError = &msg
		if _, err := s.save(ctx, draft); err != nil {
			s.log.ErrorErr("failed to record save error", err, "draft_id", draft.ID)
		}
		return nil, saveErr
	}

	s.log.Info("course saved from wizard", "draft_id", draft.ID, "course_id", courseID)
	draft.CourseID = &courseID
	draft.LastError = nil
	draft.Step = models.StepDone
	return s.save(ctx, draft)
}

func (s *WizardService) ownedDraft(ctx context.Context, session models.Session, id uuid.UUID) (*models.CourseDraft, error) {
	if !session.IsTeacher() {
		return nil, app_errors.ErrForbidden
	}
	draft, err := s.drafts.DraftByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.TeacherID != session.UserID {
		return nil, app_errors.ErrForbidden
	}
	return draft, nil
}

func (s *WizardService) save(ctx context.Context, draft *models.CourseDraft) (*models.CourseDraft, error) {
	if err := s.drafts.UpdateDraft(ctx, draft); err != nil {
		return nil, fmt.Errorf("update draft: %w", err)
	}
	return draft, nil
}

package course

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	maxCoverSizeBytes = 5 << 20
	previewDescLen    = 200
)

type courseTx interface {
	InTx(ctx context.Context, fn func(w models.CourseWriter) error) error
}

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	CoursesByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Course, error)
	UpdateCourse(ctx context.Context, id uuid.UUID, update models.CourseUpdate) (*models.Course, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	UpdateCover(ctx context.Context, id uuid.UUID, url string) error
	DeleteCourse(ctx context.Context, id uuid.UUID) error
	ListPublished(ctx context.Context, limit, offset int) ([]models.CoursePreview, error)
	CountPublished(ctx context.Context) (int, error)
	PublishedPreviews(ctx context.Context, ids []uuid.UUID) ([]models.CoursePreview, error)
}

type searchRepo interface {
	Index(ctx context.Context, course models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, size int) ([]uuid.UUID, error)
	Count(ctx context.Context, query string) (int, error)
}

type coverStorage interface {
	UploadCover(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
}

type CourseService struct {
	log     logger.Log
	tx      courseTx
	courses courseRepo
	content contentRepo
	search  searchRepo
	covers  coverStorage
	now     func() time.Time
}

// NewCourseService builds the service. search and covers may be nil when not configured.
func NewCourseService(log logger.Log, tx courseTx, courses courseRepo, content contentRepo, search searchRepo, covers coverStorage) *CourseService {
	return &CourseService{
		log:     log,
		tx:      tx,
		courses: courses,
		content: content,
		search:  search,
		covers:  covers,
		now:     time.Now,
	}
}

func (s *CourseService) ownedCourse(ctx context.Context, session models.Session, courseID uuid.UUID) (*models.Course, error) {
	if !session.IsTeacher() {
		return nil, app_errors.ErrForbidden
	}
	course, err := s.courses.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != session.UserID {
		return nil, app_errors.ErrNotCourseOwner
	}
	return course, nil
}

func (s *CourseService) MyCourses(ctx context.Context, session models.Session) ([]models.Course, error) {
	if !session.IsTeacher() {
		return nil, app_errors.ErrForbidden
	}
	return s.courses.CoursesByTeacher(ctx, session.UserID)
}

// OwnedTree returns the full tree of a course owned by the calling teacher.
func (s *CourseService) OwnedTree(ctx context.Context, session models.Session, courseID uuid.UUID) (*models.CourseTree, error) {
	if _, err := s.ownedCourse(ctx, session, courseID); err != nil {
		return nil, err
	}
	return s.content.CourseTree(ctx, courseID)
}

func (s *CourseService) UpdateCourse(ctx context.Context, session models.Session, courseID uuid.UUID, update models.CourseUpdate) (*models.Course, error) {
	if _, err := s.ownedCourse(ctx, session, courseID); err != nil {
		return nil, err
	}
	if update.Title != nil {
		t := strings.TrimSpace(*update.Title)
		if t == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", app_errors.ErrInvalidInput)
		}
		update.Title = &t
	}
	course, err := s.courses.UpdateCourse(ctx, courseID, update)
	if err != nil {
		return nil, err
	}
	if course.IsPublished {
		s.reindex(ctx, *course)
	}
	return course, nil
}

func (s *CourseService) Publish(ctx context.Context, session models.Session, courseID uuid.UUID) error {
	course, err := s.ownedCourse(ctx, session, courseID)
	if err != nil {
		return err
	}
	if err := s.courses.SetPublished(ctx, courseID, true); err != nil {
		return err
	}
	course.IsPublished = true
	s.reindex(ctx, *course)
	return nil
}

func (s *CourseService) Hide(ctx context.Context, session models.Session, courseID uuid.UUID) error {
	if _, err := s.ownedCourse(ctx, session, courseID); err != nil {
		return err
	}
	if err := s.courses.SetPublished(ctx, courseID, false); err != nil {
		return err
	}
	s.unindex(ctx, courseID)
	return nil
}

func (s *CourseService) DeleteCourse(ctx context.Context, session models.Session, courseID uuid.UUID) error {
	if _, err := s.ownedCourse(ctx, session, courseID); err != nil {
		return err
	}
	if err := s.courses.DeleteCourse(ctx, courseID); err != nil {
		return err
	}
	s.unindex(ctx, courseID)
	return nil
}

func (s *CourseService) UploadCover(
	ctx context.Context,
	session models.Session,
	courseID uuid.UUID,
	filename string,
	reader io.Reader,
	size int64,
	contentType string,
) (string, error) {
	if _, err := s.ownedCourse(ctx, session, courseID); err != nil {
		return "", err
	}
	if s.covers == nil {
		return "", fmt.Errorf("cover storage is not configured")
	}
	if size <= 0 || size > maxCoverSizeBytes {
		return "", app_errors.ErrFileSize
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", app_errors.ErrNotImage
	}

	objectKey := fmt.Sprintf("courses/%s/%d_%s%s", courseID, s.now().UnixMilli(), coverSlug(filename), ext)
	url, err := s.covers.UploadCover(ctx, objectKey, reader, size, contentType)
	if err != nil {
		s.log.ErrorErr("failed to upload cover to storage", err, "course_id", courseID)
		return "", err
	}
	if err := s.courses.UpdateCover(ctx, courseID, url); err != nil {
		s.log.ErrorErr("failed to save cover url to db", err, "course_id", courseID)
		return "", err
	}
	return url, nil
}

func coverSlug(filename string) string {
	base := slug.Make(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if base == "" {
		return "cover"
	}
	return base
}

// Catalog lists published courses.
func (s *CourseService) Catalog(ctx context.Context, limit, offset int) ([]models.CoursePreview, int, error) {
	previews, err := s.courses.ListPublished(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.courses.CountPublished(ctx)
	if err != nil {
		return nil, 0, err
	}
	for i := range previews {
		previews[i].Description = shorten(previews[i].Description)
	}
	return previews, total, nil
}

func (s *CourseService) Search(ctx context.Context, query string, limit, offset int) ([]models.CoursePreview, int, error) {
	if s.search == nil {
		return nil, 0, app_errors.ErrSearchDisabled
	}
	ids, err := s.search.Search(ctx, query, limit+offset)
	if err != nil {
		return nil, 0, fmt.Errorf("search preview: elastic search failed: %w", err)
	}
	if len(ids) > offset {
		ids = ids[offset:]
	} else {
		ids = nil
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	total, err := s.search.Count(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("search count failed: %w", err)
	}
	if len(ids) == 0 {
		return []models.CoursePreview{}, total, nil
	}
	previews, err := s.courses.PublishedPreviews(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	// keep relevance order from the index
	byID := make(map[uuid.UUID]models.CoursePreview, len(previews))
	for _, p := range previews {
		byID[p.ID] = p
	}
	ordered := make([]models.CoursePreview, 0, len(previews))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			p.Description = shorten(p.Description)
			ordered = append(ordered, p)
		}
	}
	return ordered, total, nil
}

func shorten(desc string) string {
	r := []rune(desc)
	if len(r) > previewDescLen {
		return string(r[:previewDescLen]) + "…"
	}
	return desc
}

func (s *CourseService) reindex(ctx context.Context, course models.Course) {
	if s.search == nil {
		return
	}
	if err := s.search.Index(ctx, course); err != nil {
		s.log.ErrorErr("error indexing course", err, "course_id", course.ID)
	}
}

func (s *CourseService) unindex(ctx context.Context, id uuid.UUID) {
	if s.search == nil {
		return
	}
	if err := s.search.Delete(ctx, id); err != nil {
		s.log.ErrorErr("error removing course from index", err, "course_id", id)
	}
}

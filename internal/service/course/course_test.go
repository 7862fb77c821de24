package course

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCourses struct {
	courses map[uuid.UUID]*models.Course
}

func (m *memCourses) CourseByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCourses) CoursesByTeacher(_ context.Context, teacherID uuid.UUID) ([]models.Course, error) {
	out := []models.Course{}
	for _, c := range m.courses {
		if c.TeacherID == teacherID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCourses) UpdateCourse(_ context.Context, id uuid.UUID, u models.CourseUpdate) (*models.Course, error) {
	c := m.courses[id]
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	cp := *c
	return &cp, nil
}

func (m *memCourses) SetPublished(_ context.Context, id uuid.UUID, p bool) error {
	m.courses[id].IsPublished = p
	return nil
}

func (m *memCourses) UpdateCover(_ context.Context, id uuid.UUID, url string) error {
	m.courses[id].CoverImageURL = &url
	return nil
}

func (m *memCourses) DeleteCourse(_ context.Context, id uuid.UUID) error {
	delete(m.courses, id)
	return nil
}

func (m *memCourses) ListPublished(context.Context, int, int) ([]models.CoursePreview, error) {
	out := []models.CoursePreview{}
	for _, c := range m.courses {
		if c.IsPublished {
			out = append(out, models.CoursePreview{Course: *c})
		}
	}
	return out, nil
}

func (m *memCourses) CountPublished(ctx context.Context) (int, error) {
	l, _ := m.ListPublished(ctx, 0, 0)
	return len(l), nil
}

func (m *memCourses) PublishedPreviews(_ context.Context, ids []uuid.UUID) ([]models.CoursePreview, error) {
	out := []models.CoursePreview{}
	for _, id := range ids {
		if c, ok := m.courses[id]; ok && c.IsPublished {
			out = append(out, models.CoursePreview{Course: *c})
		}
	}
	return out, nil
}

type memSearch struct {
	indexed map[uuid.UUID]bool
}

func (s *memSearch) Index(_ context.Context, c models.Course) error {
	s.indexed[c.ID] = true
	return nil
}

func (s *memSearch) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.indexed, id)
	return nil
}

func (s *memSearch) Search(context.Context, string, int) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	for id := range s.indexed {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *memSearch) Count(context.Context, string) (int, error) {
	return len(s.indexed), nil
}

type memCovers struct {
	keys []string
}

func (c *memCovers) UploadCover(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	_, _ = io.ReadAll(r)
	c.keys = append(c.keys, key)
	return "https://cdn.local/" + key, nil
}

func newCourseFixture(t *testing.T) (*CourseService, *memCourses, *memSearch, models.Session, uuid.UUID) {
	t.Helper()
	teacher := models.Session{UserID: uuid.New(), Role: models.RoleTeacher}
	courseID := uuid.New()
	courses := &memCourses{courses: map[uuid.UUID]*models.Course{
		courseID: {ID: courseID, TeacherID: teacher.UserID, Title: "Go", Description: strings.Repeat("x", 250)},
	}}
	search := &memSearch{indexed: map[uuid.UUID]bool{}}
	svc := NewCourseService(logger.Discard(), nil, courses, nil, search, &memCovers{})
	return svc, courses, search, teacher, courseID
}

func TestPublishAndHide(t *testing.T) {
	svc, courses, search, teacher, courseID := newCourseFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Publish(ctx, teacher, courseID))
	assert.True(t, courses.courses[courseID].IsPublished)
	assert.True(t, search.indexed[courseID])

	previews, total, err := svc.Catalog(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, []rune(previews[0].Description), previewDescLen+1)

	found, _, err := svc.Search(ctx, "go", 10, 0)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, svc.Hide(ctx, teacher, courseID))
	assert.False(t, courses.courses[courseID].IsPublished)
	assert.False(t, search.indexed[courseID])
}

func TestOwnership(t *testing.T) {
	svc, _, _, _, courseID := newCourseFixture(t)
	ctx := context.Background()

	other := models.Session{UserID: uuid.New(), Role: models.RoleTeacher}
	assert.ErrorIs(t, svc.Publish(ctx, other, courseID), app_errors.ErrNotCourseOwner)

	student := models.Session{UserID: uuid.New(), Role: models.RoleStudent}
	assert.ErrorIs(t, svc.DeleteCourse(ctx, student, courseID), app_errors.ErrForbidden)

	assert.ErrorIs(t, svc.Publish(ctx, other, uuid.New()), app_errors.ErrCourseNotFound)
}

func TestUploadCover(t *testing.T) {
	svc, courses, _, teacher, courseID := newCourseFixture(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		filename    string
		size        int64
		contentType string
		wantErr     error
	}{
		{"png", "My Cover.png", 1024, "image/png", nil},
		{"by extension", "cover.jpg", 1024, "", nil},
		{"pdf", "doc.pdf", 1024, "application/pdf", app_errors.ErrNotImage},
		{"too large", "big.png", 6 << 20, "image/png", app_errors.ErrFileSize},
		{"empty", "empty.png", 0, "image/png", app_errors.ErrFileSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, err := svc.UploadCover(ctx, teacher, courseID, tt.filename, strings.NewReader("img"), tt.size, tt.contentType)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, url, *courses.courses[courseID].CoverImageURL)
		})
	}
}

func TestSearchDisabled(t *testing.T) {
	svc := NewCourseService(logger.Discard(), nil, &memCourses{}, nil, nil, nil)
	_, _, err := svc.Search(context.Background(), "go", 10, 0)
	assert.ErrorIs(t, err, app_errors.ErrSearchDisabled)
}

func TestSearch_PageBeyondResults(t *testing.T) {
	svc, _, _, teacher, courseID := newCourseFixture(t)
	ctx := context.Background()
	require.NoError(t, svc.Publish(ctx, teacher, courseID))

	tests := []struct {
		name          string
		limit, offset int
		wantLen       int
	}{
		{"first page", 10, 0, 1},
		{"past last hit", 10, 5, 0},
		{"offset at end", 10, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, total, err := svc.Search(ctx, "go", tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Len(t, found, tt.wantLen)
			assert.NotNil(t, found)
			assert.Equal(t, 1, total)
		})
	}
}

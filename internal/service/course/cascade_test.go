package course

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"LearnHub/internal/service/generator"
	"LearnHub/pkg/logger"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	courses   []*models.Course
	modules   []*models.Module
	materials []*models.Material
	tasks     []*models.Task
	ids       map[uuid.UUID]struct{}
	failOn    string
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{ids: map[uuid.UUID]struct{}{}}
}

func (w *recordingWriter) assign() (uuid.UUID, error) {
	id := uuid.New()
	w.ids[id] = struct{}{}
	return id, nil
}

func (w *recordingWriter) known(id uuid.UUID) bool {
	_, ok := w.ids[id]
	return ok
}

func (w *recordingWriter) InsertCourse(_ context.Context, c *models.Course) error {
	c.ID, _ = w.assign()
	w.courses = append(w.courses, c)
	return nil
}

func (w *recordingWriter) InsertModule(_ context.Context, m *models.Module) error {
	if !w.known(m.CourseID) {
		return errors.New("module before course")
	}
	m.ID, _ = w.assign()
	w.modules = append(w.modules, m)
	return nil
}

func (w *recordingWriter) InsertMaterial(_ context.Context, m *models.Material) error {
	if w.failOn == "material" {
		return errors.New("material insert failed")
	}
	if !w.known(m.ModuleID) {
		return errors.New("material before module")
	}
	m.ID, _ = w.assign()
	w.materials = append(w.materials, m)
	return nil
}

func (w *recordingWriter) InsertTask(_ context.Context, t *models.Task) error {
	if w.failOn == "task" {
		return errors.New("task insert failed")
	}
	if !w.known(t.MaterialID) {
		return errors.New("task before material")
	}
	t.ID, _ = w.assign()
	w.tasks = append(w.tasks, t)
	return nil
}

// fakeTx commits the writer's records only when fn succeeds.
type fakeTx struct {
	writer    *recordingWriter
	committed *recordingWriter
}

func (f *fakeTx) InTx(_ context.Context, fn func(w models.CourseWriter) error) error {
	if err := fn(f.writer); err != nil {
		return err
	}
	f.committed = f.writer
	return nil
}

func TestWriteStructure_Cascade(t *testing.T) {
	structure, err := generator.NewTemplateGenerator().Generate(context.Background(), models.GenerateRequest{
		Title: "Intro to Sorting", Description: "Learn basic sorting", Keywords: []string{"array", "bubble sort"},
	})
	require.NoError(t, err)

	w := newRecordingWriter()
	teacher := uuid.New()
	courseID, err := WriteStructure(context.Background(), w, teacher, "Intro to Sorting", "Learn basic sorting", structure)
	require.NoError(t, err)

	require.Len(t, w.courses, 1)
	assert.Equal(t, courseID, w.courses[0].ID)
	assert.Equal(t, teacher, w.courses[0].TeacherID)
	assert.False(t, w.courses[0].IsPublished)

	assert.Len(t, w.modules, 3)
	assert.Len(t, w.materials, 12)
	assert.Len(t, w.tasks, 3)

	for i, m := range w.modules {
		assert.Equal(t, i, m.OrderIndex)
		assert.Equal(t, courseID, m.CourseID)
	}
	for i, mat := range w.materials {
		assert.Equal(t, i%4, mat.OrderIndex)
	}
	for i, task := range w.tasks {
		assert.Equal(t, models.DefaultMaxScore, task.MaxScore)
		assert.Nil(t, task.DueDate)
		assert.Equal(t, "Quiz for "+w.modules[i].Title, task.Description)
	}
}

func TestWriteStructure_RejectsUnknownType(t *testing.T) {
	w := newRecordingWriter()
	_, err := WriteStructure(context.Background(), w, uuid.New(), "t", "d", &models.CourseStructure{
		Modules: []models.GeneratedModule{{Title: "m", Materials: []models.GeneratedMaterial{{Title: "x", Type: "podcast"}}}},
	})
	assert.ErrorIs(t, err, app_errors.ErrInvalidMaterialType)
}

func TestSaveStructure_RollsBack(t *testing.T) {
	for _, stage := range []string{"material", "task"} {
		t.Run(stage, func(t *testing.T) {
			w := newRecordingWriter()
			w.failOn = stage
			tx := &fakeTx{writer: w}
			svc := NewCourseService(logger.Discard(), tx, nil, nil, nil, nil)

			structure, _ := generator.NewTemplateGenerator().Generate(context.Background(), models.GenerateRequest{Keywords: []string{"k"}})
			teacher := models.Session{UserID: uuid.New(), Role: models.RoleTeacher}
			id, err := svc.SaveStructure(context.Background(), teacher, "t", "d", structure)
			assert.Error(t, err)
			assert.Equal(t, uuid.Nil, id)
			assert.Nil(t, tx.committed)
		})
	}
}

func TestSaveStructure_Guards(t *testing.T) {
	tx := &fakeTx{writer: newRecordingWriter()}
	svc := NewCourseService(logger.Discard(), tx, nil, nil, nil, nil)
	structure := &models.CourseStructure{}

	_, err := svc.SaveStructure(context.Background(), models.Session{UserID: uuid.New(), Role: models.RoleStudent}, "t", "d", structure)
	assert.ErrorIs(t, err, app_errors.ErrForbidden)

	_, err = svc.SaveStructure(context.Background(), models.Session{UserID: uuid.New(), Role: models.RoleTeacher}, " ", "d", structure)
	assert.ErrorIs(t, err, app_errors.ErrWizardValidation)
}

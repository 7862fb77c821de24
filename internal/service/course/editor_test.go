package course

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memContent serves the editor's lookups from the rows a recordingWriter holds.
type memContent struct {
	*recordingWriter
	deletedModules   []uuid.UUID
	deletedMaterials []uuid.UUID
}

func (m *memContent) CourseTree(_ context.Context, courseID uuid.UUID) (*models.CourseTree, error) {
	return &models.CourseTree{Course: models.Course{ID: courseID}}, nil
}

func (m *memContent) module(id uuid.UUID) *models.Module {
	for _, mod := range m.modules {
		if mod.ID == id {
			return mod
		}
	}
	return nil
}

func (m *memContent) material(id uuid.UUID) *models.Material {
	for _, mat := range m.materials {
		if mat.ID == id {
			return mat
		}
	}
	return nil
}

func (m *memContent) task(id uuid.UUID) *models.Task {
	for _, t := range m.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (m *memContent) ModuleCourseID(_ context.Context, moduleID uuid.UUID) (uuid.UUID, error) {
	mod := m.module(moduleID)
	if mod == nil {
		return uuid.Nil, app_errors.ErrModuleNotFound
	}
	return mod.CourseID, nil
}

func (m *memContent) MaterialCourseID(ctx context.Context, materialID uuid.UUID) (uuid.UUID, error) {
	mat := m.material(materialID)
	if mat == nil {
		return uuid.Nil, app_errors.ErrMaterialNotFound
	}
	return m.ModuleCourseID(ctx, mat.ModuleID)
}

func (m *memContent) TaskCourseID(ctx context.Context, taskID uuid.UUID) (uuid.UUID, error) {
	t := m.task(taskID)
	if t == nil {
		return uuid.Nil, app_errors.ErrTaskNotFound
	}
	return m.MaterialCourseID(ctx, t.MaterialID)
}

func (m *memContent) NextModuleIndex(_ context.Context, courseID uuid.UUID) (int, error) {
	n := 0
	for _, mod := range m.modules {
		if mod.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (m *memContent) NextMaterialIndex(_ context.Context, moduleID uuid.UUID) (int, error) {
	n := 0
	for _, mat := range m.materials {
		if mat.ModuleID == moduleID {
			n++
		}
	}
	return n, nil
}

func (m *memContent) DeleteModule(_ context.Context, moduleID uuid.UUID) error {
	m.deletedModules = append(m.deletedModules, moduleID)
	return nil
}

func (m *memContent) UpdateMaterial(_ context.Context, materialID uuid.UUID, u models.MaterialUpdate) (*models.Material, error) {
	mat := m.material(materialID)
	if u.Title != nil {
		mat.Title = *u.Title
	}
	if u.Content != nil {
		mat.Content = *u.Content
	}
	cp := *mat
	return &cp, nil
}

func (m *memContent) DeleteMaterial(_ context.Context, materialID uuid.UUID) error {
	m.deletedMaterials = append(m.deletedMaterials, materialID)
	return nil
}

func (m *memContent) UpdateTask(_ context.Context, taskID uuid.UUID, u models.TaskUpdate) (*models.Task, error) {
	t := m.task(taskID)
	if u.MaxScore != nil {
		t.MaxScore = *u.MaxScore
	}
	cp := *t
	return &cp, nil
}

type editorFixture struct {
	svc      *CourseService
	content  *memContent
	tx       *fakeTx
	teacher  models.Session
	courseID uuid.UUID
}

func newEditorFixture(t *testing.T) *editorFixture {
	t.Helper()
	teacher := models.Session{UserID: uuid.New(), Role: models.RoleTeacher}
	courseID := uuid.New()
	courses := &memCourses{courses: map[uuid.UUID]*models.Course{
		courseID: {ID: courseID, TeacherID: teacher.UserID, Title: "Go"},
	}}
	w := newRecordingWriter()
	w.ids[courseID] = struct{}{}
	content := &memContent{recordingWriter: w}
	tx := &fakeTx{writer: w}
	return &editorFixture{
		svc:      NewCourseService(logger.Discard(), tx, courses, content, nil, nil),
		content:  content,
		tx:       tx,
		teacher:  teacher,
		courseID: courseID,
	}
}

func TestAddModule(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	other := models.Session{UserID: uuid.New(), Role: models.RoleTeacher}

	tests := []struct {
		name      string
		session   models.Session
		title     string
		wantErr   error
		wantIndex int
	}{
		{"first", f.teacher, "Basics", nil, 0},
		{"appended", f.teacher, "  Advanced ", nil, 1},
		{"blank title", f.teacher, "   ", app_errors.ErrInvalidInput, 0},
		{"not owner", other, "Stolen", app_errors.ErrNotCourseOwner, 0},
		{"student", models.Session{UserID: uuid.New(), Role: models.RoleStudent}, "x", app_errors.ErrForbidden, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := f.svc.AddModule(ctx, tt.session, f.courseID, tt.title, "")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIndex, m.OrderIndex)
			assert.Equal(t, f.courseID, m.CourseID)
		})
	}
	require.Len(t, f.content.modules, 2)
	assert.Equal(t, "Advanced", f.content.modules[1].Title)
}

func TestAddMaterial(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	module, err := f.svc.AddModule(ctx, f.teacher, f.courseID, "Basics", "")
	require.NoError(t, err)

	tests := []struct {
		name      string
		material  models.Material
		wantErr   error
		wantIndex int
		wantTask  bool
	}{
		{"text", models.Material{Type: models.MaterialText, Title: "Intro"}, nil, 0, false},
		{"video", models.Material{Type: models.MaterialVideo, Title: "Talk"}, nil, 1, false},
		{"quiz", models.Material{Type: models.MaterialQuiz, Title: "Check"}, nil, 2, true},
		{"assignment", models.Material{Type: models.MaterialAssignment, Title: "Homework"}, nil, 3, true},
		{"unknown type", models.Material{Type: "podcast", Title: "x"}, app_errors.ErrInvalidMaterialType, 0, false},
		{"blank title", models.Material{Type: models.MaterialText, Title: " "}, app_errors.ErrInvalidInput, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := f.svc.AddMaterial(ctx, f.teacher, module.ID, tt.material)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIndex, node.OrderIndex)
			assert.Equal(t, module.ID, node.ModuleID)
			if !tt.wantTask {
				assert.Nil(t, node.Task)
				return
			}
			require.NotNil(t, node.Task)
			assert.Equal(t, node.ID, node.Task.MaterialID)
			assert.Equal(t, models.DefaultMaxScore, node.Task.MaxScore)
			assert.Equal(t, tt.material.Title, node.Task.Description)
		})
	}
	assert.Len(t, f.content.materials, 4)
	assert.Len(t, f.content.tasks, 2)

	other := models.Session{UserID: uuid.New(), Role: models.RoleTeacher}
	_, err = f.svc.AddMaterial(ctx, other, module.ID, models.Material{Type: models.MaterialText, Title: "x"})
	assert.ErrorIs(t, err, app_errors.ErrNotCourseOwner)

	_, err = f.svc.AddMaterial(ctx, f.teacher, uuid.New(), models.Material{Type: models.MaterialText, Title: "x"})
	assert.ErrorIs(t, err, app_errors.ErrModuleNotFound)
}

func TestAddMaterial_TaskFailureRollsBack(t *testing.T) {
	for _, kind := range []string{models.MaterialQuiz, models.MaterialAssignment} {
		t.Run(kind, func(t *testing.T) {
			f := newEditorFixture(t)
			ctx := context.Background()
			module, err := f.svc.AddModule(ctx, f.teacher, f.courseID, "Basics", "")
			require.NoError(t, err)

			f.content.failOn = "task"
			node, err := f.svc.AddMaterial(ctx, f.teacher, module.ID, models.Material{Type: kind, Title: "Check"})
			assert.Error(t, err)
			assert.Nil(t, node)
			assert.Nil(t, f.tx.committed)
		})
	}
}

func TestEditMaterialAndTask(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	other := models.Session{UserID: uuid.New(), Role: models.RoleTeacher}
	module, err := f.svc.AddModule(ctx, f.teacher, f.courseID, "Basics", "")
	require.NoError(t, err)
	node, err := f.svc.AddMaterial(ctx, f.teacher, module.ID, models.Material{Type: models.MaterialQuiz, Title: "Check"})
	require.NoError(t, err)

	str := func(s string) *string { return &s }
	score := func(n int) *int { return &n }

	materialTests := []struct {
		name    string
		session models.Session
		update  models.MaterialUpdate
		wantErr error
	}{
		{"rename", f.teacher, models.MaterialUpdate{Title: str("Recap")}, nil},
		{"content only", f.teacher, models.MaterialUpdate{Content: str("body")}, nil},
		{"blank title", f.teacher, models.MaterialUpdate{Title: str("  ")}, app_errors.ErrInvalidInput},
		{"not owner", other, models.MaterialUpdate{Title: str("x")}, app_errors.ErrNotCourseOwner},
	}
	for _, tt := range materialTests {
		t.Run("material/"+tt.name, func(t *testing.T) {
			_, err := f.svc.UpdateMaterial(ctx, tt.session, node.ID, tt.update)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
	assert.Equal(t, "Recap", f.content.material(node.ID).Title)

	taskTests := []struct {
		name    string
		session models.Session
		score   *int
		wantErr error
	}{
		{"raise", f.teacher, score(50), nil},
		{"zero", f.teacher, score(0), app_errors.ErrInvalidInput},
		{"negative", f.teacher, score(-1), app_errors.ErrInvalidInput},
		{"not owner", other, score(10), app_errors.ErrNotCourseOwner},
	}
	for _, tt := range taskTests {
		t.Run("task/"+tt.name, func(t *testing.T) {
			_, err := f.svc.UpdateTask(ctx, tt.session, node.Task.ID, models.TaskUpdate{MaxScore: tt.score})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
	assert.Equal(t, 50, f.content.task(node.Task.ID).MaxScore)
}

func TestDeleteModuleAndMaterial(t *testing.T) {
	f := newEditorFixture(t)
	ctx := context.Background()
	other := models.Session{UserID: uuid.New(), Role: models.RoleTeacher}
	module, err := f.svc.AddModule(ctx, f.teacher, f.courseID, "Basics", "")
	require.NoError(t, err)
	node, err := f.svc.AddMaterial(ctx, f.teacher, module.ID, models.Material{Type: models.MaterialText, Title: "Intro"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeleteMaterial(ctx, other, node.ID), app_errors.ErrNotCourseOwner)
	assert.ErrorIs(t, f.svc.DeleteModule(ctx, other, module.ID), app_errors.ErrNotCourseOwner)
	assert.Empty(t, f.content.deletedMaterials)
	assert.Empty(t, f.content.deletedModules)

	assert.ErrorIs(t, f.svc.DeleteMaterial(ctx, f.teacher, uuid.New()), app_errors.ErrMaterialNotFound)

	require.NoError(t, f.svc.DeleteMaterial(ctx, f.teacher, node.ID))
	require.NoError(t, f.svc.DeleteModule(ctx, f.teacher, module.ID))
	assert.Equal(t, []uuid.UUID{node.ID}, f.content.deletedMaterials)
	assert.Equal(t, []uuid.UUID{module.ID}, f.content.deletedModules)
}

package enrollment

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

type memCourses map[uuid.UUID]*models.Course

func (m memCourses) CourseByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	c, ok := m[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	return c, nil
}

type memEnrollments struct {
	rows    []*models.Enrollment
	courses memCourses
}

func (m *memEnrollments) CreateEnrollment(_ context.Context, e *models.Enrollment) error {
	for _, r := range m.rows {
		if r.StudentID == e.StudentID && r.CourseID == e.CourseID {
			return app_errors.ErrAlreadyEnrolled
		}
	}
	e.ID = uuid.New()
	m.rows = append(m.rows, e)
	return nil
}

func (m *memEnrollments) EnrollmentFor(_ context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	for _, r := range m.rows {
		if r.StudentID == studentID && r.CourseID == courseID {
			return r, nil
		}
	}
	return nil, app_errors.ErrEnrollmentNotFound
}

func (m *memEnrollments) EnrolledCourses(_ context.Context, studentID uuid.UUID) ([]models.EnrolledCourse, error) {
	out := []models.EnrolledCourse{}
	for _, r := range m.rows {
		if r.StudentID == studentID {
			out = append(out, models.EnrolledCourse{
				CoursePreview: models.CoursePreview{Course: *m.courses[r.CourseID]},
				EnrollmentID:  r.ID,
			})
		}
	}
	return out, nil
}

func (m *memEnrollments) CourseStudents(_ context.Context, courseID uuid.UUID) ([]models.CourseStudent, error) {
	out := []models.CourseStudent{}
	for _, r := range m.rows {
		if r.CourseID == courseID {
			out = append(out, models.CourseStudent{EnrollmentID: r.ID, StudentID: r.StudentID})
		}
	}
	return out, nil
}

type memContent struct {
	materials map[uuid.UUID][]uuid.UUID
}

func (m *memContent) CourseTree(_ context.Context, courseID uuid.UUID) (*models.CourseTree, error) {
	return &models.CourseTree{Course: models.Course{ID: courseID}}, nil
}

func (m *memContent) MaterialIDs(_ context.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	return m.materials[courseID], nil
}

type memProgress map[uuid.UUID][]uuid.UUID

func (m memProgress) CompletedMaterials(_ context.Context, enrollmentID uuid.UUID) ([]uuid.UUID, error) {
	return m[enrollmentID], nil
}

func TestEnrollment(t *testing.T) {
	teacher := models.Session{UserID: uuid.New(), Role: models.RoleTeacher}
	student := models.Session{UserID: uuid.New(), Role: models.RoleStudent}
	published := &models.Course{ID: uuid.New(), TeacherID: teacher.UserID, IsPublished: true}
	draft := &models.Course{ID: uuid.New(), TeacherID: teacher.UserID}
	courses := memCourses{published.ID: published, draft.ID: draft}

	materials := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	enrollments := &memEnrollments{courses: courses}
	progress := memProgress{}
	svc := NewEnrollmentService(logger.Discard(), courses, enrollments,
		&memContent{materials: map[uuid.UUID][]uuid.UUID{published.ID: materials}}, progress)
	ctx := context.Background()

	_, err := svc.Enroll(ctx, student, draft.ID)
	assert.ErrorIs(t, err, app_errors.ErrCourseNotPublished)

	_, err = svc.CourseContent(ctx, student, published.ID)
	assert.ErrorIs(t, err, app_errors.ErrNotEnrolled)

	e, err := svc.Enroll(ctx, student, published.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, student, published.ID)
	assert.ErrorIs(t, err, app_errors.ErrAlreadyEnrolled)

	_, err = svc.Enroll(ctx, teacher, published.ID)
	assert.ErrorIs(t, err, app_errors.ErrForbidden)

	progress[e.ID] = materials[:1]
	mine, err := svc.MyCourses(ctx, student)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 25, mine[0].Progress)

	roster, err := svc.CourseStudents(ctx, teacher, published.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, 25, roster[0].Progress)

	other := models.Session{UserID: uuid.New(), Role: models.RoleTeacher}
	_, err = svc.CourseStudents(ctx, other, published.ID)
	assert.ErrorIs(t, err, app_errors.ErrNotCourseOwner)

	tree, err := svc.CourseContent(ctx, student, published.ID)
	require.NoError(t, err)
	assert.Equal(t, published.ID, tree.Course.ID)
}

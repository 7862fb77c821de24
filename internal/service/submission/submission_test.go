package submission

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTasks map[uuid.UUID]*models.TaskContext

func (m memTasks) TaskContext(_ context.Context, id uuid.UUID) (*models.TaskContext, error) {
	tc, ok := m[id]
	if !ok {
		return nil, app_errors.ErrTaskNotFound
	}
	return tc, nil
}

type memEnrollments struct {
	student, course uuid.UUID
}

func (m memEnrollments) EnrollmentFor(_ context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	if studentID == m.student && courseID == m.course {
		return &models.Enrollment{ID: uuid.New(), StudentID: studentID, CourseID: courseID}, nil
	}
	return nil, app_errors.ErrEnrollmentNotFound
}

type memSubmissions struct {
	rows map[uuid.UUID]*models.Submission
}

func (m *memSubmissions) CreateSubmission(_ context.Context, s *models.Submission) error {
	for _, r := range m.rows {
		if r.TaskID == s.TaskID && r.StudentID == s.StudentID {
			return app_errors.ErrAlreadySubmitted
		}
	}
	s.ID = uuid.New()
	m.rows[s.ID] = s
	return nil
}

func (m *memSubmissions) SubmissionByID(_ context.Context, id uuid.UUID) (*models.Submission, error) {
	s, ok := m.rows[id]
	if !ok {
		return nil, app_errors.ErrSubmissionNotFound
	}
	return s, nil
}

func (m *memSubmissions) SubmissionsByTask(_ context.Context, taskID uuid.UUID) ([]models.SubmissionView, error) {
	out := []models.SubmissionView{}
	for _, r := range m.rows {
		if r.TaskID == taskID {
			out = append(out, models.SubmissionView{Submission: *r})
		}
	}
	return out, nil
}

func (m *memSubmissions) GradeSubmission(_ context.Context, id uuid.UUID, grade int, feedback *string) (*models.Submission, error) {
	s := m.rows[id]
	s.Grade = &grade
	s.Feedback = feedback
	s.Status = models.SubmissionGraded
	return s, nil
}

func TestSubmitAndGrade(t *testing.T) {
	now := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	teacher := models.Session{UserID: uuid.New(), Role: models.RoleTeacher}
	student := models.Session{UserID: uuid.New(), Role: models.RoleStudent}
	course := uuid.New()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	onTime := &models.TaskContext{Task: models.Task{ID: uuid.New(), MaxScore: 100, DueDate: &future}, CourseID: course, TeacherID: teacher.UserID}
	overdue := &models.TaskContext{Task: models.Task{ID: uuid.New(), MaxScore: 100, DueDate: &past}, CourseID: course, TeacherID: teacher.UserID}

	subs := &memSubmissions{rows: map[uuid.UUID]*models.Submission{}}
	svc := NewSubmissionService(logger.Discard(),
		memTasks{onTime.Task.ID: onTime, overdue.Task.ID: overdue},
		memEnrollments{student: student.UserID, course: course}, subs)
	svc.now = func() time.Time { return now }
	ctx := context.Background()
	answer := "42"

	s1, err := svc.Submit(ctx, student, onTime.Task.ID, &answer, nil)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionSubmitted, s1.Status)

	s2, err := svc.Submit(ctx, student, overdue.Task.ID, &answer, nil)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionLate, s2.Status)

	_, err = svc.Submit(ctx, student, onTime.Task.ID, &answer, nil)
	assert.ErrorIs(t, err, app_errors.ErrAlreadySubmitted)

	_, err = svc.Submit(ctx, student, onTime.Task.ID, nil, nil)
	assert.ErrorIs(t, err, app_errors.ErrEmptySubmission)

	stranger := models.Session{UserID: uuid.New(), Role: models.RoleStudent}
	_, err = svc.Submit(ctx, stranger, onTime.Task.ID, &answer, nil)
	assert.ErrorIs(t, err, app_errors.ErrNotEnrolled)

	list, err := svc.TaskSubmissions(ctx, teacher, onTime.Task.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.Grade(ctx, teacher, s1.ID, 101, nil)
	assert.ErrorIs(t, err, app_errors.ErrInvalidGrade)
	_, err = svc.Grade(ctx, teacher, s1.ID, -1, nil)
	assert.ErrorIs(t, err, app_errors.ErrInvalidGrade)

	fb := "well done"
	graded, err := svc.Grade(ctx, teacher, s1.ID, 100, &fb)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionGraded, graded.Status)
	assert.Equal(t, 100, *graded.Grade)

	other := models.Session{UserID: uuid.New(), Role: models.RoleTeacher}
	_, err = svc.Grade(ctx, other, s1.ID, 50, nil)
	assert.ErrorIs(t, err, app_errors.ErrNotCourseOwner)
}

package submission

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type taskRepo interface {
	TaskContext(ctx context.Context, taskID uuid.UUID) (*models.TaskContext, error)
}

type enrollmentRepo interface {
	EnrollmentFor(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error)
}

type submissionRepo interface {
	CreateSubmission(ctx context.Context, s *models.Submission) error
	SubmissionByID(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	SubmissionsByTask(ctx context.Context, taskID uuid.UUID) ([]models.SubmissionView, error)
	GradeSubmission(ctx context.Context, id uuid.UUID, grade int, feedback *string) (*models.Submission, error)
}

type SubmissionService struct {
	log         logger.Log
	tasks       taskRepo
	enrollments enrollmentRepo
	submissions submissionRepo
	now         func() time.Time
}

func NewSubmissionService(log logger.Log, tasks taskRepo, enrollments enrollmentRepo, submissions submissionRepo) *SubmissionService {
	return &SubmissionService{
		log:         log,
		tasks:       tasks,
		enrollments: enrollments,
		submissions: submissions,
		now:         time.Now,
	}
}

// Submit records a student's answer. Work handed in after the due date is marked late.
func (s *SubmissionService) Submit(ctx context.Context, session models.Session, taskID uuid.UUID, answerText, fileURL *string) (*models.Submission, error) {
	if !session.IsStudent() {
		return nil, app_errors.ErrForbidden
	}
	if blank(answerText) && blank(fileURL) {
		return nil, app_errors.ErrEmptySubmission
	}
	tc, err := s.tasks.TaskContext(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.enrollments.EnrollmentFor(ctx, session.UserID, tc.CourseID); err != nil {
		if errors.Is(err, app_errors.ErrEnrollmentNotFound) {
			return nil, app_errors.ErrNotEnrolled
		}
		return nil, err
	}

	now := s.now()
	status := models.SubmissionSubmitted
	if tc.Task.DueDate != nil && now.After(*tc.Task.DueDate) {
		status = models.SubmissionLate
	}
	sub := &models.Submission{
		TaskID:      taskID,
		StudentID:   session.UserID,
		AnswerText:  answerText,
		FileURL:     fileURL,
		Status:      status,
		SubmittedAt: now,
	}
	if err := s.submissions.CreateSubmission(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubmissionService) TaskSubmissions(ctx context.Context, session models.Session, taskID uuid.UUID) ([]models.SubmissionView, error) {
	if _, err := s.ownedTask(ctx, session, taskID); err != nil {
		return nil, err
	}
	return s.submissions.SubmissionsByTask(ctx, taskID)
}

func (s *SubmissionService) Grade(ctx context.Context, session models.Session, submissionID uuid.UUID, grade int, feedback *string) (*models.Submission, error) {
	if !session.IsTeacher() {
		return nil, app_errors.ErrForbidden
	}
	sub, err := s.submissions.SubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	tc, err := s.ownedTask(ctx, session, sub.TaskID)
	if err != nil {
		return nil, err
	}
	if grade < 0 || grade > tc.Task.MaxScore {
		return nil, fmt.Errorf("%w: got %d, max %d", app_errors.ErrInvalidGrade, grade, tc.Task.MaxScore)
	}
	graded, err := s.submissions.GradeSubmission(ctx, submissionID, grade, feedback)
	if err != nil {
		s.log.ErrorErr("failed to grade submission", err, "submission_id", submissionID)
		return nil, err
	}
	return graded, nil
}

func (s *SubmissionService) ownedTask(ctx context.Context, session models.Session, taskID uuid.UUID) (*models.TaskContext, error) {
	if !session.IsTeacher() {
		return nil, app_errors.ErrForbidden
	}
	tc, err := s.tasks.TaskContext(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if tc.TeacherID != session.UserID {
		return nil, app_errors.ErrNotCourseOwner
	}
	return tc, nil
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

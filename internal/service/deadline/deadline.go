package deadline

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"time"

	"github.com/google/uuid"
)

type deadlineRepo interface {
	EnrolledCourseIDs(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error)
	SubmittedTaskIDs(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error)
	TasksDueBetween(ctx context.Context, courseIDs []uuid.UUID, from, to time.Time) ([]models.DeadlineTask, error)
	TeacherTasksDueBetween(ctx context.Context, teacherID uuid.UUID, from, to time.Time) ([]models.DeadlineTask, error)
	WaitingForGrading(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type DeadlineService struct {
	log     logger.Log
	repo    deadlineRepo
	student Policy
	teacher Policy
	now     func() time.Time
}

func NewDeadlineService(log logger.Log, repo deadlineRepo, student, teacher Policy) *DeadlineService {
	return &DeadlineService{
		log:     log,
		repo:    repo,
		student: student,
		teacher: teacher,
		now:     time.Now,
	}
}

func (s *DeadlineService) PriorityTasks(ctx context.Context, session models.Session) ([]models.PriorityTask, error) {
	if !session.IsStudent() {
		return nil, app_errors.ErrForbidden
	}
	now := s.now()

	enrolled, err := s.repo.EnrolledCourseIDs(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if len(enrolled) == 0 {
		return []models.PriorityTask{}, nil
	}
	tasks, err := s.repo.TasksDueBetween(ctx, enrolled, now, now.Add(s.student.Window))
	if err != nil {
		return nil, err
	}
	submitted, err := s.repo.SubmittedTaskIDs(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return FilterPriority(now, tasks, enrolled, submitted, s.student), nil
}

func (s *DeadlineService) UpcomingDeadlines(ctx context.Context, session models.Session) ([]models.TeacherDeadline, error) {
	if !session.IsTeacher() {
		return nil, app_errors.ErrForbidden
	}
	now := s.now()

	tasks, err := s.repo.TeacherTasksDueBetween(ctx, session.UserID, now, now.Add(s.teacher.Window))
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return []models.TeacherDeadline{}, nil
	}
	ids := make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.TaskID)
	}
	waiting, err := s.repo.WaitingForGrading(ctx, ids)
	if err != nil {
		return nil, err
	}
	return FilterUpcoming(now, tasks, waiting, s.teacher), nil
}

package enrollment

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"LearnHub/internal/service/progress"
	"LearnHub/pkg/logger"
	"context"
	"errors"

	"github.com/google/uuid"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type enrollmentRepo interface {
	CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error
	EnrollmentFor(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error)
	EnrolledCourses(ctx context.Context, studentID uuid.UUID) ([]models.EnrolledCourse, error)
	CourseStudents(ctx context.Context, courseID uuid.UUID) ([]models.CourseStudent, error)
}

type contentRepo interface {
	CourseTree(ctx context.Context, courseID uuid.UUID) (*models.CourseTree, error)
	MaterialIDs(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error)
}

type progressRepo interface {
	CompletedMaterials(ctx context.Context, enrollmentID uuid.UUID) ([]uuid.UUID, error)
}

type EnrollmentService struct {
	log         logger.Log
	courses     courseRepo
	enrollments enrollmentRepo
	content     contentRepo
	progress    progressRepo
}

func NewEnrollmentService(log logger.Log, courses courseRepo, enrollments enrollmentRepo, content contentRepo, progress progressRepo) *EnrollmentService {
	return &EnrollmentService{
		log:         log,
		courses:     courses,
		enrollments: enrollments,
		content:     content,
		progress:    progress,
	}
}

func (s *EnrollmentService) Enroll(ctx context.Context, session models.Session, courseID uuid.UUID) (*models.Enrollment, error) {
	if !session.IsStudent() {
		return nil, app_errors.ErrForbidden
	}
	course, err := s.courses.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, app_errors.ErrCourseNotPublished
	}

	enrollment := &models.Enrollment{StudentID: session.UserID, CourseID: courseID}
	if err := s.enrollments.CreateEnrollment(ctx, enrollment); err != nil {
		return nil, err
	}
	s.log.Info("student enrolled", "student_id", session.UserID, "course_id", courseID)
	return enrollment, nil
}

// MyCourses lists the student's enrolled courses with their completion percentage.
func (s *EnrollmentService) MyCourses(ctx context.Context, session models.Session) ([]models.EnrolledCourse, error) {
	if !session.IsStudent() {
		return nil, app_errors.ErrForbidden
	}
	courses, err := s.enrollments.EnrolledCourses(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		pct, err := s.percentage(ctx, courses[i].EnrollmentID, courses[i].ID)
		if err != nil {
			return nil, err
		}
		courses[i].Progress = pct
	}
	return courses, nil
}

func (s *EnrollmentService) CourseStudents(ctx context.Context, session models.Session, courseID uuid.UUID) ([]models.CourseStudent, error) {
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

	students, err := s.enrollments.CourseStudents(ctx, courseID)
	if err != nil {
		return nil, err
	}
	materialIDs, err := s.content.MaterialIDs(ctx, courseID)
	if err != nil {
		return nil, err
	}
	for i := range students {
		completed, err := s.progress.CompletedMaterials(ctx, students[i].EnrollmentID)
		if err != nil {
			return nil, err
		}
		_, students[i].Progress = progress.Percentage(materialIDs, completed)
	}
	return students, nil
}

// CourseContent returns the course tree for its owner or an enrolled student.
func (s *EnrollmentService) CourseContent(ctx context.Context, session models.Session, courseID uuid.UUID) (*models.CourseTree, error) {
	course, err := s.courses.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	switch {
	case session.IsTeacher():
		if course.TeacherID != session.UserID {
			return nil, app_errors.ErrNotCourseOwner
		}
	case session.IsStudent():
		if _, err := s.enrollments.EnrollmentFor(ctx, session.UserID, courseID); err != nil {
			if errors.Is(err, app_errors.ErrEnrollmentNotFound) {
				return nil, app_errors.ErrNotEnrolled
			}
			return nil, err
		}
	default:
		return nil, app_errors.ErrForbidden
	}
	return s.content.CourseTree(ctx, courseID)
}

func (s *EnrollmentService) percentage(ctx context.Context, enrollmentID, courseID uuid.UUID) (int, error) {
	materialIDs, err := s.content.MaterialIDs(ctx, courseID)
	if err != nil {
		return 0, err
	}
	completed, err := s.progress.CompletedMaterials(ctx, enrollmentID)
	if err != nil {
		return 0, err
	}
	_, pct := progress.Percentage(materialIDs, completed)
	return pct, nil
}

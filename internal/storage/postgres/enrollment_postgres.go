package postgres

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EnrollmentPostgres struct {
	db *pgxpool.Pool
}

func NewEnrollmentPostgres(db *pgxpool.Pool) *EnrollmentPostgres {
	return &EnrollmentPostgres{db: db}
}

func (r *EnrollmentPostgres) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, course_id)
		VALUES ($1, $2)
		RETURNING id, enrolled_at
	`
	err := r.db.QueryRow(ctx, query, enrollment.StudentID, enrollment.CourseID).
		Scan(&enrollment.ID, &enrollment.EnrolledAt)
	if err != nil {
		if isUniqueViolation(err) {
			return app_errors.ErrAlreadyEnrolled
		}
		if isForeignKeyViolation(err) {
			return app_errors.ErrCourseNotFound
		}
		return fmt.Errorf("failed to insert enrollment: %w", err)
	}
	return nil
}

func (r *EnrollmentPostgres) scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	var e models.Enrollment
	if err := row.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.EnrolledAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentPostgres) EnrollmentByID(ctx context.Context, id uuid.UUID) (*models.Enrollment, error) {
	query := `SELECT id, student_id, course_id, enrolled_at FROM enrollments WHERE id = $1`
	return r.scanEnrollment(r.db.QueryRow(ctx, query, id))
}

func (r *EnrollmentPostgres) EnrollmentFor(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	query := `
		SELECT id, student_id, course_id, enrolled_at
		  FROM enrollments
		 WHERE student_id = $1 AND course_id = $2
	`
	return r.scanEnrollment(r.db.QueryRow(ctx, query, studentID, courseID))
}

func (r *EnrollmentPostgres) EnrolledCourses(ctx context.Context, studentID uuid.UUID) ([]models.EnrolledCourse, error) {
	query := `
		SELECT ` + courseColumns + `, p.display_name, e.id, e.enrolled_at
		  FROM enrollments e
		  JOIN courses c ON c.id = e.course_id
		  JOIN profiles p ON p.id = c.teacher_id
		 WHERE e.student_id = $1
	  ORDER BY e.enrolled_at DESC
	`
	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrolled courses: %w", err)
	}
	defer rows.Close()

	courses := make([]models.EnrolledCourse, 0)
	for rows.Next() {
		var (
			teacherName  string
			enrollmentID uuid.UUID
			enrolledAt   time.Time
		)
		c, err := scanCourse(rows, &teacherName, &enrollmentID, &enrolledAt)
		if err != nil {
			return nil, err
		}
		courses = append(courses, models.EnrolledCourse{
			CoursePreview: models.CoursePreview{Course: *c, TeacherName: teacherName},
			EnrollmentID:  enrollmentID,
			EnrolledAt:    enrolledAt,
		})
	}
	return courses, rows.Err()
}

func (r *EnrollmentPostgres) CourseStudents(ctx context.Context, courseID uuid.UUID) ([]models.CourseStudent, error) {
	query := `
		SELECT e.id, e.student_id, p.display_name, p.email, e.enrolled_at
		  FROM enrollments e
		  JOIN profiles p ON p.id = e.student_id
		 WHERE e.course_id = $1
	  ORDER BY e.enrolled_at
	`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query course students: %w", err)
	}
	defer rows.Close()

	students := make([]models.CourseStudent, 0)
	for rows.Next() {
		var s models.CourseStudent
		if err := rows.Scan(&s.EnrollmentID, &s.StudentID, &s.DisplayName, &s.Email, &s.EnrolledAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

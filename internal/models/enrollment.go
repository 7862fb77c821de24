package models

import (
	"time"

	"github.com/google/uuid"
)

type Enrollment struct {
	ID         uuid.UUID `json:"id"`
	StudentID  uuid.UUID `json:"student_id"`
	CourseID   uuid.UUID `json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type EnrolledCourse struct {
	CoursePreview
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	EnrolledAt   time.Time `json:"enrolled_at"`
	Progress     int       `json:"progress"`
}

type CourseStudent struct {
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	StudentID    uuid.UUID `json:"student_id"`
	DisplayName  string    `json:"display_name"`
	Email        string    `json:"email"`
	EnrolledAt   time.Time `json:"enrolled_at"`
	Progress     int       `json:"progress"`
}

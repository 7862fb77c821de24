package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID            uuid.UUID `json:"id"`
	TeacherID     uuid.UUID `json:"teacher_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CoverImageURL *string   `json:"cover_image_url"`
	IsPublished   bool      `json:"is_published"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CoursePreview struct {
	Course
	TeacherName string `json:"teacher_name"`
}

type CourseUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// CourseWriter inserts a course hierarchy. Implementations run every call
// inside one transaction, so IDs and timestamps are filled in on return.
type CourseWriter interface {
	InsertCourse(ctx context.Context, course *Course) error
	InsertModule(ctx context.Context, module *Module) error
	InsertMaterial(ctx context.Context, material *Material) error
	InsertTask(ctx context.Context, task *Task) error
}

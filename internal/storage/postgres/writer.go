package postgres

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"context"
	"fmt"
)

// writer inserts course rows through either the pool or a transaction.
type writer struct {
	q querier
}

func (w *writer) InsertCourse(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (teacher_id, title, description, cover_image_url, is_published)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := w.q.QueryRow(ctx, query,
		course.TeacherID,
		course.Title,
		course.Description,
		course.CoverImageURL,
		course.IsPublished,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert course: %w", err)
	}
	return nil
}

func (w *writer) InsertModule(ctx context.Context, module *models.Module) error {
	query := `
		INSERT INTO modules (course_id, title, description, order_index)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := w.q.QueryRow(ctx, query, module.CourseID, module.Title, module.Description, module.OrderIndex).
		Scan(&module.ID, &module.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return app_errors.ErrCourseNotFound
		}
		return fmt.Errorf("failed to insert module: %w", err)
	}
	return nil
}

func (w *writer) InsertMaterial(ctx context.Context, material *models.Material) error {
	query := `
		INSERT INTO materials (module_id, type, title, content, video_url, order_index)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := w.q.QueryRow(ctx, query,
		material.ModuleID,
		material.Type,
		material.Title,
		material.Content,
		material.VideoURL,
		material.OrderIndex,
	).Scan(&material.ID, &material.CreatedAt, &material.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return app_errors.ErrModuleNotFound
		}
		return fmt.Errorf("failed to insert material: %w", err)
	}
	return nil
}

func (w *writer) InsertTask(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (material_id, due_date, max_score, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := w.q.QueryRow(ctx, query, task.MaterialID, task.DueDate, task.MaxScore, task.Description).
		Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return app_errors.ErrMaterialNotFound
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

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

type ContentPostgres struct {
	writer
	db *pgxpool.Pool
}

func NewContentPostgres(db *pgxpool.Pool) *ContentPostgres {
	return &ContentPostgres{writer: writer{q: db}, db: db}
}

// CourseTree loads a course with its modules and materials ordered by
// order_index, then created_at, then id.
func (r *ContentPostgres) CourseTree(ctx context.Context, courseID uuid.UUID) (*models.CourseTree, error) {
	course, err := scanCourse(r.db.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses c WHERE c.id = $1`, courseID))
	if err != nil {
		return nil, err
	}

	moduleRows, err := r.db.Query(ctx, `
		SELECT id, course_id, title, description, order_index, created_at
		  FROM modules
		 WHERE course_id = $1
	  ORDER BY order_index, created_at, id
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules: %w", err)
	}
	defer moduleRows.Close()

	tree := &models.CourseTree{Course: *course, Modules: make([]models.ModuleNode, 0)}
	position := make(map[uuid.UUID]int)
	for moduleRows.Next() {
		var m models.Module
		if err := moduleRows.Scan(&m.ID, &m.CourseID, &m.Title, &m.Description, &m.OrderIndex, &m.CreatedAt); err != nil {
			return nil, err
		}
		position[m.ID] = len(tree.Modules)
		tree.Modules = append(tree.Modules, models.ModuleNode{Module: m, Materials: make([]models.MaterialNode, 0)})
	}
	if err := moduleRows.Err(); err != nil {
		return nil, err
	}
	moduleRows.Close()

	materialRows, err := r.db.Query(ctx, `
		SELECT m.id, m.module_id, m.type, m.title, m.content, m.video_url, m.order_index, m.created_at, m.updated_at,
		       t.id, t.due_date, t.max_score, t.description, t.created_at
		  FROM materials m
		  JOIN modules mo ON mo.id = m.module_id
	 LEFT JOIN tasks t ON t.material_id = m.id
		 WHERE mo.course_id = $1
	  ORDER BY m.order_index, m.created_at, m.id
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	defer materialRows.Close()

	for materialRows.Next() {
		var (
			node            models.MaterialNode
			taskID          *uuid.UUID
			taskDue         *time.Time
			taskMax         *int
			taskDescription *string
			taskCreated     *time.Time
		)
		if err := materialRows.Scan(
			&node.ID, &node.ModuleID, &node.Type, &node.Title, &node.Content, &node.VideoURL,
			&node.OrderIndex, &node.CreatedAt, &node.UpdatedAt,
			&taskID, &taskDue, &taskMax, &taskDescription, &taskCreated,
		); err != nil {
			return nil, err
		}
		if taskID != nil {
			node.Task = &models.Task{
				ID:          *taskID,
				MaterialID:  node.ID,
				DueDate:     taskDue,
				MaxScore:    deref(taskMax),
				Description: deref(taskDescription),
				CreatedAt:   deref(taskCreated),
			}
		}
		i, ok := position[node.ModuleID]
		if !ok {
			continue
		}
		tree.Modules[i].Materials = append(tree.Modules[i].Materials, node)
	}
	return tree, materialRows.Err()
}

func (r *ContentPostgres) MaterialIDs(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id
		  FROM materials m
		  JOIN modules mo ON mo.id = m.module_id
		 WHERE mo.course_id = $1
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query material ids: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

func (r *ContentPostgres) lookupCourseID(ctx context.Context, query string, id uuid.UUID, notFound error) (uuid.UUID, error) {
	var courseID uuid.UUID
	if err := r.db.QueryRow(ctx, query, id).Scan(&courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, notFound
		}
		return uuid.Nil, err
	}
	return courseID, nil
}

func (r *ContentPostgres) ModuleCourseID(ctx context.Context, moduleID uuid.UUID) (uuid.UUID, error) {
	return r.lookupCourseID(ctx, `SELECT course_id FROM modules WHERE id = $1`, moduleID, app_errors.ErrModuleNotFound)
}

func (r *ContentPostgres) MaterialCourseID(ctx context.Context, materialID uuid.UUID) (uuid.UUID, error) {
	return r.lookupCourseID(ctx, `
		SELECT mo.course_id
		  FROM materials m
		  JOIN modules mo ON mo.id = m.module_id
		 WHERE m.id = $1
	`, materialID, app_errors.ErrMaterialNotFound)
}

func (r *ContentPostgres) TaskCourseID(ctx context.Context, taskID uuid.UUID) (uuid.UUID, error) {
	return r.lookupCourseID(ctx, `
		SELECT mo.course_id
		  FROM tasks t
		  JOIN materials m ON m.id = t.material_id
		  JOIN modules mo ON mo.id = m.module_id
		 WHERE t.id = $1
	`, taskID, app_errors.ErrTaskNotFound)
}

// TaskContext returns a task with the course and teacher that own it.
func (r *ContentPostgres) TaskContext(ctx context.Context, taskID uuid.UUID) (*models.TaskContext, error) {
	query := `
		SELECT t.id, t.material_id, t.due_date, t.max_score, t.description, t.created_at,
		       c.id, c.teacher_id
		  FROM tasks t
		  JOIN materials m ON m.id = t.material_id
		  JOIN modules mo ON mo.id = m.module_id
		  JOIN courses c ON c.id = mo.course_id
		 WHERE t.id = $1
	`
	var tc models.TaskContext
	err := r.db.QueryRow(ctx, query, taskID).Scan(
		&tc.Task.ID, &tc.Task.MaterialID, &tc.Task.DueDate, &tc.Task.MaxScore, &tc.Task.Description, &tc.Task.CreatedAt,
		&tc.CourseID, &tc.TeacherID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrTaskNotFound
		}
		return nil, err
	}
	return &tc, nil
}

func (r *ContentPostgres) NextModuleIndex(ctx context.Context, courseID uuid.UUID) (int, error) {
	var next int
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(order_index) + 1, 0) FROM modules WHERE course_id = $1`, courseID).Scan(&next)
	return next, err
}

func (r *ContentPostgres) NextMaterialIndex(ctx context.Context, moduleID uuid.UUID) (int, error) {
	var next int
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(order_index) + 1, 0) FROM materials WHERE module_id = $1`, moduleID).Scan(&next)
	return next, err
}

func (r *ContentPostgres) DeleteModule(ctx context.Context, moduleID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM modules WHERE id = $1`, moduleID)
	if err != nil {
		return fmt.Errorf("failed to delete module: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrModuleNotFound
	}
	return nil
}

func (r *ContentPostgres) UpdateMaterial(ctx context.Context, materialID uuid.UUID, update models.MaterialUpdate) (*models.Material, error) {
	query := `
		UPDATE materials
		   SET title      = COALESCE($2, title),
		       content    = COALESCE($3, content),
		       video_url  = COALESCE($4, video_url),
		       updated_at = NOW()
		 WHERE id = $1
		RETURNING id, module_id, type, title, content, video_url, order_index, created_at, updated_at
	`
	var m models.Material
	err := r.db.QueryRow(ctx, query, materialID, update.Title, update.Content, update.VideoURL).Scan(
		&m.ID, &m.ModuleID, &m.Type, &m.Title, &m.Content, &m.VideoURL, &m.OrderIndex, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to update material: %w", err)
	}
	return &m, nil
}

func (r *ContentPostgres) DeleteMaterial(ctx context.Context, materialID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM materials WHERE id = $1`, materialID)
	if err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrMaterialNotFound
	}
	return nil
}

func (r *ContentPostgres) UpdateTask(ctx context.Context, taskID uuid.UUID, update models.TaskUpdate) (*models.Task, error) {
	query := `
		UPDATE tasks
		   SET due_date    = CASE WHEN $2 THEN NULL ELSE COALESCE($3, due_date) END,
		       max_score   = COALESCE($4, max_score),
		       description = COALESCE($5, description)
		 WHERE id = $1
		RETURNING id, material_id, due_date, max_score, description, created_at
	`
	var t models.Task
	err := r.db.QueryRow(ctx, query, taskID, update.ClearDue, update.DueDate, update.MaxScore, update.Description).Scan(
		&t.ID, &t.MaterialID, &t.DueDate, &t.MaxScore, &t.Description, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return &t, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

package postgres

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

// InTx runs fn against a writer bound to a single transaction. The transaction
// is committed only when fn returns nil.
func (r *CoursePostgres) InTx(ctx context.Context, fn func(w models.CourseWriter) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(&writer{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const courseColumns = `c.id, c.teacher_id, c.title, c.description, c.cover_image_url, c.is_published, c.created_at, c.updated_at`

func scanCourse(row pgx.Row, extra ...any) (*models.Course, error) {
	var c models.Course
	dest := []any{
		&c.ID,
		&c.TeacherID,
		&c.Title,
		&c.Description,
		&c.CoverImageURL,
		&c.IsPublished,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CoursePostgres) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses c WHERE c.id = $1`
	return scanCourse(r.db.QueryRow(ctx, query, id))
}

func (r *CoursePostgres) CoursesByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		  FROM courses c
		 WHERE c.teacher_id = $1
	  ORDER BY c.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

func (r *CoursePostgres) UpdateCourse(ctx context.Context, id uuid.UUID, update models.CourseUpdate) (*models.Course, error) {
	query := `
		UPDATE courses c
		   SET title       = COALESCE($2, c.title),
		       description = COALESCE($3, c.description),
		       updated_at  = NOW()
		 WHERE c.id = $1
		RETURNING ` + courseColumns
	return scanCourse(r.db.QueryRow(ctx, query, id, update.Title, update.Description))
}

func (r *CoursePostgres) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	query := `
		UPDATE courses
		   SET is_published = $2,
		       updated_at   = NOW()
		 WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, id, published)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

func (r *CoursePostgres) UpdateCover(ctx context.Context, id uuid.UUID, url string) error {
	query := `
		UPDATE courses
		   SET cover_image_url = $2,
		       updated_at      = NOW()
		 WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, id, url)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

func (r *CoursePostgres) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

func (r *CoursePostgres) previews(ctx context.Context, query string, args ...any) ([]models.CoursePreview, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query published courses: %w", err)
	}
	defer rows.Close()

	previews := make([]models.CoursePreview, 0)
	for rows.Next() {
		var teacherName string
		c, err := scanCourse(rows, &teacherName)
		if err != nil {
			return nil, err
		}
		previews = append(previews, models.CoursePreview{Course: *c, TeacherName: teacherName})
	}
	return previews, rows.Err()
}

func (r *CoursePostgres) ListPublished(ctx context.Context, limit, offset int) ([]models.CoursePreview, error) {
	query := `
		SELECT ` + courseColumns + `, p.display_name
		  FROM courses c
		  JOIN profiles p ON p.id = c.teacher_id
		 WHERE c.is_published
	  ORDER BY c.created_at DESC, c.id
		 LIMIT $1 OFFSET $2
	`
	return r.previews(ctx, query, limit, offset)
}

func (r *CoursePostgres) CountPublished(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses WHERE is_published`).Scan(&total)
	return total, err
}

func (r *CoursePostgres) PublishedPreviews(ctx context.Context, ids []uuid.UUID) ([]models.CoursePreview, error) {
	if len(ids) == 0 {
		return []models.CoursePreview{}, nil
	}
	query := `
		SELECT ` + courseColumns + `, p.display_name
		  FROM courses c
		  JOIN profiles p ON p.id = c.teacher_id
		 WHERE c.is_published AND c.id = ANY($1)
	`
	return r.previews(ctx, query, ids)
}

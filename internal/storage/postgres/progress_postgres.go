package postgres

import (
	"LearnHub/internal/models"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProgressPostgres struct {
	db *pgxpool.Pool
}

func NewProgressPostgres(db *pgxpool.Pool) *ProgressPostgres {
	return &ProgressPostgres{db: db}
}

// MarkCompleted upserts the completion row. A repeated call keeps the first completed_at.
func (r *ProgressPostgres) MarkCompleted(ctx context.Context, enrollmentID, materialID uuid.UUID, at time.Time) (*models.CourseProgress, error) {
	query := `
		INSERT INTO course_progress (enrollment_id, material_id, is_completed, completed_at)
		VALUES ($1, $2, TRUE, $3)
		ON CONFLICT (enrollment_id, material_id)
		DO UPDATE SET is_completed = TRUE,
		              completed_at = COALESCE(course_progress.completed_at, EXCLUDED.completed_at)
		RETURNING id, enrollment_id, material_id, is_completed, completed_at
	`
	var p models.CourseProgress
	err := r.db.QueryRow(ctx, query, enrollmentID, materialID, at).
		Scan(&p.ID, &p.EnrollmentID, &p.MaterialID, &p.IsCompleted, &p.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to mark material completed: %w", err)
	}
	return &p, nil
}

func (r *ProgressPostgres) CompletedMaterials(ctx context.Context, enrollmentID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT material_id
		  FROM course_progress
		 WHERE enrollment_id = $1 AND is_completed
	`
	rows, err := r.db.Query(ctx, query, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed materials: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

package postgres

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DraftPostgres struct {
	db *pgxpool.Pool
}

func NewDraftPostgres(db *pgxpool.Pool) *DraftPostgres {
	return &DraftPostgres{db: db}
}

const draftColumns = `id, teacher_id, step, title, description, keywords, reference_urls, structure, course_id, last_error, created_at, updated_at`

type draftJSON struct {
	keywords   []byte
	references []byte
	structure  []byte
}

func encodeDraft(d *models.CourseDraft) (draftJSON, error) {
	var out draftJSON
	var err error
	if out.keywords, err = json.Marshal(orEmpty(d.Keywords)); err != nil {
		return out, err
	}
	if out.references, err = json.Marshal(orEmpty(d.ReferenceURLs)); err != nil {
		return out, err
	}
	if d.Structure != nil {
		if out.structure, err = json.Marshal(d.Structure); err != nil {
			return out, err
		}
	}
	return out, nil
}

func scanDraft(row pgx.Row) (*models.CourseDraft, error) {
	var (
		d   models.CourseDraft
		raw draftJSON
	)
	err := row.Scan(
		&d.ID, &d.TeacherID, &d.Step, &d.Title, &d.Description,
		&raw.keywords, &raw.references, &raw.structure,
		&d.CourseID, &d.LastError, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrDraftNotFound
		}
		return nil, err
	}
	if len(raw.keywords) > 0 {
		if err := json.Unmarshal(raw.keywords, &d.Keywords); err != nil {
			return nil, fmt.Errorf("failed to decode draft keywords: %w", err)
		}
	}
	if len(raw.references) > 0 {
		if err := json.Unmarshal(raw.references, &d.ReferenceURLs); err != nil {
			return nil, fmt.Errorf("failed to decode draft references: %w", err)
		}
	}
	if len(raw.structure) > 0 {
		d.Structure = &models.CourseStructure{}
		if err := json.Unmarshal(raw.structure, d.Structure); err != nil {
			return nil, fmt.Errorf("failed to decode draft structure: %w", err)
		}
	}
	return &d, nil
}

func (r *DraftPostgres) CreateDraft(ctx context.Context, d *models.CourseDraft) error {
	raw, err := encodeDraft(d)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO course_drafts (teacher_id, step, title, description, keywords, reference_urls, structure)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err = r.db.QueryRow(ctx, query, d.TeacherID, d.Step, d.Title, d.Description, raw.keywords, raw.references, raw.structure).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert draft: %w", err)
	}
	return nil
}

func (r *DraftPostgres) DraftByID(ctx context.Context, id uuid.UUID) (*models.CourseDraft, error) {
	return scanDraft(r.db.QueryRow(ctx, `SELECT `+draftColumns+` FROM course_drafts WHERE id = $1`, id))
}

func (r *DraftPostgres) UpdateDraft(ctx context.Context, d *models.CourseDraft) error {
	raw, err := encodeDraft(d)
	if err != nil {
		return err
	}
	query := `
		UPDATE course_drafts
		   SET step           = $2,
		       title          = $3,
		       description    = $4,
		       keywords       = $5,
		       reference_urls = $6,
		       structure      = $7,
		       course_id      = $8,
		       last_error     = $9,
		       updated_at     = NOW()
		 WHERE id = $1
		RETURNING updated_at
	`
	err = r.db.QueryRow(ctx, query, d.ID, d.Step, d.Title, d.Description,
		raw.keywords, raw.references, raw.structure, d.CourseID, d.LastError,
	).Scan(&d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return app_errors.ErrDraftNotFound
		}
		return fmt.Errorf("failed to update draft: %w", err)
	}
	return nil
}

func (r *DraftPostgres) DraftsByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.CourseDraft, error) {
	query := `SELECT ` + draftColumns + ` FROM course_drafts WHERE teacher_id = $1 ORDER BY updated_at DESC`
	rows, err := r.db.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query drafts: %w", err)
	}
	defer rows.Close()

	drafts := make([]models.CourseDraft, 0)
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, *d)
	}
	return drafts, rows.Err()
}

func (r *DraftPostgres) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM course_drafts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrDraftNotFound
	}
	return nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

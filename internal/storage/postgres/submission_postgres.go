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

type SubmissionPostgres struct {
	db *pgxpool.Pool
}

func NewSubmissionPostgres(db *pgxpool.Pool) *SubmissionPostgres {
	return &SubmissionPostgres{db: db}
}

const submissionColumns = `s.id, s.task_id, s.student_id, s.file_url, s.answer_text, s.status, s.grade, s.feedback, s.submitted_at, s.created_at`

func submissionDest(s *models.Submission) []any {
	return []any{
		&s.ID, &s.TaskID, &s.StudentID, &s.FileURL, &s.AnswerText,
		&s.Status, &s.Grade, &s.Feedback, &s.SubmittedAt, &s.CreatedAt,
	}
}

func (r *SubmissionPostgres) CreateSubmission(ctx context.Context, s *models.Submission) error {
	query := `
		INSERT INTO submissions (task_id, student_id, file_url, answer_text, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, s.TaskID, s.StudentID, s.FileURL, s.AnswerText, s.Status, s.SubmittedAt).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return app_errors.ErrAlreadySubmitted
		}
		if isForeignKeyViolation(err) {
			return app_errors.ErrTaskNotFound
		}
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

func (r *SubmissionPostgres) SubmissionByID(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions s WHERE s.id = $1`
	var s models.Submission
	if err := r.db.QueryRow(ctx, query, id).Scan(submissionDest(&s)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrSubmissionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionPostgres) SubmissionsByTask(ctx context.Context, taskID uuid.UUID) ([]models.SubmissionView, error) {
	query := `
		SELECT ` + submissionColumns + `, p.display_name
		  FROM submissions s
		  JOIN profiles p ON p.id = s.student_id
		 WHERE s.task_id = $1
	  ORDER BY s.submitted_at
	`
	rows, err := r.db.Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	views := make([]models.SubmissionView, 0)
	for rows.Next() {
		var v models.SubmissionView
		if err := rows.Scan(append(submissionDest(&v.Submission), &v.StudentName)...); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *SubmissionPostgres) GradeSubmission(ctx context.Context, id uuid.UUID, grade int, feedback *string) (*models.Submission, error) {
	query := `
		UPDATE submissions s
		   SET grade    = $2,
		       feedback = $3,
		       status   = $4
		 WHERE s.id = $1
		RETURNING ` + submissionColumns
	var s models.Submission
	err := r.db.QueryRow(ctx, query, id, grade, feedback, models.SubmissionGraded).Scan(submissionDest(&s)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to grade submission: %w", err)
	}
	return &s, nil
}

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

type DeadlinePostgres struct {
	db *pgxpool.Pool
}

func NewDeadlinePostgres(db *pgxpool.Pool) *DeadlinePostgres {
	return &DeadlinePostgres{db: db}
}

const deadlineSelect = `
	SELECT t.id, m.id, m.title, c.id, c.title, t.due_date
	  FROM tasks t
	  JOIN materials m ON m.id = t.material_id
	  JOIN modules mo ON mo.id = m.module_id
	  JOIN courses c ON c.id = mo.course_id
`

func (r *DeadlinePostgres) EnrolledCourseIDs(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT course_id FROM enrollments WHERE student_id = $1`, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrolled course ids: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

func (r *DeadlinePostgres) SubmittedTaskIDs(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT task_id FROM submissions WHERE student_id = $1`, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submitted task ids: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

func (r *DeadlinePostgres) collect(ctx context.Context, query string, args ...any) ([]models.DeadlineTask, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query deadlines: %w", err)
	}
	defer rows.Close()

	tasks := make([]models.DeadlineTask, 0)
	for rows.Next() {
		var t models.DeadlineTask
		if err := rows.Scan(&t.TaskID, &t.MaterialID, &t.Title, &t.CourseID, &t.CourseName, &t.DueDate); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *DeadlinePostgres) TasksDueBetween(ctx context.Context, courseIDs []uuid.UUID, from, to time.Time) ([]models.DeadlineTask, error) {
	if len(courseIDs) == 0 {
		return []models.DeadlineTask{}, nil
	}
	query := deadlineSelect + `
	 WHERE c.id = ANY($1)
	   AND t.due_date BETWEEN $2 AND $3
  ORDER BY t.due_date
	`
	return r.collect(ctx, query, courseIDs, from, to)
}

func (r *DeadlinePostgres) TeacherTasksDueBetween(ctx context.Context, teacherID uuid.UUID, from, to time.Time) ([]models.DeadlineTask, error) {
	query := deadlineSelect + `
	 WHERE c.teacher_id = $1
	   AND t.due_date BETWEEN $2 AND $3
  ORDER BY t.due_date
	`
	return r.collect(ctx, query, teacherID, from, to)
}

// WaitingForGrading counts submissions in status submitted, per task.
func (r *DeadlinePostgres) WaitingForGrading(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	waiting := make(map[uuid.UUID]int, len(taskIDs))
	if len(taskIDs) == 0 {
		return waiting, nil
	}
	query := `
		SELECT task_id, COUNT(*)
		  FROM submissions
		 WHERE task_id = ANY($1) AND status = $2
	  GROUP BY task_id
	`
	rows, err := r.db.Query(ctx, query, taskIDs, models.SubmissionSubmitted)
	if err != nil {
		return nil, fmt.Errorf("failed to count ungraded submissions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    uuid.UUID
			count int
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		waiting[id] = count
	}
	return waiting, rows.Err()
}

// OpenTasksDueBetween lists, per enrolled student, the tasks due in the window
// that the student has not submitted yet.
func (r *DeadlinePostgres) OpenTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.ReminderRow, error) {
	query := `
		SELECT p.id, p.email, p.display_name,
		       t.id, m.id, m.title, c.id, c.title, t.due_date
		  FROM tasks t
		  JOIN materials m ON m.id = t.material_id
		  JOIN modules mo ON mo.id = m.module_id
		  JOIN courses c ON c.id = mo.course_id
		  JOIN enrollments e ON e.course_id = c.id
		  JOIN profiles p ON p.id = e.student_id
		 WHERE t.due_date BETWEEN $1 AND $2
		   AND NOT EXISTS (
		       SELECT 1 FROM submissions s
		        WHERE s.task_id = t.id AND s.student_id = e.student_id
		   )
	  ORDER BY p.id, t.due_date
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query open tasks: %w", err)
	}
	defer rows.Close()

	out := make([]models.ReminderRow, 0)
	for rows.Next() {
		var row models.ReminderRow
		if err := rows.Scan(
			&row.StudentID, &row.Email, &row.DisplayName,
			&row.Task.TaskID, &row.Task.MaterialID, &row.Task.Title,
			&row.Task.CourseID, &row.Task.CourseName, &row.Task.DueDate,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

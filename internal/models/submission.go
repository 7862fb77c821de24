package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubmissionSubmitted = "submitted"
	SubmissionGraded    = "graded"
	SubmissionLate      = "late"
)

type Submission struct {
	ID          uuid.UUID `json:"id"`
	TaskID      uuid.UUID `json:"task_id"`
	StudentID   uuid.UUID `json:"student_id"`
	FileURL     *string   `json:"file_url"`
	AnswerText  *string   `json:"answer_text"`
	Status      string    `json:"status"`
	Grade       *int      `json:"grade"`
	Feedback    *string   `json:"feedback"`
	SubmittedAt time.Time `json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
}

type SubmissionView struct {
	Submission
	StudentName string `json:"student_name"`
}

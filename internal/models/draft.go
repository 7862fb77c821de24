package models

import (
	"time"

	"github.com/google/uuid"
)

type WizardStep int

const (
	StepInfo WizardStep = iota + 1
	StepReferences
	StepGenerate
	StepPreview
	StepDone
)

func (s WizardStep) String() string {
	switch s {
	case StepInfo:
		return "info"
	case StepReferences:
		return "references"
	case StepGenerate:
		return "generate"
	case StepPreview:
		return "preview"
	case StepDone:
		return "done"
	}
	return "unknown"
}

// CourseDraft is the persisted state of one course creation wizard run.
type CourseDraft struct {
	ID            uuid.UUID        `json:"id"`
	TeacherID     uuid.UUID        `json:"teacher_id"`
	Step          WizardStep       `json:"step"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Keywords      []string         `json:"keywords"`
	ReferenceURLs []string         `json:"reference_urls"`
	Structure     *CourseStructure `json:"structure"`
	CourseID      *uuid.UUID       `json:"course_id"`
	LastError     *string          `json:"last_error"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

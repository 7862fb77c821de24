package models

import (
	"time"

	"github.com/google/uuid"
)

type CourseProgress struct {
	ID           uuid.UUID  `json:"id"`
	EnrollmentID uuid.UUID  `json:"enrollment_id"`
	MaterialID   uuid.UUID  `json:"material_id"`
	IsCompleted  bool       `json:"is_completed"`
	CompletedAt  *time.Time `json:"completed_at"`
}

type ProgressSummary struct {
	EnrollmentID         uuid.UUID   `json:"enrollment_id"`
	Total                int         `json:"total"`
	Completed            int         `json:"completed"`
	Percentage           int         `json:"percentage"`
	CompletedMaterialIDs []uuid.UUID `json:"completed_material_ids"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// DeadlineTask is a task joined with its material and course, as read for deadline lists.
type DeadlineTask struct {
	TaskID     uuid.UUID  `json:"task_id"`
	MaterialID uuid.UUID  `json:"material_id"`
	Title      string     `json:"title"`
	CourseID   uuid.UUID  `json:"course_id"`
	CourseName string     `json:"course_name"`
	DueDate    *time.Time `json:"due_date"`
}

type PriorityTask struct {
	TaskID     uuid.UUID `json:"task_id"`
	MaterialID uuid.UUID `json:"material_id"`
	Title      string    `json:"title"`
	CourseID   uuid.UUID `json:"course_id"`
	CourseName string    `json:"course_name"`
	DueDate    time.Time `json:"due_date"`
	DaysLeft   int       `json:"days_left"`
	IsUrgent   bool      `json:"is_urgent"`
}

type TeacherDeadline struct {
	PriorityTask
	WaitingForGrading int `json:"waiting_for_grading"`
}

// ReminderRecipient is a student with the open tasks due inside the reminder window.
type ReminderRecipient struct {
	StudentID   uuid.UUID
	Email       string
	DisplayName string
	Tasks       []PriorityTask
}

// ReminderRow is one open task of one enrolled student, as read for the reminder digest.
type ReminderRow struct {
	StudentID   uuid.UUID
	Email       string
	DisplayName string
	Task        DeadlineTask
}

package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaterialText       = "text"
	MaterialVideo      = "video"
	MaterialQuiz       = "quiz"
	MaterialAssignment = "assignment"

	DefaultMaxScore = 100
)

func ValidMaterialType(t string) bool {
	switch t {
	case MaterialText, MaterialVideo, MaterialQuiz, MaterialAssignment:
		return true
	}
	return false
}

type Module struct {
	ID          uuid.UUID `json:"id"`
	CourseID    uuid.UUID `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
}

type Material struct {
	ID         uuid.UUID `json:"id"`
	ModuleID   uuid.UUID `json:"module_id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	VideoURL   *string   `json:"video_url"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type MaterialUpdate struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	VideoURL *string `json:"video_url"`
}

type Task struct {
	ID          uuid.UUID  `json:"id"`
	MaterialID  uuid.UUID  `json:"material_id"`
	DueDate     *time.Time `json:"due_date"`
	MaxScore    int        `json:"max_score"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

type TaskUpdate struct {
	DueDate     *time.Time `json:"due_date"`
	ClearDue    bool       `json:"clear_due_date"`
	MaxScore    *int       `json:"max_score"`
	Description *string    `json:"description"`
}

type MaterialNode struct {
	Material
	Task *Task `json:"task,omitempty"`
}

type ModuleNode struct {
	Module
	Materials []MaterialNode `json:"materials"`
}

// CourseTree is a course with its ordered modules and materials.
type CourseTree struct {
	Course  Course       `json:"course"`
	Modules []ModuleNode `json:"modules"`
}

func (t *CourseTree) MaterialIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0)
	for _, m := range t.Modules {
		for _, mat := range m.Materials {
			ids = append(ids, mat.ID)
		}
	}
	return ids
}

func (t *CourseTree) HasMaterial(id uuid.UUID) bool {
	for _, m := range t.Modules {
		for _, mat := range m.Materials {
			if mat.ID == id {
				return true
			}
		}
	}
	return false
}

// TaskContext is a task with the course and teacher it belongs to.
type TaskContext struct {
	Task      Task
	CourseID  uuid.UUID
	TeacherID uuid.UUID
}

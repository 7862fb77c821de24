package course

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SaveStructure persists a generated outline as an unpublished course in one transaction.
// Modules and materials keep their outline positions, and every quiz gets a task.
func (s *CourseService) SaveStructure(ctx context.Context, session models.Session, title, description string, structure *models.CourseStructure) (uuid.UUID, error) {
	if !session.IsTeacher() {
		return uuid.Nil, app_errors.ErrForbidden
	}
	if strings.TrimSpace(title) == "" || structure == nil {
		return uuid.Nil, fmt.Errorf("%w: course title and structure are required", app_errors.ErrWizardValidation)
	}

	var courseID uuid.UUID
	err := s.tx.InTx(ctx, func(w models.CourseWriter) error {
		id, err := WriteStructure(ctx, w, session.UserID, title, description, structure)
		courseID = id
		return err
	})
	if err != nil {
		s.log.ErrorErr("save cascade rolled back", err, "teacher_id", session.UserID)
		return uuid.Nil, err
	}
	return courseID, nil
}

// WriteStructure inserts course, modules, materials and quiz tasks through w, parents first.
func WriteStructure(ctx context.Context, w models.CourseWriter, teacherID uuid.UUID, title, description string, structure *models.CourseStructure) (uuid.UUID, error) {
	course := &models.Course{
		TeacherID:   teacherID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		IsPublished: false,
	}
	if err := w.InsertCourse(ctx, course); err != nil {
		return uuid.Nil, fmt.Errorf("insert course: %w", err)
	}

	for i, gm := range structure.Modules {
		module := &models.Module{
			CourseID:    course.ID,
			Title:       gm.Title,
			Description: gm.Description,
			OrderIndex:  i,
		}
		if err := w.InsertModule(ctx, module); err != nil {
			return uuid.Nil, fmt.Errorf("insert module %d: %w", i, err)
		}

		for j, gmat := range gm.Materials {
			if !models.ValidMaterialType(gmat.Type) {
				return uuid.Nil, fmt.Errorf("module %d material %d: %w", i, j, app_errors.ErrInvalidMaterialType)
			}
			material := &models.Material{
				ModuleID:   module.ID,
				Type:       gmat.Type,
				Title:      gmat.Title,
				Content:    gmat.Content,
				OrderIndex: j,
			}
			if err := w.InsertMaterial(ctx, material); err != nil {
				return uuid.Nil, fmt.Errorf("insert material %d.%d: %w", i, j, err)
			}

			if material.Type != models.MaterialQuiz {
				continue
			}
			task := &models.Task{
				MaterialID:  material.ID,
				MaxScore:    models.DefaultMaxScore,
				Description: "Quiz for " + module.Title,
			}
			if err := w.InsertTask(ctx, task); err != nil {
				return uuid.Nil, fmt.Errorf("insert task for material %d.%d: %w", i, j, err)
			}
		}
	}
	return course.ID, nil
}

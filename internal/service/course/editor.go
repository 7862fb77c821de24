package course

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type contentRepo interface {
	models.CourseWriter
	CourseTree(ctx context.Context, courseID uuid.UUID) (*models.CourseTree, error)
	ModuleCourseID(ctx context.Context, moduleID uuid.UUID) (uuid.UUID, error)
	MaterialCourseID(ctx context.Context, materialID uuid.UUID) (uuid.UUID, error)
	TaskCourseID(ctx context.Context, taskID uuid.UUID) (uuid.UUID, error)
	NextModuleIndex(ctx context.Context, courseID uuid.UUID) (int, error)
	NextMaterialIndex(ctx context.Context, moduleID uuid.UUID) (int, error)
	DeleteModule(ctx context.Context, moduleID uuid.UUID) error
	UpdateMaterial(ctx context.Context, materialID uuid.UUID, update models.MaterialUpdate) (*models.Material, error)
	DeleteMaterial(ctx context.Context, materialID uuid.UUID) error
	UpdateTask(ctx context.Context, taskID uuid.UUID, update models.TaskUpdate) (*models.Task, error)
}

func (s *CourseService) AddModule(ctx context.Context, session models.Session, courseID uuid.UUID, title, description string) (*models.Module, error) {
	if _, err := s.ownedCourse(ctx, session, courseID); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: module title is required", app_errors.ErrInvalidInput)
	}
	idx, err := s.content.NextModuleIndex(ctx, courseID)
	if err != nil {
		return nil, err
	}
	module := &models.Module{CourseID: courseID, Title: title, Description: description, OrderIndex: idx}
	if err := s.content.InsertModule(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *CourseService) DeleteModule(ctx context.Context, session models.Session, moduleID uuid.UUID) error {
	courseID, err := s.content.ModuleCourseID(ctx, moduleID)
	if err != nil {
		return err
	}
	if _, err := s.ownedCourse(ctx, session, courseID); err != nil {
		return err
	}
	return s.content.DeleteModule(ctx, moduleID)
}

// AddMaterial appends a material to a module. Quiz and assignment materials get a task
// in the same transaction.
func (s *CourseService) AddMaterial(ctx context.Context, session models.Session, moduleID uuid.UUID, material models.Material) (*models.MaterialNode, error) {
	courseID, err := s.content.ModuleCourseID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(ctx, session, courseID); err != nil {
		return nil, err
	}
	if !models.ValidMaterialType(material.Type) {
		return nil, app_errors.ErrInvalidMaterialType
	}
	material.Title = strings.TrimSpace(material.Title)
	if material.Title == "" {
		return nil, fmt.Errorf("%w: material title is required", app_errors.ErrInvalidInput)
	}

	idx, err := s.content.NextMaterialIndex(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	material.ModuleID = moduleID
	material.OrderIndex = idx

	node := &models.MaterialNode{}
	err = s.tx.InTx(ctx, func(w models.CourseWriter) error {
		if err := w.InsertMaterial(ctx, &material); err != nil {
			return err
		}
		if material.Type != models.MaterialQuiz && material.Type != models.MaterialAssignment {
			return nil
		}
		task := &models.Task{
			MaterialID:  material.ID,
			MaxScore:    models.DefaultMaxScore,
			Description: material.Title,
		}
		if err := w.InsertTask(ctx, task); err != nil {
			return fmt.Errorf("create task: %w", err)
		}
		node.Task = task
		return nil
	})
	if err != nil {
		s.log.ErrorErr("failed to add material", err, "module_id", moduleID)
		return nil, err
	}
	node.Material = material
	return node, nil
}

func (s *CourseService) UpdateMaterial(ctx context.Context, session models.Session, materialID uuid.UUID, update models.MaterialUpdate) (*models.Material, error) {
	courseID, err := s.content.MaterialCourseID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(ctx, session, courseID); err != nil {
		return nil, err
	}
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return nil, fmt.Errorf("%w: material title cannot be empty", app_errors.ErrInvalidInput)
	}
	return s.content.UpdateMaterial(ctx, materialID, update)
}

func (s *CourseService) DeleteMaterial(ctx context.Context, session models.Session, materialID uuid.UUID) error {
	courseID, err := s.content.MaterialCourseID(ctx, materialID)
	if err != nil {
		return err
	}
	if _, err := s.ownedCourse(ctx, session, courseID); err != nil {
		return err
	}
	return s.content.DeleteMaterial(ctx, materialID)
}

func (s *CourseService) UpdateTask(ctx context.Context, session models.Session, taskID uuid.UUID, update models.TaskUpdate) (*models.Task, error) {
	courseID, err := s.content.TaskCourseID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(ctx, session, courseID); err != nil {
		return nil, err
	}
	if update.MaxScore != nil && *update.MaxScore <= 0 {
		return nil, fmt.Errorf("%w: max score must be positive", app_errors.ErrInvalidInput)
	}
	return s.content.UpdateTask(ctx, taskID, update)
}

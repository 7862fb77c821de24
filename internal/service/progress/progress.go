package progress

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

type enrollmentRepo interface {
	EnrollmentByID(ctx context.Context, id uuid.UUID) (*models.Enrollment, error)
	EnrollmentFor(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error)
}

type progressRepo interface {
	MarkCompleted(ctx context.Context, enrollmentID, materialID uuid.UUID, at time.Time) (*models.CourseProgress, error)
	CompletedMaterials(ctx context.Context, enrollmentID uuid.UUID) ([]uuid.UUID, error)
}

type contentRepo interface {
	CourseTree(ctx context.Context, courseID uuid.UUID) (*models.CourseTree, error)
}

type ProgressService struct {
	log         logger.Log
	enrollments enrollmentRepo
	progress    progressRepo
	content     contentRepo
	now         func() time.Time
}

func NewProgressService(log logger.Log, enrollments enrollmentRepo, progress progressRepo, content contentRepo) *ProgressService {
	return &ProgressService{
		log:         log,
		enrollments: enrollments,
		progress:    progress,
		content:     content,
		now:         time.Now,
	}
}

// ComputeProgress returns the rounded share of the tree's materials present in completed.
func ComputeProgress(tree *models.CourseTree, completed []uuid.UUID) int {
	if tree == nil {
		return 0
	}
	_, pct := Percentage(tree.MaterialIDs(), completed)
	return pct
}

// Percentage counts how many of materialIDs are completed. Completions for
// materials outside the list are ignored, so the result stays within 0..100.
func Percentage(materialIDs, completed []uuid.UUID) (done int, pct int) {
	if len(materialIDs) == 0 {
		return 0, 0
	}
	set := make(map[uuid.UUID]struct{}, len(completed))
	for _, id := range completed {
		set[id] = struct{}{}
	}
	for _, id := range materialIDs {
		if _, ok := set[id]; ok {
			done++
		}
	}
	pct = int(math.Round(float64(done) / float64(len(materialIDs)) * 100))
	return done, pct
}

func (s *ProgressService) MarkDone(ctx context.Context, session models.Session, enrollmentID, materialID uuid.UUID) (*models.CourseProgress, error) {
	if !session.IsStudent() {
		return nil, app_errors.ErrForbidden
	}
	enrollment, err := s.enrollments.EnrollmentByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.StudentID != session.UserID {
		return nil, app_errors.ErrForbidden
	}

	tree, err := s.content.CourseTree(ctx, enrollment.CourseID)
	if err != nil {
		return nil, err
	}
	if !tree.HasMaterial(materialID) {
		return nil, app_errors.ErrMaterialNotInCourse
	}

	record, err := s.progress.MarkCompleted(ctx, enrollmentID, materialID, s.now())
	if err != nil {
		s.log.ErrorErr("failed to mark material done", err, "enrollment_id", enrollmentID, "material_id", materialID)
		return nil, err
	}
	return record, nil
}

func (s *ProgressService) CourseProgress(ctx context.Context, session models.Session, courseID uuid.UUID) (*models.ProgressSummary, error) {
	if !session.IsStudent() {
		return nil, app_errors.ErrForbidden
	}
	enrollment, err := s.enrollments.EnrollmentFor(ctx, session.UserID, courseID)
	if errors.Is(err, app_errors.ErrEnrollmentNotFound) {
		return nil, app_errors.ErrNotEnrolled
	}
	if err != nil {
		return nil, err
	}
	tree, err := s.content.CourseTree(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.Summary(ctx, enrollment.ID, tree.MaterialIDs())
}

// Summary builds the progress summary of one enrollment against the given materials.
func (s *ProgressService) Summary(ctx context.Context, enrollmentID uuid.UUID, materialIDs []uuid.UUID) (*models.ProgressSummary, error) {
	completed, err := s.progress.CompletedMaterials(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	inCourse := make(map[uuid.UUID]struct{}, len(materialIDs))
	for _, id := range materialIDs {
		inCourse[id] = struct{}{}
	}
	kept := make([]uuid.UUID, 0, len(completed))
	for _, id := range completed {
		if _, ok := inCourse[id]; ok {
			kept = append(kept, id)
		}
	}

	done, pct := Percentage(materialIDs, kept)
	return &models.ProgressSummary{
		EnrollmentID:         enrollmentID,
		Total:                len(materialIDs),
		Completed:            done,
		Percentage:           pct,
		CompletedMaterialIDs: kept,
	}, nil
}

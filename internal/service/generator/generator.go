package generator

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"fmt"
	"strings"
)

// StructureGenerator turns course info and keywords into a module/material outline.
type StructureGenerator interface {
	Generate(ctx context.Context, req models.GenerateRequest) (*models.CourseStructure, error)
}

type Service struct {
	log       logger.Log
	generator StructureGenerator
}

func NewService(log logger.Log, g StructureGenerator) *Service {
	return &Service{log: log, generator: g}
}

// Validate rejects a request without title, description or at least one keyword.
func Validate(req models.GenerateRequest) error {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return app_errors.ErrInvalidGenerateRequest
	}
	for _, k := range req.Keywords {
		if strings.TrimSpace(k) != "" {
			return nil
		}
	}
	return app_errors.ErrInvalidGenerateRequest
}

func (s *Service) Generate(ctx context.Context, req models.GenerateRequest) (*models.CourseStructure, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	req.Keywords = cleanKeywords(req.Keywords)

	structure, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.log.ErrorErr("structure generation failed", err, "title", req.Title)
		return nil, fmt.Errorf("%w: %v", app_errors.ErrGenerationFailed, err)
	}
	return structure, nil
}

func cleanKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

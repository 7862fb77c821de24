package generator

import (
	"LearnHub/internal/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-2.0-flash"

type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key is empty")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

func (g *GeminiGenerator) Generate(ctx context.Context, req models.GenerateRequest) (*models.CourseStructure, error) {
	model := g.client.GenerativeModel(g.model)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(req)))
	if err != nil {
		return nil, fmt.Errorf("gemini: generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("gemini: empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return ParseStructure(sb.String())
}

func buildPrompt(req models.GenerateRequest) string {
	return fmt.Sprintf(`You are a course curriculum designer. Create a structured course outline.

Title: %s
Description: %s
Keywords: %s
Reference files provided: %d

Return only JSON of the form:
{"modules":[{"title":"...","description":"...","materials":[{"title":"...","type":"text|video|quiz|assignment","content":"..."}]}]}
Create between %d and %d modules. Text material content is markdown. Quiz material content is a JSON string
{"questions":[{"id":1,"question":"...","type":"multiple-choice","options":["a","b","c","d"],"correctAnswer":0}]}
with five questions of four options each.`,
		req.Title, req.Description, strings.Join(req.Keywords, ", "), len(req.ReferenceURLs), minModules, maxModules)
}

// ParseStructure decodes model output and checks it is usable as a course outline.
func ParseStructure(raw string) (*models.CourseStructure, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var structure models.CourseStructure
	if err := json.Unmarshal([]byte(raw), &structure); err != nil {
		return nil, fmt.Errorf("decode structure: %w", err)
	}
	if err := ValidateStructure(&structure); err != nil {
		return nil, err
	}
	return &structure, nil
}

func ValidateStructure(s *models.CourseStructure) error {
	if len(s.Modules) == 0 {
		return errors.New("structure has no modules")
	}
	for i, m := range s.Modules {
		if strings.TrimSpace(m.Title) == "" {
			return fmt.Errorf("module %d has no title", i+1)
		}
		for j, mat := range m.Materials {
			if !models.ValidMaterialType(mat.Type) {
				return fmt.Errorf("module %d material %d: unknown type %q", i+1, j+1, mat.Type)
			}
			if mat.Type == models.MaterialQuiz {
				if err := validateQuiz(mat.Content); err != nil {
					return fmt.Errorf("module %d material %d: %w", i+1, j+1, err)
				}
			}
		}
	}
	return nil
}

func validateQuiz(content string) error {
	var quiz models.Quiz
	if err := json.Unmarshal([]byte(content), &quiz); err != nil {
		return fmt.Errorf("quiz is not valid json: %w", err)
	}
	if len(quiz.Questions) == 0 {
		return errors.New("quiz has no questions")
	}
	for _, q := range quiz.Questions {
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("question %d: correct answer out of range", q.ID)
		}
	}
	return nil
}

package generator

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleCount(t *testing.T) {
	tests := []struct {
		keywords int
		want     int
	}{
		{1, 3}, {2, 3}, {3, 3}, {4, 4}, {5, 5}, {6, 5}, {12, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ModuleCount(tt.keywords), "keywords=%d", tt.keywords)
	}
}

func TestTemplateGenerator_IntroToSorting(t *testing.T) {
	g := NewTemplateGenerator()
	structure, err := g.Generate(context.Background(), models.GenerateRequest{
		Title:       "Intro to Sorting",
		Description: "Learn basic sorting",
		Keywords:    []string{"array", "bubble sort"},
	})
	require.NoError(t, err)
	require.Len(t, structure.Modules, 3)

	assert.Equal(t, "Chapter 1: Array", structure.Modules[0].Title)
	assert.Equal(t, "Chapter 2: Bubble sort", structure.Modules[1].Title)
	assert.Equal(t, "Chapter 3: Array", structure.Modules[2].Title)
	assert.Equal(t, "Understand and master the concept of bubble sort in depth", structure.Modules[1].Description)

	for _, m := range structure.Modules {
		require.Len(t, m.Materials, 4)
		for i := 0; i < 3; i++ {
			assert.Equal(t, models.MaterialText, m.Materials[i].Type)
		}
		quizMat := m.Materials[3]
		assert.Equal(t, models.MaterialQuiz, quizMat.Type)

		var quiz models.Quiz
		require.NoError(t, json.Unmarshal([]byte(quizMat.Content), &quiz))
		require.Len(t, quiz.Questions, 5)
		for _, q := range quiz.Questions {
			assert.Len(t, q.Options, 4)
			assert.GreaterOrEqual(t, q.CorrectAnswer, 0)
			assert.Less(t, q.CorrectAnswer, len(q.Options))
			assert.Equal(t, models.QuestionMultipleChoice, q.Type)
		}
	}
}

func TestTemplateGenerator_QuizAnswers(t *testing.T) {
	quiz := templateQuiz("graphs")
	got := make([]int, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		got = append(got, q.CorrectAnswer)
	}
	assert.Equal(t, []int{0, 2, 0, 1, 2}, got)
}

func TestTemplateGenerator_Deterministic(t *testing.T) {
	g := NewTemplateGenerator()
	req := models.GenerateRequest{Title: "t", Description: "d", Keywords: []string{"a", "b", "c", "d", "e", "f"}}
	first, err := g.Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first.Modules, 5)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  models.GenerateRequest
		ok   bool
	}{
		{"complete", models.GenerateRequest{Title: "t", Description: "d", Keywords: []string{"k"}}, true},
		{"no title", models.GenerateRequest{Description: "d", Keywords: []string{"k"}}, false},
		{"blank description", models.GenerateRequest{Title: "t", Description: "  ", Keywords: []string{"k"}}, false},
		{"no keywords", models.GenerateRequest{Title: "t", Description: "d"}, false},
		{"only blank keywords", models.GenerateRequest{Title: "t", Description: "d", Keywords: []string{" ", ""}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, app_errors.ErrInvalidGenerateRequest)
			}
		})
	}
}

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, models.GenerateRequest) (*models.CourseStructure, error) {
	return nil, errors.New("upstream down")
}

func TestService_Generate(t *testing.T) {
	s := NewService(logger.Discard(), NewTemplateGenerator())
	structure, err := s.Generate(context.Background(), models.GenerateRequest{
		Title: "t", Description: "d", Keywords: []string{" go ", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "Chapter 1: Go", structure.Modules[0].Title)

	_, err = s.Generate(context.Background(), models.GenerateRequest{Title: "t"})
	assert.ErrorIs(t, err, app_errors.ErrInvalidGenerateRequest)

	failing := NewService(logger.Discard(), failingGenerator{})
	_, err = failing.Generate(context.Background(), models.GenerateRequest{Title: "t", Description: "d", Keywords: []string{"k"}})
	assert.ErrorIs(t, err, app_errors.ErrGenerationFailed)
}

func TestParseStructure(t *testing.T) {
	raw := "```json\n" + `{"modules":[{"title":"M","description":"d","materials":[
		{"title":"a","type":"text","content":"x"},
		{"title":"q","type":"quiz","content":"{\"questions\":[{\"id\":1,\"question\":\"?\",\"type\":\"multiple-choice\",\"options\":[\"a\",\"b\"],\"correctAnswer\":1}]}"}
	]}]}` + "\n```"
	s, err := ParseStructure(raw)
	require.NoError(t, err)
	assert.Len(t, s.Modules[0].Materials, 2)

	_, err = ParseStructure(`{"modules":[]}`)
	assert.Error(t, err)

	_, err = ParseStructure(`{"modules":[{"title":"M","materials":[{"title":"x","type":"podcast"}]}]}`)
	assert.Error(t, err)

	_, err = ParseStructure(`{"modules":[{"title":"M","materials":[{"title":"x","type":"quiz","content":"{\"questions\":[{\"options\":[\"a\"],\"correctAnswer\":3}]}"}]}]}`)
	assert.Error(t, err)
}

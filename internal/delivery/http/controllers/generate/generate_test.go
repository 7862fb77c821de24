package generate

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	structure *models.CourseStructure
	err       error
	got       models.GenerateRequest
}

func (s *stubGenerator) Generate(_ context.Context, req models.GenerateRequest) (*models.CourseStructure, error) {
	s.got = req
	return s.structure, s.err
}

func serve(t *testing.T, g Generator, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/ai/generate-course", NewGenerateHandler(logger.Discard(), g).GenerateCourse)

	req := httptest.NewRequest(http.MethodPost, "/api/ai/generate-course", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateCourse(t *testing.T) {
	structure := &models.CourseStructure{Modules: []models.GeneratedModule{{Title: "Introduction"}}}

	tests := []struct {
		name       string
		body       string
		gen        *stubGenerator
		wantStatus int
		wantError  string
	}{
		{
			name:       "success",
			body:       `{"title":"Intro to Sorting","description":"d","keywords":["array"],"referenceUrls":[]}`,
			gen:        &stubGenerator{structure: structure},
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed json",
			body:       `{"title":`,
			gen:        &stubGenerator{},
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing required fields",
		},
		{
			name:       "validation failure",
			body:       `{"title":"","description":"d","keywords":["a"]}`,
			gen:        &stubGenerator{err: app_errors.ErrInvalidGenerateRequest},
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing required fields",
		},
		{
			name:       "generator failure",
			body:       `{"title":"t","description":"d","keywords":["a"]}`,
			gen:        &stubGenerator{err: fmt.Errorf("%w: quota", app_errors.ErrGenerationFailed)},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to generate course",
		},
		{
			name:       "unexpected error",
			body:       `{"title":"t","description":"d","keywords":["a"]}`,
			gen:        &stubGenerator{err: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to generate course",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, tt.gen, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.wantError != "" {
				assert.JSONEq(t, `"`+tt.wantError+`"`, string(body["error"]))
				return
			}
			assert.JSONEq(t, `true`, string(body["success"]))
			var got models.CourseStructure
			require.NoError(t, json.Unmarshal(body["structure"], &got))
			assert.Equal(t, *structure, got)
		})
	}
}

func TestGenerateCoursePassesReferenceURLs(t *testing.T) {
	gen := &stubGenerator{structure: &models.CourseStructure{}}
	w := serve(t, gen, `{"title":"t","description":"d","keywords":["a"],"referenceUrls":["http://x/a.pdf"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"http://x/a.pdf"}, gen.got.ReferenceURLs)
}

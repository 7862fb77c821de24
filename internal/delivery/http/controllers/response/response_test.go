package response

import (
	"LearnHub/internal/app_errors"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{app_errors.ErrWizardStep, http.StatusBadRequest},
		{fmt.Errorf("submit info: %w", app_errors.ErrWizardValidation), http.StatusBadRequest},
		{app_errors.ErrTokenExpired, http.StatusUnauthorized},
		{app_errors.ErrNotCourseOwner, http.StatusForbidden},
		{app_errors.ErrNotEnrolled, http.StatusForbidden},
		{app_errors.ErrDraftNotFound, http.StatusNotFound},
		{app_errors.ErrAlreadyEnrolled, http.StatusConflict},
		{app_errors.ErrSearchDisabled, http.StatusServiceUnavailable},
		{app_errors.ErrGenerationFailed, http.StatusInternalServerError},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestErrorHidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	require.Len(t, c.Errors, 1)
}

func TestUUIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "course_id", Value: "nope"}}

	_, ok := UUIDParam(c, "course_id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

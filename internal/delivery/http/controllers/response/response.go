package response

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/delivery/http/controllers/middleware"
	"LearnHub/internal/models"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var statusByErr = []struct {
	status int
	errs   []error
}{
	{http.StatusBadRequest, []error{
		app_errors.ErrInvalidInput,
		app_errors.ErrInvalidPassword,
		app_errors.ErrInvalidRole,
		app_errors.ErrInvalidMaterialType,
		app_errors.ErrNotImage,
		app_errors.ErrFileSize,
		app_errors.ErrEmptySubmission,
		app_errors.ErrInvalidGrade,
		app_errors.ErrWizardValidation,
		app_errors.ErrWizardStep,
		app_errors.ErrInvalidGenerateRequest,
		app_errors.ErrMaterialNotInCourse,
		app_errors.ErrCourseNotPublished,
	}},
	{http.StatusUnauthorized, []error{
		app_errors.ErrIncorrectPassword,
		app_errors.ErrTokenNotFound,
		app_errors.ErrTokenExpired,
	}},
	{http.StatusForbidden, []error{
		app_errors.ErrForbidden,
		app_errors.ErrNotCourseOwner,
		app_errors.ErrNotEnrolled,
	}},
	{http.StatusNotFound, []error{
		app_errors.ErrUserNotFound,
		app_errors.ErrCourseNotFound,
		app_errors.ErrModuleNotFound,
		app_errors.ErrMaterialNotFound,
		app_errors.ErrTaskNotFound,
		app_errors.ErrEnrollmentNotFound,
		app_errors.ErrSubmissionNotFound,
		app_errors.ErrDraftNotFound,
	}},
	{http.StatusConflict, []error{
		app_errors.ErrUserExists,
		app_errors.ErrAlreadyEnrolled,
		app_errors.ErrAlreadySubmitted,
	}},
	{http.StatusServiceUnavailable, []error{
		app_errors.ErrSearchDisabled,
	}},
}

// Status maps a domain error to its HTTP status. Unknown errors are 500.
func Status(err error) int {
	for _, group := range statusByErr {
		for _, target := range group.errs {
			if errors.Is(err, target) {
				return group.status
			}
		}
	}
	return http.StatusInternalServerError
}

// Error writes {"error": msg}. Internal errors are attached to the gin context
// for the logging middleware and hidden from the client.
func Error(c *gin.Context, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// UUIDParam parses a path parameter, writing 400 when it is not a uuid.
func UUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a valid uuid"})
		return uuid.Nil, false
	}
	return id, true
}

// Session returns the caller, writing 401 when the auth middleware did not run.
func Session(c *gin.Context) (models.Session, bool) {
	session, ok := middleware.Session(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return session, ok
}

package app_errors

import "errors"

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrIncorrectPassword = errors.New("incorrect password")
var ErrInvalidPassword = errors.New("password must be between 6 and 72 characters")
var ErrInvalidRole = errors.New("role must be teacher or student")
var ErrTokenNotFound = errors.New("token not found")
var ErrTokenExpired = errors.New("token expired")
var ErrForbidden = errors.New("insufficient permissions")

var ErrCourseNotFound = errors.New("course not found")
var ErrNotCourseOwner = errors.New("you are not the course owner")
var ErrCourseNotPublished = errors.New("course not published")
var ErrModuleNotFound = errors.New("module not found")
var ErrMaterialNotFound = errors.New("material not found")
var ErrTaskNotFound = errors.New("task not found")
var ErrInvalidMaterialType = errors.New("material type must be text, video, quiz or assignment")
var ErrNotImage = errors.New("not image")
var ErrFileSize = errors.New("file size error")
var ErrSearchDisabled = errors.New("course search is not configured")

var ErrAlreadyEnrolled = errors.New("student is already enrolled in course")
var ErrEnrollmentNotFound = errors.New("enrollment not found")
var ErrNotEnrolled = errors.New("student is not enrolled in course")
var ErrMaterialNotInCourse = errors.New("material does not belong to the enrolled course")

var ErrSubmissionNotFound = errors.New("submission not found")
var ErrAlreadySubmitted = errors.New("task already submitted")
var ErrEmptySubmission = errors.New("submission needs an answer or a file")
var ErrInvalidGrade = errors.New("grade must be between 0 and the task max score")

var ErrDraftNotFound = errors.New("course draft not found")
var ErrWizardStep = errors.New("action not allowed at the current wizard step")
var ErrWizardValidation = errors.New("wizard step requirements not met")
var ErrInvalidGenerateRequest = errors.New("missing required fields")
var ErrGenerationFailed = errors.New("failed to generate course")
var ErrInvalidInput = errors.New("invalid input")

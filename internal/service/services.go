package service

import (
	"LearnHub/internal/service/auth"
	"LearnHub/internal/service/course"
	"LearnHub/internal/service/deadline"
	"LearnHub/internal/service/enrollment"
	"LearnHub/internal/service/generator"
	"LearnHub/internal/service/progress"
	"LearnHub/internal/service/submission"
	"LearnHub/internal/service/wizard"
)

type Collection struct {
	Auth       *auth.AuthService
	Courses    *course.CourseService
	Wizard     *wizard.WizardService
	Generator  *generator.Service
	Enrollment *enrollment.EnrollmentService
	Progress   *progress.ProgressService
	Deadlines  *deadline.DeadlineService
	Submission *submission.SubmissionService
}

package http

import (
	"LearnHub/internal/config"
	"LearnHub/internal/delivery/http/controllers"
	"LearnHub/internal/delivery/http/controllers/auth"
	"LearnHub/internal/delivery/http/controllers/course"
	"LearnHub/internal/delivery/http/controllers/deadline"
	"LearnHub/internal/delivery/http/controllers/generate"
	"LearnHub/internal/delivery/http/controllers/learning"
	"LearnHub/internal/delivery/http/controllers/middleware"
	"LearnHub/internal/delivery/http/controllers/submission"
	"LearnHub/internal/delivery/http/controllers/wizard"
	"LearnHub/internal/models"
	"LearnHub/internal/service"
	"LearnHub/pkg/logger"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRoutes(l logger.Log, corsCfg config.CORS, u service.Collection) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsCfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	statusController := controllers.NewStatusHandler()
	authMw := middleware.NewAuthMiddlewareProvider(l, u.Auth)
	authController := auth.NewAuthHandler(l, u.Auth)
	generateController := generate.NewGenerateHandler(l, u.Generator)
	wizardController := wizard.NewWizardHandler(l, u.Wizard)
	managementController := course.NewManagementHandler(l, u.Courses)
	contentController := course.NewContentHandler(l, u.Courses)
	catalogController := course.NewCatalogHandler(l, u.Courses)
	enrollmentController := learning.NewEnrollmentHandler(l, u.Enrollment)
	progressController := learning.NewProgressHandler(l, u.Progress)
	deadlineController := deadline.NewDeadlineHandler(l, u.Deadlines)
	submissionController := submission.NewSubmissionHandler(l, u.Submission)

	teacherOnly := middleware.RequireRoles(models.RoleTeacher)
	studentOnly := middleware.RequireRoles(models.RoleStudent)

	api := r.Group("/api", middleware.LoggingMiddleware(l))
	{
		api.POST("/ai/generate-course", generateController.GenerateCourse)
	}

	v1 := r.Group("/v1", middleware.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authController.Register)
			authGroup.POST("/login", authController.Login)
			authGroup.POST("/refresh", authController.Refresh)
		}

		me := v1.Group("/me", authMw.AuthMiddleware)
		{
			me.GET("", authController.Me)
			me.PATCH("", authController.UpdateMe)
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", catalogController.ListCourses)
			courses.GET("/search", catalogController.SearchCourses)

			enrolled := courses.Group("/:course_id", authMw.AuthMiddleware)
			{
				enrolled.POST("/enroll", studentOnly, enrollmentController.Enroll)
				enrolled.GET("/content", enrollmentController.CourseContent)
				enrolled.GET("/progress", studentOnly, progressController.CourseProgress)
			}
		}

		student := v1.Group("", authMw.AuthMiddleware, studentOnly)
		{
			student.GET("/student/courses", enrollmentController.MyCourses)
			student.GET("/student/priority-tasks", deadlineController.PriorityTasks)
			student.POST("/enrollments/:enrollment_id/materials/:material_id/done", progressController.MarkDone)
			student.POST("/tasks/:task_id/submissions", submissionController.Submit)
		}

		wizards := v1.Group("/wizard", authMw.AuthMiddleware, teacherOnly)
		{
			wizards.POST("", wizardController.Start)
			wizards.GET("", wizardController.List)
			wizards.GET("/:draft_id", wizardController.Get)
			wizards.DELETE("/:draft_id", wizardController.Discard)
			wizards.POST("/:draft_id/info", wizardController.SubmitInfo)
			wizards.POST("/:draft_id/references", wizardController.SubmitReferences)
			wizards.POST("/:draft_id/generate", wizardController.Generate)
			wizards.POST("/:draft_id/back", wizardController.Back)
			wizards.POST("/:draft_id/save", wizardController.Save)
		}

		teacher := v1.Group("/teacher", authMw.AuthMiddleware, teacherOnly)
		{
			teacher.GET("/deadlines", deadlineController.UpcomingDeadlines)

			teacher.GET("/courses", managementController.MyCourses)
			teacher.GET("/courses/:course_id", managementController.CourseTree)
			teacher.PATCH("/courses/:course_id", managementController.UpdateCourse)
			teacher.DELETE("/courses/:course_id", managementController.DeleteCourse)
			teacher.PATCH("/courses/:course_id/publish", managementController.PublishCourse)
			teacher.PATCH("/courses/:course_id/hide", managementController.HideCourse)
			teacher.PUT("/courses/:course_id/cover", managementController.UploadCover)
			teacher.GET("/courses/:course_id/students", enrollmentController.CourseStudents)
			teacher.POST("/courses/:course_id/modules", contentController.AddModule)

			teacher.DELETE("/modules/:module_id", contentController.DeleteModule)
			teacher.POST("/modules/:module_id/materials", contentController.AddMaterial)
			teacher.PATCH("/materials/:material_id", contentController.UpdateMaterial)
			teacher.DELETE("/materials/:material_id", contentController.DeleteMaterial)
			teacher.PATCH("/tasks/:task_id", contentController.UpdateTask)
			teacher.GET("/tasks/:task_id/submissions", submissionController.TaskSubmissions)
			teacher.PATCH("/submissions/:submission_id/grade", submissionController.Grade)
		}
	}
	return r
}

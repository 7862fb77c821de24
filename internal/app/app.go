package app

import (
	"LearnHub/internal/app/server"
	"LearnHub/internal/config"
	"LearnHub/internal/delivery/http"
	"LearnHub/internal/models"
	"LearnHub/internal/notification"
	"LearnHub/internal/service"
	"LearnHub/internal/service/auth"
	"LearnHub/internal/service/course"
	"LearnHub/internal/service/deadline"
	"LearnHub/internal/service/enrollment"
	"LearnHub/internal/service/generator"
	"LearnHub/internal/service/progress"
	"LearnHub/internal/service/submission"
	"LearnHub/internal/service/wizard"
	"LearnHub/internal/storage/elastic"
	"LearnHub/internal/storage/minio_storage"
	"LearnHub/internal/storage/postgres"
	"LearnHub/internal/storage/supabase_storage"
	"LearnHub/pkg/logger"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
)

const appName = "LearnHub"

type referenceUploader interface {
	UploadReference(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
}

type coverUploader interface {
	UploadCover(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
}

type courseSearch interface {
	Index(ctx context.Context, course models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, size int) ([]uuid.UUID, error)
	Count(ctx context.Context, query string) (int, error)
}

type structureGenerator interface {
	Generate(ctx context.Context, req models.GenerateRequest) (*models.CourseStructure, error)
}

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	ctx := context.Background()

	pg, err := postgres.NewPostgresPool(ctx, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	references, covers, err := newObjectStorage(ctx, cfg.Storage)
	if err != nil {
		log.FatalErr("error connecting to object storage", err)
	}
	log.Info("object storage ready", "provider", cfg.Storage.Provider)

	search, err := newCourseSearch(ctx, cfg.ES)
	if err != nil {
		log.FatalErr("error connecting to elasticsearch", err)
	}
	if search == nil {
		log.Warn("elasticsearch disabled, course search is unavailable")
	}

	gen, closeGen, err := newGenerator(ctx, cfg.Generator)
	if err != nil {
		log.FatalErr("error creating structure generator", err)
	}
	defer closeGen()
	log.Info("structure generator ready", "provider", cfg.Generator.Provider)

	profileRepo := postgres.NewProfilePostgres(pg.Pool)
	tokenRepo := postgres.NewTokensPostgres(pg.Pool)
	courseRepo := postgres.NewCoursePostgres(pg.Pool)
	contentRepo := postgres.NewContentPostgres(pg.Pool)
	enrollmentRepo := postgres.NewEnrollmentPostgres(pg.Pool)
	progressRepo := postgres.NewProgressPostgres(pg.Pool)
	submissionRepo := postgres.NewSubmissionPostgres(pg.Pool)
	draftRepo := postgres.NewDraftPostgres(pg.Pool)
	deadlineRepo := postgres.NewDeadlinePostgres(pg.Pool)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	authService := auth.NewAuthService(log, jwtManager, profileRepo, tokenRepo)
	courseService := course.NewCourseService(log, courseRepo, courseRepo, contentRepo, search, covers)
	generatorService := generator.NewService(log, gen)
	wizardService := wizard.NewWizardService(log, draftRepo, references, generatorService, courseService)
	enrollmentService := enrollment.NewEnrollmentService(log, courseRepo, enrollmentRepo, contentRepo, progressRepo)
	progressService := progress.NewProgressService(log, enrollmentRepo, progressRepo, contentRepo)
	submissionService := submission.NewSubmissionService(log, contentRepo, enrollmentRepo, submissionRepo)
	deadlineService := deadline.NewDeadlineService(log, deadlineRepo,
		policy(cfg.Deadlines.StudentPolicy()),
		policy(cfg.Deadlines.TeacherPolicy()),
	)

	if cfg.Reminders.Enabled {
		reminder := deadline.NewReminder(log, deadlineRepo, newNotifier(log, cfg.Reminders), policy(cfg.Deadlines.StudentPolicy()))
		if err := reminder.Start(cfg.Reminders.Schedule); err != nil {
			log.FatalErr("error scheduling reminders", err)
		}
		defer reminder.Stop()
		log.Info("deadline reminders scheduled", "schedule", cfg.Reminders.Schedule)
	}

	u := service.Collection{
		Auth:       authService,
		Courses:    courseService,
		Wizard:     wizardService,
		Generator:  generatorService,
		Enrollment: enrollmentService,
		Progress:   progressService,
		Deadlines:  deadlineService,
		Submission: submissionService,
	}

	r := http.InitRoutes(log, cfg.CORS, u)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	log.Info("http server started", "address", cfg.HTTPServer.Address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("http server stopped", err)
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("http server shutdown failed", err)
	}
}

func policy(p config.DeadlinePolicy) deadline.Policy {
	return deadline.Policy{Window: p.Window, UrgentDays: p.UrgentDays}
}

func newObjectStorage(ctx context.Context, cfg config.Storage) (referenceUploader, coverUploader, error) {
	switch cfg.Provider {
	case config.StorageSupabase:
		sb, err := supabase_storage.NewSupabaseStorage(cfg.Supabase)
		if err != nil {
			return nil, nil, err
		}
		return sb.Bucket(cfg.Supabase.ReferencesBucket), sb.Bucket(cfg.Supabase.CoversBucket), nil
	case config.StorageMinio, "":
		mn, err := minio_storage.NewMinioStorage(ctx, cfg.Minio)
		if err != nil {
			return nil, nil, err
		}
		references, err := minio_storage.NewReferenceStorage(mn)
		if err != nil {
			return nil, nil, err
		}
		covers, err := minio_storage.NewCoverStorage(mn)
		if err != nil {
			return nil, nil, err
		}
		return references, covers, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

// newCourseSearch returns a nil interface when search is disabled.
func newCourseSearch(ctx context.Context, cfg config.ES) (courseSearch, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	client, err := elastic.NewElasticClient(cfg.Password, cfg.Hosts)
	if err != nil {
		return nil, err
	}
	repo := elastic.NewCourseSearchRepository(client, cfg.Index)
	if err := repo.CreateIndexIfNotExist(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func newGenerator(ctx context.Context, cfg config.Generator) (structureGenerator, func(), error) {
	switch cfg.Provider {
	case config.GeneratorGemini:
		g, err := generator.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return nil, nil, err
		}
		return g, func() { _ = g.Close() }, nil
	case config.GeneratorTemplate, "":
		return generator.NewTemplateGenerator(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown generator provider %q", cfg.Provider)
	}
}

func newNotifier(log logger.Log, cfg config.Reminders) deadline.Notifier {
	if cfg.SendgridKey == "" {
		log.Warn("sendgrid key is empty, reminders are written to the log")
		return notification.NewConsoleNotifier(log, appName)
	}
	return notification.NewSendgridNotifier(log, cfg.SendgridKey, cfg.FromName, cfg.FromEmail)
}

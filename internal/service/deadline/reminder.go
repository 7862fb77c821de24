package deadline

import (
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const DefaultReminderSchedule = "0 8 * * *"

type reminderRepo interface {
	OpenTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.ReminderRow, error)
}

type Notifier interface {
	SendDigest(ctx context.Context, recipient models.ReminderRecipient) error
}

// Reminder emails every student a digest of their urgent open tasks on a cron schedule.
type Reminder struct {
	log      logger.Log
	repo     reminderRepo
	notifier Notifier
	policy   Policy
	cron     *cron.Cron
	timeout  time.Duration
	now      func() time.Time
}

func NewReminder(log logger.Log, repo reminderRepo, notifier Notifier, policy Policy) *Reminder {
	return &Reminder{
		log:      log,
		repo:     repo,
		notifier: notifier,
		policy:   policy,
		cron:     cron.New(),
		timeout:  5 * time.Minute,
		now:      time.Now,
	}
}

func (r *Reminder) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}
	_, err := r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		sent, err := r.RunOnce(ctx)
		if err != nil {
			r.log.ErrorErr("reminder run failed", err)
			return
		}
		r.log.Info("reminder run finished", "sent", sent)
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	r.cron.Start()
	r.log.Info("reminder scheduler started", "schedule", schedule)
	return nil
}

// Stop waits for a running job to finish.
func (r *Reminder) Stop() {
	<-r.cron.Stop().Done()
}

// RunOnce sends one digest per student with urgent tasks and returns how many were sent.
func (r *Reminder) RunOnce(ctx context.Context) (int, error) {
	now := r.now()
	rows, err := r.repo.OpenTasksDueBetween(ctx, now, now.Add(r.policy.Window))
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, recipient := range BuildDigests(now, rows, r.policy) {
		if err := r.notifier.SendDigest(ctx, recipient); err != nil {
			r.log.ErrorErr("failed to send reminder", err, "student_id", recipient.StudentID)
			continue
		}
		sent++
	}
	return sent, nil
}

// BuildDigests groups open task rows per student and keeps only urgent tasks.
// Students without an urgent task get no digest.
func BuildDigests(now time.Time, rows []models.ReminderRow, policy Policy) []models.ReminderRecipient {
	order := make([]uuid.UUID, 0)
	byStudent := make(map[uuid.UUID]*models.ReminderRecipient)
	tasks := make(map[uuid.UUID][]models.DeadlineTask)
	courses := make(map[uuid.UUID][]uuid.UUID)

	for _, row := range rows {
		if _, ok := byStudent[row.StudentID]; !ok {
			byStudent[row.StudentID] = &models.ReminderRecipient{
				StudentID:   row.StudentID,
				Email:       row.Email,
				DisplayName: row.DisplayName,
			}
			order = append(order, row.StudentID)
		}
		tasks[row.StudentID] = append(tasks[row.StudentID], row.Task)
		courses[row.StudentID] = append(courses[row.StudentID], row.Task.CourseID)
	}

	out := make([]models.ReminderRecipient, 0, len(order))
	for _, id := range order {
		var urgent []models.PriorityTask
		for _, t := range FilterPriority(now, tasks[id], courses[id], nil, policy) {
			if t.IsUrgent {
				urgent = append(urgent, t)
			}
		}
		if len(urgent) == 0 {
			continue
		}
		recipient := byStudent[id]
		recipient.Tasks = urgent
		out = append(out, *recipient)
	}
	return out
}

package deadline

import (
	"LearnHub/internal/models"
	"sort"
	"time"

	"github.com/google/uuid"
)

type Policy struct {
	Window     time.Duration
	UrgentDays int
}

// DaysLeft is the number of calendar days from now to due, in now's location.
func DaysLeft(now, due time.Time) int {
	loc := now.Location()
	due = due.In(loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	to := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, loc)
	// round to absorb DST shifts
	return int((to.Sub(from) + 12*time.Hour) / (24 * time.Hour))
}

func inWindow(now time.Time, due *time.Time, window time.Duration) bool {
	if due == nil {
		return false
	}
	return !due.Before(now) && !due.After(now.Add(window))
}

func toPriority(now time.Time, t models.DeadlineTask, policy Policy) models.PriorityTask {
	days := DaysLeft(now, *t.DueDate)
	return models.PriorityTask{
		TaskID:     t.TaskID,
		MaterialID: t.MaterialID,
		Title:      t.Title,
		CourseID:   t.CourseID,
		CourseName: t.CourseName,
		DueDate:    *t.DueDate,
		DaysLeft:   days,
		IsUrgent:   days <= policy.UrgentDays,
	}
}

// FilterPriority keeps the tasks of enrolled courses that are due inside the
// policy window and not yet submitted, sorted by due date.
func FilterPriority(now time.Time, tasks []models.DeadlineTask, enrolledCourseIDs, submittedTaskIDs []uuid.UUID, policy Policy) []models.PriorityTask {
	enrolled := toSet(enrolledCourseIDs)
	submitted := toSet(submittedTaskIDs)

	out := make([]models.PriorityTask, 0)
	for _, t := range tasks {
		if !inWindow(now, t.DueDate, policy.Window) {
			continue
		}
		if _, ok := enrolled[t.CourseID]; !ok {
			continue
		}
		if _, ok := submitted[t.TaskID]; ok {
			continue
		}
		out = append(out, toPriority(now, t, policy))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out
}

// FilterUpcoming keeps the tasks due inside the policy window and attaches
// how many submissions still wait for grading.
func FilterUpcoming(now time.Time, tasks []models.DeadlineTask, waiting map[uuid.UUID]int, policy Policy) []models.TeacherDeadline {
	out := make([]models.TeacherDeadline, 0)
	for _, t := range tasks {
		if !inWindow(now, t.DueDate, policy.Window) {
			continue
		}
		out = append(out, models.TeacherDeadline{
			PriorityTask:      toPriority(now, t, policy),
			WaitingForGrading: waiting[t.TaskID],
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

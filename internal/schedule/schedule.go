// Package schedule считает производные поля задач и проектов: просрочку,
// дни до дедлайна, возраст и прогресс. Ничего из этого не сохраняется,
// всё пересчитывается на момент now при каждом запросе.
package schedule

import (
	"math"
	"time"

	"projectTracker/internal/models/date"
	"projectTracker/internal/models/project"
	"projectTracker/internal/models/task"
)

type TaskView struct {
	Task              *task.Task
	IsOverdue         bool
	DaysUntilDeadline *int
	DaysSinceCreated  int
	DaysToComplete    *int
}

type ProjectView struct {
	Project            *project.Project
	TotalTasks         int
	CompletedTasks     int
	PendingTasks       int
	InProgressTasks    int
	ProgressPercentage float64
	IsOverdue          bool
	DaysUntilDeadline  *int
}

func DeriveTask(t *task.Task, now time.Time) TaskView {
	loc := now.Location()
	today := date.Of(now)

	view := TaskView{
		Task:             t,
		DaysSinceCreated: date.DaysBetween(date.Of(t.CreatedAt.In(loc)), today),
	}

	if t.Deadline != nil {
		view.IsOverdue = deadlinePassed(*t.Deadline, now) && t.Status != task.StatusDone
		days := date.DaysBetween(today, *t.Deadline)
		view.DaysUntilDeadline = &days
	}

	if t.CompletedAt != nil {
		days := date.DaysBetween(date.Of(t.CreatedAt.In(loc)), date.Of(t.CompletedAt.In(loc)))
		view.DaysToComplete = &days
	}

	return view
}

func DeriveTasks(tasks []*task.Task, now time.Time) []TaskView {
	views := make([]TaskView, len(tasks))
	for i, t := range tasks {
		views[i] = DeriveTask(t, now)
	}
	return views
}

// DeriveProject ожидает задачи только этого проекта
func DeriveProject(p *project.Project, tasks []*task.Task, now time.Time) ProjectView {
	view := ProjectView{
		Project:    p,
		TotalTasks: len(tasks),
	}

	for _, t := range tasks {
		switch t.Status {
		case task.StatusDone:
			view.CompletedTasks++
		case task.StatusPending:
			view.PendingTasks++
		case task.StatusInProgress:
			view.InProgressTasks++
		}
	}

	view.ProgressPercentage = Progress(view.CompletedTasks, view.TotalTasks)

	if p.Deadline != nil {
		view.IsOverdue = deadlinePassed(*p.Deadline, now) && p.Status != project.StatusCompleted
		days := date.DaysBetween(date.Of(now), *p.Deadline)
		view.DaysUntilDeadline = &days
	}

	return view
}

// Progress - процент выполненных задач с одним знаком после запятой, 0 для пустого проекта
func Progress(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*1000) / 10
}

// дедлайн считается наступившим с начала его дня в часовом поясе now
func deadlinePassed(deadline date.Date, now time.Time) bool {
	return deadline.In(now.Location()).Before(now)
}

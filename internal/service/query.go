package service

import (
	"cmp"
	"slices"

	"projectTracker/internal/models/task"
)

// TaskFilter - условия списка задач, nil означает "любое значение".
// Все заданные условия объединяются через И.
type TaskFilter struct {
	ProjectID  *int64
	AssignedTo *int64
	Status     *task.Status
	Priority   *task.Priority
}

func (f TaskFilter) Match(t *task.Task) bool {
	if f.ProjectID != nil && t.ProjectID != *f.ProjectID {
		return false
	}
	if f.AssignedTo != nil && (t.AssignedTo == nil || *t.AssignedTo != *f.AssignedTo) {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	return true
}

func FilterTasks(tasks []*task.Task, f TaskFilter) []*task.Task {
	res := []*task.Task{}
	for _, t := range tasks {
		if f.Match(t) {
			res = append(res, t)
		}
	}
	return res
}

// SortTasks: приоритет (high, medium, low, остальные), дедлайн по возрастанию
// с пустыми в конце, created_at по убыванию, id по возрастанию.
func SortTasks(tasks []*task.Task) {
	slices.SortStableFunc(tasks, compareTasks)
}

func compareTasks(a, b *task.Task) int {
	if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
		return c
	}
	if c := compareDeadlines(a, b); c != 0 {
		return c
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func compareDeadlines(a, b *task.Task) int {
	switch {
	case a.Deadline == nil && b.Deadline == nil:
		return 0
	case a.Deadline == nil:
		return 1
	case b.Deadline == nil:
		return -1
	case a.Deadline.Before(*b.Deadline):
		return -1
	case b.Deadline.Before(*a.Deadline):
		return 1
	default:
		return 0
	}
}

package service

import (
	"time"

	"projectTracker/internal/models/task"
)

// ApplyStatusTransition возвращает completed_at после смены статуса:
// переход в done ставит now, выход из done обнуляет, иначе значение не меняется.
func ApplyStatusTransition(previous task.Status, previousCompletedAt *time.Time, next task.Status, now time.Time) *time.Time {
	switch {
	case previous != task.StatusDone && next == task.StatusDone:
		return &now
	case previous == task.StatusDone && next != task.StatusDone:
		return nil
	default:
		return previousCompletedAt
	}
}

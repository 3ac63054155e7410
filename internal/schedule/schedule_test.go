package schedule_test

import (
	"testing"
	"time"

	"projectTracker/internal/models/date"
	"projectTracker/internal/models/project"
	"projectTracker/internal/models/task"
	"projectTracker/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrDate(y int, m time.Month, d int) *date.Date {
	v := date.New(y, m, d)
	return &v
}

func TestDeriveTask_Overdue(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		status        task.Status
		deadline      *date.Date
		expectOverdue bool
		expectDays    *int
	}{
		{
			name:          "без дедлайна",
			status:        task.StatusPending,
			deadline:      nil,
			expectOverdue: false,
			expectDays:    nil,
		},
		{
			name:          "дедлайн прошёл, задача в работе",
			status:        task.StatusInProgress,
			deadline:      ptrDate(2024, 1, 1),
			expectOverdue: true,
			expectDays:    intPtr(-152),
		},
		{
			name:          "дедлайн прошёл, задача выполнена",
			status:        task.StatusDone,
			deadline:      ptrDate(2024, 1, 1),
			expectOverdue: false,
			expectDays:    intPtr(-152),
		},
		{
			name:          "дедлайн в будущем",
			status:        task.StatusPending,
			deadline:      ptrDate(2024, 6, 11),
			expectOverdue: false,
			expectDays:    intPtr(10),
		},
		{
			name:          "дедлайн сегодня",
			status:        task.StatusPending,
			deadline:      ptrDate(2024, 6, 1),
			expectOverdue: true,
			expectDays:    intPtr(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := &task.Task{
				ID:        1,
				Status:    tt.status,
				Deadline:  tt.deadline,
				CreatedAt: now.Add(-72 * time.Hour),
			}

			view := schedule.DeriveTask(tk, now)

			assert.Equal(t, tt.expectOverdue, view.IsOverdue)
			assert.Equal(t, tt.expectDays, view.DaysUntilDeadline)
			assert.Equal(t, 3, view.DaysSinceCreated)
			assert.Nil(t, view.DaysToComplete)
		})
	}
}

func TestDeriveTask_DaysToComplete(t *testing.T) {
	created := time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)
	completed := time.Date(2024, 5, 4, 0, 10, 0, 0, time.UTC)
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	view := schedule.DeriveTask(&task.Task{
		Status:      task.StatusDone,
		CreatedAt:   created,
		CompletedAt: &completed,
	}, now)

	require.NotNil(t, view.DaysToComplete)
	// календарные дни, а не полные сутки
	assert.Equal(t, 3, *view.DaysToComplete)
	assert.Equal(t, 9, view.DaysSinceCreated)
}

func TestDeriveProject_Counts(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	p := &project.Project{ID: 1, Status: project.StatusInProgress}

	tasks := []*task.Task{
		{Status: task.StatusDone, CreatedAt: now},
		{Status: task.StatusDone, CreatedAt: now},
		{Status: task.StatusPending, CreatedAt: now},
		{Status: task.StatusInProgress, CreatedAt: now},
		{Status: task.StatusInProgress, CreatedAt: now},
		{Status: task.StatusPending, CreatedAt: now},
	}

	view := schedule.DeriveProject(p, tasks, now)

	assert.Equal(t, 6, view.TotalTasks)
	assert.Equal(t, 2, view.CompletedTasks)
	assert.Equal(t, 2, view.PendingTasks)
	assert.Equal(t, 2, view.InProgressTasks)
	assert.Equal(t, 33.3, view.ProgressPercentage)
	assert.False(t, view.IsOverdue)
	assert.Nil(t, view.DaysUntilDeadline)
}

func TestDeriveProject_Overdue(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		status        project.Status
		expectOverdue bool
	}{
		{"в работе", project.StatusInProgress, true},
		{"ожидает", project.StatusPending, true},
		{"завершён", project.StatusCompleted, false},
		{"произвольный статус", project.Status("active"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &project.Project{Status: tt.status, Deadline: ptrDate(2024, 5, 30)}
			view := schedule.DeriveProject(p, nil, now)

			assert.Equal(t, tt.expectOverdue, view.IsOverdue)
			require.NotNil(t, view.DaysUntilDeadline)
			assert.Equal(t, -2, *view.DaysUntilDeadline)
			assert.Equal(t, float64(0), view.ProgressPercentage)
		})
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		completed, total int
		expected         float64
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{1, 8, 12.5},
		{7, 7, 100},
	}

	for _, tt := range tests {
		got := schedule.Progress(tt.completed, tt.total)
		assert.Equal(t, tt.expected, got)
		assert.GreaterOrEqual(t, got, float64(0))
		assert.LessOrEqual(t, got, float64(100))
	}
}

func intPtr(v int) *int {
	return &v
}

package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"projectTracker/internal/clock"
	"projectTracker/internal/repository/inmemory"
	"projectTracker/internal/service"
	"projectTracker/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

type failingSource struct {
	err error
}

func (f failingSource) ListTasks(ctx context.Context, filter service.TaskFilter) ([]service.TaskDetails, error) {
	return nil, f.err
}

func (f failingSource) ListProjects(ctx context.Context) ([]service.ProjectDetails, error) {
	return nil, f.err
}

func seed(t *testing.T) *service.Service {
	t.Helper()
	ctx := context.Background()
	svc := service.New(inmemory.NewStorage(), clock.NewFixed(testNow))

	owner, err := svc.CreateUser(ctx, service.CreateUserInput{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	late, err := svc.CreateProject(ctx, service.CreateProjectInput{
		Title: "Late", Description: "d", Deadline: "2024-05-01", CreatedBy: owner.ID,
	})
	require.NoError(t, err)
	_, err = svc.CreateProject(ctx, service.CreateProjectInput{
		Title: "Future", Description: "d", Deadline: "2024-12-01", CreatedBy: owner.ID,
	})
	require.NoError(t, err)

	for _, in := range []service.CreateTaskInput{
		{Title: "overdue", Deadline: "2024-01-01", Status: "in_progress"},
		{Title: "done in past", Deadline: "2024-01-01", Status: "done"},
		{Title: "today", Deadline: "2024-06-01"},
		{Title: "no deadline"},
	} {
		in.ProjectID = late.Project.ID
		in.CreatedBy = owner.ID
		_, err := svc.CreateTask(ctx, in)
		require.NoError(t, err)
	}
	return svc
}

func TestOverdueWorker_Check(t *testing.T) {
	w := worker.NewOverdueWorker(seed(t), nil)

	report, err := w.Check(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, report.CheckedTasks)
	// дедлайн сегодня уже наступил: просрочен с начала дня
	assert.Equal(t, 2, report.OverdueTasks)
	assert.Equal(t, []int64{1, 3}, report.OverdueTaskIDs)
	assert.Equal(t, 2, report.CheckedProjects)
	assert.Equal(t, 1, report.OverdueProjects)
}

func TestOverdueWorker_CheckError(t *testing.T) {
	w := worker.NewOverdueWorker(failingSource{err: errors.New("store down")}, nil)

	_, err := w.Check(context.Background())
	assert.ErrorContains(t, err, "store down")
}

func TestNewOverdueWorker_Interval(t *testing.T) {
	assert.Equal(t, 5*time.Minute, worker.NewOverdueWorker(nil, nil).Interval())

	zero := time.Duration(0)
	assert.Equal(t, 5*time.Minute, worker.NewOverdueWorker(nil, &zero).Interval())

	custom := 10 * time.Second
	assert.Equal(t, custom, worker.NewOverdueWorker(nil, &custom).Interval())
}

func TestOverdueWorker_StopsOnCancel(t *testing.T) {
	interval := 10 * time.Millisecond
	w := worker.NewOverdueWorker(seed(t), &interval)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("воркер не остановился после отмены контекста")
	}
}

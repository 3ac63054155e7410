package inmemory_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"projectTracker/internal/models/date"
	"projectTracker/internal/models/optional"
	"projectTracker/internal/models/project"
	"projectTracker/internal/models/task"
	"projectTracker/internal/models/user"
	"projectTracker/internal/repository"
	"projectTracker/internal/repository/inmemory"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

// TestStorage_HealthCheck тестирует проверку здоровья
func TestStorage_HealthCheck(t *testing.T) {
	storage := inmemory.NewStorage()
	assert.NoError(t, storage.HealthCheck(context.Background()))
}

// TestStorage_Users тестирует CRUD пользователей
func TestStorage_Users(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()

	alice := &user.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, storage.CreateUser(ctx, alice))
	assert.Equal(t, int64(1), alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	// email уникален без учёта регистра
	err := storage.CreateUser(ctx, &user.User{Name: "Alice 2", Email: "ALICE@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	bob := &user.User{Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, storage.CreateUser(ctx, bob))
	assert.Equal(t, int64(2), bob.ID)

	name := "Robert"
	updated, err := storage.UpdateUser(ctx, bob.ID, user.Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, "bob@example.com", updated.Email)

	email := "alice@example.com"
	_, err = storage.UpdateUser(ctx, bob.ID, user.Patch{Email: &email})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	// свой email можно сохранить повторно
	_, err = storage.UpdateUser(ctx, alice.ID, user.Patch{Email: &email})
	assert.NoError(t, err)

	_, err = storage.UpdateUser(ctx, 42, user.Patch{Name: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	users, err := storage.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "Robert", users[1].Name)

	require.NoError(t, storage.DeleteUser(ctx, alice.ID))
	_, err = storage.GetUser(ctx, alice.ID)
	assert.Equal(t, repository.ErrNotFound, err)
	assert.Equal(t, repository.ErrNotFound, storage.DeleteUser(ctx, alice.ID))
}

// TestStorage_Projects тестирует CRUD проектов
func TestStorage_Projects(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()

	deadline := date.New(2024, 7, 1)
	p := &project.Project{Title: "Website", Description: "d", Status: project.StatusPending, Deadline: &deadline, CreatedBy: 1, CreatedAt: createdAt}
	require.NoError(t, storage.CreateProject(ctx, p))
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, createdAt, p.CreatedAt)

	status := project.StatusCompleted
	updated, err := storage.UpdateProject(ctx, p.ID, project.Patch{Status: &status, Deadline: optional.Null[date.Date]()})
	require.NoError(t, err)
	assert.Equal(t, project.StatusCompleted, updated.Status)
	assert.Nil(t, updated.Deadline)
	assert.Equal(t, "Website", updated.Title)

	retrieved, err := storage.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, retrieved)

	require.NoError(t, storage.DeleteProject(ctx, p.ID))
	_, err = storage.GetProject(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestStorage_Tasks тестирует CRUD задач
func TestStorage_Tasks(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()

	assignee := int64(2)
	tk := &task.Task{
		Title:      "Layout",
		Status:     task.StatusPending,
		Priority:   task.PriorityHigh,
		ProjectID:  1,
		AssignedTo: &assignee,
		CreatedBy:  1,
		CreatedAt:  createdAt,
	}
	require.NoError(t, storage.CreateTask(ctx, tk))
	assert.Equal(t, int64(1), tk.ID)

	done := task.StatusDone
	completedAt := createdAt.Add(time.Hour)
	updated, err := storage.UpdateTask(ctx, tk.ID, task.Patch{
		Status:      &done,
		AssignedTo:  optional.Null[int64](),
		CompletedAt: optional.Of(completedAt),
	})
	require.NoError(t, err)
	assert.Equal(t, task.StatusDone, updated.Status)
	assert.Nil(t, updated.AssignedTo)
	assert.Equal(t, completedAt, *updated.CompletedAt)
	assert.Equal(t, task.PriorityHigh, updated.Priority)

	// изменение возвращённой копии не меняет хранилище
	updated.Title = "changed"
	retrieved, err := storage.GetTask(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Layout", retrieved.Title)

	_, err = storage.UpdateTask(ctx, 99, task.Patch{Status: &done})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, storage.DeleteTask(ctx, tk.ID))
	tasks, err := storage.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.ErrorIs(t, storage.DeleteTask(ctx, tk.ID), repository.ErrNotFound)
}

// TestStorage_NextID тестирует выдачу id как max+1
func TestStorage_NextID(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()

	for i := 0; i < 3; i++ {
		require.NoError(t, storage.CreateTask(ctx, &task.Task{Title: fmt.Sprintf("Task %d", i)}))
	}
	require.NoError(t, storage.DeleteTask(ctx, 2))

	next := &task.Task{Title: "next"}
	require.NoError(t, storage.CreateTask(ctx, next))
	assert.Equal(t, int64(4), next.ID)

	require.NoError(t, storage.DeleteTask(ctx, 4))
	require.NoError(t, storage.DeleteTask(ctx, 3))

	again := &task.Task{Title: "again"}
	require.NoError(t, storage.CreateTask(ctx, again))
	assert.Equal(t, int64(2), again.ID)
}

// TestStorage_ConcurrentAccess тестирует конкурентный доступ
func TestStorage_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()
	taskCount := 100
	goroutines := 10

	var wg sync.WaitGroup
	errors := make(chan error, taskCount)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := 0; j < taskCount/goroutines; j++ {
				if err := storage.CreateTask(ctx, &task.Task{Title: fmt.Sprintf("Task %d-%d", workerID, j)}); err != nil {
					errors <- err
				}
			}
		}(i)
	}
	wg.Wait()
	close(errors)

	for err := range errors {
		assert.NoError(t, err)
	}

	tasks, err := storage.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, taskCount)

	seen := make(map[int64]bool)
	for _, tk := range tasks {
		assert.False(t, seen[tk.ID], "duplicate id %d", tk.ID)
		seen[tk.ID] = true
	}
}

// TestPersistentStorage_RoundTrip тестирует сохранение и загрузку снапшота
func TestPersistentStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()

	storage, err := inmemory.NewPersistentStorage(fs, "data")
	require.NoError(t, err)

	u := &user.User{Name: "Alice", Email: "alice@example.com", CreatedAt: createdAt}
	require.NoError(t, storage.CreateUser(ctx, u))

	deadline := date.New(2024, 6, 15)
	p := &project.Project{Title: "Website", Description: "d", Status: project.StatusPending, Deadline: &deadline, CreatedBy: u.ID, CreatedAt: createdAt}
	require.NoError(t, storage.CreateProject(ctx, p))

	completedAt := createdAt.Add(48 * time.Hour)
	tk := &task.Task{
		Title: "Layout", Status: task.StatusDone, Priority: task.PriorityLow,
		Deadline: &deadline, ProjectID: p.ID, CreatedBy: u.ID, CreatedAt: createdAt, CompletedAt: &completedAt,
	}
	require.NoError(t, storage.CreateTask(ctx, tk))

	for _, name := range []string{"users.json", "projects.json", "tasks.json"} {
		exists, err := afero.Exists(fs, filepath.Join("data", name))
		require.NoError(t, err)
		assert.True(t, exists, name)
	}

	reloaded, err := inmemory.NewPersistentStorage(fs, "data")
	require.NoError(t, err)

	gotUser, err := reloaded.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", gotUser.Email)
	assert.True(t, createdAt.Equal(gotUser.CreatedAt))

	gotProject, err := reloaded.GetProject(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, gotProject.Deadline)
	assert.Equal(t, deadline, *gotProject.Deadline)

	gotTask, err := reloaded.GetTask(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusDone, gotTask.Status)
	require.NotNil(t, gotTask.CompletedAt)
	assert.True(t, completedAt.Equal(*gotTask.CompletedAt))

	// id продолжаются после загрузки
	next := &task.Task{Title: "next"}
	require.NoError(t, reloaded.CreateTask(ctx, next))
	assert.Equal(t, int64(2), next.ID)
}

// TestPersistentStorage_Errors тестирует битые снапшоты
func TestPersistentStorage_Errors(t *testing.T) {
	t.Run("пустой каталог", func(t *testing.T) {
		storage, err := inmemory.NewPersistentStorage(afero.NewMemMapFs(), "empty")
		require.NoError(t, err)

		users, err := storage.ListUsers(context.Background())
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("битый json", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "data/tasks.json", []byte("{not json"), 0o644))

		_, err := inmemory.NewPersistentStorage(fs, "data")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tasks.json")
	})

	t.Run("запись без id", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "data/users.json", []byte(`[{"name":"X","email":"x@example.com"}]`), 0o644))

		_, err := inmemory.NewPersistentStorage(fs, "data")
		assert.Error(t, err)
	})

	t.Run("каталог недоступен для записи", func(t *testing.T) {
		_, err := inmemory.NewPersistentStorage(afero.NewReadOnlyFs(afero.NewMemMapFs()), "data")
		assert.Error(t, err)
	})
}

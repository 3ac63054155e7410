package service_test

import (
	"context"
	"testing"
	"time"

	"projectTracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_CreateUser(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		input         service.CreateUserInput
		expectedEmail string
		expectedCode  string
	}{
		{
			name:          "email нормализуется",
			input:         service.CreateUserInput{Name: " João ", Email: " Joao@Email.com "},
			expectedEmail: "joao@email.com",
		},
		{
			name:         "пустое имя",
			input:        service.CreateUserInput{Name: "  ", Email: "x@example.com"},
			expectedCode: service.CodeMissingField,
		},
		{
			name:         "пустой email",
			input:        service.CreateUserInput{Name: "X", Email: "   "},
			expectedCode: service.CodeMissingField,
		},
		{
			name:         "кривой email",
			input:        service.CreateUserInput{Name: "X", Email: "not-an-email"},
			expectedCode: service.CodeInvalidEmail,
		},
		{
			name:         "email занят с другим регистром",
			input:        service.CreateUserInput{Name: "Alice 2", Email: "ALICE@example.com"},
			expectedCode: service.CodeDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			u, err := f.svc.CreateUser(ctx, tt.input)

			if tt.expectedCode != "" {
				busErr, ok := service.AsBusinessError(err)
				require.True(t, ok, "Expected BusinessError")
				assert.Equal(t, tt.expectedCode, busErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedEmail, u.Email)
			assert.Equal(t, "João", u.Name)
			assert.Equal(t, int64(3), u.ID)
			assert.Equal(t, testNow, u.CreatedAt)
		})
	}
}

func TestService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("свой email не считается дубликатом", func(t *testing.T) {
		u, err := f.svc.UpdateUser(ctx, f.alice.ID, service.UpdateUserInput{
			Name:  strPtr("Alice Smith"),
			Email: strPtr("Alice@Example.com"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Alice Smith", u.Name)
		assert.Equal(t, "alice@example.com", u.Email)
	})

	t.Run("чужой email", func(t *testing.T) {
		_, err := f.svc.UpdateUser(ctx, f.alice.ID, service.UpdateUserInput{Email: strPtr("bob@example.com")})
		assert.True(t, service.HasCode(err, service.CodeDuplicateEmail))
	})

	t.Run("только имя", func(t *testing.T) {
		u, err := f.svc.UpdateUser(ctx, f.bob.ID, service.UpdateUserInput{Name: strPtr("Robert")})
		require.NoError(t, err)
		assert.Equal(t, "Robert", u.Name)
		assert.Equal(t, "bob@example.com", u.Email)
	})

	t.Run("пустое имя", func(t *testing.T) {
		_, err := f.svc.UpdateUser(ctx, f.bob.ID, service.UpdateUserInput{Name: strPtr("")})
		assert.True(t, service.HasCode(err, service.CodeMissingField))
	})

	t.Run("нет пользователя", func(t *testing.T) {
		_, err := f.svc.UpdateUser(ctx, 100, service.UpdateUserInput{Name: strPtr("X")})
		assert.True(t, service.HasCode(err, service.CodeNotFound))
	})
}

func TestService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("есть проект и задачи - конфликт с количествами", func(t *testing.T) {
		f := newFixture(t)
		f.createTask(t, service.CreateTaskInput{Title: "one"})
		f.createTask(t, service.CreateTaskInput{Title: "two", AssignedTo: int64Ptr(f.alice.ID)})
		f.createTask(t, service.CreateTaskInput{Title: "three", CreatedBy: f.bob.ID, AssignedTo: int64Ptr(f.alice.ID)})

		_, err := f.svc.DeleteUser(ctx, f.alice.ID)

		busErr, ok := service.AsBusinessError(err)
		require.True(t, ok)
		assert.Equal(t, service.CodeConflict, busErr.Code)
		assert.Equal(t, 1, busErr.Details["projects"])
		assert.Equal(t, 3, busErr.Details["tasks"])
		assert.Contains(t, busErr.Message, "Проекты: 1, Задачи: 3")

		_, err = f.svc.GetUser(ctx, f.alice.ID)
		assert.NoError(t, err)
	})

	t.Run("только назначенная задача тоже мешает", func(t *testing.T) {
		f := newFixture(t)
		f.createTask(t, service.CreateTaskInput{Title: "for bob", AssignedTo: int64Ptr(f.bob.ID)})

		_, err := f.svc.DeleteUser(ctx, f.bob.ID)
		assert.True(t, service.HasCode(err, service.CodeConflict))

		ok, usage, err := f.svc.CanDeleteUser(ctx, f.bob.ID)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, service.Usage{Projects: 0, TasksAssigned: 1, TasksCreated: 0, Tasks: 1}, usage)
	})

	t.Run("без связей удаляется", func(t *testing.T) {
		f := newFixture(t)

		deleted, err := f.svc.DeleteUser(ctx, f.bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bob", deleted.Name)

		_, err = f.svc.GetUser(ctx, f.bob.ID)
		assert.True(t, service.HasCode(err, service.CodeNotFound))
	})

	t.Run("после удаления связей удаляется", func(t *testing.T) {
		f := newFixture(t)
		created := f.createTask(t, service.CreateTaskInput{Title: "tmp", AssignedTo: int64Ptr(f.bob.ID)})

		_, err := f.svc.DeleteUser(ctx, f.bob.ID)
		require.True(t, service.HasCode(err, service.CodeConflict))

		_, err = f.svc.DeleteTask(ctx, created.Task.ID)
		require.NoError(t, err)

		_, err = f.svc.DeleteUser(ctx, f.bob.ID)
		assert.NoError(t, err)
	})

	t.Run("нет пользователя", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.DeleteUser(ctx, 55)
		assert.True(t, service.HasCode(err, service.CodeNotFound))
	})
}

func TestService_ListUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.CreateUser(ctx, service.CreateUserInput{Name: "Aaron", Email: "aaron@example.com"})
	require.NoError(t, err)
	f.createTask(t, service.CreateTaskInput{Title: "t", CreatedBy: f.bob.ID, AssignedTo: int64Ptr(f.alice.ID)})

	users, err := f.svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	assert.Equal(t, "Aaron", users[0].User.Name)
	assert.Equal(t, "Alice", users[1].User.Name)
	assert.Equal(t, "Bob", users[2].User.Name)

	assert.Equal(t, service.Usage{}, users[0].Usage)
	assert.Equal(t, service.Usage{Projects: 1, TasksAssigned: 1, Tasks: 1}, users[1].Usage)
	assert.Equal(t, service.Usage{TasksCreated: 1, Tasks: 1}, users[2].Usage)
}

func TestService_GetUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.clock.Advance(time.Hour)
	newer, err := f.svc.CreateProject(ctx, service.CreateProjectInput{Title: "Newer", Description: "d", CreatedBy: f.alice.ID})
	require.NoError(t, err)

	f.createTask(t, service.CreateTaskInput{Title: "no deadline", AssignedTo: int64Ptr(f.alice.ID)})
	f.createTask(t, service.CreateTaskInput{Title: "late", Deadline: "2024-08-01", AssignedTo: int64Ptr(f.alice.ID)})
	f.createTask(t, service.CreateTaskInput{Title: "soon", Deadline: "2024-06-10", AssignedTo: int64Ptr(f.alice.ID), ProjectID: newer.Project.ID})
	f.createTask(t, service.CreateTaskInput{Title: "bob's", AssignedTo: int64Ptr(f.bob.ID)})

	details, err := f.svc.GetUser(ctx, f.alice.ID)
	require.NoError(t, err)

	assert.Equal(t, "Alice", details.User.Name)
	require.Len(t, details.Projects, 2)
	assert.Equal(t, "Newer", details.Projects[0].Title)
	assert.Equal(t, "Website", details.Projects[1].Title)

	require.Len(t, details.AssignedTasks, 3)
	assert.Equal(t, "soon", details.AssignedTasks[0].Task.Title)
	assert.Equal(t, "Newer", details.AssignedTasks[0].ProjectTitle)
	assert.Equal(t, "late", details.AssignedTasks[1].Task.Title)
	assert.Equal(t, "no deadline", details.AssignedTasks[2].Task.Title)
	assert.Equal(t, "Website", details.AssignedTasks[2].ProjectTitle)

	assert.Equal(t, 2, details.Usage.Projects)
	assert.Equal(t, 3, details.Usage.TasksAssigned)
	assert.Equal(t, 4, details.Usage.TasksCreated)
	assert.Equal(t, 4, details.Usage.Tasks)

	_, err = f.svc.GetUser(ctx, 404)
	assert.True(t, service.HasCode(err, service.CodeNotFound))
}

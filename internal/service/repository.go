package service

import (
	"context"

	"projectTracker/internal/models/project"
	"projectTracker/internal/models/task"
	"projectTracker/internal/models/user"
)

// Хранилище записей. List* отдают записи в порядке вставки,
// Create* присваивает id = max+1, Get/Update/Delete возвращают
// repository.ErrNotFound для отсутствующего id.

type UserRepository interface {
	ListUsers(ctx context.Context) ([]*user.User, error)
	GetUser(ctx context.Context, id int64) (*user.User, error)
	CreateUser(ctx context.Context, u *user.User) error
	UpdateUser(ctx context.Context, id int64, patch user.Patch) (*user.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]*project.Project, error)
	GetProject(ctx context.Context, id int64) (*project.Project, error)
	CreateProject(ctx context.Context, p *project.Project) error
	UpdateProject(ctx context.Context, id int64, patch project.Patch) (*project.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

type TaskRepository interface {
	ListTasks(ctx context.Context) ([]*task.Task, error)
	GetTask(ctx context.Context, id int64) (*task.Task, error)
	CreateTask(ctx context.Context, t *task.Task) error
	UpdateTask(ctx context.Context, id int64, patch task.Patch) (*task.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type Store interface {
	UserRepository
	ProjectRepository
	TaskRepository
	HealthCheck(ctx context.Context) error
}

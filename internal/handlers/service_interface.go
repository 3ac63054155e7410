package handlers

import (
	"context"

	"projectTracker/internal/models/project"
	"projectTracker/internal/models/user"
	"projectTracker/internal/service"
)

type TrackerService interface {
	HealthCheck(ctx context.Context) error

	ListUsers(ctx context.Context) ([]service.UserSummary, error)
	GetUser(ctx context.Context, id int64) (*service.UserDetails, error)
	CreateUser(ctx context.Context, in service.CreateUserInput) (*user.User, error)
	UpdateUser(ctx context.Context, id int64, in service.UpdateUserInput) (*user.User, error)
	DeleteUser(ctx context.Context, id int64) (*user.User, error)

	ListProjects(ctx context.Context) ([]service.ProjectDetails, error)
	GetProject(ctx context.Context, id int64) (*service.ProjectDetails, error)
	CreateProject(ctx context.Context, in service.CreateProjectInput) (*service.ProjectDetails, error)
	UpdateProject(ctx context.Context, id int64, in service.UpdateProjectInput) (*service.ProjectDetails, error)
	DeleteProject(ctx context.Context, id int64) (*project.Project, error)

	ListTasks(ctx context.Context, filter service.TaskFilter) ([]service.TaskDetails, error)
	GetTask(ctx context.Context, id int64) (*service.TaskDetails, error)
	CreateTask(ctx context.Context, in service.CreateTaskInput) (*service.TaskDetails, error)
	UpdateTask(ctx context.Context, id int64, in service.UpdateTaskInput) (*service.TaskDetails, error)
	DeleteTask(ctx context.Context, id int64) (*service.TaskDetails, error)
}

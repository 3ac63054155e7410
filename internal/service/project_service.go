package service

import (
	"context"
	"fmt"
	"time"

	"projectTracker/internal/logger"
	"projectTracker/internal/models/optional"
	"projectTracker/internal/models/project"
	"projectTracker/internal/models/task"
	"projectTracker/internal/schedule"

	"go.uber.org/zap"
)

type CreateProjectInput struct {
	Title       string
	Description string
	Deadline    string
	Status      string
	CreatedBy   int64
}

type UpdateProjectInput struct {
	Title       *string
	Description *string
	Deadline    optional.Field[string]
	Status      *string
}

func (s *Service) ListProjects(ctx context.Context) ([]ProjectDetails, error) {
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение проектов: %w", err)
	}
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	r, err := s.loadRefs(ctx)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	res := make([]ProjectDetails, len(projects))
	for i, p := range projects {
		res[i] = s.projectDetails(p, tasks, r, now)
	}
	return res, nil
}

func (s *Service) GetProject(ctx context.Context, id int64) (*ProjectDetails, error) {
	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, notFound(err, ResourceProject, id, "получение проекта")
	}
	return s.describeProject(ctx, p)
}

func (s *Service) CreateProject(ctx context.Context, in CreateProjectInput) (*ProjectDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.validateNewProject(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("создание проекта: %w", err)
	}

	logger.Info("Service: Проект создан",
		zap.Int64("project_id", p.ID),
		zap.Int64("created_by", p.CreatedBy))
	return s.describeProject(ctx, p)
}

func (s *Service) validateNewProject(ctx context.Context, in CreateProjectInput) (*project.Project, error) {
	title, err := requireText("title", in.Title)
	if err != nil {
		return nil, err
	}
	description, err := requireText("description", in.Description)
	if err != nil {
		return nil, err
	}
	if in.CreatedBy <= 0 {
		return nil, NewMissingField("created_by")
	}
	if _, err := s.store.GetUser(ctx, in.CreatedBy); err != nil {
		return nil, reference(err, ResourceUser, "created_by", in.CreatedBy)
	}
	deadline, err := ParseDeadline("deadline", in.Deadline)
	if err != nil {
		return nil, err
	}

	status := project.StatusPending
	if in.Status != "" {
		status = project.Status(in.Status)
	}

	return &project.Project{
		Title:       title,
		Description: description,
		Deadline:    deadline,
		Status:      status,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   s.now(),
	}, nil
}

func (s *Service) UpdateProject(ctx context.Context, id int64, in UpdateProjectInput) (*ProjectDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetProject(ctx, id); err != nil {
		return nil, notFound(err, ResourceProject, id, "получение проекта")
	}

	var patch project.Patch
	var err error
	if patch.Title, err = requireTextPatch("title", in.Title); err != nil {
		return nil, err
	}
	if patch.Description, err = requireTextPatch("description", in.Description); err != nil {
		return nil, err
	}
	if patch.Deadline, err = parseDeadlinePatch("deadline", in.Deadline); err != nil {
		return nil, err
	}
	if in.Status != nil {
		if *in.Status == "" {
			return nil, NewMissingField("status")
		}
		status := project.Status(*in.Status)
		patch.Status = &status
	}

	updated, err := s.store.UpdateProject(ctx, id, patch)
	if err != nil {
		return nil, notFound(err, ResourceProject, id, "обновление проекта")
	}
	return s.describeProject(ctx, updated)
}

// DeleteProject удаляет проект без проверок, его задачи остаются
func (s *Service) DeleteProject(ctx context.Context, id int64) (*project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, notFound(err, ResourceProject, id, "получение проекта")
	}
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return nil, notFound(err, ResourceProject, id, "удаление проекта")
	}

	logger.Info("Service: Проект удалён", zap.Int64("project_id", id))
	return p, nil
}

func (s *Service) describeProject(ctx context.Context, p *project.Project) (*ProjectDetails, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	r, err := s.loadRefs(ctx)
	if err != nil {
		return nil, err
	}
	details := s.projectDetails(p, tasks, r, s.Now())
	return &details, nil
}

func (s *Service) projectDetails(p *project.Project, tasks []*task.Task, r *refs, now time.Time) ProjectDetails {
	own := FilterTasks(tasks, TaskFilter{ProjectID: &p.ID})
	return ProjectDetails{
		ProjectView: schedule.DeriveProject(p, own, now),
		Creator:     r.users[p.CreatedBy],
	}
}

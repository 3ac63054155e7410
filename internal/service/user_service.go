package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"projectTracker/internal/logger"
	"projectTracker/internal/models/project"
	"projectTracker/internal/models/task"
	"projectTracker/internal/models/user"
	repo "projectTracker/internal/repository"

	"go.uber.org/zap"
)

type CreateUserInput struct {
	Name  string
	Email string
}

type UpdateUserInput struct {
	Name  *string
	Email *string
}

type UserSummary struct {
	User  *user.User
	Usage Usage
}

type AssignedTask struct {
	Task         *task.Task
	ProjectTitle string
}

type UserDetails struct {
	User          *user.User
	Usage         Usage
	Projects      []*project.Project
	AssignedTasks []AssignedTask
}

// ListUsers возвращает пользователей по имени вместе с числом связанных записей
func (s *Service) ListUsers(ctx context.Context) ([]UserSummary, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение пользователей: %w", err)
	}
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение проектов: %w", err)
	}
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	slices.SortStableFunc(users, func(a, b *user.User) int {
		return strings.Compare(a.Name, b.Name)
	})

	res := make([]UserSummary, len(users))
	for i, u := range users {
		res[i] = UserSummary{User: u, Usage: CountUsage(u.ID, projects, tasks)}
	}
	return res, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*UserDetails, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Пользователь не найден", zap.Int64("target_id", id))
		}
		return nil, notFound(err, ResourceUser, id, "получение пользователя")
	}

	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение проектов: %w", err)
	}
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	details := &UserDetails{
		User:          u,
		Usage:         CountUsage(id, projects, tasks),
		Projects:      []*project.Project{},
		AssignedTasks: []AssignedTask{},
	}

	titles := make(map[int64]string, len(projects))
	for _, p := range projects {
		titles[p.ID] = p.Title
		if p.CreatedBy == id {
			details.Projects = append(details.Projects, p)
		}
	}
	// новые проекты первыми
	slices.SortStableFunc(details.Projects, func(a, b *project.Project) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	assigned := FilterTasks(tasks, TaskFilter{AssignedTo: &id})
	slices.SortStableFunc(assigned, compareDeadlines)
	for _, t := range assigned {
		details.AssignedTasks = append(details.AssignedTasks, AssignedTask{Task: t, ProjectTitle: titles[t.ProjectID]})
	}

	return details, nil
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := requireText("name", in.Name)
	if err != nil {
		return nil, err
	}
	email, err := ValidateEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	u := &user.User{
		Name:      name,
		Email:     email,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, NewDuplicateEmail(email)
		}
		return nil, fmt.Errorf("создание пользователя: %w", err)
	}

	logger.Info("Service: Пользователь создан", zap.Int64("user_id", u.ID))
	return u, nil
}

func (s *Service) UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetUser(ctx, id); err != nil {
		return nil, notFound(err, ResourceUser, id, "получение пользователя")
	}

	var patch user.Patch
	var err error
	if patch.Name, err = requireTextPatch("name", in.Name); err != nil {
		return nil, err
	}
	if in.Email != nil {
		email, err := ValidateEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if err := s.ensureEmailFree(ctx, email, id); err != nil {
			return nil, err
		}
		patch.Email = &email
	}

	updated, err := s.store.UpdateUser(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, NewDuplicateEmail(*patch.Email)
		}
		return nil, notFound(err, ResourceUser, id, "обновление пользователя")
	}
	return updated, nil
}

// DeleteUser удаляет пользователя без проектов и задач, иначе CONFLICT с количествами
func (s *Service) DeleteUser(ctx context.Context, id int64) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err, ResourceUser, id, "получение пользователя")
	}

	ok, usage, err := s.CanDeleteUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Warn("Service: Удаление пользователя запрещено",
			zap.Int64("user_id", id),
			zap.Int("projects", usage.Projects),
			zap.Int("tasks", usage.Tasks))
		return nil, NewConflict(id, usage)
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		return nil, notFound(err, ResourceUser, id, "удаление пользователя")
	}
	return u, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string, exceptID int64) error {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("получение пользователей: %w", err)
	}
	for _, u := range users {
		if u.ID != exceptID && NormalizeEmail(u.Email) == email {
			return NewDuplicateEmail(email)
		}
	}
	return nil
}

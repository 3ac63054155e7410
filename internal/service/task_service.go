package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"projectTracker/internal/logger"
	"projectTracker/internal/models/optional"
	"projectTracker/internal/models/task"
	repo "projectTracker/internal/repository"
	"projectTracker/internal/schedule"

	"go.uber.org/zap"
)

type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	Deadline    string
	ProjectID   int64
	AssignedTo  *int64
	CreatedBy   int64
}

// UpdateTaskInput: nil / не переданное поле сохраняет прежнее значение,
// null (или пустое значение) для deadline и assigned_to очищает поле
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Deadline    optional.Field[string]
	AssignedTo  optional.Field[int64]
}

// ListTasks применяет фильтр и порядок сортировки списка задач
func (s *Service) ListTasks(ctx context.Context, filter TaskFilter) ([]TaskDetails, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	r, err := s.loadRefs(ctx)
	if err != nil {
		return nil, err
	}

	tasks = FilterTasks(tasks, filter)
	SortTasks(tasks)

	now := s.Now()
	res := make([]TaskDetails, len(tasks))
	for i, t := range tasks {
		res[i] = taskDetails(t, r, now)
	}
	return res, nil
}

func (s *Service) GetTask(ctx context.Context, id int64) (*TaskDetails, error) {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.Int64("target_id", id))
		}
		return nil, notFound(err, ResourceTask, id, "получение задачи")
	}
	return s.describeTask(ctx, t)
}

func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*TaskDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.validateNewTask(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана",
		zap.Int64("task_id", t.ID),
		zap.Int64("project_id", t.ProjectID))
	return s.describeTask(ctx, t)
}

// validateNewTask проверяет ввод в порядке: обязательные поля, проект,
// статус проекта, автор, исполнитель, приоритет, статус, дедлайн.
func (s *Service) validateNewTask(ctx context.Context, in CreateTaskInput) (*task.Task, error) {
	title, err := requireText("title", in.Title)
	if err != nil {
		return nil, err
	}
	if in.ProjectID <= 0 {
		return nil, NewMissingField("project_id")
	}
	if in.CreatedBy <= 0 {
		return nil, NewMissingField("created_by")
	}

	p, err := s.store.GetProject(ctx, in.ProjectID)
	if err != nil {
		return nil, reference(err, ResourceProject, "project_id", in.ProjectID)
	}
	if p.Status.Terminal() {
		return nil, NewTerminalProject(p.ID, string(p.Status))
	}

	if _, err := s.store.GetUser(ctx, in.CreatedBy); err != nil {
		return nil, reference(err, ResourceUser, "created_by", in.CreatedBy)
	}

	var assignedTo *int64
	if in.AssignedTo != nil && *in.AssignedTo != 0 {
		if _, err := s.store.GetUser(ctx, *in.AssignedTo); err != nil {
			return nil, reference(err, ResourceUser, "assigned_to", *in.AssignedTo)
		}
		id := *in.AssignedTo
		assignedTo = &id
	}

	priority, err := ParsePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	status, err := ParseTaskStatus(in.Status)
	if err != nil {
		return nil, err
	}
	deadline, err := ParseDeadline("deadline", in.Deadline)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &task.Task{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      status,
		Priority:    priority,
		Deadline:    deadline,
		ProjectID:   p.ID,
		AssignedTo:  assignedTo,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
		CompletedAt: ApplyStatusTransition("", nil, status, now),
	}, nil
}

func (s *Service) UpdateTask(ctx context.Context, id int64, in UpdateTaskInput) (*TaskDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, notFound(err, ResourceTask, id, "получение задачи")
	}

	patch, err := s.validateTaskPatch(ctx, existing, in)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateTask(ctx, id, patch)
	if err != nil {
		return nil, notFound(err, ResourceTask, id, "обновление задачи")
	}

	if existing.Status != updated.Status {
		logger.Info("Service: Статус задачи изменён",
			zap.Int64("task_id", id),
			zap.String("from", string(existing.Status)),
			zap.String("to", string(updated.Status)))
	}
	return s.describeTask(ctx, updated)
}

// validateTaskPatch собирает patch и всегда пересчитывает completed_at
// по итоговому статусу (если статус не передан - по прежнему).
func (s *Service) validateTaskPatch(ctx context.Context, existing *task.Task, in UpdateTaskInput) (task.Patch, error) {
	var patch task.Patch
	var err error

	if patch.Title, err = requireTextPatch("title", in.Title); err != nil {
		return task.Patch{}, err
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		patch.Description = &description
	}

	if in.AssignedTo.Set {
		if in.AssignedTo.Value == nil || *in.AssignedTo.Value == 0 {
			patch.AssignedTo = optional.Null[int64]()
		} else {
			assignee := *in.AssignedTo.Value
			if _, err := s.store.GetUser(ctx, assignee); err != nil {
				return task.Patch{}, reference(err, ResourceUser, "assigned_to", assignee)
			}
			patch.AssignedTo = optional.Of(assignee)
		}
	}

	if in.Priority != nil {
		priority, err := ParsePriority(*in.Priority)
		if err != nil {
			return task.Patch{}, err
		}
		patch.Priority = &priority
	}

	status := existing.Status
	if in.Status != nil {
		if status, err = ParseTaskStatus(*in.Status); err != nil {
			return task.Patch{}, err
		}
		patch.Status = &status
	}

	if patch.Deadline, err = parseDeadlinePatch("deadline", in.Deadline); err != nil {
		return task.Patch{}, err
	}

	completedAt := ApplyStatusTransition(existing.Status, existing.CompletedAt, status, s.now())
	if completedAt == nil {
		patch.CompletedAt = optional.Null[time.Time]()
	} else {
		patch.CompletedAt = optional.Of(*completedAt)
	}

	return patch, nil
}

// DeleteTask удаляет задачу без проверок и возвращает её состояние до удаления
func (s *Service) DeleteTask(ctx context.Context, id int64) (*TaskDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, notFound(err, ResourceTask, id, "получение задачи")
	}
	details, err := s.describeTask(ctx, t)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteTask(ctx, id); err != nil {
		return nil, notFound(err, ResourceTask, id, "удаление задачи")
	}

	logger.Info("Service: Задача удалена", zap.Int64("task_id", id))
	return details, nil
}

func (s *Service) describeTask(ctx context.Context, t *task.Task) (*TaskDetails, error) {
	r, err := s.loadRefs(ctx)
	if err != nil {
		return nil, err
	}
	details := taskDetails(t, r, s.Now())
	return &details, nil
}

func taskDetails(t *task.Task, r *refs, now time.Time) TaskDetails {
	return TaskDetails{
		TaskView: schedule.DeriveTask(t, now),
		Project:  r.projects[t.ProjectID],
		Assignee: r.user(t.AssignedTo),
		Creator:  r.users[t.CreatedBy],
	}
}

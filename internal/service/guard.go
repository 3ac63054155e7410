package service

import (
	"context"
	"fmt"

	"projectTracker/internal/models/project"
	"projectTracker/internal/models/task"
)

// Usage - сколько записей ссылается на пользователя
type Usage struct {
	Projects      int `json:"total_projects"`
	TasksAssigned int `json:"total_tasks_assigned"`
	TasksCreated  int `json:"total_tasks_created"`
	// задачи, где пользователь исполнитель или автор, каждая считается один раз
	Tasks int `json:"-"`
}

func (u Usage) CanDelete() bool {
	return u.Projects == 0 && u.Tasks == 0
}

func CountUsage(userID int64, projects []*project.Project, tasks []*task.Task) Usage {
	var usage Usage
	for _, p := range projects {
		if p.CreatedBy == userID {
			usage.Projects++
		}
	}
	for _, t := range tasks {
		assigned := t.AssignedTo != nil && *t.AssignedTo == userID
		created := t.CreatedBy == userID
		if assigned {
			usage.TasksAssigned++
		}
		if created {
			usage.TasksCreated++
		}
		if assigned || created {
			usage.Tasks++
		}
	}
	return usage
}

// CanDeleteUser - пользователя можно удалить, только если на него никто не ссылается
func (s *Service) CanDeleteUser(ctx context.Context, id int64) (bool, Usage, error) {
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return false, Usage{}, fmt.Errorf("получение проектов: %w", err)
	}
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return false, Usage{}, fmt.Errorf("получение задач: %w", err)
	}

	usage := CountUsage(id, projects, tasks)
	return usage.CanDelete(), usage, nil
}

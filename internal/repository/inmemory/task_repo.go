package inmemory

import (
	"context"
	"time"

	"projectTracker/internal/models/task"
	repo "projectTracker/internal/repository"
)

func (s *Storage) ListTasks(ctx context.Context) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, t := range s.tasks.all() {
		res = append(res, t.Clone())
	}
	return res, nil
}

func (s *Storage) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	t, ok := s.tasks.get(id)
	if !ok {
		return nil, repo.ErrNotFound
	}
	return t.Clone(), nil
}

func (s *Storage) CreateTask(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if taskToCreate.CreatedAt.IsZero() {
		taskToCreate.CreatedAt = time.Now()
	}
	taskToCreate.ID = s.tasks.nextID()
	s.tasks.insert(taskToCreate.ID, taskToCreate.Clone())

	return s.saveTasks()
}

func (s *Storage) UpdateTask(ctx context.Context, id int64, patch task.Patch) (*task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.tasks.get(id)
	if !ok {
		return nil, repo.ErrNotFound
	}

	updated := existing.Clone()
	patch.Apply(updated)
	s.tasks.insert(id, updated)

	if err := s.saveTasks(); err != nil {
		return nil, err
	}
	return updated.Clone(), nil
}

func (s *Storage) DeleteTask(ctx context.Context, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.tasks.remove(id) {
		return repo.ErrNotFound
	}
	return s.saveTasks()
}

func (s *Storage) saveTasks() error {
	if s.snapshot == nil {
		return nil
	}
	return save(s.snapshot, tasksFile, s.tasks)
}

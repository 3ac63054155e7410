package inmemory

import (
	"context"
	"fmt"
	"sync"

	"projectTracker/internal/logger"
	"projectTracker/internal/models/project"
	"projectTracker/internal/models/task"
	"projectTracker/internal/models/user"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Storage - хранилище пользователей, проектов и задач в памяти.
// Если задан snapshot, каждая коллекция после изменения пишется в свой JSON файл.
type Storage struct {
	mtx      *sync.RWMutex
	users    *table[user.User]
	projects *table[project.Project]
	tasks    *table[task.Task]
	snapshot *snapshot
}

func NewStorage() *Storage {
	return &Storage{
		mtx:      &sync.RWMutex{},
		users:    newTable[user.User](),
		projects: newTable[project.Project](),
		tasks:    newTable[task.Task](),
	}
}

// NewPersistentStorage загружает users.json, projects.json и tasks.json из dir
// (отсутствующий файл - пустая коллекция) и сохраняет их после каждой записи.
func NewPersistentStorage(fs afero.Fs, dir string) (*Storage, error) {
	s := NewStorage()
	s.snapshot = &snapshot{fs: fs, dir: dir}

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("создание каталога данных: %w", err)
	}
	if err := load(s.snapshot, usersFile, s.users, func(u *user.User) int64 { return u.ID }); err != nil {
		return nil, err
	}
	if err := load(s.snapshot, projectsFile, s.projects, func(p *project.Project) int64 { return p.ID }); err != nil {
		return nil, err
	}
	if err := load(s.snapshot, tasksFile, s.tasks, func(t *task.Task) int64 { return t.ID }); err != nil {
		return nil, err
	}

	logger.Info("Repository: Данные загружены из снапшота",
		zap.String("dir", dir),
		zap.Int("users", s.users.len()),
		zap.Int("projects", s.projects.len()),
		zap.Int("tasks", s.tasks.len()))

	return s, nil
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: Хранилище в памяти доступно")
	return nil
}

// Close ничего не освобождает, нужен для единого интерфейса с postgres
func (s *Storage) Close() {}

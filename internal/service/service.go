package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"projectTracker/internal/clock"
	"projectTracker/internal/logger"
	"projectTracker/internal/models/project"
	"projectTracker/internal/models/user"
	repo "projectTracker/internal/repository"
	"projectTracker/internal/schedule"
)

// здесь происходит проверка ошибок бизнес-логики

// Service обслуживает пользователей, проекты и задачи поверх одного хранилища.
// Все изменяющие операции выполняются по одной: проверка -> запись не
// перемежаются с другими записями. Чтение не блокируется.
type Service struct {
	store Store
	clock clock.Clock
	mu    sync.Mutex
}

func New(store Store, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Service{
		store: store,
		clock: clk,
	}
}

func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.store.HealthCheck(ctx); err != nil {
		logger.Error("Service: Хранилище недоступно", err)
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

// now - текущий момент с точностью до секунды, как он и будет показан клиенту
func (s *Service) now() time.Time {
	return s.clock.Now().Truncate(time.Second)
}

// Now - момент, на который считаются производные поля
func (s *Service) Now() time.Time {
	return s.clock.Now()
}

// notFound превращает repository.ErrNotFound в бизнес-ошибку, прочее оборачивает
func notFound(err error, resource Resource, id int64, op string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFound(resource, id)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// reference - ошибка для ссылки из тела запроса на несуществующую запись
func reference(err error, resource Resource, field string, id int64) error {
	if errors.Is(err, repo.ErrNotFound) {
		return NewReferenceNotFound(resource, field, id)
	}
	return fmt.Errorf("проверка поля %s: %w", field, err)
}

// refs - справочники для обогащения ответов именами и названиями
type refs struct {
	users    map[int64]*user.User
	projects map[int64]*project.Project
}

func (s *Service) loadRefs(ctx context.Context) (*refs, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение пользователей: %w", err)
	}
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение проектов: %w", err)
	}

	r := &refs{
		users:    make(map[int64]*user.User, len(users)),
		projects: make(map[int64]*project.Project, len(projects)),
	}
	for _, u := range users {
		r.users[u.ID] = u
	}
	for _, p := range projects {
		r.projects[p.ID] = p
	}
	return r, nil
}

func (r *refs) user(id *int64) *user.User {
	if id == nil {
		return nil
	}
	return r.users[*id]
}

// TaskDetails - задача с производными полями и связанными записями
// (nil, если связанная запись уже удалена)
type TaskDetails struct {
	schedule.TaskView
	Project  *project.Project
	Assignee *user.User
	Creator  *user.User
}

type ProjectDetails struct {
	schedule.ProjectView
	Creator *user.User
}

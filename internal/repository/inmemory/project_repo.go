package inmemory

import (
	"context"
	"time"

	"projectTracker/internal/models/project"
	repo "projectTracker/internal/repository"
)

func (s *Storage) ListProjects(ctx context.Context) ([]*project.Project, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*project.Project{}
	for _, p := range s.projects.all() {
		res = append(res, p.Clone())
	}
	return res, nil
}

func (s *Storage) GetProject(ctx context.Context, id int64) (*project.Project, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	p, ok := s.projects.get(id)
	if !ok {
		return nil, repo.ErrNotFound
	}
	return p.Clone(), nil
}

func (s *Storage) CreateProject(ctx context.Context, projectToCreate *project.Project) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if projectToCreate.CreatedAt.IsZero() {
		projectToCreate.CreatedAt = time.Now()
	}
	projectToCreate.ID = s.projects.nextID()
	s.projects.insert(projectToCreate.ID, projectToCreate.Clone())

	return s.saveProjects()
}

func (s *Storage) UpdateProject(ctx context.Context, id int64, patch project.Patch) (*project.Project, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.projects.get(id)
	if !ok {
		return nil, repo.ErrNotFound
	}

	updated := existing.Clone()
	patch.Apply(updated)
	s.projects.insert(id, updated)

	if err := s.saveProjects(); err != nil {
		return nil, err
	}
	return updated.Clone(), nil
}

// задачи проекта не трогаются
func (s *Storage) DeleteProject(ctx context.Context, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.projects.remove(id) {
		return repo.ErrNotFound
	}
	return s.saveProjects()
}

func (s *Storage) saveProjects() error {
	if s.snapshot == nil {
		return nil
	}
	return save(s.snapshot, projectsFile, s.projects)
}

package inmemory

import (
	"context"
	"strings"
	"time"

	"projectTracker/internal/models/user"
	repo "projectTracker/internal/repository"
)

func (s *Storage) ListUsers(ctx context.Context) ([]*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*user.User{}
	for _, u := range s.users.all() {
		res = append(res, u.Clone())
	}
	return res, nil
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	u, ok := s.users.get(id)
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u.Clone(), nil
}

func (s *Storage) CreateUser(ctx context.Context, userToCreate *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.emailTaken(userToCreate.Email, 0) {
		return repo.ErrDuplicate
	}

	if userToCreate.CreatedAt.IsZero() {
		userToCreate.CreatedAt = time.Now()
	}
	userToCreate.ID = s.users.nextID()
	s.users.insert(userToCreate.ID, userToCreate.Clone())

	return s.saveUsers()
}

func (s *Storage) UpdateUser(ctx context.Context, id int64, patch user.Patch) (*user.User, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.users.get(id)
	if !ok {
		return nil, repo.ErrNotFound
	}

	updated := existing.Clone()
	patch.Apply(updated)

	if s.emailTaken(updated.Email, id) {
		return nil, repo.ErrDuplicate
	}

	s.users.insert(id, updated)
	if err := s.saveUsers(); err != nil {
		return nil, err
	}
	return updated.Clone(), nil
}

func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.users.remove(id) {
		return repo.ErrNotFound
	}
	return s.saveUsers()
}

// вызывается под блокировкой
func (s *Storage) emailTaken(email string, exceptID int64) bool {
	for _, u := range s.users.all() {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (s *Storage) saveUsers() error {
	if s.snapshot == nil {
		return nil
	}
	return save(s.snapshot, usersFile, s.users)
}

package inmemory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	usersFile    = "users.json"
	projectsFile = "projects.json"
	tasksFile    = "tasks.json"
)

type snapshot struct {
	fs  afero.Fs
	dir string
}

func load[T any](s *snapshot, name string, t *table[T], idOf func(*T) int64) error {
	path := filepath.Join(s.dir, name)

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("чтение %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}

	var rows []*T
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("разбор %s: %w", name, err)
	}

	for _, row := range rows {
		id := idOf(row)
		if id <= 0 {
			return fmt.Errorf("разбор %s: запись без id", name)
		}
		t.insert(id, row)
	}
	return nil
}

func save[T any](s *snapshot, name string, t *table[T]) error {
	data, err := json.MarshalIndent(t.all(), "", "    ")
	if err != nil {
		return fmt.Errorf("сериализация %s: %w", name, err)
	}

	// запись через временный файл
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("запись %s: %w", name, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("запись %s: %w", name, err)
	}
	return nil
}

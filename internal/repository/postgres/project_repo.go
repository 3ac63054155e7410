package postgres

import (
	"context"
	"time"

	"projectTracker/internal/models/project"

	"github.com/jackc/pgx/v5"
)

const projectColumns = `id, title, description, deadline, status, created_by, created_at`

func scanProject(row pgx.Row) (*project.Project, error) {
	p := &project.Project{}
	var deadline *time.Time
	err := row.Scan(&p.ID, &p.Title, &p.Description, &deadline, &p.Status, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Deadline = dateOf(deadline)
	return p, nil
}

func (s *Storage) ListProjects(ctx context.Context) ([]*project.Project, error) {
	defer observe("ListProjects", time.Now())

	rows, err := s.pool.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id`)
	if err != nil {
		return nil, translate("получение проектов", err)
	}
	projects, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*project.Project, error) {
		return scanProject(row)
	})
	if err != nil {
		return nil, translate("получение проектов", err)
	}
	return projects, nil
}

func (s *Storage) GetProject(ctx context.Context, id int64) (*project.Project, error) {
	defer observe("GetProject", time.Now())

	p, err := scanProject(s.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		return nil, translate("получение проекта", err)
	}
	return p, nil
}

func (s *Storage) CreateProject(ctx context.Context, projectToCreate *project.Project) error {
	defer observe("CreateProject", time.Now())

	if projectToCreate.CreatedAt.IsZero() {
		projectToCreate.CreatedAt = time.Now()
	}

	id, err := s.insertWithNextID(ctx, "добавление проекта", "projects",
		`INSERT INTO projects (id, title, description, deadline, status, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		projectToCreate.Title,
		projectToCreate.Description,
		dateArg(projectToCreate.Deadline),
		projectToCreate.Status,
		projectToCreate.CreatedBy,
		projectToCreate.CreatedAt,
	)
	if err != nil {
		return err
	}
	projectToCreate.ID = id
	return nil
}

func (s *Storage) UpdateProject(ctx context.Context, id int64, patch project.Patch) (*project.Project, error) {
	defer observe("UpdateProject", time.Now())

	var updated *project.Project
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		existing, err := scanProject(tx.QueryRow(ctx,
			`SELECT `+projectColumns+` FROM projects WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}

		patch.Apply(existing)
		_, err = tx.Exec(ctx,
			`UPDATE projects
				SET title = $1,
				description = $2,
				deadline = $3,
				status = $4
			WHERE id = $5`,
			existing.Title,
			existing.Description,
			dateArg(existing.Deadline),
			existing.Status,
			id,
		)
		updated = existing
		return err
	})
	if err != nil {
		return nil, translate("обновление проекта", err)
	}
	return updated, nil
}

func (s *Storage) DeleteProject(ctx context.Context, id int64) error {
	defer observe("DeleteProject", time.Now())
	return s.execAffected(ctx, "удаление проекта", `DELETE FROM projects WHERE id = $1`, id)
}

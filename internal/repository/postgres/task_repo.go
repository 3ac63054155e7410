package postgres

import (
	"context"
	"time"

	"projectTracker/internal/models/task"

	"github.com/jackc/pgx/v5"
)

const taskColumns = `id, title, description, status, priority, deadline,
	project_id, assigned_to, created_by, created_at, completed_at`

func scanTask(row pgx.Row) (*task.Task, error) {
	t := &task.Task{}
	var deadline *time.Time
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&deadline,
		&t.ProjectID,
		&t.AssignedTo,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Deadline = dateOf(deadline)
	return t, nil
}

func (s *Storage) ListTasks(ctx context.Context) ([]*task.Task, error) {
	defer observe("ListTasks", time.Now())

	rows, err := s.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		return nil, translate("получение задач", err)
	}
	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*task.Task, error) {
		return scanTask(row)
	})
	if err != nil {
		return nil, translate("получение задач", err)
	}
	return tasks, nil
}

func (s *Storage) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	defer observe("GetTask", time.Now())

	t, err := scanTask(s.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		return nil, translate("получение задачи", err)
	}
	return t, nil
}

func (s *Storage) CreateTask(ctx context.Context, taskToCreate *task.Task) error {
	defer observe("CreateTask", time.Now())

	if taskToCreate.CreatedAt.IsZero() {
		taskToCreate.CreatedAt = time.Now()
	}

	id, err := s.insertWithNextID(ctx, "добавление задачи", "tasks",
		`INSERT INTO tasks
				(id, title, description, status, priority, deadline,
				project_id, assigned_to, created_by, created_at, completed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		taskToCreate.Title,
		taskToCreate.Description,
		taskToCreate.Status,
		taskToCreate.Priority,
		dateArg(taskToCreate.Deadline),
		taskToCreate.ProjectID,
		taskToCreate.AssignedTo,
		taskToCreate.CreatedBy,
		taskToCreate.CreatedAt,
		taskToCreate.CompletedAt,
	)
	if err != nil {
		return err
	}
	taskToCreate.ID = id
	return nil
}

func (s *Storage) UpdateTask(ctx context.Context, id int64, patch task.Patch) (*task.Task, error) {
	defer observe("UpdateTask", time.Now())

	var updated *task.Task
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		existing, err := scanTask(tx.QueryRow(ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}

		patch.Apply(existing)
		_, err = tx.Exec(ctx,
			`UPDATE tasks
				SET title = $1,
				description = $2,
				status = $3,
				priority = $4,
				deadline = $5,
				assigned_to = $6,
				completed_at = $7
			WHERE id = $8`,
			existing.Title,
			existing.Description,
			existing.Status,
			existing.Priority,
			dateArg(existing.Deadline),
			existing.AssignedTo,
			existing.CompletedAt,
			id,
		)
		updated = existing
		return err
	})
	if err != nil {
		return nil, translate("обновление задачи", err)
	}
	return updated, nil
}

func (s *Storage) DeleteTask(ctx context.Context, id int64) error {
	defer observe("DeleteTask", time.Now())
	return s.execAffected(ctx, "удаление задачи", `DELETE FROM tasks WHERE id = $1`, id)
}

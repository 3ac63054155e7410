package postgres

import (
	"context"
	"time"

	"projectTracker/internal/models/user"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, created_at`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*user.User, error) {
	defer observe("ListUsers", time.Now())

	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, translate("получение пользователей", err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*user.User, error) {
		return scanUser(row)
	})
	if err != nil {
		return nil, translate("получение пользователей", err)
	}
	return users, nil
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*user.User, error) {
	defer observe("GetUser", time.Now())

	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, translate("получение пользователя", err)
	}
	return u, nil
}

func (s *Storage) CreateUser(ctx context.Context, userToCreate *user.User) error {
	defer observe("CreateUser", time.Now())

	if userToCreate.CreatedAt.IsZero() {
		userToCreate.CreatedAt = time.Now()
	}

	id, err := s.insertWithNextID(ctx, "добавление пользователя", "users",
		`INSERT INTO users (id, name, email, created_at)
			VALUES ($1, $2, $3, $4)`,
		userToCreate.Name,
		userToCreate.Email,
		userToCreate.CreatedAt,
	)
	if err != nil {
		return err
	}
	userToCreate.ID = id
	return nil
}

func (s *Storage) UpdateUser(ctx context.Context, id int64, patch user.Patch) (*user.User, error) {
	defer observe("UpdateUser", time.Now())

	var updated *user.User
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		existing, err := scanUser(tx.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}

		patch.Apply(existing)
		_, err = tx.Exec(ctx, `UPDATE users SET name = $1, email = $2 WHERE id = $3`,
			existing.Name, existing.Email, id)
		updated = existing
		return err
	})
	if err != nil {
		return nil, translate("обновление пользователя", err)
	}
	return updated, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	defer observe("DeleteUser", time.Now())
	return s.execAffected(ctx, "удаление пользователя", `DELETE FROM users WHERE id = $1`, id)
}

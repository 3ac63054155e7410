package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"projectTracker/internal/config"
	"projectTracker/internal/logger"
	"projectTracker/internal/models/date"
	repo "projectTracker/internal/repository"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	slowQuery        = 100 * time.Millisecond
	uniqueViolation  = "23505"
	maxConnectDelay  = 5 * time.Second
	firstConnectWait = 200 * time.Millisecond
)

type Storage struct {
	pool *pgxpool.Pool
}

// New открывает пул и проверяет соединение. Пока база поднимается,
// попытки повторяются с экспоненциальной задержкой (cfg.ConnectAttempts раз).
func New(ctx context.Context, cfg config.DatabaseConfig) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConnections)
	}
	if cfg.MinConnections > 0 {
		poolConfig.MinConns = int32(cfg.MinConnections)
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	attempts := cfg.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = firstConnectWait
	policy.MaxInterval = maxConnectDelay

	var pool *pgxpool.Pool
	connect := func() error {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return fmt.Errorf("создание пула: %w", err)
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return fmt.Errorf("проверка соединения ping: %w", err)
		}
		pool = p
		return nil
	}
	notify := func(err error, wait time.Duration) {
		logger.Warn("Repository: PostgreSQL недоступен, повтор",
			zap.Error(err),
			zap.Duration("wait", wait))
	}

	err = backoff.RetryNotify(connect,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(attempts-1)), ctx),
		notify)
	if err != nil {
		logger.Error("Repository: Не удалось подключиться к PostgreSQL", err, zap.Int("attempts", attempts))
		return nil, err
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	err := s.pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	logger.Info("Repository: Соединение стабильно")
	return nil
}

// observe предупреждает о медленных операциях, вызывается через defer
func observe(op string, start time.Time) {
	if elapsed := time.Since(start); elapsed > slowQuery {
		logger.Warn("Repository: Медленный запрос",
			zap.String("op", op),
			zap.Duration("ms", elapsed))
	}
}

// translate приводит ошибки pgx к ошибкам пакета repository
func translate(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repo.ErrDuplicate
	}
	logger.Error("Repository: "+op, err)
	return fmt.Errorf("%s: %w", op, err)
}

// execAffected выполняет запрос и возвращает ErrNotFound, если строк не затронуто
func (s *Storage) execAffected(ctx context.Context, op, query string, args ...any) error {
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return translate(op, err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// insertWithNextID вставляет строку с id = max(id)+1 под блокировкой таблицы.
// id передаётся в query первым параметром.
func (s *Storage) insertWithNextID(ctx context.Context, op, table, query string, args ...any) (int64, error) {
	var id int64
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "LOCK TABLE "+table+" IN EXCLUSIVE MODE"); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, "SELECT COALESCE(MAX(id), 0) + 1 FROM "+table).Scan(&id); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, query, append([]any{id}, args...)...)
		return err
	})
	if err != nil {
		return 0, translate(op, err)
	}
	return id, nil
}

func dateArg(d *date.Date) any {
	if d == nil {
		return nil
	}
	return d.In(time.UTC)
}

func dateOf(t *time.Time) *date.Date {
	if t == nil {
		return nil
	}
	d := date.Of(*t)
	return &d
}

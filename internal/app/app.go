package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"projectTracker/internal/config"
	"projectTracker/internal/handlers"
	"projectTracker/internal/logger"
	"projectTracker/internal/repository/inmemory"
	"projectTracker/internal/repository/postgres"
	"projectTracker/internal/service"
	"projectTracker/internal/worker"

	"github.com/spf13/afero"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// store - хранилище, которое приложение закрывает при остановке
type store interface {
	service.Store
	Close()
}

type App struct {
	config    *config.Config
	fs        afero.Fs
	server    *http.Server
	handler   http.Handler
	store     store
	service   *service.Service
	worker    *worker.OverdueWorker
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		fs:        afero.NewOsFs(),
		shutdowns: make([]func(), 0),
	}
}

// WithFs подменяет файловую систему для снапшотов (тесты)
func (a *App) WithFs(fs afero.Fs) *App {
	a.fs = fs
	return a
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	a.store = st
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Закрытие хранилища...")
		st.Close()
	})

	a.service = service.New(st, nil)

	if a.config.Repository.Seed {
		if err := Seed(ctx, a.service); err != nil {
			return fmt.Errorf("заполнение примерами: %w", err)
		}
	}

	router := handlers.NewRouter(handlers.NewHandler(a.service), handlers.RouterConfig{
		RateLimit:   a.config.Server.RateLimit,
		CORSOrigins: a.config.Server.CORSOrigins,
	})
	a.handler = otelhttp.NewHandler(router, "project-tracker")

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.handler,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	if !a.config.Worker.Disabled {
		interval := a.config.Worker.Interval
		a.worker = worker.NewOverdueWorker(a.service, &interval)
	}

	logger.Info("Приложение инициализировано",
		zap.String("repository", a.config.Repository.Type),
		zap.String("addr", a.server.Addr),
		zap.Bool("worker", a.worker != nil))
	return nil
}

func (a *App) openStore(ctx context.Context) (store, error) {
	switch a.config.Repository.Type {
	case config.RepositoryPostgres:
		st, err := postgres.New(ctx, a.config.Database)
		if err != nil {
			return nil, fmt.Errorf("подключение к базе: %w", err)
		}
		if !a.config.Database.SkipMigrations {
			if err := postgres.Migrate(a.config.Database.URL); err != nil {
				st.Close()
				return nil, err
			}
		}
		return st, nil

	default:
		if a.config.Repository.DataDir == "" {
			logger.Info("Repository: Хранилище в памяти без сохранения на диск")
			return inmemory.NewStorage(), nil
		}
		st, err := inmemory.NewPersistentStorage(a.fs, a.config.Repository.DataDir)
		if err != nil {
			return nil, fmt.Errorf("загрузка снапшотов: %w", err)
		}
		return st, nil
	}
}

// Handler - готовый HTTP обработчик со всеми middleware
func (a *App) Handler() http.Handler {
	return a.handler
}

func (a *App) Service() *service.Service {
	return a.service
}

// Run блокируется до отмены ctx или ошибки сервера, затем останавливает всё
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP: Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http сервер: %w", err)
		}
		return nil
	})

	if a.worker != nil {
		g.Go(func() error {
			a.worker.Start(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("HTTP: Остановка сервера")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("остановка сервера: %w", err)
		}
		return nil
	})

	err := g.Wait()
	a.Shutdown()
	return err
}

// Shutdown выполняет функции остановки в обратном порядке
func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}

package worker

import (
	"context"
	"fmt"
	"time"

	"projectTracker/internal/logger"
	"projectTracker/internal/service"

	"go.uber.org/zap"
)

const defaultInterval = 5 * time.Minute

// OverdueSource - то, откуда воркер берёт задачи и проекты с производными полями
type OverdueSource interface {
	ListTasks(ctx context.Context, filter service.TaskFilter) ([]service.TaskDetails, error)
	ListProjects(ctx context.Context) ([]service.ProjectDetails, error)
}

// OverdueWorker периодически пересчитывает просрочку и пишет сводку в лог.
// Просрочка нигде не сохраняется.
type OverdueWorker struct {
	source   OverdueSource
	interval time.Duration
}

type Report struct {
	CheckedTasks    int
	OverdueTasks    int
	CheckedProjects int
	OverdueProjects int
	OverdueTaskIDs  []int64
}

func NewOverdueWorker(source OverdueSource, interval *time.Duration) *OverdueWorker {
	var intervalToSet time.Duration
	if interval == nil || *interval <= 0 {
		intervalToSet = defaultInterval
	} else {
		intervalToSet = *interval
	}
	return &OverdueWorker{
		source:   source,
		interval: intervalToSet,
	}
}

func (w *OverdueWorker) Interval() time.Duration {
	return w.interval
}

func (w *OverdueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("Worker: Фоновая проверка просрочки запущена", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ticker.C:
			logger.Info("Worker: Фоновая проверка просрочки", zap.Time("started_at", time.Now()))
			if _, err := w.Check(ctx); err != nil {
				logger.Warn("Worker: Ошибка проверки", zap.Error(err))
			}
		case <-ctx.Done():
			logger.Info("Worker: Фоновая проверка останавливается")
			return
		}
	}
}

func (w *OverdueWorker) Check(ctx context.Context) (Report, error) {
	start := time.Now()
	var report Report

	tasks, err := w.source.ListTasks(ctx, service.TaskFilter{})
	if err != nil {
		return report, fmt.Errorf("получение задач: %w", err)
	}
	projects, err := w.source.ListProjects(ctx)
	if err != nil {
		return report, fmt.Errorf("получение проектов: %w", err)
	}

	report.CheckedTasks = len(tasks)
	for _, t := range tasks {
		if t.IsOverdue {
			report.OverdueTasks++
			report.OverdueTaskIDs = append(report.OverdueTaskIDs, t.Task.ID)
		}
	}

	report.CheckedProjects = len(projects)
	for _, p := range projects {
		if p.IsOverdue {
			report.OverdueProjects++
		}
	}

	logger.Info(
		"Worker: Завершение проверки просрочки",
		zap.Duration("ms", time.Since(start)),
		zap.Int("checked_tasks", report.CheckedTasks),
		zap.Int("overdue_tasks", report.OverdueTasks),
		zap.Int("checked_projects", report.CheckedProjects),
		zap.Int("overdue_projects", report.OverdueProjects),
		zap.Int64s("overdue_task_ids", report.OverdueTaskIDs),
	)
	return report, nil
}

package app

import (
	"context"
	"fmt"

	"projectTracker/internal/logger"
	"projectTracker/internal/service"

	"go.uber.org/zap"
)

// Seed заполняет пустое хранилище примерами через сервис, так что
// действуют все обычные проверки. Непустое хранилище не трогается.
func Seed(ctx context.Context, svc *service.Service) error {
	users, err := svc.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		logger.Info("Seed: Хранилище не пустое, примеры не добавляются", zap.Int("users", len(users)))
		return nil
	}

	ids := make([]int64, 0, 3)
	for _, in := range []service.CreateUserInput{
		{Name: "João Silva", Email: "joao@email.com"},
		{Name: "Maria Santos", Email: "maria@email.com"},
		{Name: "Pedro Oliveira", Email: "pedro@email.com"},
	} {
		u, err := svc.CreateUser(ctx, in)
		if err != nil {
			return fmt.Errorf("пользователь %s: %w", in.Email, err)
		}
		ids = append(ids, u.ID)
	}

	website, err := svc.CreateProject(ctx, service.CreateProjectInput{
		Title:       "Website da Empresa",
		Description: "Desenvolvimento do novo site institucional",
		Deadline:    "2024-03-15",
		Status:      "pending",
		CreatedBy:   ids[0],
	})
	if err != nil {
		return fmt.Errorf("проект: %w", err)
	}
	if _, err := svc.CreateProject(ctx, service.CreateProjectInput{
		Title:       "App Mobile",
		Description: "Aplicativo para gestão de tarefas",
		Deadline:    "2024-04-20",
		Status:      "in_progress",
		CreatedBy:   ids[1],
	}); err != nil {
		return fmt.Errorf("проект: %w", err)
	}

	for _, in := range []service.CreateTaskInput{
		{
			Title:       "Criar layout inicial",
			Description: "Desenvolver o design das páginas principais",
			Status:      "in_progress",
			Priority:    "high",
			Deadline:    "2024-02-15",
			AssignedTo:  &ids[1],
		},
		{
			Title:       "Configurar banco de dados",
			Description: "Estruturar as tabelas e relacionamentos",
			Status:      "done",
			Priority:    "high",
			Deadline:    "2024-02-10",
			AssignedTo:  &ids[0],
		},
	} {
		in.ProjectID = website.Project.ID
		in.CreatedBy = ids[0]
		if _, err := svc.CreateTask(ctx, in); err != nil {
			return fmt.Errorf("задача %q: %w", in.Title, err)
		}
	}

	logger.Info("Seed: Добавлены примеры", zap.Int("users", len(ids)))
	return nil
}

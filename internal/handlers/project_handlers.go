package handlers

import (
	"fmt"
	"net/http"
	"time"

	"projectTracker/internal/handlers/dto"
	"projectTracker/internal/logger"
	"projectTracker/internal/service"

	"go.uber.org/zap"
)

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: Список проектов")

	projects, err := h.Service.ListProjects(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logOut("Проекты получены", start, http.StatusOK, zap.Int("count", len(projects)))
	responseWithSuccess(w, http.StatusOK, dto.FromProjectList(projects), "Проекты получены",
		toPayload("total", len(projects)))
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: Получение проекта")

	id, err := parseID(r)
	if err != nil {
		badRequest(w, r, codeInvalidID, err)
		return
	}

	details, err := h.Service.GetProject(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logOut("Проект получен", start, http.StatusOK, zap.Int64("project_id", id))
	responseWithSuccess(w, http.StatusOK, dto.FromProject(details), "Проект получен")
}

// ListProjectTasks - список задач проекта в общем порядке сортировки задач
func (h *Handler) ListProjectTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: Задачи проекта")

	id, err := parseID(r)
	if err != nil {
		badRequest(w, r, codeInvalidID, err)
		return
	}

	if _, err := h.Service.GetProject(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	tasks, err := h.Service.ListTasks(r.Context(), service.TaskFilter{ProjectID: &id})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logOut("Задачи проекта получены", start, http.StatusOK,
		zap.Int64("project_id", id),
		zap.Int("count", len(tasks)))
	responseWithSuccess(w, http.StatusOK, dto.FromTaskList(tasks), "Задачи проекта получены",
		toPayload("total", len(tasks)),
		toPayload("filters_applied", map[string]any{"project_id": id}))
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: Создание проекта")

	var request dto.CreateProjectRequest
	if err := decodeJSON(r, &request); err != nil {
		badRequest(w, r, codeInvalidJSON, fmt.Errorf("неверное тело запроса: %w", err))
		return
	}

	created, err := h.Service.CreateProject(r.Context(), request.ToInput())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logOut("Проект создан", start, http.StatusCreated, zap.Int64("project_id", created.Project.ID))
	responseWithSuccess(w, http.StatusCreated, dto.FromProject(created), "Проект создан")
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: Обновление проекта")

	id, err := parseID(r)
	if err != nil {
		badRequest(w, r, codeInvalidID, err)
		return
	}

	var request dto.UpdateProjectRequest
	if err := decodeJSON(r, &request); err != nil {
		badRequest(w, r, codeInvalidJSON, fmt.Errorf("неверное тело запроса: %w", err))
		return
	}

	updated, err := h.Service.UpdateProject(r.Context(), id, request.ToInput())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logOut("Проект обновлён", start, http.StatusOK, zap.Int64("project_id", id))
	responseWithSuccess(w, http.StatusOK, dto.FromProject(updated), "Проект обновлён")
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: Удаление проекта")

	id, err := parseID(r)
	if err != nil {
		badRequest(w, r, codeInvalidID, err)
		return
	}

	deleted, err := h.Service.DeleteProject(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logOut("Проект удалён", start, http.StatusOK, zap.Int64("project_id", id))
	responseWithSuccess(w, http.StatusOK, map[string]any{"id": deleted.ID, "title": deleted.Title},
		fmt.Sprintf("Проект '%s' удалён", deleted.Title))
}

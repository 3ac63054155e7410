package handlers

import (
	"fmt"
	"net/http"
	"time"

	"projectTracker/internal/handlers/dto"
	"projectTracker/internal/logger"

	"go.uber.org/zap"
)

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: Список задач")

	filter, applied, err := parseTaskFilter(r.URL.Query())
	if err != nil {
		badRequest(w, r, codeInvalidParameter, err)
		return
	}

	tasks, err := h.Service.ListTasks(r.Context(), filter)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logOut("Задачи получены", start, http.StatusOK,
		zap.Int("count", len(tasks)),
		zap.Any("filters", applied))
	responseWithSuccess(w, http.StatusOK, dto.FromTaskList(tasks), "Задачи получены",
		toPayload("total", len(tasks)),
		toPayload("filters_applied", applied))
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: Получение задачи")

	id, err := parseID(r)
	if err != nil {
		badRequest(w, r, codeInvalidID, err)
		return
	}

	details, err := h.Service.GetTask(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logOut("Задача получена", start, http.StatusOK, zap.Int64("task_id", id))
	responseWithSuccess(w, http.StatusOK, dto.FromTask(details), "Задача получена")
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: Создание задачи")

	var request dto.CreateTaskRequest
	if err := decodeJSON(r, &request); err != nil {
		badRequest(w, r, codeInvalidJSON, fmt.Errorf("неверное тело запроса: %w", err))
		return
	}

	logger.Info("HTTP: Вызов сервиса создания задачи",
		zap.Int64("project_id", request.ProjectID))

	created, err := h.Service.CreateTask(r.Context(), request.ToInput())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logOut("Задача создана", start, http.StatusCreated, zap.Int64("task_id", created.Task.ID))
	responseWithSuccess(w, http.StatusCreated, dto.FromTask(created), "Задача создана")
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: Обновление задачи")

	id, err := parseID(r)
	if err != nil {
		badRequest(w, r, codeInvalidID, err)
		return
	}

	var request dto.UpdateTaskRequest
	if err := decodeJSON(r, &request); err != nil {
		badRequest(w, r, codeInvalidJSON, fmt.Errorf("неверное тело запроса: %w", err))
		return
	}

	updated, err := h.Service.UpdateTask(r.Context(), id, request.ToInput())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logOut("Задача обновлена", start, http.StatusOK,
		zap.Int64("task_id", id),
		zap.String("status", string(updated.Task.Status)))
	responseWithSuccess(w, http.StatusOK, dto.FromTask(updated), "Задача обновлена")
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: Удаление задачи")

	id, err := parseID(r)
	if err != nil {
		badRequest(w, r, codeInvalidID, err)
		return
	}

	deleted, err := h.Service.DeleteTask(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	message := fmt.Sprintf("Задача '%s' удалена", deleted.Task.Title)
	if deleted.Project != nil {
		message = fmt.Sprintf("Задача '%s' удалена из проекта '%s'", deleted.Task.Title, deleted.Project.Title)
	}

	logOut("Задача удалена", start, http.StatusOK, zap.Int64("task_id", id))
	responseWithSuccess(w, http.StatusOK, dto.FromTask(deleted), message)
}

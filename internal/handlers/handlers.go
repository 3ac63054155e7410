package handlers

import (
	"net/http"
	"time"

	"projectTracker/internal/logger"

	"go.uber.org/zap"
)

const (
	apiName    = "Project Tracker API"
	apiVersion = "1.0.0"
	serviceTag = "project-tracker"
)

type Handler struct {
	Service TrackerService
}

func NewHandler(svc TrackerService) *Handler {
	return &Handler{
		Service: svc,
	}
}

// badRequest логирует и отвечает 400 на ошибку разбора запроса
func badRequest(w http.ResponseWriter, r *http.Request, code string, err error) {
	logger.Warn("HTTP: Некорректный запрос",
		zap.String("error_code", code),
		zap.Error(err),
		zap.String("client_ip", r.RemoteAddr))

	responseWithError(w, r, http.StatusBadRequest, code, err.Error(), nil)
}

func logOut(msg string, start time.Time, status int, fields ...zap.Field) {
	fields = append(fields,
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", status))
	logger.Info("HTTP_OUT: "+msg, fields...)
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Index")

	responseWithSuccess(w, http.StatusOK, map[string]any{
		"name":    apiName,
		"version": apiVersion,
		"endpoints": map[string]string{
			"health":        "GET /health",
			"users":         "GET|POST /users, GET|PUT|DELETE /users/{id}",
			"projects":      "GET|POST /projects, GET|PUT|DELETE /projects/{id}",
			"project_tasks": "GET /projects/{id}/tasks",
			"tasks":         "GET|POST /tasks, GET|PUT|DELETE /tasks/{id}",
			"task_filters":  "project_id, assigned_to, status, priority",
		},
	}, "API работает")
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := h.Service.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Сервис недоступен", err)
		responseWithError(w, r, http.StatusServiceUnavailable, codeUnhealthy,
			"сервис недоступен: "+err.Error(),
			map[string]any{"service": serviceTag})
		return
	}

	responseWithSuccess(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   serviceTag,
		"timestamp": time.Now().Format(time.RFC3339),
	}, "Сервис работает")
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	logger.Warn("HTTP: Маршрут не найден",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))

	responseWithError(w, r, http.StatusNotFound, codeRouteNotFound, "маршрут не найден",
		map[string]any{"path": r.URL.Path})
}

func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	logger.Warn("HTTP: Неверный метод",
		zap.String("received", r.Method),
		zap.String("path", r.URL.Path))

	responseWithError(w, r, http.StatusMethodNotAllowed, codeMethodNotAllowed,
		"метод "+r.Method+" не поддерживается",
		map[string]any{"method": r.Method})
}

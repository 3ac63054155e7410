package handlers

import (
	"fmt"
	"net/http"
	"time"

	"projectTracker/internal/handlers/dto"
	"projectTracker/internal/logger"

	"go.uber.org/zap"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: Список пользователей")

	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logOut("Пользователи получены", start, http.StatusOK, zap.Int("count", len(users)))
	responseWithSuccess(w, http.StatusOK, dto.FromUserSummaryList(users), "Пользователи получены",
		toPayload("total", len(users)))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: Получение пользователя")

	id, err := parseID(r)
	if err != nil {
		badRequest(w, r, codeInvalidID, err)
		return
	}

	details, err := h.Service.GetUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logOut("Пользователь получен", start, http.StatusOK, zap.Int64("user_id", id))
	responseWithSuccess(w, http.StatusOK, dto.FromUserDetails(details), "Пользователь получен")
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: Создание пользователя")

	var request dto.CreateUserRequest
	if err := decodeJSON(r, &request); err != nil {
		badRequest(w, r, codeInvalidJSON, fmt.Errorf("неверное тело запроса: %w", err))
		return
	}

	created, err := h.Service.CreateUser(r.Context(), request.ToInput())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logOut("Пользователь создан", start, http.StatusCreated, zap.Int64("user_id", created.ID))
	responseWithSuccess(w, http.StatusCreated, dto.FromUser(created), "Пользователь создан")
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: Обновление пользователя")

	id, err := parseID(r)
	if err != nil {
		badRequest(w, r, codeInvalidID, err)
		return
	}

	var request dto.UpdateUserRequest
	if err := decodeJSON(r, &request); err != nil {
		badRequest(w, r, codeInvalidJSON, fmt.Errorf("неверное тело запроса: %w", err))
		return
	}

	updated, err := h.Service.UpdateUser(r.Context(), id, request.ToInput())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logOut("Пользователь обновлён", start, http.StatusOK, zap.Int64("user_id", id))
	responseWithSuccess(w, http.StatusOK, dto.FromUser(updated), "Пользователь обновлён")
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: Удаление пользователя")

	id, err := parseID(r)
	if err != nil {
		badRequest(w, r, codeInvalidID, err)
		return
	}

	deleted, err := h.Service.DeleteUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logOut("Пользователь удалён", start, http.StatusOK, zap.Int64("user_id", id))
	responseWithSuccess(w, http.StatusOK, dto.FromUser(deleted),
		fmt.Sprintf("Пользователь '%s' удалён", deleted.Name))
}

package handlers

import (
	"net/http"

	"projectTracker/internal/logger"
	"projectTracker/internal/service"

	"go.uber.org/zap"
)

const (
	codeInvalidID        = "INVALID_ID"
	codeInvalidJSON      = "INVALID_JSON"
	codeInvalidParameter = "INVALID_PARAMETER"
	codeRouteNotFound    = "ROUTE_NOT_FOUND"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codeUnhealthy        = "UNHEALTHY"
	codeInternal         = "INTERNAL_ERROR"
)

// handleServiceError отвечает на ошибку сервиса: бизнес-ошибки - 4xx,
// всё остальное - 500 с сообщением исходной ошибки
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if businessErr, ok := service.AsBusinessError(err); ok {
		statusCode := mapBusinessErrorToHTTP(businessErr.Code)

		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("error_code", businessErr.Code),
			zap.String("error", businessErr.Message),
			zap.Int("http_status", statusCode))

		responseWithError(w, r, statusCode, businessErr.Code, businessErr.Message, businessErr.Details)
		return
	}

	logger.Error("HTTP: Ошибка Service", err,
		zap.String("path", r.URL.Path),
		zap.Int("http_status", http.StatusInternalServerError))

	responseWithError(w, r, http.StatusInternalServerError, codeInternal, err.Error(), nil)
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeConflict, service.CodeDuplicateEmail:
		return http.StatusConflict
	case service.CodeMissingField,
		service.CodeInvalidEnum,
		service.CodeInvalidDate,
		service.CodeInvalidEmail,
		service.CodeReferenceNotFound,
		service.CodeTerminalProject:
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

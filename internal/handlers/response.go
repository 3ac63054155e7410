package handlers

import (
	"encoding/json"
	"net/http"

	"projectTracker/internal/logger"
	"projectTracker/internal/middleware"
)

type Payload struct {
	Key     string
	Payload any
}

func toPayload(key string, pl any) Payload {
	return Payload{Key: key, Payload: pl}
}

func toJSON(storage map[string]any, payload Payload) {
	storage[payload.Key] = payload.Payload
}

func responseWithJSON(w http.ResponseWriter, code int, payload ...Payload) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	storage := make(map[string]any)
	for _, pl := range payload {
		toJSON(storage, pl)
	}
	if err := json.NewEncoder(w).Encode(storage); err != nil {
		logger.Error("HTTP: Ошибка записи ответа", err)
	}
}

// responseWithSuccess - конверт {success: true, data, message}, extra добавляет total и т.п.
func responseWithSuccess(w http.ResponseWriter, code int, data any, message string, extra ...Payload) {
	payload := []Payload{
		toPayload("success", true),
		toPayload("data", data),
		toPayload("message", message),
	}
	responseWithJSON(w, code, append(payload, extra...)...)
}

// responseWithError - конверт {success: false, error, code, details}
func responseWithError(w http.ResponseWriter, r *http.Request, code int, errCode, message string, details map[string]any) {
	body := make(map[string]any, len(details)+1)
	for k, v := range details {
		body[k] = v
	}
	body["request_id"] = middleware.GetRequestID(r.Context())

	responseWithJSON(w, code,
		toPayload("success", false),
		toPayload("error", message),
		toPayload("code", errCode),
		toPayload("details", body),
	)
}

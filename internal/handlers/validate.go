package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"projectTracker/internal/models/task"
	"projectTracker/internal/service"

	"github.com/go-chi/chi/v5"
)

const maxBodySize = 1 << 20

var errEmptyBody = errors.New("пустое тело запроса")

// parseID читает {id} из пути: только целое число больше нуля
func parseID(r *http.Request) (int64, error) {
	return parsePositiveInt("id", chi.URLParam(r, "id"))
}

func parsePositiveInt(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s должен быть целым числом, получено %q", name, raw)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s должен быть больше нуля, получено %d", name, id)
	}
	return id, nil
}

// decodeJSON разбирает тело в dst, неизвестные поля считаются ошибкой
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

// parseTaskFilter собирает фильтр списка задач из query-параметров и
// заодно возвращает то, что было применено, для filters_applied
func parseTaskFilter(query url.Values) (service.TaskFilter, map[string]any, error) {
	var filter service.TaskFilter
	applied := make(map[string]any)

	for _, name := range []string{"project_id", "assigned_to"} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		id, err := parsePositiveInt(name, raw)
		if err != nil {
			return filter, nil, err
		}
		if name == "project_id" {
			filter.ProjectID = &id
		} else {
			filter.AssignedTo = &id
		}
		applied[name] = id
	}

	if raw := query.Get("status"); raw != "" {
		status := task.Status(raw)
		filter.Status = &status
		applied["status"] = raw
	}
	if raw := query.Get("priority"); raw != "" {
		priority := task.Priority(raw)
		filter.Priority = &priority
		applied["priority"] = raw
	}

	return filter, applied, nil
}

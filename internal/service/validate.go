package service

import (
	"strings"

	"projectTracker/internal/models/date"
	"projectTracker/internal/models/optional"
	"projectTracker/internal/models/task"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// requireText обрезает пробелы и проверяет, что что-то осталось
func requireText(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", NewMissingField(field)
	}
	return trimmed, nil
}

// requireTextPatch - то же для необязательного поля обновления
func requireTextPatch(field string, value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed, err := requireText(field, *value)
	if err != nil {
		return nil, err
	}
	return &trimmed, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail возвращает email в нижнем регистре без пробелов по краям
func ValidateEmail(email string) (string, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return "", NewMissingField("email")
	}
	if err := validate.Var(normalized, "email"); err != nil {
		return "", NewInvalidEmail(email)
	}
	return normalized, nil
}

// ParsePriority: пустое значение - medium
func ParsePriority(value string) (task.Priority, error) {
	if value == "" {
		return task.PriorityMedium, nil
	}
	p := task.Priority(value)
	if !p.Valid() {
		return "", NewInvalidEnum("priority", value, priorityNames())
	}
	return p, nil
}

// ParseTaskStatus: пустое значение - pending
func ParseTaskStatus(value string) (task.Status, error) {
	if value == "" {
		return task.StatusPending, nil
	}
	s := task.Status(value)
	if !s.Valid() {
		return "", NewInvalidEnum("status", value, statusNames())
	}
	return s, nil
}

// ParseDeadline: пустая строка - дедлайна нет
func ParseDeadline(field, value string) (*date.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := date.Parse(value)
	if err != nil {
		return nil, NewInvalidDate(field, value)
	}
	return &d, nil
}

// parseDeadlinePatch: null или пустая строка очищают дедлайн
func parseDeadlinePatch(field string, value optional.Field[string]) (optional.Field[date.Date], error) {
	if !value.Set {
		return optional.Field[date.Date]{}, nil
	}
	if value.Value == nil || *value.Value == "" {
		return optional.Null[date.Date](), nil
	}
	d, err := ParseDeadline(field, *value.Value)
	if err != nil {
		return optional.Field[date.Date]{}, err
	}
	return optional.Of(*d), nil
}

func priorityNames() []string {
	names := make([]string, len(task.Priorities))
	for i, p := range task.Priorities {
		names[i] = string(p)
	}
	return names
}

func statusNames() []string {
	names := make([]string, len(task.Statuses))
	for i, s := range task.Statuses {
		names[i] = string(s)
	}
	return names
}

package service

import (
	"errors"
	"fmt"
	"strings"
)

const (
	CodeMissingField      = "MISSING_FIELD"
	CodeInvalidEnum       = "INVALID_ENUM"
	CodeInvalidDate       = "INVALID_DATE"
	CodeInvalidEmail      = "INVALID_EMAIL"
	CodeNotFound          = "NOT_FOUND"
	CodeReferenceNotFound = "REFERENCE_NOT_FOUND"
	CodeTerminalProject   = "TERMINAL_PROJECT"
	CodeConflict          = "CONFLICT"
	CodeDuplicateEmail    = "DUPLICATE_EMAIL"
)

type Resource string

const (
	ResourceUser    Resource = "user"
	ResourceProject Resource = "project"
	ResourceTask    Resource = "task"
)

func (r Resource) title() string {
	switch r {
	case ResourceUser:
		return "Пользователь"
	case ResourceProject:
		return "Проект"
	case ResourceTask:
		return "Задача"
	default:
		return string(r)
	}
}

// BusinessError - ожидаемая ошибка бизнес-логики, которую handlers превращают
// в 4xx ответ. Всё остальное считается непредвиденной ошибкой (500).
type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}

	return busErr
}

// AsBusinessError достаёт BusinessError из цепочки обёрток
func AsBusinessError(err error) (*BusinessError, bool) {
	var busErr *BusinessError
	if errors.As(err, &busErr) {
		return busErr, true
	}
	return nil, false
}

func HasCode(err error, code string) bool {
	busErr, ok := AsBusinessError(err)
	return ok && busErr.Code == code
}

func NewMissingField(field string) *BusinessError {
	return NewBusinessError(CodeMissingField,
		fmt.Sprintf("Поле '%s' обязательно", field),
		ToDetail("field", field))
}

func NewInvalidEnum(field, value string, allowed []string) *BusinessError {
	return NewBusinessError(CodeInvalidEnum,
		fmt.Sprintf("Поле '%s' должно быть одним из: %s", field, strings.Join(allowed, ", ")),
		ToDetail("field", field),
		ToDetail("value", value),
		ToDetail("allowed", allowed))
}

func NewInvalidDate(field, value string) *BusinessError {
	return NewBusinessError(CodeInvalidDate,
		fmt.Sprintf("Поле '%s' должно быть датой в формате YYYY-MM-DD", field),
		ToDetail("field", field),
		ToDetail("value", value))
}

func NewInvalidEmail(value string) *BusinessError {
	return NewBusinessError(CodeInvalidEmail,
		"Некорректный email",
		ToDetail("field", "email"),
		ToDetail("value", value))
}

// NewNotFound - не найден объект, к которому обращается запрос
func NewNotFound(resource Resource, id int64) *BusinessError {
	return NewBusinessError(CodeNotFound,
		fmt.Sprintf("%s %d не найден(а)", resource.title(), id),
		ToDetail("resource", resource),
		ToDetail("id", id))
}

// NewReferenceNotFound - в теле запроса указан несуществующий проект или пользователь
func NewReferenceNotFound(resource Resource, field string, id int64) *BusinessError {
	return NewBusinessError(CodeReferenceNotFound,
		fmt.Sprintf("%s %d из поля '%s' не найден(а)", resource.title(), id, field),
		ToDetail("resource", resource),
		ToDetail("field", field),
		ToDetail("id", id))
}

func NewTerminalProject(projectID int64, status string) *BusinessError {
	return NewBusinessError(CodeTerminalProject,
		"Нельзя создавать задачи в завершённых или отменённых проектах",
		ToDetail("project_id", projectID),
		ToDetail("status", status))
}

func NewConflict(userID int64, usage Usage) *BusinessError {
	return NewBusinessError(CodeConflict,
		fmt.Sprintf("Нельзя удалить пользователя: есть связанные проекты или задачи. Проекты: %d, Задачи: %d",
			usage.Projects, usage.Tasks),
		ToDetail("user_id", userID),
		ToDetail("projects", usage.Projects),
		ToDetail("tasks", usage.Tasks))
}

func NewDuplicateEmail(email string) *BusinessError {
	return NewBusinessError(CodeDuplicateEmail,
		"Этот email уже используется",
		ToDetail("email", email))
}

// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы и тела ответов в api слое.
package errors

import (
	"errors"
	"sort"
	"strings"
)

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные (email не найден или пароль не подошёл — снаружи не различаем)
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// Хранилище недоступно или вернуло ошибку драйвера
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// FieldError — ошибка валидации конкретного поля запроса.
//
// Location всегда "body": все поля приходят в JSON теле.
type FieldError struct {
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

// ValidationError — набор ошибок валидации по полям.
//
// Поля отсортированы по Path, чтобы ответ был стабильным.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError собирает ValidationError из map поле -> сообщение.
func NewValidationError(fields map[string]string) *ValidationError {
	paths := make([]string, 0, len(fields))
	for p := range fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	out := make([]FieldError, 0, len(paths))
	for _, p := range paths {
		out = append(out, FieldError{Msg: fields[p], Path: p, Location: "body"})
	}
	return &ValidationError{Fields: out}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Path+": "+f.Msg)
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap позволяет проверять ValidationError через errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

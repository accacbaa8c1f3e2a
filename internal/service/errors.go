package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation входные данные некорректны; конкретика в *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrUserExists отправитель с таким email уже есть.
	ErrUserExists = errors.New("user already exists")
	// ErrNotFound запись о перевале не найдена.
	ErrNotFound = errors.New("record not found")
	// ErrNotEditable запись вышла из статуса new.
	ErrNotEditable = errors.New("editable only while status is new")
	// ErrPersistence сбой хранилища.
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError называет отсутствующее или испорченное поле payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Reason + ": " + e.Field
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func missingField(field string) error {
	return &ValidationError{Field: field, Reason: "missing required field"}
}

func malformedSection(section string) error {
	return &ValidationError{Field: section, Reason: "malformed section"}
}

func invalidValue(field string) error {
	return &ValidationError{Field: field, Reason: "invalid value"}
}

// persistErr оборачивает ошибку хранилища, сохраняя исходную в цепочке.
func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

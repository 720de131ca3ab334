package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation - входные данные отклонены до какой-либо записи
	ErrValidation = errors.New("validation failed")
	// ErrParticipantNotFound - участник не зарегистрирован
	ErrParticipantNotFound = errors.New("participant not found")
	// ErrStoreUnavailable - ошибка чтения или записи в хранилище, запрос можно повторить
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrDuplicatePhone - номер уже занят другой записью (уникальный индекс по phone)
	ErrDuplicatePhone = errors.New("phone already registered")
)

// ValidationError описывает отклоненное поле запроса
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// Is позволяет проверять любую ошибку валидации через errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

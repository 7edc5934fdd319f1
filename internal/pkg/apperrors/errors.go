package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")

	ErrInvalidBody = errors.New("request body was not valid JSON")

	ErrAlreadyExists = errors.New("resource already exists")

	ErrStoreRead = errors.New("customer store read failed")

	ErrStoreWrite = errors.New("customer store write failed")

	ErrMethodNotAllowed = errors.New("method not allowed")

	ErrUnauthorized = errors.New("unauthorized")
)

// Response codes carried in the "code" field of error bodies.
const (
	CodeBadRequest          = "BadRequest"
	CodeDuplicateResource   = "DuplicateResource"
	CodeInternalServerError = "InternalServerError"
	CodeMethodNotAllowed    = "MethodNotAllowed"
	CodeUnauthorized        = "Unauthorized"
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func WrapStoreReadError(cause error, message string) error {
	return &AppError{
		Code:    "STORE_READ",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrStoreRead, cause),
	}
}

func WrapStoreWriteError(cause error, message string) error {
	return &AppError{
		Code:    "STORE_WRITE",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrStoreWrite, cause),
	}
}

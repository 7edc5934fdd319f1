package handler

import (
	"bytes"
	"customer-directory/internal/api/handler/dto"
	"customer-directory/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

const maxBodyBytes = 1 << 20

const (
	msgInvalidBody      = "Request body was not valid JSON"
	msgDuplicateEmail   = "A customer with that email already exists"
	msgStoreReadFailed  = "Error getting customers from file. Check to make sure file exists and contains valid data."
	msgStoreWriteFailed = "Error writing customers to file. Check to make sure file exists and contains valid data."
	msgMethodNotAllowed = "Method not allowed"
	msgUnauthorized     = "Unauthorized"
	msgUnexpected       = "An unexpected error occurred."
)

// decodeJSON decodes the body into v. A body that is itself a JSON string is
// unwrapped once and its contents decoded instead.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("%w: no request body", apperrors.ErrInvalidBody)
	}
	defer r.Body.Close()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidBody, err)
	}

	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '"' {
		var inner string
		if err := json.Unmarshal(body, &inner); err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrInvalidBody, err)
		}
		body = []byte(inner)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidBody, err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"code":"InternalServerError","message":"An unexpected error occurred."}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, code, message := http.StatusInternalServerError, apperrors.CodeInternalServerError, msgUnexpected
	var validationError *apperrors.ValidationError

	switch {
	case errors.Is(err, apperrors.ErrInvalidBody):
		status, code, message = http.StatusBadRequest, apperrors.CodeBadRequest, msgInvalidBody
	case errors.As(err, &validationError):
		status, code, message = http.StatusBadRequest, apperrors.CodeBadRequest, validationError.Message
	case errors.Is(err, apperrors.ErrAlreadyExists):
		status, code, message = http.StatusConflict, apperrors.CodeDuplicateResource, msgDuplicateEmail
	case errors.Is(err, apperrors.ErrStoreWrite):
		message = msgStoreWriteFailed
	case errors.Is(err, apperrors.ErrStoreRead):
		message = msgStoreReadFailed
	case errors.Is(err, apperrors.ErrMethodNotAllowed):
		status, code, message = http.StatusMethodNotAllowed, apperrors.CodeMethodNotAllowed, msgMethodNotAllowed
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, code, message = http.StatusUnauthorized, apperrors.CodeUnauthorized, msgUnauthorized
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

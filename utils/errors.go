package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"parcel-delivery/logger"
	"parcel-delivery/repository"
	"parcel-delivery/types"
)

// StatusError carries the HTTP status a handler should answer with.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func NewStatusError(status int, message string) *StatusError {
	return &StatusError{Status: status, Message: message}
}

// StatusForError maps handler errors onto HTTP status codes.
func StatusForError(err error) int {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return statusErr.Status
	case errors.Is(err, repository.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repository.ErrInvalidID):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorResponse builds the envelope for a failed handler. Server errors are
// logged and prefixed with fallback.
func ErrorResponse(err error, fallback string) (int, types.ApiResponse) {
	status := StatusForError(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		logger.Error(fallback, err)
		message = fallback + ": " + message
	}
	return status, types.ApiResponse{Message: message, Status: status}
}

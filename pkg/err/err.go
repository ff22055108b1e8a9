package errprocess

import (
	"errors"
	"net/http"

	"fitness_chat_service/pkg/logger"

	"go.uber.org/zap"
)

// AppError error carrying the http status a handler should answer with
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Set log errMsg and return it as an error
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}

// BadRequest 400
func BadRequest(msg string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: msg}
}

// Forbidden 403, cause is kept for errors.Is
func Forbidden(msg string, cause error) *AppError {
	return &AppError{Status: http.StatusForbidden, Message: msg, Err: cause}
}

// NotFound 404, cause is kept for errors.Is
func NotFound(msg string, cause error) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: msg, Err: cause}
}

// Internal 500. The cause is logged here and only msg reaches the client.
func Internal(msg string, cause error) *AppError {
	logger.Log.Error(msg, zap.Error(cause))
	return &AppError{Status: http.StatusInternalServerError, Message: msg, Err: cause}
}

// Status resolve the http status and client message for err
func Status(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}
	return http.StatusInternalServerError, "internal server error"
}

package errprocess

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"fitness_chat_service/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	logger.SetNewNop()
	cause := errors.New("connection reset")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"bad request", BadRequest("content is required"), http.StatusBadRequest, "content is required"},
		{"forbidden", Forbidden("not yours", cause), http.StatusForbidden, "not yours"},
		{"not found", NotFound("Chat not found.", cause), http.StatusNotFound, "Chat not found."},
		{"wrapped app error", fmt.Errorf("handler: %w", NotFound("Message not found.", nil)), http.StatusNotFound, "Message not found."},
		{"internal hides cause", Internal("Error fetching chat", cause), http.StatusInternalServerError, "Error fetching chat"},
		{"plain error", cause, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Status(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	logger.SetNewNop()
	cause := errors.New("no documents")
	err := NotFound("Chat not found.", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Chat not found.: no documents", err.Error())
}

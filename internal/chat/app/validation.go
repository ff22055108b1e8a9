package app

import (
	"strings"
	"unicode/utf8"

	"fitness_chat_service/internal/chat/domain"
	errprocess "fitness_chat_service/pkg/err"
)

// ValidateContent return the trimmed message text, or a 400 when it is blank or too long
func ValidateContent(content string) (string, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return "", errprocess.BadRequest("Message cannot be empty")
	}
	if utf8.RuneCountInString(content) > domain.MaxContentLength {
		return "", errprocess.BadRequest("Message is too long (max 1000 characters)")
	}
	return text, nil
}

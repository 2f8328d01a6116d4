// Package validation enforces the input constraints the AI pipeline
// relies on: length windows, role enums, and HTML-escaping of anything
// user-authored before it reaches a prompt or the database.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"findmyvakeel/backend/internal/models"
)

const (
	MinProblemLength = 10
	MaxProblemLength = 10000
	MaxChatMessages  = 50
	MaxMessageLength = 5000
)

type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// SanitizeString escapes HTML-significant characters and trims whitespace.
func SanitizeString(s string) string {
	replacer := strings.NewReplacer(
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
	)
	return strings.TrimSpace(replacer.Replace(s))
}

// ValidateProblem checks the submission length window and returns the
// sanitized text.
func ValidateProblem(problem string) (string, *ValidationError) {
	if problem == "" {
		return "", invalid("problem", "Problem description is required")
	}
	// Limits are in characters, not bytes; submissions in Devanagari and
	// other non-Latin scripts must measure the same as Latin ones.
	if utf8.RuneCountInString(strings.TrimSpace(problem)) < MinProblemLength {
		return "", invalid("problem", fmt.Sprintf("Problem description must be at least %d characters", MinProblemLength))
	}
	if utf8.RuneCountInString(problem) > MaxProblemLength {
		return "", invalid("problem", fmt.Sprintf("Problem description must be less than %d characters", MaxProblemLength))
	}
	return SanitizeString(problem), nil
}

// ValidateChatHistory checks the history bounds and per-message
// constraints, returning a sanitized copy.
func ValidateChatHistory(messages []models.ChatMessage) ([]models.ChatMessage, *ValidationError) {
	if len(messages) == 0 {
		return nil, invalid("messages", "At least one message is required")
	}
	if len(messages) > MaxChatMessages {
		return nil, invalid("messages", "Too many messages in conversation")
	}

	sanitized := make([]models.ChatMessage, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case "user", "assistant", "system":
		default:
			return nil, invalid("messages", fmt.Sprintf("Invalid role in message %d", i+1))
		}
		if msg.Content == "" {
			return nil, invalid("messages", fmt.Sprintf("Invalid content in message %d", i+1))
		}
		if utf8.RuneCountInString(msg.Content) > MaxMessageLength {
			return nil, invalid("messages", fmt.Sprintf("Message %d is too long", i+1))
		}
		sanitized[i] = models.ChatMessage{
			Role:    msg.Role,
			Content: SanitizeString(msg.Content),
		}
	}

	return sanitized, nil
}

// ValidateMessageContent checks a single stored chat message.
func ValidateMessageContent(content string) (string, *ValidationError) {
	if strings.TrimSpace(content) == "" {
		return "", invalid("content", "Message content is required")
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return "", invalid("content", "Message content is too long")
	}
	return SanitizeString(content), nil
}

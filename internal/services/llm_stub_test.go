package services

import (
	"context"

	"findmyvakeel/backend/internal/models"
)

// stubLLM is a deterministic LLMService for tests. It records the last
// request and returns a canned reply or error.
type stubLLM struct {
	reply string
	err   error

	lastSystem  string
	lastPrompt  string
	lastHistory []models.ChatMessage
	calls       int
}

func (s *stubLLM) GenerateText(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	s.calls++
	s.lastSystem = system
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubLLM) GenerateConversation(ctx context.Context, system string, history []models.ChatMessage, temperature float32) (string, error) {
	s.calls++
	s.lastSystem = system
	s.lastHistory = history
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

package services

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"findmyvakeel/backend/internal/config"
	"findmyvakeel/backend/internal/models"
)

// LLMService is the single boundary to the external text-generation
// service. Every pipeline component issues exactly one round trip per
// invocation through it; retries and backoff are deliberately absent.
type LLMService interface {
	// GenerateText sends a system instruction plus one user prompt and
	// returns the raw reply text.
	GenerateText(ctx context.Context, system, prompt string, temperature float32) (string, error)
	// GenerateConversation sends a system instruction plus a multi-turn
	// history and returns the raw reply text.
	GenerateConversation(ctx context.Context, system string, history []models.ChatMessage, temperature float32) (string, error)
}

type llmService struct {
	client *genai.Client
	model  string
}

// NewLLMService builds the client from an explicit config struct; no
// ambient environment lookups happen here or in callers.
func NewLLMService(cfg config.LLMConfig) (LLMService, error) {
	ctx := context.Background()

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.Endpoint
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	return &llmService{
		client: client,
		model:  cfg.Model,
	}, nil
}

// GenerateText implements LLMService.
func (s *llmService) GenerateText(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}
	if system != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response generated")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// GenerateConversation implements LLMService.
func (s *llmService) GenerateConversation(ctx context.Context, system string, history []models.ChatMessage, temperature float32) (string, error) {
	systemParts := []string{}
	if system != "" {
		systemParts = append(systemParts, system)
	}

	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case "assistant":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		case "system":
			// The wire format carries a single system instruction, so
			// in-history system turns are folded into it.
			systemParts = append(systemParts, msg.Content)
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}

	if len(contents) == 0 {
		return "", fmt.Errorf("conversation history is empty")
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}
	if len(systemParts) > 0 {
		genCfg.SystemInstruction = genai.NewContentFromText(strings.Join(systemParts, "\n\n"), genai.RoleUser)
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, genCfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response generated")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

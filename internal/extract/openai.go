package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// extractionTemperature biases the model toward deterministic, exhaustive
// recall rather than creative phrasing.
const extractionTemperature = 0.2

// chatCompleter is the slice of the OpenAI client the engine needs.
// *openai.Client satisfies it; tests substitute a fake.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIEngine extracts events via the OpenAI chat completion API.
type OpenAIEngine struct {
	client chatCompleter
	model  string
	logger *slog.Logger
}

// NewOpenAIEngine creates an engine backed by the given API key.
func NewOpenAIEngine(apiKey string, logger *slog.Logger) *OpenAIEngine {
	return &OpenAIEngine{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
		logger: logger,
	}
}

// Extract sends the document to the model and returns the cleaned events.
func (e *OpenAIEngine) Extract(ctx context.Context, documentText string) (*Result, error) {
	if strings.TrimSpace(documentText) == "" {
		return nil, ErrNoText
	}

	text, truncated := truncate(documentText)
	if truncated {
		e.logger.Warn("document exceeds model input budget, truncating",
			"fullLength", len(documentText), "sentLength", len(text))
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: extractionTemperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(text)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, errors.New("no response from model")
	}

	result, err := parseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	result.Truncated = truncated

	e.logger.Info("extraction finished",
		"course", result.Course, "events", len(result.Events), "truncated", truncated)
	return result, nil
}

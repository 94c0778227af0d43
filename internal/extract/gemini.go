package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiEngine extracts events via the Gemini API. It implements the same
// Extractor contract as OpenAIEngine and is selected by configuration.
type GeminiEngine struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewGeminiEngine creates an engine backed by the given API key.
func NewGeminiEngine(ctx context.Context, apiKey string, logger *slog.Logger) (*GeminiEngine, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiEngine{
		client: client,
		model:  "gemini-1.5-flash",
		logger: logger,
	}, nil
}

// Extract sends the document to the model and returns the cleaned events.
func (e *GeminiEngine) Extract(ctx context.Context, documentText string) (*Result, error) {
	if strings.TrimSpace(documentText) == "" {
		return nil, ErrNoText
	}

	text, truncated := truncate(documentText)
	if truncated {
		e.logger.Warn("document exceeds model input budget, truncating",
			"fullLength", len(documentText), "sentLength", len(text))
	}

	model := e.client.GenerativeModel(e.model)
	model.SetTemperature(extractionTemperature)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(buildUserPrompt(text)))
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
	}
	if sb.Len() == 0 {
		return nil, errors.New("no response from model")
	}

	result, err := parseResponse(sb.String())
	if err != nil {
		return nil, err
	}
	result.Truncated = truncated

	e.logger.Info("extraction finished",
		"course", result.Course, "events", len(result.Events), "truncated", truncated)
	return result, nil
}

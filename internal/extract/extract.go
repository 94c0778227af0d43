// Package extract turns raw syllabus text into validated calendar events by
// way of a language model. The model surface is hidden behind the Extractor
// interface so providers can be swapped without touching callers.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"coursecal/internal/models"
)

// maxDocumentChars bounds how much of a document is sent to the model.
// Longer documents are truncated and Result.Truncated is set so callers can
// tell the user that content was dropped.
const maxDocumentChars = 200_000

// ErrNoText is returned when a document contains no readable text.
var ErrNoText = errors.New("no text could be extracted from the document")

// ParseError indicates the model returned something that is not valid JSON.
// RawPrefix carries the start of the response for diagnostics.
type ParseError struct {
	RawPrefix string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response as JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Result is the outcome of one extraction call.
type Result struct {
	Course    string
	Events    []models.Event
	Truncated bool
}

// Extractor extracts calendar events from plain document text.
type Extractor interface {
	Extract(ctx context.Context, documentText string) (*Result, error)
}

// rawEvent mirrors the JSON schema the model is instructed to return.
// Events are decoded one at a time so a malformed item drops that item, not
// the whole response.
type rawEvent struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Type        string `json:"type"`
	Course      string `json:"course"`
	Description string `json:"description"`
}

type rawResult struct {
	Course string            `json:"course"`
	Events []json.RawMessage `json:"events"`
}

var codeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// parseResponse decodes the model's response text into a Result. Responses
// wrapped in markdown code fences are unwrapped first. A response that is
// not JSON at all yields a ParseError; valid JSON with no events array
// yields an empty event list.
func parseResponse(content string) (*Result, error) {
	text := strings.TrimSpace(content)
	if m := codeFence.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	var raw rawResult
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		prefix := content
		if len(prefix) > 500 {
			prefix = prefix[:500]
		}
		return nil, &ParseError{RawPrefix: prefix, Err: err}
	}

	return &Result{
		Course: raw.Course,
		Events: validateEvents(raw.Events),
	}, nil
}

// truncate cuts text to the model input budget, reporting whether anything
// was dropped.
func truncate(text string) (string, bool) {
	if len(text) <= maxDocumentChars {
		return text, false
	}
	return text[:maxDocumentChars], true
}

// AssignIDs gives every event a collision-free id. IDs are assigned at the
// ingestion boundary, once per extraction run, so re-reads of the store never
// re-key events.
func AssignIDs(events []models.Event) {
	for i := range events {
		events[i].ID = uuid.NewString()
	}
}

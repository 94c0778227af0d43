package calendar

import (
	"context"
	"errors"
	"log/slog"
	"time"

	calapi "google.golang.org/api/calendar/v3"

	"coursecal/internal/models"
	"coursecal/internal/schedule"
)

// createTimeout bounds each individual provider call. Failures are reported
// per event; there is no cross-call retry coupling.
const createTimeout = 30 * time.Second

// Precondition violations reported before any network activity.
var (
	ErrNoAccessToken = errors.New("google access token is required")
	ErrNoEvents      = errors.New("events are required")
)

// eventColors maps event types onto Google Calendar's fixed color palette.
// The ids are arbitrary but must match the provider exactly: 6 orange,
// 9 blue, 10 green, 1 lavender.
var eventColors = map[models.EventType]string{
	models.TypeExam:     "6",
	models.TypeHomework: "9",
	models.TypeProject:  "10",
}

const defaultColor = "1"

// Service creates calendar events for a batch of extracted events. It is
// stateless; the credential and events arrive by value on every call.
type Service struct {
	resolver   *schedule.Resolver
	logger     *slog.Logger
	newCreator func(ctx context.Context, accessToken string) (eventCreator, error)
}

// NewService creates a sync service emitting events in the resolver's
// timezone.
func NewService(resolver *schedule.Resolver, logger *slog.Logger) *Service {
	return &Service{
		resolver: resolver,
		logger:   logger,
		newCreator: func(ctx context.Context, accessToken string) (eventCreator, error) {
			return newGoogleCreator(ctx, accessToken)
		},
	}
}

// Sync creates one calendar event per input event and reports per-event
// outcomes. Events are processed sequentially in input order; one event's
// failure never aborts the batch. The returned summary always satisfies
// Created+Failed == len(events).
//
// An empty credential or event list fails fast with a precondition error
// before any network activity.
func (s *Service) Sync(ctx context.Context, accessToken string, events []models.Event) (*models.SyncSummary, error) {
	if accessToken == "" {
		return nil, ErrNoAccessToken
	}
	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	creator, err := s.newCreator(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	summary := &models.SyncSummary{Results: []models.SyncResult{}}
	for _, event := range events {
		span, err := s.resolver.Resolve(event.Date, event.Time, event.Type)
		if err != nil {
			s.logger.Error("could not resolve event date", "title", event.Title, "date", event.Date, "error", err)
			summary.Failed++
			summary.Failures = append(summary.Failures, models.SyncResult{Title: event.Title, Error: err.Error()})
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, createTimeout)
		created, err := creator.Create(callCtx, s.buildPayload(event, span))
		cancel()
		if err != nil {
			s.logger.Error("failed to create calendar event", "title", event.Title, "error", err)
			summary.Failed++
			summary.Failures = append(summary.Failures, models.SyncResult{Title: event.Title, Error: err.Error()})
			continue
		}

		summary.Created++
		summary.Results = append(summary.Results, models.SyncResult{
			ID:       created.Id,
			Title:    event.Title,
			HTMLLink: created.HtmlLink,
		})
	}

	s.logger.Info("sync finished", "created", summary.Created, "failed", summary.Failed)
	return summary, nil
}

// buildPayload maps a resolved event onto the provider's event schema.
// All-day events use the date-only representation so the provider renders
// them as all-day.
func (s *Service) buildPayload(event models.Event, span schedule.Span) *calapi.Event {
	description := event.Description
	if description == "" {
		description = "Type: " + string(event.Type)
	}

	color, ok := eventColors[event.Type]
	if !ok {
		color = defaultColor
	}

	payload := &calapi.Event{
		Summary:     event.Title,
		Description: description,
		ColorId:     color,
	}

	tz := s.resolver.Location().String()
	if span.AllDay {
		payload.Start = &calapi.EventDateTime{Date: span.Start.Format("2006-01-02"), TimeZone: tz}
		payload.End = &calapi.EventDateTime{Date: span.End.Format("2006-01-02"), TimeZone: tz}
	} else {
		payload.Start = &calapi.EventDateTime{DateTime: span.Start.Format(time.RFC3339Nano), TimeZone: tz}
		payload.End = &calapi.EventDateTime{DateTime: span.End.Format(time.RFC3339Nano), TimeZone: tz}
	}
	return payload
}

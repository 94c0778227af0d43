// Package calendar translates selected events into Google Calendar create
// calls and reports per-event results.
package calendar

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// eventCreator is the slice of the Google Calendar API the sync service
// needs. The real implementation wraps *calendar.Service; tests use fakes.
type eventCreator interface {
	Create(ctx context.Context, event *calendar.Event) (*calendar.Event, error)
}

// googleCreator inserts events into the user's primary calendar.
type googleCreator struct {
	service *calendar.Service
}

// newGoogleCreator builds an authenticated client from a bearer access
// token. The token is treated as opaque and short-lived; no refresh is
// attempted here.
func newGoogleCreator(ctx context.Context, accessToken string) (*googleCreator, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	service, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &googleCreator{service: service}, nil
}

func (g *googleCreator) Create(ctx context.Context, event *calendar.Event) (*calendar.Event, error) {
	return g.service.Events.Insert("primary", event).Context(ctx).Do()
}

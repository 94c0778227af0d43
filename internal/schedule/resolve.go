// Package schedule resolves the loose date/time text produced by extraction
// into concrete start and end instants.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"coursecal/internal/models"
)

// timePattern matches clock times like "2:00 PM" or "11:59pm".
var timePattern = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(AM|PM)`)

// Span is the resolved placement of an event on the calendar. When AllDay is
// set the event covers the whole calendar date of Start and End is exactly
// Start plus one day.
type Span struct {
	Start  time.Time
	End    time.Time
	AllDay bool
}

// InvalidDateError indicates a date string that could not be parsed.
type InvalidDateError struct {
	Date string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date format: %q", e.Date)
}

// Resolver turns event date/time text into spans in one fixed timezone.
type Resolver struct {
	loc *time.Location
}

// NewResolver creates a Resolver emitting all timestamps in loc.
func NewResolver(loc *time.Location) *Resolver {
	return &Resolver{loc: loc}
}

// Location returns the resolver's fixed timezone.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Resolve maps a date string, an optional free-text time and an event type
// onto a concrete span.
//
// Dates are accepted as plain YYYY-MM-DD or as a full RFC 3339 datetime.
// Without a time the event is all-day. A time matching H:MM AM/PM starts the
// event at that clock time; exams run two hours, everything else one. Time
// text that does not match degrades to a full-day timed span
// (00:00:00–23:59:59.999) instead of failing.
func (r *Resolver) Resolve(date, timeText string, typ models.EventType) (Span, error) {
	day, err := r.parseDate(date)
	if err != nil {
		return Span{}, err
	}

	if strings.TrimSpace(timeText) == "" {
		return Span{
			Start:  day,
			End:    day.AddDate(0, 0, 1),
			AllDay: true,
		}, nil
	}

	m := timePattern.FindStringSubmatch(timeText)
	if m == nil {
		// Malformed time text: keep the event, span the whole day. The end
		// is built from calendar components so it stays on the same wall
		// clock date across DST transitions.
		return Span{
			Start: day,
			End:   time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 999_000_000, r.loc),
		}, nil
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	period := strings.ToUpper(m[3])
	if period == "PM" && hours != 12 {
		hours += 12
	}
	if period == "AM" && hours == 12 {
		hours = 0
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), hours, minutes, 0, 0, r.loc)
	duration := time.Hour
	if typ == models.TypeExam {
		duration = 2 * time.Hour
	}
	return Span{Start: start, End: start.Add(duration)}, nil
}

func (r *Resolver) parseDate(date string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", date, r.loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		t = t.In(r.loc)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, r.loc), nil
	}
	return time.Time{}, &InvalidDateError{Date: date}
}

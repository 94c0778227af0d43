package extract

import (
	"encoding/json"

	"coursecal/internal/models"
)

// validateEvents filters raw model output down to well-formed events.
// Items that fail to decode or that are missing a title, date or type are
// dropped. Input order is preserved; the document's own ordering is a
// meaningful chronology signal.
//
// Date syntax is deliberately not checked here; that is the resolver's job.
func validateEvents(raw []json.RawMessage) []models.Event {
	events := make([]models.Event, 0, len(raw))
	for _, item := range raw {
		var ev rawEvent
		if err := json.Unmarshal(item, &ev); err != nil {
			continue
		}
		if ev.Title == "" || ev.Date == "" || ev.Type == "" {
			continue
		}
		events = append(events, models.Event{
			Title:       ev.Title,
			Date:        ev.Date,
			Time:        ev.Time,
			Type:        models.EventType(ev.Type),
			Course:      ev.Course,
			Description: ev.Description,
		})
	}
	return events
}

// Package store keeps the events extracted during one session and the
// user's selection of which events to sync.
package store

import (
	"sync"

	"coursecal/internal/models"
)

// CourseEventStore aggregates bundles across uploads and owns the selection
// set. All mutation goes through its methods; a single mutex serializes
// concurrent uploads. Events from repeated uploads of the same course are
// appended to the existing bundle rather than replacing it.
type CourseEventStore struct {
	mu       sync.Mutex
	bundles  []models.CourseBundle
	selected map[string]struct{}
}

// New creates an empty store.
func New() *CourseEventStore {
	return &CourseEventStore{
		selected: make(map[string]struct{}),
	}
}

// AddBundle merges a bundle into the store. A bundle whose course name
// matches an existing one has its events appended in arrival order. Newly
// added event ids are selected by default; users opt out rather than opt in.
func (s *CourseEventStore) AddBundle(bundle models.CourseBundle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.bundles {
		if s.bundles[i].Course == bundle.Course {
			s.bundles[i].Events = append(s.bundles[i].Events, bundle.Events...)
			merged = true
			break
		}
	}
	if !merged {
		s.bundles = append(s.bundles, bundle)
	}

	for _, ev := range bundle.Events {
		s.selected[ev.ID] = struct{}{}
	}
	s.pruneLocked()
}

// AllEvents returns every stored event, in bundle-insertion order and then
// per-bundle original order.
func (s *CourseEventStore) AllEvents() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allEventsLocked()
}

// SelectedEvents returns the stored events currently marked for sync,
// in AllEvents order.
func (s *CourseEventStore) SelectedEvents() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []models.Event
	for _, ev := range s.allEventsLocked() {
		if _, ok := s.selected[ev.ID]; ok {
			events = append(events, ev)
		}
	}
	return events
}

// SelectedIDs returns the ids of the selected events in AllEvents order.
func (s *CourseEventStore) SelectedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for _, ev := range s.allEventsLocked() {
		if _, ok := s.selected[ev.ID]; ok {
			ids = append(ids, ev.ID)
		}
	}
	return ids
}

// ToggleSelection flips the selection state of one event id. Toggling an id
// with no live event is a no-op after pruning.
func (s *CourseEventStore) ToggleSelection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
	s.pruneLocked()
}

// SelectAll marks the given ids as selected. Ids with no live event are
// dropped by pruning.
func (s *CourseEventStore) SelectAll(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		s.selected[id] = struct{}{}
	}
	s.pruneLocked()
}

// ClearSelection deselects everything.
func (s *CourseEventStore) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]struct{})
}

// Bundles returns a snapshot copy of the stored bundles.
func (s *CourseEventStore) Bundles() []models.CourseBundle {
	s.mu.Lock()
	defer s.mu.Unlock()

	bundles := make([]models.CourseBundle, len(s.bundles))
	for i, b := range s.bundles {
		events := make([]models.Event, len(b.Events))
		copy(events, b.Events)
		bundles[i] = models.CourseBundle{Course: b.Course, Events: events, Filename: b.Filename}
	}
	return bundles
}

// Courses returns the stored course names in insertion order.
func (s *CourseEventStore) Courses() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(s.bundles))
	for i, b := range s.bundles {
		names[i] = b.Course
	}
	return names
}

func (s *CourseEventStore) allEventsLocked() []models.Event {
	var events []models.Event
	for _, b := range s.bundles {
		events = append(events, b.Events...)
	}
	return events
}

// pruneLocked removes selection entries whose events no longer exist. The
// store is the source of truth for existence; reconciling on every mutation
// keeps selection counts consistent for callers.
func (s *CourseEventStore) pruneLocked() {
	live := make(map[string]struct{})
	for _, b := range s.bundles {
		for _, ev := range b.Events {
			live[ev.ID] = struct{}{}
		}
	}
	for id := range s.selected {
		if _, ok := live[id]; !ok {
			delete(s.selected, id)
		}
	}
}

package store_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecal/internal/models"
	"coursecal/internal/store"
)

func event(id, title string) models.Event {
	return models.Event{ID: id, Title: title, Date: "2024-10-15", Type: models.TypeHomework}
}

func bundle(course string, events ...models.Event) models.CourseBundle {
	return models.CourseBundle{Course: course, Events: events, Filename: course + ".txt"}
}

func TestAddBundleMergesSameCourse(t *testing.T) {
	s := store.New()
	e1 := event("e1", "Problem Set 1")
	e2 := event("e2", "Problem Set 2")

	s.AddBundle(bundle("CS 2120", e1))
	s.AddBundle(bundle("CS 2120", e2))

	bundles := s.Bundles()
	require.Len(t, bundles, 1)
	assert.Equal(t, []models.Event{e1, e2}, bundles[0].Events)
	assert.Equal(t, []models.Event{e1, e2}, s.AllEvents())
}

func TestAllEventsOrdering(t *testing.T) {
	s := store.New()
	a1, a2 := event("a1", "A1"), event("a2", "A2")
	b1 := event("b1", "B1")
	a3 := event("a3", "A3")

	s.AddBundle(bundle("CS 2120", a1, a2))
	s.AddBundle(bundle("MATH 3100", b1))
	s.AddBundle(bundle("CS 2120", a3))

	// Bundle-insertion order, then per-bundle original order. A later merge
	// into an earlier bundle keeps that bundle's position.
	assert.Equal(t, []models.Event{a1, a2, a3, b1}, s.AllEvents())
}

func TestNewEventsSelectedByDefault(t *testing.T) {
	s := store.New()
	s.AddBundle(bundle("CS 2120", event("e1", "PS1"), event("e2", "PS2")))

	assert.ElementsMatch(t, []string{"e1", "e2"}, s.SelectedIDs())
	assert.Len(t, s.SelectedEvents(), 2)
}

func TestToggleSelectionIdempotentDouble(t *testing.T) {
	s := store.New()
	s.AddBundle(bundle("CS 2120", event("e1", "PS1"), event("e2", "PS2")))

	before := len(s.SelectedIDs())
	s.ToggleSelection("e1")
	assert.Len(t, s.SelectedIDs(), before-1)
	s.ToggleSelection("e1")
	assert.Len(t, s.SelectedIDs(), before)
}

func TestToggleUnknownIDIsNoOp(t *testing.T) {
	s := store.New()
	s.AddBundle(bundle("CS 2120", event("e1", "PS1")))

	s.ToggleSelection("ghost")
	assert.Equal(t, []string{"e1"}, s.SelectedIDs())
}

func TestSelectAllPrunesDeadIDs(t *testing.T) {
	s := store.New()
	s.AddBundle(bundle("CS 2120", event("e1", "PS1")))
	s.ClearSelection()

	s.SelectAll([]string{"e1", "gone"})
	assert.Equal(t, []string{"e1"}, s.SelectedIDs())
}

func TestClearSelection(t *testing.T) {
	s := store.New()
	s.AddBundle(bundle("CS 2120", event("e1", "PS1"), event("e2", "PS2")))

	s.ClearSelection()
	assert.Empty(t, s.SelectedIDs())
	assert.Empty(t, s.SelectedEvents())
}

func TestSelectedEventsFollowAllEventsOrder(t *testing.T) {
	s := store.New()
	e1, e2, e3 := event("e1", "A"), event("e2", "B"), event("e3", "C")
	s.AddBundle(bundle("CS 2120", e1, e2, e3))
	s.ToggleSelection("e2")

	assert.Equal(t, []models.Event{e1, e3}, s.SelectedEvents())
}

func TestCourses(t *testing.T) {
	s := store.New()
	s.AddBundle(bundle("CS 2120", event("e1", "A")))
	s.AddBundle(bundle("MATH 3100", event("e2", "B")))
	s.AddBundle(bundle("CS 2120", event("e3", "C")))

	assert.Equal(t, []string{"CS 2120", "MATH 3100"}, s.Courses())
}

func TestConcurrentAddBundle(t *testing.T) {
	s := store.New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.AddBundle(bundle("CS 2120", event(fmt.Sprintf("e%d", i), "PS")))
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.AllEvents(), 20)
	assert.Len(t, s.SelectedIDs(), 20)
	require.Len(t, s.Bundles(), 1)
}

package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coursecal/internal/calendar"
)

// ListEvents returns the stored bundles, the flattened event list and the
// current selection.
func (s *Server) ListEvents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"courses":     s.store.Bundles(),
		"events":      s.store.AllEvents(),
		"selectedIds": s.store.SelectedIDs(),
	})
}

// ToggleEvent flips the selection state of one event.
func (s *Server) ToggleEvent(c *gin.Context) {
	var body struct {
		ID string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.store.ToggleSelection(body.ID)
	c.JSON(http.StatusOK, gin.H{"selectedIds": s.store.SelectedIDs()})
}

// SelectAllEvents selects every stored event.
func (s *Server) SelectAllEvents(c *gin.Context) {
	events := s.store.AllEvents()
	ids := make([]string, len(events))
	for i, ev := range events {
		ids[i] = ev.ID
	}
	s.store.SelectAll(ids)
	c.JSON(http.StatusOK, gin.H{"selectedIds": s.store.SelectedIDs()})
}

// ClearSelection deselects every stored event.
func (s *Server) ClearSelection(c *gin.Context) {
	s.store.ClearSelection()
	c.JSON(http.StatusOK, gin.H{"selectedIds": []string{}})
}

// SyncCalendar creates the selected events in the user's primary calendar
// and reports per-event outcomes. Partial success is the normal case: the
// response always carries counts and the failure list together.
func (s *Server) SyncCalendar(c *gin.Context) {
	var body struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := s.syncer.Sync(c.Request.Context(), body.AccessToken, s.store.SelectedEvents())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, calendar.ErrNoAccessToken) || errors.Is(err, calendar.ErrNoEvents) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"success": true,
		"created": summary.Created,
		"failed":  summary.Failed,
		"results": summary.Results,
	}
	if len(summary.Failures) > 0 {
		resp["errors"] = summary.Failures
	}
	c.JSON(http.StatusOK, resp)
}

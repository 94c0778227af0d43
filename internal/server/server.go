// Package server exposes the extraction-and-sync pipeline over HTTP.
package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"coursecal/internal/calendar"
	"coursecal/internal/extract"
	"coursecal/internal/store"
)

// Server wires the gin routes to the pipeline components.
type Server struct {
	extractor extract.Extractor
	store     *store.CourseEventStore
	syncer    *calendar.Service
	oauthConf *oauth2.Config
	logger    *slog.Logger
}

// New creates a Server.
func New(extractor extract.Extractor, st *store.CourseEventStore, syncer *calendar.Service, oauthConf *oauth2.Config, logger *slog.Logger) *Server {
	return &Server{
		extractor: extractor,
		store:     st,
		syncer:    syncer,
		oauthConf: oauthConf,
		logger:    logger,
	}
}

// Register attaches all routes to the router.
func (s *Server) Register(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", s.Health)
		api.GET("/upload", s.UploadUsage)
		api.POST("/upload", s.Upload)
		api.GET("/events", s.ListEvents)
		api.POST("/events/toggle", s.ToggleEvent)
		api.POST("/events/select-all", s.SelectAllEvents)
		api.POST("/events/clear", s.ClearSelection)
		api.POST("/calendar/sync", s.SyncCalendar)
	}

	r.GET("/auth/google/login", s.GoogleLogin)
	r.GET("/auth/google/callback", s.GoogleCallback)
}

// Health reports liveness.
func (s *Server) Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

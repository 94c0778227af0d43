package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"coursecal/internal/calendar"
	"coursecal/internal/config"
	"coursecal/internal/extract"
	"coursecal/internal/schedule"
	"coursecal/internal/server"
	"coursecal/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.LoadConfig()

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("invalid timezone", "error", err)
		os.Exit(1)
	}

	extractor, err := newExtractor(cfg, logger)
	if err != nil {
		logger.Error("failed to create extractor", "error", err)
		os.Exit(1)
	}

	resolver := schedule.NewResolver(loc)
	syncer := calendar.NewService(resolver, logger)
	oauthConf := calendar.OAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)

	srv := server.New(extractor, store.New(), syncer, oauthConf, logger)

	r := gin.Default()
	srv.Register(r)

	logger.Info("starting server", "addr", cfg.Addr, "timezone", cfg.Timezone, "provider", cfg.ExtractorProvider)
	if err := r.Run(cfg.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newExtractor(cfg config.Config, logger *slog.Logger) (extract.Extractor, error) {
	if cfg.ExtractorProvider == "gemini" {
		return extract.NewGeminiEngine(context.Background(), cfg.GeminiSecret, logger)
	}
	return extract.NewOpenAIEngine(cfg.OpenAISecret, logger), nil
}

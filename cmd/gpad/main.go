package main

import (
	"context"
	"net/http"
	"os"
	"time"

	api "github.com/mind-engage/semester-gpa/internal/api/http"
	"github.com/mind-engage/semester-gpa/internal/config"
	"github.com/mind-engage/semester-gpa/internal/grading"
	"github.com/mind-engage/semester-gpa/internal/logging"
	"github.com/mind-engage/semester-gpa/internal/preset"
	"github.com/mind-engage/semester-gpa/internal/sheet"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	ctx := logging.WithLogger(context.Background(), logger)

	// --- Sheet ---
	initial := grading.NewList()
	if cfg.PresetPath != "" {
		l, err := preset.Load(ctx, cfg.PresetPath)
		if err != nil {
			logger.Error("preset load failed", "path", cfg.PresetPath, "err", err)
			os.Exit(1)
		}
		initial = l
		logger.Info("preset loaded", "path", cfg.PresetPath, "modules", len(l))
	}
	store := sheet.New(initial)

	// --- Router ---
	origins := cfg.CORSOrigins()
	if cfg.Mode == config.ModeOnline && len(origins) == 0 {
		logger.Warn("CORS_ORIGINS_ONLINE is empty, every origin is allowed")
	}
	h := api.NewRouter(store, logger, origins)

	s := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", cfg.HTTPAddr, "mode", cfg.Mode)
	if err := s.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/adsdash/adsdash/internal/config"
	"github.com/adsdash/adsdash/internal/httpx"
	"github.com/adsdash/adsdash/internal/ingest"
	"github.com/adsdash/adsdash/internal/query"
	"github.com/adsdash/adsdash/internal/store"
)

func main() {
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	st := store.NewSession()
	qry := query.NewService(st, cfg.PreviewLimit)
	ing := ingest.NewIngestor(ingest.NewReader(cfg.ReadChunkBytes), st, logger)

	r := httpx.NewRouter(logger, st, qry, ing, cfg.MaxUploadBytes)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

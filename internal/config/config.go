package config

import (
	"log/slog"
	"os"
	"strconv"
)

type Config struct {
	Port           string
	PreviewLimit   int
	MaxUploadBytes int64
	ReadChunkBytes int
	LogLevel       slog.Level
}

func FromEnv() Config {
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	return Config{
		Port:           envOr("PORT", "8080"),
		PreviewLimit:   envInt("PREVIEW_LIMIT", 20),
		MaxUploadBytes: int64(envInt("MAX_UPLOAD_BYTES", 64<<20)),
		ReadChunkBytes: envInt("READ_CHUNK_BYTES", 64<<10),
		LogLevel:       lvl,
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

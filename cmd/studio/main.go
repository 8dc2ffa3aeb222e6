// Command studio runs the prompt-driven image studio: a browser front-end
// for generating an image from a prompt and iteratively editing it.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/promptstudio/promptstudio"
	"github.com/promptstudio/promptstudio/provider/gemini"
	"github.com/promptstudio/promptstudio/ratelimiter"
	"github.com/promptstudio/promptstudio/server"
	"github.com/promptstudio/promptstudio/storage/local"
	"github.com/promptstudio/promptstudio/storage/s3"
)

func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	ctx := context.Background()

	svc, err := gemini.New(ctx, gemini.Config{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.Model,
	})
	if err != nil {
		logger.Error("failed to create image service", "error", err.Error())
		os.Exit(1)
	}
	defer svc.Close()

	var service promptstudio.ImageService = svc
	if cfg.RequestsPerMinute > 0 {
		service = promptstudio.NewLimitedService(svc, ratelimiter.New(cfg.RequestsPerMinute), cfg.Model)
		logger.Info("rate limiting enabled", "requests_per_minute", cfg.RequestsPerMinute)
	}

	var store promptstudio.Storage
	switch cfg.StorageBackend {
	case "s3":
		store, err = s3.New(ctx, s3.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
		}, logger)
		if err != nil {
			logger.Error("failed to create S3 store", "error", err.Error())
			os.Exit(1)
		}
	case "local":
		dir := cfg.DownloadDir
		if dir == "" {
			dir = "exports"
		}
		store = local.New(dir)
	}

	srv, err := server.New(cfg, service, store, logger)
	if err != nil {
		logger.Error("failed to create server", "error", err.Error())
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error("server failed", "error", err.Error())
		os.Exit(1)
	}
}

// Package app wires the run-time dependencies: database connection, schema
// and the embedding client.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"docindex/features/record"
	"docindex/internal/adapter/gemini"
	"docindex/internal/config"
)

type Dependencies struct {
	DB       *sql.DB
	Embedder *gemini.Embedder
	Records  *record.PostgresRepo
}

func Bootstrap(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// Retry loop
	retryDelay := time.Duration(cfg.ConnectRetryDelaySeconds) * time.Second
	for i := 0; i < cfg.ConnectRetryAttempts; i++ {
		if err := db.PingContext(ctx); err == nil {
			break
		}
		slog.WarnContext(ctx, "failed to ping db, retrying...", "attempt", i+1, "max_attempts", cfg.ConnectRetryAttempts)
		time.Sleep(retryDelay)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	if err := record.EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	slog.InfoContext(ctx, "schema ensured")

	embedder, err := gemini.NewEmbedder(ctx, cfg.GeminiAPIKey, cfg.EmbedModel)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	return &Dependencies{
		DB:       db,
		Embedder: embedder,
		Records:  record.NewPostgresRepo(db),
	}, nil
}

func (d *Dependencies) Close() {
	if d.Embedder != nil {
		if err := d.Embedder.Close(); err != nil {
			slog.Warn("failed to close embedder", "error", err)
		}
	}
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			slog.Warn("failed to close db", "error", err)
		}
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"docindex/internal/app"
	"docindex/internal/config"
	"docindex/internal/extract"
	"docindex/internal/logger"
	"docindex/internal/pipeline"
	"docindex/internal/runid"
	"docindex/internal/text"
)

// exitPartial distinguishes a run that finished but lost one or more chunks
// from a fatal abort (exit 1) and a clean run (exit 0).
const exitPartial = 3

var errPartial = errors.New("completed with per-chunk failures")

func main() {
	// Structured logs on stderr; the run summary owns stdout.
	handler := logger.NewContextHandler(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(slog.New(handler))

	if err := newRootCommand().Execute(); err != nil {
		if errors.Is(err, errPartial) {
			os.Exit(exitPartial)
		}
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var strategyName string
	var windowSize, overlap int

	cmd := &cobra.Command{
		Use:   "index-documents <file_path>",
		Short: "Ingest a PDF or DOCX document into the embeddings store",
		Long: "Extracts text from a PDF or DOCX file, splits it into chunks under the\n" +
			"chosen strategy, embeds each chunk with Gemini and stores chunk plus\n" +
			"vector in Postgres (pgvector).",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], strategyName, windowSize, overlap)
		},
	}

	cmd.Flags().StringVar(&strategyName, "strategy", "fixed", "Chunking strategy: fixed, sentence or paragraph")
	cmd.Flags().IntVar(&windowSize, "window-size", 500, "Window size in characters (fixed strategy)")
	cmd.Flags().IntVar(&overlap, "overlap", 50, "Window overlap in characters (fixed strategy)")
	return cmd
}

func run(ctx context.Context, path, strategyName string, windowSize, overlap int) error {
	ctx = runid.WithRunID(ctx, runid.New())

	strategy, err := text.ParseStrategy(strategyName)
	if err != nil {
		return err
	}
	if err := extract.ValidatePath(path); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	deps, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	p := pipeline.New(extract.New(), deps.Embedder, deps.Records, pipeline.Options{
		Strategy:      strategy,
		Params:        text.Params{WindowSize: windowSize, Overlap: overlap},
		MaxChunkBytes: cfg.EmbedMaxChunkBytes,
		EmbedTimeout:  time.Duration(cfg.EmbedTimeoutSeconds) * time.Second,
	})

	summary, err := p.Run(ctx, path)
	if summary != nil {
		printSummary(summary)
	}
	if err != nil {
		return err
	}
	if summary.Failed() > 0 {
		return fmt.Errorf("%w: %d of %d chunks failed", errPartial, summary.Failed(), summary.TotalChunks)
	}
	return nil
}

func printSummary(s *pipeline.Summary) {
	fmt.Printf("Processed %s with %q strategy\n", s.Filename, s.Strategy)
	fmt.Printf("Chunks: %d total, %d persisted, %d failed\n", s.TotalChunks, s.Persisted, s.Failed())
	for _, f := range s.Failures {
		fmt.Printf("  chunk %d: %s\n", f.Index, f.Reason)
	}
	if remaining := s.TotalChunks - s.Persisted - s.Failed(); remaining > 0 {
		fmt.Printf("Aborted with %d chunks unprocessed\n", remaining)
	}
}

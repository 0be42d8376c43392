// Package pipeline drives one document end-to-end: extract, chunk, embed,
// persist. The unit of failure is a single chunk; chunks already persisted
// are never rolled back.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"google.golang.org/api/googleapi"

	"docindex/features/record"
	"docindex/internal/adapter/gemini"
	"docindex/internal/text"
)

type Extractor interface {
	Extract(path string) (string, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type RecordStore interface {
	Insert(ctx context.Context, rec *record.Record) error
}

var ErrChunkTooLarge = errors.New("chunk exceeds embedding size limit")

type Options struct {
	Strategy      text.Strategy
	Params        text.Params
	MaxChunkBytes int
	EmbedTimeout  time.Duration
}

type ChunkFailure struct {
	Index  int
	Reason string
}

// Summary reports the outcome of one run. When a fatal error aborts the run
// mid-document, TotalChunks - Persisted - Failed() chunks were never
// attempted.
type Summary struct {
	Filename    string
	Strategy    string
	TotalChunks int
	Persisted   int
	Failures    []ChunkFailure
}

func (s *Summary) Failed() int { return len(s.Failures) }

type Pipeline struct {
	extractor Extractor
	embedder  Embedder
	store     RecordStore
	opts      Options
}

func New(extractor Extractor, embedder Embedder, store RecordStore, opts Options) *Pipeline {
	if opts.MaxChunkBytes <= 0 {
		opts.MaxChunkBytes = 10000
	}
	if opts.EmbedTimeout <= 0 {
		opts.EmbedTimeout = 60 * time.Second
	}
	return &Pipeline{extractor: extractor, embedder: embedder, store: store, opts: opts}
}

// Run processes the document at path. Extraction and chunking failures are
// fatal and return before any chunk work starts. Per-chunk failures are
// recorded in the summary and processing continues with the next chunk, in
// index order, one chunk at a time. A non-nil Summary is returned alongside
// a fatal mid-run error so callers can report partial progress.
func (p *Pipeline) Run(ctx context.Context, path string) (*Summary, error) {
	filename := filepath.Base(path)

	raw, err := p.extractor.Extract(path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}

	chunks, err := text.Split(raw, p.opts.Strategy, p.opts.Params)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", filename, err)
	}

	summary := &Summary{
		Filename:    filename,
		Strategy:    string(p.opts.Strategy),
		TotalChunks: len(chunks),
	}
	slog.InfoContext(ctx, "document chunked", "filename", filename, "strategy", summary.Strategy, "chunks", len(chunks))

	for i, chunk := range chunks {
		if err := p.processChunk(ctx, summary, i, chunk); err != nil {
			return summary, fmt.Errorf("chunk %d of %s: %w", i, filename, err)
		}
	}
	return summary, nil
}

// processChunk embeds and persists one chunk. A nil return means the run
// continues: either the chunk was persisted or its failure was recorded. A
// non-nil return is fatal and aborts the run.
func (p *Pipeline) processChunk(ctx context.Context, summary *Summary, index int, chunk string) error {
	if len(chunk) > p.opts.MaxChunkBytes {
		p.recordFailure(ctx, summary, index,
			fmt.Errorf("%w: %d bytes (limit %d)", ErrChunkTooLarge, len(chunk), p.opts.MaxChunkBytes))
		return nil
	}

	vec, err := p.embed(ctx, chunk)
	if err != nil {
		if isFatal(err) {
			return err
		}
		p.recordFailure(ctx, summary, index, err)
		return nil
	}

	rec := &record.Record{
		ChunkText: chunk,
		Embedding: vec,
		Filename:  summary.Filename,
		Strategy:  summary.Strategy,
	}
	if err := p.store.Insert(ctx, rec); err != nil {
		p.recordFailure(ctx, summary, index, err)
		return nil
	}

	summary.Persisted++
	slog.InfoContext(ctx, "chunk persisted", "filename", summary.Filename, "chunk_index", index, "record_id", rec.ID)
	return nil
}

// embed calls the embedding service with a bounded timeout, retrying a
// transient failure exactly once.
func (p *Pipeline) embed(ctx context.Context, chunk string) ([]float32, error) {
	vec, err := p.embedOnce(ctx, chunk)
	if err == nil || isFatal(err) {
		return vec, err
	}
	slog.WarnContext(ctx, "embedding failed, retrying once", "error", err)
	return p.embedOnce(ctx, chunk)
}

func (p *Pipeline) embedOnce(ctx context.Context, chunk string) ([]float32, error) {
	embedCtx, cancel := context.WithTimeout(ctx, p.opts.EmbedTimeout)
	defer cancel()
	return p.embedder.Embed(embedCtx, chunk)
}

func (p *Pipeline) recordFailure(ctx context.Context, summary *Summary, index int, err error) {
	summary.Failures = append(summary.Failures, ChunkFailure{Index: index, Reason: err.Error()})
	slog.ErrorContext(ctx, "chunk failed", "filename", summary.Filename, "chunk_index", index, "error", err)
}

// isFatal classifies errors that abort the whole run: credential problems
// and responses the client cannot interpret. Everything else stays isolated
// to the failing chunk.
func isFatal(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden
	}
	return errors.Is(err, gemini.ErrMalformedResponse)
}

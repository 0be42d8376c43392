package record_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docindex/features/record"
	"docindex/internal/testutils"
)

func TestRecordRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	s := testutils.NewIntegrationSuite(t)
	s.Setup()
	defer s.Teardown()

	ctx := context.Background()

	// Schema creation is idempotent: a second run is a no-op, not an error.
	require.NoError(t, record.EnsureSchema(s.DB))
	require.NoError(t, record.EnsureSchema(s.DB))

	var tableCount int
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM information_schema.tables WHERE table_name = 'document_embeddings'`,
	).Scan(&tableCount))
	assert.Equal(t, 1, tableCount)

	repo := record.NewPostgresRepo(s.DB)

	// Inserts get monotonic surrogate keys and a server-side timestamp.
	first := &record.Record{
		ChunkText: "Hello world.",
		Embedding: validEmbedding(),
		Filename:  "report.pdf",
		Strategy:  "sentence",
	}
	require.NoError(t, repo.Insert(ctx, first))
	assert.Positive(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := &record.Record{
		ChunkText: "This is a test.",
		Embedding: validEmbedding(),
		Filename:  "report.pdf",
		Strategy:  "sentence",
	}
	require.NoError(t, repo.Insert(ctx, second))
	assert.Greater(t, second.ID, first.ID)

	// Append-only: the same chunk inserted again becomes a new row.
	again := &record.Record{
		ChunkText: first.ChunkText,
		Embedding: first.Embedding,
		Filename:  first.Filename,
		Strategy:  first.Strategy,
	}
	require.NoError(t, repo.Insert(ctx, again))
	assert.Greater(t, again.ID, second.ID)

	// The vector column enforces its dimension too; the repo check simply
	// fires first.
	bad := &record.Record{
		ChunkText: "bad",
		Embedding: make([]float32, 3),
		Filename:  "report.pdf",
		Strategy:  "fixed",
	}
	err := repo.Insert(ctx, bad)
	assert.ErrorIs(t, err, record.ErrDimensionMismatch)

	var rowCount int
	require.NoError(t, s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM document_embeddings`).Scan(&rowCount))
	assert.Equal(t, 3, rowCount)

	// Strategy names outside the enum are rejected by the schema.
	invalid := &record.Record{
		ChunkText: "chunk",
		Embedding: validEmbedding(),
		Filename:  "report.pdf",
		Strategy:  "semantic",
	}
	assert.Error(t, repo.Insert(ctx, invalid))
}

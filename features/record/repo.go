package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// Insert writes one record and fills its surrogate key and creation
// timestamp. A vector of the wrong length is rejected outright; it never
// reaches the database.
func (r *PostgresRepo) Insert(ctx context.Context, rec *Record) error {
	if len(rec.Embedding) != Dimensions {
		return fmt.Errorf("%w: got %d values, schema requires %d", ErrDimensionMismatch, len(rec.Embedding), Dimensions)
	}
	query := `INSERT INTO document_embeddings (chunk_text, embedding, filename, split_strategy) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		rec.ChunkText, vectorLiteral(rec.Embedding), rec.Filename, rec.Strategy,
	).Scan(&rec.ID, &rec.CreatedAt)
}

// vectorLiteral renders a float slice in pgvector's text input format,
// e.g. [0.1,0.2,0.3].
func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

// Package record persists embedded document chunks. The store is
// append-only: re-running the pipeline on the same file creates new,
// independent rows, and nothing ever updates or deletes one.
package record

import "time"

// Dimensions is the fixed width of the embedding column. Vectors of any
// other length are rejected before a write is attempted.
const Dimensions = 768

type Record struct {
	ID        int64
	ChunkText string
	Embedding []float32
	Filename  string
	Strategy  string
	CreatedAt time.Time
}

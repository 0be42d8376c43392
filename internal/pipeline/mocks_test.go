package pipeline_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docindex/features/record"
)

// Mocks

type MockExtractor struct{ mock.Mock }

func (m *MockExtractor) Extract(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

type MockEmbedder struct{ mock.Mock }

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

type MockStore struct {
	mock.Mock
	inserted []record.Record
	nextID   int64
}

func (m *MockStore) Insert(ctx context.Context, rec *record.Record) error {
	args := m.Called(ctx, rec)
	if err := args.Error(0); err != nil {
		return err
	}
	m.nextID++
	rec.ID = m.nextID
	m.inserted = append(m.inserted, *rec)
	return nil
}
